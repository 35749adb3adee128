package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/forbidden-valley/pkg/calendar"
)

// EventKind is the type of a journal event.
type EventKind string

const (
	EventLoan       EventKind = "loan"
	EventInterest   EventKind = "interest"
	EventDeposit    EventKind = "deposit"
	EventPayment    EventKind = "payment"
	EventWithdrawal EventKind = "withdrawal"
)

// Event is one state change of a session.
// Amount is the effective delta; Balance and Loan are the state after it.
type Event struct {
	ID         int64
	SessionID  string
	Seq        int
	Kind       EventKind
	Date       calendar.Date
	Amount     decimal.Decimal
	Balance    decimal.Decimal
	Loan       decimal.Decimal
	RecordedAt time.Time
}

// SessionSummary describes a recorded session.
type SessionSummary struct {
	ID         string
	StartDate  string
	DailyRate  decimal.Decimal
	StartedAt  time.Time
	EventCount int
	Balance    decimal.NullDecimal // after the last event
	Loan       decimal.NullDecimal // after the last event
}

// Journal records session events.
type Journal struct {
	conn *Connection
}

// NewJournal creates a new Journal instance.
func NewJournal(conn *Connection) *Journal {
	return &Journal{conn: conn}
}

// StartSession registers a new session and returns its ID.
func (j *Journal) StartSession(start calendar.Date, dailyRate decimal.Decimal) (string, error) {
	id := uuid.NewString()

	_, err := j.conn.db.Exec(
		`INSERT INTO sessions (id, start_date, daily_rate) VALUES (?, ?, ?)`,
		id, start.String(), dailyRate.String(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}

	return id, nil
}

// Record appends an event to its session and returns the assigned sequence
// number. The event's Seq field is ignored.
func (j *Journal) Record(event Event) (int, error) {
	var seq int

	err := j.conn.Transaction(func(tx *sql.Tx) error {
		err := tx.QueryRow(
			`SELECT COALESCE(MAX(seq), 0) + 1 FROM events WHERE session_id = ?`,
			event.SessionID,
		).Scan(&seq)
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO events (session_id, seq, kind, sim_day, sim_month, sim_year, amount, balance, loan)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			event.SessionID,
			seq,
			string(event.Kind),
			event.Date.Day,
			event.Date.Month,
			event.Date.Year,
			event.Amount.String(),
			event.Balance.String(),
			event.Loan.String(),
		)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record event: %w", err)
	}

	return seq, nil
}

// Events retrieves all events of a session in play order.
func (j *Journal) Events(sessionID string) ([]Event, error) {
	query := `
		SELECT id, session_id, seq, kind, sim_day, sim_month, sim_year, amount, balance, loan, recorded_at
		FROM events
		WHERE session_id = ?
		ORDER BY seq
	`

	rows, err := j.conn.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var kind string

		if err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.Seq,
			&kind,
			&e.Date.Day,
			&e.Date.Month,
			&e.Date.Year,
			&e.Amount,
			&e.Balance,
			&e.Loan,
			&e.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		e.Kind = EventKind(kind)
		events = append(events, e)
	}

	return events, rows.Err()
}

// Sessions lists recorded sessions, newest first.
func (j *Journal) Sessions() ([]SessionSummary, error) {
	query := `
		SELECT s.id, s.start_date, s.daily_rate, s.started_at,
			(SELECT COUNT(*) FROM events e WHERE e.session_id = s.id),
			(SELECT balance FROM events e WHERE e.session_id = s.id ORDER BY seq DESC LIMIT 1),
			(SELECT loan FROM events e WHERE e.session_id = s.id ORDER BY seq DESC LIMIT 1)
		FROM sessions s
		ORDER BY s.started_at DESC, s.rowid DESC
	`

	rows, err := j.conn.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var s SessionSummary

		if err := rows.Scan(
			&s.ID,
			&s.StartDate,
			&s.DailyRate,
			&s.StartedAt,
			&s.EventCount,
			&s.Balance,
			&s.Loan,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// Stats represents journal statistics.
type Stats struct {
	TotalSessions int
	TotalEvents   int
	LastSession   sql.NullString
}

// GetStats retrieves journal statistics.
func (j *Journal) GetStats() (*Stats, error) {
	var stats Stats

	err := j.conn.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&stats.TotalSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to get session count: %w", err)
	}

	err = j.conn.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&stats.TotalEvents)
	if err != nil {
		return nil, fmt.Errorf("failed to get event count: %w", err)
	}

	err = j.conn.db.QueryRow(`SELECT MAX(started_at) FROM sessions`).Scan(&stats.LastSession)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last session time: %w", err)
	}

	return &stats, nil
}
