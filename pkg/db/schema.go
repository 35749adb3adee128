// Package db provides the SQLite session journal.
//
// The journal is append-only. It records what happened in each session and
// is never used to restore a session.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- One row per played session
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,               -- UUID
    start_date TEXT NOT NULL,          -- simulation date, M/D/Y
    daily_rate TEXT NOT NULL,          -- decimal string
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Session events in play order
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL REFERENCES sessions(id),
    seq INTEGER NOT NULL,              -- 1-based order within the session
    kind TEXT NOT NULL,                -- loan, interest, deposit, payment, withdrawal
    sim_day INTEGER NOT NULL,
    sim_month INTEGER NOT NULL,
    sim_year INTEGER NOT NULL,
    amount TEXT NOT NULL,              -- effective delta, decimal string
    balance TEXT NOT NULL,             -- balance after the event
    loan TEXT NOT NULL,                -- loan after the event
    recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(session_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_events_session
    ON events(session_id, seq);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.db.Exec(Schema); err != nil {
		return err
	}
	return nil
}
