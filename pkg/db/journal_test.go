package db

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pigeonworks-llc/forbidden-valley/pkg/calendar"
)

func openMemory(t *testing.T) *Journal {
	t.Helper()
	conn, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewJournal(conn)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecordAssignsSequence(t *testing.T) {
	j := openMemory(t)
	start := calendar.Date{Day: 5, Month: 1, Year: 24}

	id, err := j.StartSession(start, dec("0.01"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	seq, err := j.Record(Event{SessionID: id, Kind: EventLoan, Date: start, Amount: dec("1000"), Balance: dec("1000"), Loan: dec("1000")})
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	seq, err = j.Record(Event{SessionID: id, Kind: EventInterest, Date: start.Next(), Amount: dec("10"), Balance: dec("1000"), Loan: dec("1010")})
	require.NoError(t, err)
	assert.Equal(t, 2, seq)

	events, err := j.Events(id)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, EventLoan, events[0].Kind)
	assert.Equal(t, start, events[0].Date)
	assert.Equal(t, 2, events[1].Seq)
	assert.Equal(t, calendar.Date{Day: 6, Month: 1, Year: 24}, events[1].Date)
	assert.True(t, events[1].Loan.Equal(dec("1010")))
	assert.False(t, events[1].RecordedAt.IsZero())
}

func TestSequencesAreScopedToSession(t *testing.T) {
	j := openMemory(t)
	start := calendar.Date{Day: 1, Month: 1, Year: 1}

	a, err := j.StartSession(start, dec("0.01"))
	require.NoError(t, err)
	b, err := j.StartSession(start, dec("0.02"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = j.Record(Event{SessionID: a, Kind: EventLoan, Date: start, Amount: dec("1"), Balance: dec("1"), Loan: dec("1")})
	require.NoError(t, err)
	seq, err := j.Record(Event{SessionID: b, Kind: EventLoan, Date: start, Amount: dec("2"), Balance: dec("2"), Loan: dec("2")})
	require.NoError(t, err)
	assert.Equal(t, 1, seq)
}

func TestRecordUnknownSessionFails(t *testing.T) {
	j := openMemory(t)

	_, err := j.Record(Event{SessionID: "missing", Kind: EventDeposit, Amount: dec("1"), Balance: dec("1"), Loan: dec("0")})
	assert.Error(t, err)
}

func TestSessionsAndStats(t *testing.T) {
	j := openMemory(t)
	start := calendar.Date{Day: 30, Month: 12, Year: 24}

	empty, err := j.StartSession(start, dec("0.01"))
	require.NoError(t, err)

	played, err := j.StartSession(start, dec("0.01"))
	require.NoError(t, err)
	_, err = j.Record(Event{SessionID: played, Kind: EventLoan, Date: start, Amount: dec("5000"), Balance: dec("5000"), Loan: dec("5000")})
	require.NoError(t, err)
	_, err = j.Record(Event{SessionID: played, Kind: EventPayment, Date: start, Amount: dec("500"), Balance: dec("4500"), Loan: dec("4500")})
	require.NoError(t, err)

	sessions, err := j.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	byID := map[string]SessionSummary{}
	for _, s := range sessions {
		byID[s.ID] = s
	}

	assert.Equal(t, 0, byID[empty].EventCount)
	assert.False(t, byID[empty].Balance.Valid)

	assert.Equal(t, 2, byID[played].EventCount)
	assert.Equal(t, "12/30/24", byID[played].StartDate)
	require.True(t, byID[played].Loan.Valid)
	assert.True(t, byID[played].Loan.Decimal.Equal(dec("4500")))

	stats, err := j.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 2, stats.TotalEvents)
	assert.True(t, stats.LastSession.Valid)
}

func TestOpenFileJournalSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	conn, err := Open(path)
	require.NoError(t, err)
	j := NewJournal(conn)
	_, err = j.StartSession(calendar.Date{Day: 1, Month: 1, Year: 24}, dec("0.01"))
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	conn, err = Open(path)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, path, conn.GetPath())

	stats, err := NewJournal(conn).GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSessions)
}
