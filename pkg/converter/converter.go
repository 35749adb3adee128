// Package converter converts session journal events to Beancount format.
package converter

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pigeonworks-llc/forbidden-valley/pkg/beancount"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/calendar"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/db"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/scenario"
)

const (
	minExportYear    = 1
	maxExportYear    = 9999
	twoDigitYearBase = 2000
)

// ErrUnexportableDate is returned when a session date falls outside the
// years a Beancount file can hold.
var ErrUnexportableDate = errors.New("date cannot be exported")

// Converter converts journal events to Beancount transactions.
type Converter struct {
	accounts scenario.Accounts
	currency string
}

// NewConverter creates a new Converter.
func NewConverter(accounts scenario.Accounts, currency string) *Converter {
	if currency == "" {
		currency = scenario.DefaultCurrency
	}
	return &Converter{
		accounts: accounts,
		currency: currency,
	}
}

// ConvertEvent converts an event of a session that began on start to a
// balanced two-posting transaction. The simulated date is kept as sim_date
// metadata.
func (c *Converter) ConvertEvent(start calendar.Date, event db.Event) (beancount.Transaction, error) {
	var debit, credit, narration string

	switch event.Kind {
	case db.EventLoan:
		debit, credit, narration = c.accounts.Cash, c.accounts.Loan, "Loan disbursed"
	case db.EventInterest:
		debit, credit, narration = c.accounts.Interest, c.accounts.Loan, "Daily interest"
	case db.EventDeposit:
		debit, credit, narration = c.accounts.Cash, c.accounts.Deposits, "Deposit"
	case db.EventPayment:
		debit, credit, narration = c.accounts.Loan, c.accounts.Cash, "Loan payment"
	case db.EventWithdrawal:
		debit, credit, narration = c.accounts.Withdrawals, c.accounts.Cash, "Withdrawal"
	default:
		return beancount.Transaction{}, fmt.Errorf("unknown event kind: %q", event.Kind)
	}

	date, err := ExportDate(start, event.Date)
	if err != nil {
		return beancount.Transaction{}, err
	}

	return beancount.Transaction{
		Date:      date,
		Narration: narration,
		Tags:      []string{string(event.Kind)},
		Metadata:  map[string]string{"sim_date": event.Date.String()},
		Postings: []beancount.Posting{
			{Account: debit, Amount: event.Amount, Currency: c.currency},
			{
				Account:  credit,
				Amount:   event.Amount.Neg(),
				Currency: c.currency,
				Comment:  fmt.Sprintf("balance %s, loan %s", event.Balance.StringFixed(2), event.Loan.StringFixed(2)),
			},
		},
	}, nil
}

// ExportDate maps a simulated date onto the real calendar. The session start
// becomes a real date (two-digit years land in 2000-2099, day 31 of a short
// month rolls into the next one) and every simulated day after it is one
// real day.
func ExportDate(start, d calendar.Date) (string, error) {
	year := start.Year
	if year >= 0 && year < 100 {
		year += twoDigitYearBase
	}

	t := time.Date(year, time.Month(start.Month), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, start.Day-1+d.DaysSince(start))
	if t.Year() < minExportYear || t.Year() > maxExportYear {
		return "", fmt.Errorf("%w: %s", ErrUnexportableDate, d)
	}
	return t.Format(time.DateOnly), nil
}

// FormatHeader returns the open directives for every account used by an
// export, dated at the session start.
func (c *Converter) FormatHeader(start calendar.Date) (string, error) {
	date, err := ExportDate(start, start)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("option \"operating_currency\" \"%s\"\n\n", c.currency))
	for _, account := range []string{
		c.accounts.Cash,
		c.accounts.Loan,
		c.accounts.Interest,
		c.accounts.Deposits,
		c.accounts.Withdrawals,
	} {
		sb.WriteString(fmt.Sprintf("%s open %s %s\n", date, account, c.currency))
	}

	return sb.String(), nil
}

// FormatTransaction formats a Beancount transaction as a string.
func (c *Converter) FormatTransaction(txn beancount.Transaction) string {
	var sb strings.Builder

	sb.WriteString(txn.Date)
	sb.WriteString(" *")
	sb.WriteString(fmt.Sprintf(" \"%s\"", txn.Narration))
	if len(txn.Tags) > 0 {
		sb.WriteString(" #")
		sb.WriteString(strings.Join(txn.Tags, " #"))
	}
	sb.WriteString("\n")

	metadataKeys := make([]string, 0, len(txn.Metadata))
	for key := range txn.Metadata {
		metadataKeys = append(metadataKeys, key)
	}
	slices.Sort(metadataKeys)
	for _, key := range metadataKeys {
		sb.WriteString(fmt.Sprintf("  %s: \"%s\"\n", key, txn.Metadata[key]))
	}

	for _, posting := range txn.Postings {
		sb.WriteString("  ")
		sb.WriteString(posting.Account)

		// Right-align amounts at column 60
		spaces := max(1, 60-len(posting.Account))
		sb.WriteString(strings.Repeat(" ", spaces))

		sb.WriteString(fmt.Sprintf("%s %s", posting.Amount.StringFixed(2), posting.Currency))

		if posting.Comment != "" {
			sb.WriteString(fmt.Sprintf(" ; %s", posting.Comment))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// Export writes all events of a session to repo, creating the file first.
func (c *Converter) Export(repo beancount.Repository, sessionID string, start calendar.Date, events []db.Event) error {
	header, err := c.FormatHeader(start)
	if err != nil {
		return err
	}
	if err := repo.EnsureSessionFile(sessionID, header); err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	for _, event := range events {
		txn, err := c.ConvertEvent(start, event)
		if err != nil {
			return err
		}
		if err := repo.AppendTransaction(sessionID, c.FormatTransaction(txn)); err != nil {
			return fmt.Errorf("failed to append event %d: %w", event.Seq, err)
		}
	}

	return nil
}
