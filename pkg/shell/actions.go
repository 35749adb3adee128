package shell

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/forbidden-valley/pkg/db"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/ledger"
)

func (s *Shell) showBalance(sess *Session) {
	s.printf("Your balance is $%s\n", sess.Ledger.Balance().StringFixed(2))
	s.printf("Your loan is $%s\n", sess.Ledger.Loan().StringFixed(2))
}

// nextDay advances the calendar and accrues one day of interest.
func (s *Shell) nextDay(sess *Session) {
	before := sess.Ledger.Loan()

	sess.Date = sess.Date.Next()
	sess.Ledger = sess.Ledger.AccrueInterest()

	s.record(sess, db.EventInterest, sess.Ledger.Loan().Sub(before))
	s.printf("Date: %s | Balance: $%s | Loan: $%s\n",
		sess.Date,
		sess.Ledger.Balance().StringFixed(2),
		sess.Ledger.Loan().StringFixed(2),
	)
}

func (s *Shell) deposit(sess *Session) {
	s.printf("Enter amount to deposit: ")
	line, _ := s.readLine()

	amount, err := ledger.ParseAmount(line)
	if err == nil {
		var delta decimal.Decimal
		sess.Ledger, delta, err = sess.Ledger.Deposit(amount)
		if err == nil {
			s.record(sess, db.EventDeposit, delta)
		}
	}
	if err != nil {
		s.logger.Debug("Deposit rejected", "input", line, "error", err)
		s.println("Invalid amount.")
	}

	s.showBalance(sess)
}

func (s *Shell) payLoan(sess *Session) {
	if !sess.Ledger.HasLoan() {
		s.println("You have no outstanding loan.")
		return
	}

	s.printf("Enter amount to pay: ")
	line, _ := s.readLine()

	var p ledger.Payment
	var err error
	sess.Ledger, p, err = sess.Ledger.PayLoanText(line)
	if err != nil {
		s.logger.Debug("Payment rejected", "input", line, "error", err)
		switch {
		case errors.Is(err, ledger.ErrNoLoanOutstanding):
			s.println("You have no outstanding loan.")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			s.println("Insufficient funds.")
		default:
			s.println("Invalid amount.")
		}
		s.showBalance(sess)
		return
	}

	s.record(sess, db.EventPayment, p.Applied)

	if p.Capped() {
		s.printf("Payment capped at the outstanding loan: $%s charged.\n", p.Applied.StringFixed(2))
	}
	if p.Retired {
		s.println("Loan fully repaid!")
	}
	s.showBalance(sess)
}

// withdraw reports every rejected withdrawal as insufficient funds, the
// non-positive ones included. Only unparseable input is an invalid amount.
func (s *Shell) withdraw(sess *Session) {
	s.printf("Enter amount to withdraw: ")
	line, _ := s.readLine()

	amount, err := ledger.ParseAmount(line)
	if err != nil {
		s.logger.Debug("Withdrawal rejected", "input", line, "error", err)
		s.println("Invalid amount.")
		s.showBalance(sess)
		return
	}

	var delta decimal.Decimal
	sess.Ledger, delta, err = sess.Ledger.Withdraw(amount)
	if err != nil {
		s.logger.Debug("Withdrawal rejected", "input", line, "error", err)
		s.println("Insufficient funds.")
	} else {
		s.record(sess, db.EventWithdrawal, delta)
	}

	s.showBalance(sess)
}

// history prints the journal of the current session.
func (s *Shell) history(sess *Session) {
	if sess.ID == "" {
		s.println("History unavailable.")
		return
	}

	events, err := s.journal.Events(sess.ID)
	if err != nil {
		s.logger.Error("Failed to read history", "session_id", sess.ID, "error", err)
		s.println("History unavailable.")
		return
	}

	PrintEvents(s.out, events)
}

// PrintEvents renders events as a right-aligned table.
func PrintEvents(out io.Writer, events []db.Event) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "#\tDate\tEvent\tAmount\tBalance\tLoan\t\n")
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			e.Seq,
			e.Date,
			e.Kind,
			e.Amount.StringFixed(2),
			e.Balance.StringFixed(2),
			e.Loan.StringFixed(2),
		)
	}
	w.Flush()
}

// record appends an event with the session's current state to the journal.
// Journal failures are logged and otherwise ignored.
func (s *Shell) record(sess *Session, kind db.EventKind, amount decimal.Decimal) {
	if sess.ID == "" {
		return
	}

	_, err := s.journal.Record(db.Event{
		SessionID: sess.ID,
		Kind:      kind,
		Date:      sess.Date,
		Amount:    amount,
		Balance:   sess.Ledger.Balance(),
		Loan:      sess.Ledger.Loan(),
	})
	if err != nil {
		s.logger.Error("Failed to record event", "session_id", sess.ID, "kind", kind, "error", err)
	}
}
