// Package shell runs one interactive session of the simulation over a text
// console: starting date, loan choice, warm-up days, then the main menu.
//
// The shell owns prompts, retries and rendering. Parsing, validation and
// arithmetic stay in the calendar and ledger packages.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/forbidden-valley/pkg/calendar"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/db"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/ledger"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/scenario"
)

var (
	// ErrInvalidStartDate ends a session before it starts.
	ErrInvalidStartDate = errors.New("invalid start date")
	// ErrInputClosed is returned when input ends before a loan is chosen.
	ErrInputClosed = errors.New("input closed")
)

// Journal stores session events.
type Journal interface {
	StartSession(start calendar.Date, dailyRate decimal.Decimal) (string, error)
	Record(event db.Event) (int, error)
	Events(sessionID string) ([]db.Event, error)
}

// Session is the state of one run. It is owned by the shell for the whole
// run and returned when the run ends.
type Session struct {
	ID     string // journal session ID, empty if the journal rejected the session
	Start  calendar.Date
	Date   calendar.Date
	Ledger ledger.Ledger
}

// Shell drives a session over a reader and a writer.
type Shell struct {
	in       *bufio.Scanner
	out      io.Writer
	scenario scenario.Scenario
	journal  Journal
	logger   *slog.Logger
}

// New creates a Shell. A nil logger uses slog.Default().
func New(in io.Reader, out io.Writer, sc scenario.Scenario, journal Journal, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{
		in:       bufio.NewScanner(in),
		out:      out,
		scenario: sc,
		journal:  journal,
		logger:   logger,
	}
}

// Run plays one session until the player exits or input ends.
// A bad starting date ends the run with ErrInvalidStartDate. Once the loan is
// chosen, operation errors are reported to the player and never end the run.
func (s *Shell) Run(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.printf("Enter the date (MM/DD/YY): ")
	line, _ := s.readLine()

	start, err := calendar.Parse(line)
	if err != nil {
		s.println("Invalid date entered. Exiting.")
		return nil, fmt.Errorf("%w: %v", ErrInvalidStartDate, err)
	}

	amount, err := s.chooseLoan(ctx)
	if err != nil {
		return nil, err
	}

	l, err := ledger.Open(amount, s.scenario.DailyRate)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	sess := &Session{Start: start, Date: start, Ledger: l}

	id, err := s.journal.StartSession(start, s.scenario.DailyRate)
	if err != nil {
		s.logger.Error("Failed to start journal session", "error", err)
	}
	sess.ID = id

	s.logger.Info("Session started", "session_id", sess.ID, "start", start.String(), "loan", amount.String())
	s.record(sess, db.EventLoan, amount)
	s.showBalance(sess)

	s.printf("\nAdvancing %d days...\n", s.scenario.WarmupDays)
	for i := 0; i < s.scenario.WarmupDays; i++ {
		s.nextDay(sess)
	}

	if err := s.menu(ctx, sess); err != nil {
		return sess, err
	}

	s.logger.Info("Session ended",
		"session_id", sess.ID,
		"date", sess.Date.String(),
		"balance", sess.Ledger.Balance().StringFixed(2),
		"loan", sess.Ledger.Loan().StringFixed(2),
	)
	return sess, nil
}

// chooseLoan prompts until the player picks one of the loan options.
func (s *Shell) chooseLoan(ctx context.Context) (decimal.Decimal, error) {
	opts := s.scenario.LoanOptions
	choices := choiceList(len(opts))

	for {
		if err := ctx.Err(); err != nil {
			return decimal.Zero, err
		}

		s.println("\nChoose your loan amount:")
		for i, amount := range opts {
			s.printf("%d. $%s\n", i+1, amount.String())
		}
		s.printf("Select option: ")

		line, ok := s.readLine()
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: no loan chosen", ErrInputClosed)
		}

		selection, err := strconv.Atoi(firstField(line))
		if err != nil {
			s.printf("Invalid input. Please enter %s.\n", choices)
			continue
		}

		amount, err := opts.Choose(selection)
		if err != nil {
			s.printf("Invalid choice. Please enter %s.\n", choices)
			continue
		}
		return amount, nil
	}
}

// menu runs the main menu loop until exit or end of input.
func (s *Shell) menu(ctx context.Context, sess *Session) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.println("\n************* MENU *************")
		s.println("1. Show balance")
		s.println("2. Deposit money")
		s.println("3. Pay loan")
		s.println("4. Withdraw money")
		s.println("5. Advance one day")
		s.println("6. Transaction history")
		s.println("7. Exit")
		s.printf("Enter choice: ")

		line, ok := s.readLine()
		if !ok {
			s.println("\nThanks for visiting!")
			return nil
		}

		choice, err := strconv.Atoi(firstField(line))
		if err != nil {
			choice = 0
		}

		switch choice {
		case 1:
			s.showBalance(sess)
		case 2:
			s.deposit(sess)
		case 3:
			s.payLoan(sess)
		case 4:
			s.withdraw(sess)
		case 5:
			s.nextDay(sess)
		case 6:
			s.history(sess)
		case 7:
			s.println("Thanks for visiting!")
			return nil
		default:
			s.println("Invalid choice.")
		}
	}
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			s.logger.Error("Failed to read input", "error", err)
		}
		return "", false
	}
	return s.in.Text(), true
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}

// firstField returns the first whitespace-separated word of line.
func firstField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// choiceList renders the valid menu numbers, e.g. "1, 2, or 3".
func choiceList(n int) string {
	switch n {
	case 0:
		return "a listed option"
	case 1:
		return "1"
	case 2:
		return "1 or 2"
	}

	nums := make([]string, n)
	for i := range nums {
		nums[i] = strconv.Itoa(i + 1)
	}
	return strings.Join(nums[:n-1], ", ") + ", or " + nums[n-1]
}
