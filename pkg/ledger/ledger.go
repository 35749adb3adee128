// Package ledger holds the cash balance and the outstanding loan of a session
// and validates every money movement against them.
//
// All operations are pure: they return new values and never mutate their
// inputs. Failed operations leave state untouched and report a sentinel error
// that callers match with errors.Is.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxAmountScale is the number of decimal places accepted in a typed amount.
	MaxAmountScale = 8
	// MaxAmountDigits is the number of integer digits accepted in a typed amount.
	MaxAmountDigits = 15

	maxAmountInput = 64
)

// DefaultDailyRate returns the daily interest rate applied to the loan.
func DefaultDailyRate() decimal.Decimal {
	return decimal.RequireFromString("0.01")
}

var (
	// ErrNonPositive is returned for deposits and withdrawals of zero or less.
	ErrNonPositive = errors.New("amount must be positive")
	// ErrNoLoanOutstanding is returned when paying a loan that is already retired.
	ErrNoLoanOutstanding = errors.New("no loan outstanding")
	// ErrInvalidAmount is returned when a payment amount cannot be parsed or is not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds is returned when the requested amount exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNegativeRate is returned when constructing a ledger with a negative rate.
	ErrNegativeRate = errors.New("daily rate must not be negative")
)

// Ledger is the money state of one session.
// The daily rate is fixed at construction.
type Ledger struct {
	balance   decimal.Decimal
	loan      decimal.Decimal
	dailyRate decimal.Decimal
}

// New creates an empty ledger with the given daily rate.
func New(dailyRate decimal.Decimal) (Ledger, error) {
	if dailyRate.IsNegative() {
		return Ledger{}, fmt.Errorf("%w: %s", ErrNegativeRate, dailyRate)
	}
	return Ledger{dailyRate: dailyRate}, nil
}

// Open creates a ledger whose loan has just been disbursed:
// both balance and loan equal amount.
func Open(amount, dailyRate decimal.Decimal) (Ledger, error) {
	l, err := New(dailyRate)
	if err != nil {
		return Ledger{}, err
	}
	l.balance = amount
	l.loan = amount
	return l, nil
}

// Balance returns the cash held.
func (l Ledger) Balance() decimal.Decimal { return l.balance }

// Loan returns the outstanding loan.
func (l Ledger) Loan() decimal.Decimal { return l.loan }

// DailyRate returns the fixed daily interest rate.
func (l Ledger) DailyRate() decimal.Decimal { return l.dailyRate }

// HasLoan reports whether any loan is outstanding.
func (l Ledger) HasLoan() bool { return l.loan.IsPositive() }

// AccrueInterest returns the ledger after one day of compound interest:
// loan *= (1 + dailyRate). The balance does not earn interest.
// The stored loan is not rounded.
func (l Ledger) AccrueInterest() Ledger {
	l.loan = l.loan.Mul(decimal.NewFromInt(1).Add(l.dailyRate))
	return l
}

// Deposit validates a deposit amount and returns the delta to add to the
// balance. Non-positive amounts return a zero delta with ErrNonPositive, so
// adding the delta is always safe.
func Deposit(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNonPositive, amount)
	}
	return amount, nil
}

// Deposit returns the ledger with a validated deposit applied.
func (l Ledger) Deposit(amount decimal.Decimal) (Ledger, decimal.Decimal, error) {
	delta, err := Deposit(amount)
	l.balance = l.balance.Add(delta)
	return l, delta, err
}

// Withdraw validates a withdrawal against the balance and returns the delta to
// subtract from it. Failures return a zero delta.
func Withdraw(balance, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNonPositive, amount)
	}
	if amount.GreaterThan(balance) {
		return decimal.Zero, fmt.Errorf("%w: requested %s, balance %s", ErrInsufficientFunds, amount, balance)
	}
	return amount, nil
}

// Withdraw returns the ledger with a validated withdrawal applied.
func (l Ledger) Withdraw(amount decimal.Decimal) (Ledger, decimal.Decimal, error) {
	delta, err := Withdraw(l.balance, amount)
	l.balance = l.balance.Sub(delta)
	return l, delta, err
}

// ParseAmount parses a money amount typed by the player.
// Amounts with more than MaxAmountScale decimal places or MaxAmountDigits
// integer digits are rejected, exponent notation included.
func ParseAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > maxAmountInput {
		return decimal.Zero, fmt.Errorf("%w: input too long", ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	exp := int64(amount.Exponent())
	if exp < -MaxAmountScale {
		return decimal.Zero, fmt.Errorf("%w: more than %d decimal places in %q", ErrInvalidAmount, MaxAmountScale, raw)
	}
	if int64(amount.NumDigits())+exp > MaxAmountDigits {
		return decimal.Zero, fmt.Errorf("%w: more than %d integer digits in %q", ErrInvalidAmount, MaxAmountDigits, raw)
	}
	return amount, nil
}
