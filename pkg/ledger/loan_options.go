package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownLoanOption is returned for a menu selection outside the options.
var ErrUnknownLoanOption = errors.New("unknown loan option")

// LoanOptions is the loan menu. Selection n (1-based) picks the n-th amount.
type LoanOptions []decimal.Decimal

// DefaultLoanOptions returns the stock loan menu.
func DefaultLoanOptions() LoanOptions {
	return LoanOptions{
		decimal.NewFromInt(1000),
		decimal.NewFromInt(5000),
		decimal.NewFromInt(10000),
	}
}

// Choose maps a menu selection to its loan amount.
func (o LoanOptions) Choose(selection int) (decimal.Decimal, error) {
	if selection < 1 || selection > len(o) {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrUnknownLoanOption, selection)
	}
	return o[selection-1], nil
}

// ChooseLoan maps a selection of the default menu (1, 2 or 3) to its amount.
func ChooseLoan(selection int) (decimal.Decimal, error) {
	return DefaultLoanOptions().Choose(selection)
}
