package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Payment is the outcome of a successful loan repayment.
type Payment struct {
	Balance   decimal.Decimal // balance after the payment
	Loan      decimal.Decimal // loan after the payment
	Requested decimal.Decimal // amount asked for
	Applied   decimal.Decimal // effective payment, capped at the prior loan
	Retired   bool            // the payment cleared the whole loan
}

// PayLoan pays down the loan from the balance.
//
// Checks run in order and the first failure wins: no loan outstanding,
// non-positive amount, amount above the balance. Insufficiency is checked
// against the requested amount, before it is capped at the loan. The player
// is never charged more than the outstanding loan.
func PayLoan(balance, loan, amount decimal.Decimal) (Payment, error) {
	if !loan.IsPositive() {
		return Payment{}, ErrNoLoanOutstanding
	}
	if !amount.IsPositive() {
		return Payment{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(balance) {
		return Payment{}, fmt.Errorf("%w: requested %s, balance %s", ErrInsufficientFunds, amount, balance)
	}

	applied := decimal.Min(amount, loan)
	return Payment{
		Balance:   balance.Sub(applied),
		Loan:      loan.Sub(applied),
		Requested: amount,
		Applied:   applied,
		Retired:   applied.Equal(loan),
	}, nil
}

// PayLoanText is PayLoan for an amount typed by the player. The loan check
// runs before the amount is parsed.
func PayLoanText(balance, loan decimal.Decimal, raw string) (Payment, error) {
	if !loan.IsPositive() {
		return Payment{}, ErrNoLoanOutstanding
	}
	amount, err := ParseAmount(raw)
	if err != nil {
		return Payment{}, err
	}
	return PayLoan(balance, loan, amount)
}

// PayLoan returns the ledger after a repayment. On error the ledger is
// returned unchanged.
func (l Ledger) PayLoan(amount decimal.Decimal) (Ledger, Payment, error) {
	p, err := PayLoan(l.balance, l.loan, amount)
	if err != nil {
		return l, Payment{}, err
	}
	l.balance = p.Balance
	l.loan = p.Loan
	return l, p, nil
}

// Capped reports whether less than the requested amount was charged.
func (p Payment) Capped() bool {
	return p.Applied.LessThan(p.Requested)
}

// PayLoanText returns the ledger after a repayment typed by the player.
// On error the ledger is returned unchanged.
func (l Ledger) PayLoanText(raw string) (Ledger, Payment, error) {
	p, err := PayLoanText(l.balance, l.loan, raw)
	if err != nil {
		return l, Payment{}, err
	}
	l.balance = p.Balance
	l.loan = p.Loan
	return l, p, nil
}
