package ledger

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(d(expected)) {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestNewRejectsNegativeRate(t *testing.T) {
	_, err := New(d("-0.01"))
	assert.ErrorIs(t, err, ErrNegativeRate)
}

func TestOpen(t *testing.T) {
	l, err := Open(d("5000"), DefaultDailyRate())
	require.NoError(t, err)

	assertDecimal(t, "5000", l.Balance())
	assertDecimal(t, "5000", l.Loan())
	assertDecimal(t, "0.01", l.DailyRate())
	assert.True(t, l.HasLoan())
}

func TestAccrueInterest(t *testing.T) {
	l, err := Open(d("1000"), DefaultDailyRate())
	require.NoError(t, err)

	next := l.AccrueInterest()

	assertDecimal(t, "1010", next.Loan())
	assertDecimal(t, "1000", next.Balance())
	assertDecimal(t, "1000", l.Loan())
}

func TestAccrueInterestCompoundsWithoutRounding(t *testing.T) {
	l, err := Open(d("1000"), DefaultDailyRate())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		l = l.AccrueInterest()
	}

	// 1000 * 1.01^3
	assertDecimal(t, "1030.301", l.Loan())
	assert.Equal(t, "1030.30", l.Loan().StringFixed(2))
}

func TestAccrueInterestZeroRate(t *testing.T) {
	l, err := Open(d("1000"), decimal.Zero)
	require.NoError(t, err)

	assertDecimal(t, "1000", l.AccrueInterest().Loan())
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
		err      error
	}{
		{"positive", "250.75", "250.75", nil},
		{"zero", "0", "0", ErrNonPositive},
		{"negative", "-5", "0", ErrNonPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, err := Deposit(d(tt.amount))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			assertDecimal(t, tt.expected, delta)
		})
	}
}

func TestLedgerDepositSoftFailure(t *testing.T) {
	l, err := Open(d("1000"), DefaultDailyRate())
	require.NoError(t, err)

	l, delta, err := l.Deposit(d("-5"))
	assert.ErrorIs(t, err, ErrNonPositive)
	assertDecimal(t, "0", delta)
	assertDecimal(t, "1000", l.Balance())

	l, _, err = l.Deposit(d("20"))
	require.NoError(t, err)
	assertDecimal(t, "1020", l.Balance())
	assertDecimal(t, "1000", l.Loan())
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name     string
		balance  string
		amount   string
		expected string
		err      error
	}{
		{"within balance", "100", "40", "40", nil},
		{"whole balance", "100", "100", "100", nil},
		{"over balance", "100", "100.01", "0", ErrInsufficientFunds},
		{"zero", "100", "0", "0", ErrNonPositive},
		{"negative", "100", "-1", "0", ErrNonPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, err := Withdraw(d(tt.balance), d(tt.amount))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			assertDecimal(t, tt.expected, delta)
		})
	}
}

func TestLedgerWithdraw(t *testing.T) {
	l, err := Open(d("1000"), DefaultDailyRate())
	require.NoError(t, err)

	l, _, err = l.Withdraw(d("300"))
	require.NoError(t, err)
	assertDecimal(t, "700", l.Balance())
	assertDecimal(t, "1000", l.Loan())

	l, _, err = l.Withdraw(d("701"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assertDecimal(t, "700", l.Balance())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{"plain", " 12.50 \n", "12.5", false},
		{"negative parses", "-3", "-3", false},
		{"eight decimals", "0.00000001", "0.00000001", false},
		{"largest integer part", "999999999999999.99", "999999999999999.99", false},
		{"small exponent", "1e-8", "0.00000001", false},
		{"empty", "", "", true},
		{"letters", "abc", "", true},
		{"thousands separator", "1,000", "", true},
		{"double dot", "12..5", "", true},
		{"too many decimals", "0.000000001", "", true},
		{"too many integer digits", "1000000000000000", "", true},
		{"tiny exponent", "1e-30000000", "", true},
		{"huge exponent", "1e30000000", "", true},
		{"overlong input", strings.Repeat("1", 100), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ParseAmount(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("ParseAmount(%q) error = %v, expected ErrInvalidAmount", tt.raw, err)
				}
				return
			}
			require.NoError(t, err)
			assertDecimal(t, tt.expected, amount)
		})
	}
}

func TestChooseLoan(t *testing.T) {
	tests := []struct {
		selection int
		expected  string
	}{
		{1, "1000"},
		{2, "5000"},
		{3, "10000"},
	}

	for _, tt := range tests {
		amount, err := ChooseLoan(tt.selection)
		require.NoError(t, err)
		assertDecimal(t, tt.expected, amount)
	}

	for _, selection := range []int{0, 4, -1, 100} {
		_, err := ChooseLoan(selection)
		assert.ErrorIs(t, err, ErrUnknownLoanOption, "selection %d", selection)
	}
}

func TestDefaultLoanOptionsAreFresh(t *testing.T) {
	opts := DefaultLoanOptions()
	opts[0] = d("1")

	amount, err := ChooseLoan(1)
	require.NoError(t, err)
	assertDecimal(t, "1000", amount)
	assertDecimal(t, "1000", DefaultLoanOptions()[0])
}

func TestCustomLoanOptions(t *testing.T) {
	opts := LoanOptions{d("250")}

	amount, err := opts.Choose(1)
	require.NoError(t, err)
	assertDecimal(t, "250", amount)

	_, err = opts.Choose(2)
	assert.ErrorIs(t, err, ErrUnknownLoanOption)
}
