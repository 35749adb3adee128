// Package scenario loads the simulation parameters of a session from YAML.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pigeonworks-llc/forbidden-valley/pkg/ledger"
)

const (
	// DefaultWarmupDays is the number of days simulated before the menu opens.
	DefaultWarmupDays = 5
	// DefaultCurrency is the currency used in exports.
	DefaultCurrency = "USD"

	maxLoanOptions = 9
)

// ErrInvalidScenario is returned when a scenario fails validation.
var ErrInvalidScenario = errors.New("invalid scenario")

// Accounts names the Beancount accounts used when exporting a session.
type Accounts struct {
	Cash        string `yaml:"cash"`
	Loan        string `yaml:"loan"`
	Interest    string `yaml:"interest"`
	Deposits    string `yaml:"deposits"`
	Withdrawals string `yaml:"withdrawals"`
}

// DefaultAccounts returns the stock export accounts.
func DefaultAccounts() Accounts {
	return Accounts{
		Cash:        "Assets:Cash",
		Loan:        "Liabilities:Loan",
		Interest:    "Expenses:Interest",
		Deposits:    "Income:Deposits",
		Withdrawals: "Expenses:Withdrawals",
	}
}

// file is the on-disk layout. Amounts are strings so they reach decimal
// parsing without a float round trip.
type file struct {
	DailyRate   string   `yaml:"daily_rate"`
	WarmupDays  *int     `yaml:"warmup_days"`
	Currency    string   `yaml:"currency"`
	LoanOptions []string `yaml:"loan_options"`
	Accounts    Accounts `yaml:"accounts"`
}

// Scenario describes one simulation setup.
type Scenario struct {
	DailyRate   decimal.Decimal
	WarmupDays  int
	Currency    string
	LoanOptions ledger.LoanOptions
	Accounts    Accounts
}

// Default returns the stock scenario: 1% daily interest, five warm-up days
// and loans of 1000, 5000 or 10000.
func Default() Scenario {
	return Scenario{
		DailyRate:   ledger.DefaultDailyRate(),
		WarmupDays:  DefaultWarmupDays,
		Currency:    DefaultCurrency,
		LoanOptions: ledger.DefaultLoanOptions(),
		Accounts:    DefaultAccounts(),
	}
}

// Load reads a scenario from a YAML file.
// An empty path returns the default scenario.
func Load(path string) (Scenario, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a scenario from YAML. Fields left out keep their defaults.
func Parse(data []byte) (Scenario, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Scenario{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	s := Default()

	if f.DailyRate != "" {
		rate, err := ledger.ParseAmount(f.DailyRate)
		if err != nil {
			return Scenario{}, fmt.Errorf("%w: daily_rate %q", ErrInvalidScenario, f.DailyRate)
		}
		s.DailyRate = rate
	}
	if f.WarmupDays != nil {
		s.WarmupDays = *f.WarmupDays
	}
	if f.Currency != "" {
		s.Currency = f.Currency
	}
	if len(f.LoanOptions) > 0 {
		s.LoanOptions = make(ledger.LoanOptions, 0, len(f.LoanOptions))
		for _, raw := range f.LoanOptions {
			amount, err := ledger.ParseAmount(raw)
			if err != nil {
				return Scenario{}, fmt.Errorf("%w: loan option %q", ErrInvalidScenario, raw)
			}
			s.LoanOptions = append(s.LoanOptions, amount)
		}
	}
	s.Accounts = mergeAccounts(s.Accounts, f.Accounts)

	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Validate checks the scenario invariants.
func (s Scenario) Validate() error {
	if s.DailyRate.IsNegative() {
		return fmt.Errorf("%w: daily_rate must not be negative", ErrInvalidScenario)
	}
	if s.WarmupDays < 0 {
		return fmt.Errorf("%w: warmup_days must not be negative", ErrInvalidScenario)
	}
	if len(s.LoanOptions) == 0 || len(s.LoanOptions) > maxLoanOptions {
		return fmt.Errorf("%w: need 1 to %d loan options, got %d", ErrInvalidScenario, maxLoanOptions, len(s.LoanOptions))
	}
	for i, amount := range s.LoanOptions {
		if !amount.IsPositive() {
			return fmt.Errorf("%w: loan option %d must be positive", ErrInvalidScenario, i+1)
		}
	}
	return nil
}

// mergeAccounts fills every empty account in override from base.
func mergeAccounts(base, override Accounts) Accounts {
	pick := func(b, o string) string {
		if o != "" {
			return o
		}
		return b
	}
	return Accounts{
		Cash:        pick(base.Cash, override.Cash),
		Loan:        pick(base.Loan, override.Loan),
		Interest:    pick(base.Interest, override.Interest),
		Deposits:    pick(base.Deposits, override.Deposits),
		Withdrawals: pick(base.Withdrawals, override.Withdrawals),
	}
}
