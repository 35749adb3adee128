// Package beancount writes session exports as Beancount plain-text files.
package beancount

import "github.com/shopspring/decimal"

// Transaction represents a Beancount transaction.
type Transaction struct {
	Date      string            // YYYY-MM-DD
	Narration string            // Transaction description
	Tags      []string          // Tags (e.g., ["interest"])
	Metadata  map[string]string // Transaction metadata (e.g., {"sim_date": "2/30/24"})
	Postings  []Posting         // Transaction postings
}

// Posting represents a posting in a Beancount transaction.
type Posting struct {
	Account  string          // Account name (e.g., "Assets:Cash")
	Amount   decimal.Decimal // Positive for debit, negative for credit
	Currency string          // Currency code (e.g., "USD")
	Comment  string          // Posting comment (optional)
}
