package models

import "time"

// TransactionType discriminates ledger rows. Debit entries are income,
// credit entries are expenses.
type TransactionType string

const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

// Transaction is one bookkeeping row. Total is derived from Quantity and
// UnitPrice on every write.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Quantity    float64         `json:"quantity"`
	UnitPrice   float64         `json:"unitPrice"`
	Total       float64         `json:"total"`
	Type        TransactionType `json:"type"`
}
