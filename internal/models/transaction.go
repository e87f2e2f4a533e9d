package models

import "time"

// Transaction is the database row shape of a transaction header.
type Transaction struct {
	TransactionID   string    `db:"transaction_id"`
	Description     string    `db:"description"`
	TransactionDate time.Time `db:"transaction_date"`
	CurrencyCode    string    `db:"currency_code"`
	Reference       string    `db:"reference"`
	Status          string    `db:"status"`
	AuditFields
}
