package models

import "time"

// StockHistory maps a row of the stock_histories audit table.
// Rows are append-only and never updated or deleted.
type StockHistory struct {
	StockHistoryID string    `json:"stockHistoryID"`
	ProductID      string    `json:"productID"` // Weak reference, survives product soft-delete
	Change         int64     `json:"change"`    // Signed delta
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"createdAt"`

	ProductName string `json:"productName"` // Joined for listings
}
