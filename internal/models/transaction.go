package models

import "time"

// TransactionStatus mirrors the transaction_status enum in the database.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusCanceled  TransactionStatus = "CANCELED"
)

// PaymentType mirrors the payment_type enum in the database.
type PaymentType string

const (
	PaymentCash  PaymentType = "CASH"
	PaymentDebit PaymentType = "DEBIT"
)

// Transaction maps a row of the transactions table.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	ShiftID       string            `json:"shiftID"`
	CashierID     string            `json:"cashierID"`
	Status        TransactionStatus `json:"status"`
	TotalAmount   int64             `json:"totalAmount"` // Immutable after creation
	PaidAmount    int64             `json:"paidAmount"`  // 0 until completion
	ChangeAmount  *int64            `json:"changeAmount"`
	PaymentType   PaymentType       `json:"paymentType"`
	DebitCardNo   *string           `json:"debitCardNo"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// TransactionItem maps a row of the transaction_items table.
// Price is the unit price snapshot at sale time.
type TransactionItem struct {
	TransactionItemID string `json:"transactionItemID"`
	TransactionID     string `json:"transactionID"`
	ProductID         string `json:"productID"`
	Quantity          int64  `json:"quantity"`
	Price             int64  `json:"price"`

	ProductName string `json:"productName"` // Joined for display
}
