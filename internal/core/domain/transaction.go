package domain

import "time"

// TransactionStatus is the lifecycle state of a sale.
// PENDING transitions exactly once to COMPLETED or CANCELED; both are terminal.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusCanceled  TransactionStatus = "CANCELED"
)

// IsTerminal reports whether no further transition is allowed from the status.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// PaymentType distinguishes physical-cash sales from debit card sales.
// Only CASH sales move money through the drawer and count toward the
// expected cash at shift close.
type PaymentType string

const (
	PaymentCash  PaymentType = "CASH"
	PaymentDebit PaymentType = "DEBIT"
)

// Transaction is one customer sale within a shift.
// TotalAmount is fixed at creation and PaymentType starts as CASH; payment
// details are finalized at completion and never touched afterwards.
// ChangeAmount is set only for cash payments.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	ShiftID       string            `json:"shiftID"`
	CashierID     string            `json:"cashierID"`
	Status        TransactionStatus `json:"status"`
	TotalAmount   int64             `json:"totalAmount"`
	PaidAmount    int64             `json:"paidAmount"`
	ChangeAmount  *int64            `json:"changeAmount,omitempty"`
	PaymentType   PaymentType       `json:"paymentType"`
	DebitCardNo   *string           `json:"debitCardNo,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`

	Items []TransactionItem `json:"items,omitempty"`
}

// CashRetained is the net cash this sale left in the drawer: paid minus
// change handed back. It is zero for non-cash or non-completed sales.
func (t Transaction) CashRetained() int64 {
	if t.Status != StatusCompleted || t.PaymentType != PaymentCash {
		return 0
	}
	change := int64(0)
	if t.ChangeAmount != nil {
		change = *t.ChangeAmount
	}
	return t.PaidAmount - change
}

// TransactionItem is one line of a sale. Price is the unit price snapshot
// captured at creation time; later catalog price edits never change it.
type TransactionItem struct {
	TransactionItemID string `json:"transactionItemID"`
	TransactionID     string `json:"transactionID"`
	ProductID         string `json:"productID"`
	Quantity          int64  `json:"quantity"`
	Price             int64  `json:"price"`

	// ProductName is populated by queries for display; it survives product
	// soft-deletes because items keep a weak reference to the product.
	ProductName string `json:"productName,omitempty"`
}

// TransactionFilter narrows transaction listing queries.
type TransactionFilter struct {
	CashierID     string
	Status        TransactionStatus
	PaymentType   PaymentType
	StartDate     *time.Time
	EndDate       *time.Time
	ShiftMismatch *bool
	SortBy        string // "totalAmount" or "createdAt"
	SortOrder     string // "asc" or "desc"
	Page          int
	PageSize      int
}
