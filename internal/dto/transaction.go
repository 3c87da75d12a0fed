package dto

import (
	"time"

	"github.com/kasirkita/pos_backend/internal/core/domain"
)

// CreateTransactionItem is one requested line of a new sale.
type CreateTransactionItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateTransactionRequest is the payload for ringing up a new sale.
type CreateTransactionRequest struct {
	Items []CreateTransactionItem `json:"items" binding:"required,min=1,dive"`
}

// CompleteTransactionRequest is the payload for finalizing a pending sale.
// PaidAmount is required for CASH, DebitCardNo for DEBIT.
type CompleteTransactionRequest struct {
	PaymentType domain.PaymentType `json:"paymentType" binding:"required,oneof=CASH DEBIT"`
	PaidAmount  *int64             `json:"paidAmount" binding:"omitempty,gte=0"`
	DebitCardNo *string            `json:"debitCardNo"`
}

// TransactionItemResponse defines the data returned for one sale line.
type TransactionItemResponse struct {
	TransactionItemID string `json:"transactionItemID"`
	ProductID         string `json:"productID"`
	ProductName       string `json:"productName,omitempty"`
	Quantity          int64  `json:"quantity"`
	Price             int64  `json:"price"`
}

// TransactionResponse defines the data returned for a sale.
type TransactionResponse struct {
	TransactionID string                    `json:"transactionID"`
	ShiftID       string                    `json:"shiftID"`
	CashierID     string                    `json:"cashierID"`
	Status        domain.TransactionStatus  `json:"status"`
	TotalAmount   int64                     `json:"totalAmount"`
	PaidAmount    int64                     `json:"paidAmount"`
	ChangeAmount  *int64                    `json:"changeAmount"`
	PaymentType   domain.PaymentType        `json:"paymentType"`
	DebitCardNo   *string                   `json:"debitCardNo,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
	Items         []TransactionItemResponse `json:"items"`
}

// ActiveShiftTransactionsResponse is the cashier's current shift together
// with every transaction rung up on it.
type ActiveShiftTransactionsResponse struct {
	Shift        ShiftResponse         `json:"shift"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ListTransactionsParams holds the query parameters for the admin transaction listing.
type ListTransactionsParams struct {
	CashierID   string     `form:"cashierId"`
	PaymentType string     `form:"paymentType" binding:"omitempty,oneof=CASH DEBIT"`
	StartDate   *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate     *time.Time `form:"endDate" time_format:"2006-01-02"`
	IsMismatch  *bool      `form:"isMismatch"`
	SortBy      string     `form:"sortBy" binding:"omitempty,oneof=totalAmount createdAt"`
	SortOrder   string     `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Page        int        `form:"page,default=1" binding:"omitempty,gte=1"`
	PageSize    int        `form:"pageSize,default=20" binding:"omitempty,gte=1,lte=100"`
}

// ToTransactionResponse converts a domain.Transaction (with items) to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, len(t.Items))
	for i, item := range t.Items {
		items[i] = TransactionItemResponse{
			TransactionItemID: item.TransactionItemID,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			Price:             item.Price,
		}
	}
	return TransactionResponse{
		TransactionID: t.TransactionID,
		ShiftID:       t.ShiftID,
		CashierID:     t.CashierID,
		Status:        t.Status,
		TotalAmount:   t.TotalAmount,
		PaidAmount:    t.PaidAmount,
		ChangeAmount:  t.ChangeAmount,
		PaymentType:   t.PaymentType,
		DebitCardNo:   t.DebitCardNo,
		CreatedAt:     t.CreatedAt,
		Items:         items,
	}
}

// ToTransactionResponses converts a slice of domain transactions to response DTOs.
func ToTransactionResponses(transactions []domain.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		resp[i] = ToTransactionResponse(&transactions[i])
	}
	return resp
}
