package dto

import (
	"time"

	"github.com/kasirkita/pos_backend/internal/core/domain"
)

// OpenShiftRequest is the payload for opening a cash drawer shift.
type OpenShiftRequest struct {
	CashStart int64 `json:"cashStart" binding:"gte=0"`
}

// CloseShiftRequest is the payload for closing the active shift.
type CloseShiftRequest struct {
	CashEnd int64 `json:"cashEnd" binding:"gte=0"`
}

// ShiftResponse defines the data returned for a shift. The close-time fields
// stay null while the shift is open.
type ShiftResponse struct {
	ShiftID           string     `json:"shiftID"`
	CashierID         string     `json:"cashierID"`
	CashierName       string     `json:"cashierName,omitempty"`
	CashStart         int64      `json:"cashStart"`
	OpenedAt          time.Time  `json:"openedAt"`
	CashEnd           *int64     `json:"cashEnd"`
	ExpectedCash      *int64     `json:"expectedCash"`
	Difference        *int64     `json:"difference"`
	IsMismatch        bool       `json:"isMismatch"`
	TotalTransactions *int64     `json:"totalTransactions"`
	ClosedAt          *time.Time `json:"closedAt"`
}

// ListShiftsParams holds the query parameters for the admin shift listing.
type ListShiftsParams struct {
	CashierID  string     `form:"cashierId"`
	StartDate  *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"endDate" time_format:"2006-01-02"`
	IsMismatch *bool      `form:"isMismatch"`
	SortBy     string     `form:"sortBy" binding:"omitempty,oneof=openedAt closedAt totalTransactions"`
	SortOrder  string     `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Page       int        `form:"page,default=1" binding:"omitempty,gte=1"`
	PageSize   int        `form:"pageSize,default=20" binding:"omitempty,gte=1,lte=100"`
}

// ListShiftsResponse is a paginated page of shifts.
type ListShiftsResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
}

// ShiftDetailParams holds the query parameters for the shift detail view.
type ShiftDetailParams struct {
	Status      string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELED"`
	PaymentType string `form:"paymentType" binding:"omitempty,oneof=CASH DEBIT"`
	Page        int    `form:"page,default=1" binding:"omitempty,gte=1"`
	PageSize    int    `form:"pageSize,default=10" binding:"omitempty,gte=1,lte=100"`
}

// ShiftDetailResponse is a shift header plus a filtered page of its transactions.
type ShiftDetailResponse struct {
	Shift        ShiftResponse         `json:"shift"`
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
}

// ToShiftResponse converts a domain.Shift to its response DTO.
func ToShiftResponse(s *domain.Shift) ShiftResponse {
	return ShiftResponse{
		ShiftID:           s.ShiftID,
		CashierID:         s.CashierID,
		CashierName:       s.CashierName,
		CashStart:         s.CashStart,
		OpenedAt:          s.OpenedAt,
		CashEnd:           s.CashEnd,
		ExpectedCash:      s.ExpectedCash,
		Difference:        s.Difference,
		IsMismatch:        s.IsMismatch,
		TotalTransactions: s.TotalTransactions,
		ClosedAt:          s.ClosedAt,
	}
}

// ToShiftResponses converts a slice of domain shifts to response DTOs.
func ToShiftResponses(shifts []domain.Shift) []ShiftResponse {
	resp := make([]ShiftResponse, len(shifts))
	for i := range shifts {
		resp[i] = ToShiftResponse(&shifts[i])
	}
	return resp
}
