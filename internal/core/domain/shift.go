package domain

import "time"

// Shift is a cashier's single cash-drawer session from open to close.
// All close-time fields stay nil while the shift is open and are written
// exactly once, atomically, when the shift closes.
type Shift struct {
	ShiftID   string    `json:"shiftID"`
	CashierID string    `json:"cashierID"`
	CashStart int64     `json:"cashStart"`
	OpenedAt  time.Time `json:"openedAt"`

	CashEnd           *int64     `json:"cashEnd,omitempty"`
	ExpectedCash      *int64     `json:"expectedCash,omitempty"`
	Difference        *int64     `json:"difference,omitempty"`
	IsMismatch        bool       `json:"isMismatch"`
	TotalTransactions *int64     `json:"totalTransactions,omitempty"`
	ClosedAt          *time.Time `json:"closedAt,omitempty"`

	// CashierName is populated by admin listing queries for display only.
	CashierName string `json:"cashierName,omitempty"`
}

// IsOpen reports whether the shift is still open.
func (s Shift) IsOpen() bool {
	return s.ClosedAt == nil
}

// ShiftFilter narrows admin shift listing queries.
type ShiftFilter struct {
	CashierID  string
	StartDate  *time.Time
	EndDate    *time.Time
	IsMismatch *bool
	SortBy     string // "openedAt", "closedAt" or "totalTransactions"
	SortOrder  string // "asc" or "desc"
	Page       int
	PageSize   int
}
