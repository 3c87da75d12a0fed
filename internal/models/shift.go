package models

import "time"

// Shift maps a row of the shifts table.
// The nullable columns are written exactly once, when the shift closes.
type Shift struct {
	ShiftID           string     `json:"shiftID"`
	CashierID         string     `json:"cashierID"`
	CashStart         int64      `json:"cashStart"`
	OpenedAt          time.Time  `json:"openedAt"`
	CashEnd           *int64     `json:"cashEnd"`
	ExpectedCash      *int64     `json:"expectedCash"`
	Difference        *int64     `json:"difference"` // cashEnd - expectedCash
	IsMismatch        bool       `json:"isMismatch"`
	TotalTransactions *int64     `json:"totalTransactions"`
	ClosedAt          *time.Time `json:"closedAt"` // NULL means currently open

	CashierName string `json:"cashierName"` // Joined for admin listings
}
