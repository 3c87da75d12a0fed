package mapping

import (
	"github.com/kasirkita/pos_backend/internal/core/domain"
	"github.com/kasirkita/pos_backend/internal/models"
)

// ToModelShift converts a domain.Shift to its database model.
func ToModelShift(d domain.Shift) models.Shift {
	return models.Shift{
		ShiftID:           d.ShiftID,
		CashierID:         d.CashierID,
		CashStart:         d.CashStart,
		OpenedAt:          d.OpenedAt,
		CashEnd:           d.CashEnd,
		ExpectedCash:      d.ExpectedCash,
		Difference:        d.Difference,
		IsMismatch:        d.IsMismatch,
		TotalTransactions: d.TotalTransactions,
		ClosedAt:          d.ClosedAt,
		CashierName:       d.CashierName,
	}
}

// ToDomainShift converts a database model to a domain.Shift.
func ToDomainShift(m models.Shift) domain.Shift {
	return domain.Shift{
		ShiftID:           m.ShiftID,
		CashierID:         m.CashierID,
		CashStart:         m.CashStart,
		OpenedAt:          m.OpenedAt,
		CashEnd:           m.CashEnd,
		ExpectedCash:      m.ExpectedCash,
		Difference:        m.Difference,
		IsMismatch:        m.IsMismatch,
		TotalTransactions: m.TotalTransactions,
		ClosedAt:          m.ClosedAt,
		CashierName:       m.CashierName,
	}
}

// ToDomainShiftSlice converts a slice of shift models to domain shifts.
func ToDomainShiftSlice(ms []models.Shift) []domain.Shift {
	shifts := make([]domain.Shift, len(ms))
	for i, m := range ms {
		shifts[i] = ToDomainShift(m)
	}
	return shifts
}
