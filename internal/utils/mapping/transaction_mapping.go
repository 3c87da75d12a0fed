package mapping

import (
	"github.com/kasirkita/pos_backend/internal/core/domain"
	"github.com/kasirkita/pos_backend/internal/models"
)

// ToModelTransaction converts a domain.Transaction to its database model.
// Items are mapped separately because they live in their own table.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		ShiftID:       d.ShiftID,
		CashierID:     d.CashierID,
		Status:        models.TransactionStatus(d.Status),
		TotalAmount:   d.TotalAmount,
		PaidAmount:    d.PaidAmount,
		ChangeAmount:  d.ChangeAmount,
		PaymentType:   models.PaymentType(d.PaymentType),
		DebitCardNo:   d.DebitCardNo,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a database model to a domain.Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		ShiftID:       m.ShiftID,
		CashierID:     m.CashierID,
		Status:        domain.TransactionStatus(m.Status),
		TotalAmount:   m.TotalAmount,
		PaidAmount:    m.PaidAmount,
		ChangeAmount:  m.ChangeAmount,
		PaymentType:   domain.PaymentType(m.PaymentType),
		DebitCardNo:   m.DebitCardNo,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of transaction models to domain transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	transactions := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		transactions[i] = ToDomainTransaction(m)
	}
	return transactions
}

// ToModelTransactionItem converts a domain.TransactionItem to its database model.
func ToModelTransactionItem(d domain.TransactionItem) models.TransactionItem {
	return models.TransactionItem{
		TransactionItemID: d.TransactionItemID,
		TransactionID:     d.TransactionID,
		ProductID:         d.ProductID,
		Quantity:          d.Quantity,
		Price:             d.Price,
	}
}

// ToDomainTransactionItem converts a database model to a domain.TransactionItem.
func ToDomainTransactionItem(m models.TransactionItem) domain.TransactionItem {
	return domain.TransactionItem{
		TransactionItemID: m.TransactionItemID,
		TransactionID:     m.TransactionID,
		ProductID:         m.ProductID,
		Quantity:          m.Quantity,
		Price:             m.Price,
		ProductName:       m.ProductName,
	}
}

// ToDomainTransactionItemSlice converts a slice of item models to domain items.
func ToDomainTransactionItemSlice(ms []models.TransactionItem) []domain.TransactionItem {
	items := make([]domain.TransactionItem, len(ms))
	for i, m := range ms {
		items[i] = ToDomainTransactionItem(m)
	}
	return items
}
