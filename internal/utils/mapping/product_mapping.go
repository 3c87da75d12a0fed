package mapping

import (
	"github.com/kasirkita/pos_backend/internal/core/domain"
	"github.com/kasirkita/pos_backend/internal/models"
)

// ToModelProduct converts a domain.Product to its database model.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:  d.ProductID,
		Name:       d.Name,
		Price:      d.Price,
		Stock:      d.Stock,
		CategoryID: d.CategoryID,
		ImageURL:   d.ImageURL,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		DeletedAt:  d.DeletedAt,
	}
}

// ToDomainProduct converts a database model to a domain.Product.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:  m.ProductID,
		Name:       m.Name,
		Price:      m.Price,
		Stock:      m.Stock,
		CategoryID: m.CategoryID,
		ImageURL:   m.ImageURL,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		DeletedAt:  m.DeletedAt,
	}
}

// ToDomainProductSlice converts a slice of product models to domain products.
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	products := make([]domain.Product, len(ms))
	for i, m := range ms {
		products[i] = ToDomainProduct(m)
	}
	return products
}

// ToDomainStockHistory converts a database model to a domain.StockHistory.
func ToDomainStockHistory(m models.StockHistory) domain.StockHistory {
	return domain.StockHistory{
		StockHistoryID: m.StockHistoryID,
		ProductID:      m.ProductID,
		Change:         m.Change,
		Reason:         m.Reason,
		CreatedAt:      m.CreatedAt,
		ProductName:    m.ProductName,
	}
}

// ToDomainStockHistorySlice converts a slice of stock history models to domain entries.
func ToDomainStockHistorySlice(ms []models.StockHistory) []domain.StockHistory {
	histories := make([]domain.StockHistory, len(ms))
	for i, m := range ms {
		histories[i] = ToDomainStockHistory(m)
	}
	return histories
}
