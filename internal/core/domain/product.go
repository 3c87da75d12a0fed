package domain

import "time"

// Product is a catalog item. Price is in whole currency units (no subunits)
// and Stock is the on-hand quantity, only ever mutated together with a
// StockHistory entry.
type Product struct {
	ProductID  string     `json:"productID"`
	Name       string     `json:"name"`
	Price      int64      `json:"price"`
	Stock      int64      `json:"stock"`
	CategoryID string     `json:"categoryID"`
	ImageURL   *string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}

// IsDeleted reports whether the product has been soft-deleted.
// Deleted products are excluded from new transactions but remain
// referenceable from historical transaction items.
func (p Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// StockHistory is one append-only audit entry for a stock change.
// Change is signed: negative means consumed, positive means restored/added.
type StockHistory struct {
	StockHistoryID string    `json:"stockHistoryID"`
	ProductID      string    `json:"productID"`
	Change         int64     `json:"change"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"createdAt"`

	// ProductName is populated by listing queries for display only.
	ProductName string `json:"productName,omitempty"`
}

// StockAdjustment describes one stock delta to apply atomically together
// with its audit entry. One adjustment produces exactly one StockHistory row.
type StockAdjustment struct {
	ProductID string
	Change    int64
	Reason    string
}

// ProductFilter narrows product listing queries.
type ProductFilter struct {
	Search     string
	CategoryID string
	Sort       string // "price_asc", "price_desc" or "newest"
	Page       int
	PageSize   int
}

// StockHistoryFilter narrows stock history listing queries.
type StockHistoryFilter struct {
	ProductID string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}
