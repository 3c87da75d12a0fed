package models

import "time"

// Product maps a row of the products table.
// Price and stock are integers; the POS has no fractional currency subunits.
type Product struct {
	ProductID  string     `json:"productID"`
	Name       string     `json:"name"`
	Price      int64      `json:"price"`
	Stock      int64      `json:"stock"` // Never negative, enforced by the transaction engine
	CategoryID string     `json:"categoryID"`
	ImageURL   *string    `json:"imageUrl"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt"`
}
