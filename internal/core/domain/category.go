package domain

import "time"

// Category groups products for the catalog.
type Category struct {
	CategoryID string     `json:"categoryID"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}
