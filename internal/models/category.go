package models

import "time"

// Category maps a row of the categories table.
type Category struct {
	CategoryID string     `json:"categoryID"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt"`
}
