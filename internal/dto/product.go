package dto

import (
	"time"

	"github.com/kasirkita/pos_backend/internal/core/domain"
)

// CreateProductRequest defines the data needed to create a product.
type CreateProductRequest struct {
	Name       string  `json:"name" binding:"required"`
	Price      int64   `json:"price" binding:"required,gt=0"`
	Stock      int64   `json:"stock" binding:"gte=0"`
	CategoryID string  `json:"categoryID" binding:"required"`
	ImageURL   *string `json:"imageUrl"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Pointers distinguish omitted fields from zero values; a stock value
// different from the current one produces an audited stock adjustment.
type UpdateProductRequest struct {
	Name       *string `json:"name"`
	Price      *int64  `json:"price" binding:"omitempty,gt=0"`
	Stock      *int64  `json:"stock" binding:"omitempty,gte=0"`
	CategoryID *string `json:"categoryID"`
	ImageURL   *string `json:"imageUrl"`
}

// ListProductsParams holds the query parameters for product listing.
type ListProductsParams struct {
	Search     string `form:"search"`
	CategoryID string `form:"category"`
	Sort       string `form:"sort" binding:"omitempty,oneof=price_asc price_desc newest"`
	Page       int    `form:"page,default=1" binding:"omitempty,gte=1"`
	PageSize   int    `form:"limit,default=10" binding:"omitempty,gte=1,lte=100"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID  string    `json:"productID"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	Stock      int64     `json:"stock"`
	CategoryID string    `json:"categoryID"`
	ImageURL   *string   `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListProductsResponse is a paginated page of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// StockHistoryResponse defines the data returned for one stock audit entry.
type StockHistoryResponse struct {
	StockHistoryID string    `json:"stockHistoryID"`
	ProductID      string    `json:"productID"`
	ProductName    string    `json:"productName,omitempty"`
	Change         int64     `json:"change"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListStockHistoriesParams holds the query parameters for stock history listing.
type ListStockHistoriesParams struct {
	ProductID string     `form:"productId"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	Page      int        `form:"page,default=1" binding:"omitempty,gte=1"`
	PageSize  int        `form:"limit,default=20" binding:"omitempty,gte=1,lte=100"`
}

// ListStockHistoriesResponse is a paginated page of stock audit entries.
type ListStockHistoriesResponse struct {
	Histories []StockHistoryResponse `json:"histories"`
	Total     int64                  `json:"total"`
	Page      int                    `json:"page"`
}

// ToProductResponse converts a domain.Product to its response DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:  p.ProductID,
		Name:       p.Name,
		Price:      p.Price,
		Stock:      p.Stock,
		CategoryID: p.CategoryID,
		ImageURL:   p.ImageURL,
		CreatedAt:  p.CreatedAt,
	}
}

// ToProductResponses converts a slice of domain products to response DTOs.
func ToProductResponses(products []domain.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i := range products {
		resp[i] = ToProductResponse(&products[i])
	}
	return resp
}

// ToStockHistoryResponses converts domain stock histories to response DTOs.
func ToStockHistoryResponses(histories []domain.StockHistory) []StockHistoryResponse {
	resp := make([]StockHistoryResponse, len(histories))
	for i, h := range histories {
		resp[i] = StockHistoryResponse{
			StockHistoryID: h.StockHistoryID,
			ProductID:      h.ProductID,
			ProductName:    h.ProductName,
			Change:         h.Change,
			Reason:         h.Reason,
			CreatedAt:      h.CreatedAt,
		}
	}
	return resp
}
