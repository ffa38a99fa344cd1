package models

import "time"

// CategoryRef is the category embedded in a product
type CategoryRef struct {
	ID           string `json:"id"`
	CategoryName string `json:"categoryName"`
}

// Product represents a piece of jewelry in the catalog
type Product struct {
	ID            string      `json:"id"`
	ProductName   string      `json:"productName"`
	Description   string      `json:"description"`
	Price         Money       `json:"price"`
	Weight        float64     `json:"weight"`
	StockQuantity int         `json:"stockQuantity"`
	Material      string      `json:"material"`
	Images        []string    `json:"images"`
	Category      CategoryRef `json:"category"`
	IsFeatured    bool        `json:"isFeatured"`
	Views         int         `json:"views"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// CreateProductRequest represents the product creation form
type CreateProductRequest struct {
	ProductName   string   `json:"productName" binding:"required,max=200"`
	Description   string   `json:"description" binding:"required"`
	Price         Money    `json:"price" binding:"gt=0"`
	Weight        float64  `json:"weight" binding:"gt=0"`
	StockQuantity int      `json:"stockQuantity" binding:"gte=0"`
	Material      string   `json:"material" binding:"required"`
	Images        []string `json:"images" binding:"required,min=1,dive,url"`
	CategoryID    string   `json:"categoryId" binding:"required"`
	IsFeatured    bool     `json:"isFeatured"`
}

// UpdateProductRequest represents the product edit form
type UpdateProductRequest CreateProductRequest
