package models

import "time"

// Category groups products
type Category struct {
	ID           string    `json:"id"`
	CategoryName string    `json:"categoryName"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateCategoryRequest represents the category creation form
type CreateCategoryRequest struct {
	CategoryName string `json:"categoryName" binding:"required,max=100"`
	Description  string `json:"description" binding:"max=500"`
	IsActive     bool   `json:"isActive"`
}

// UpdateCategoryRequest represents the category edit form
type UpdateCategoryRequest CreateCategoryRequest
