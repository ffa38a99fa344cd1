package resources

import "github.com/ashendes/jewelry-admin/internal/models"

// List filters understood by the back office API
const (
	FilterCategoryID = "categoryId"
	FilterMaterial   = "material"
	FilterIsActive   = "isActive"
	FilterStatus     = "status"
	FilterRole       = "role"
)

// Products is the product catalog endpoint
type Products = Endpoint[models.Product, models.CreateProductRequest, models.UpdateProductRequest]

// Categories is the category endpoint
type Categories = Endpoint[models.Category, models.CreateCategoryRequest, models.UpdateCategoryRequest]

// Customers is the customer endpoint
type Customers = Endpoint[models.Customer, models.CreateCustomerRequest, models.UpdateCustomerRequest]

// Admins is the back office account endpoint
type Admins = Endpoint[models.Admin, models.CreateAdminRequest, models.UpdateAdminRequest]

// NewProducts binds /products
func NewProducts(client Requester) *Products {
	return NewEndpoint[models.Product, models.CreateProductRequest, models.UpdateProductRequest](
		client, "products", FilterCategoryID, FilterMaterial)
}

// NewCategories binds /categories
func NewCategories(client Requester) *Categories {
	return NewEndpoint[models.Category, models.CreateCategoryRequest, models.UpdateCategoryRequest](
		client, "categories", FilterIsActive)
}

// NewCustomers binds /customers
func NewCustomers(client Requester) *Customers {
	return NewEndpoint[models.Customer, models.CreateCustomerRequest, models.UpdateCustomerRequest](
		client, "customers")
}

// NewAdmins binds /admins
func NewAdmins(client Requester) *Admins {
	return NewEndpoint[models.Admin, models.CreateAdminRequest, models.UpdateAdminRequest](
		client, "admins", FilterRole)
}

// StockLevel buckets a stock quantity for display
type StockLevel string

// StockLevel values
const (
	StockLow    StockLevel = "low"
	StockMedium StockLevel = "medium"
	StockHigh   StockLevel = "high"
)

// StockLevelOf returns the badge bucket for qty
func StockLevelOf(qty int) StockLevel {
	switch {
	case qty <= 10:
		return StockLow
	case qty <= 50:
		return StockMedium
	default:
		return StockHigh
	}
}

// StockColor returns the badge classes for a stock level
func StockColor(level StockLevel) string {
	switch level {
	case StockLow:
		return "bg-red-100 text-red-800"
	case StockMedium:
		return "bg-yellow-100 text-yellow-800"
	default:
		return "bg-green-100 text-green-800"
	}
}
