package views

import (
	"fmt"
	"net/http"

	"github.com/ashendes/jewelry-admin/internal/models"
	"github.com/ashendes/jewelry-admin/internal/resources"
)

// Screens of the catalog and account lists
var (
	ProductsScreen   = Screen{Entity: "products", Noun: "sản phẩm", Title: "Quản lý sản phẩm", Empty: "Không có sản phẩm nào", Creates: true}
	CategoriesScreen = Screen{Entity: "categories", Noun: "danh mục", Title: "Quản lý danh mục", Empty: "Không có danh mục nào", Creates: true}
	CustomersScreen  = Screen{Entity: "customers", Noun: "khách hàng", Title: "Danh sách khách hàng", Empty: "Không có khách hàng nào", Creates: true}
	AdminsScreen     = Screen{Entity: "admins", Noun: "quản trị viên", Title: "Danh sách quản trị viên", Empty: "Không có quản trị viên nào", Creates: true}
)

// CrudActions builds the view/edit/delete menu shared by the catalog tables.
// detail is false for entities without a detail page.
func CrudActions(s Screen, id, label string, detail, busy bool) []Action {
	var actions []Action
	if detail {
		actions = append(actions, Action{Kind: ActionLink, Label: "Xem chi tiết", Href: DetailPath(s.Entity, id), Icon: "eye"})
	}
	return append(actions,
		Action{Kind: ActionLink, Label: "Chỉnh sửa", Href: EditPath(s.Entity, id), Icon: "pencil", Disabled: busy},
		Action{
			Kind:        ActionDialog,
			Label:       "Xóa",
			Href:        DeletePath(s.Entity, id),
			Method:      http.MethodPost,
			Icon:        "trash",
			Dialog:      DeleteDialog(s.Entity, s.Noun, id, label),
			Destructive: true,
			Disabled:    busy,
		},
	)
}

// ProductRow is one line of the product table
type ProductRow struct {
	ID            string   `json:"id"`
	ProductName   string   `json:"productName"`
	Image         string   `json:"image,omitempty"`
	Category      string   `json:"category"`
	Price         string   `json:"price"`
	Material      string   `json:"material"`
	Weight        string   `json:"weight"`
	StockQuantity int      `json:"stockQuantity"`
	Stock         Badge    `json:"stock"`
	InStock       bool     `json:"inStock"`
	Featured      bool     `json:"featured"`
	Actions       []Action `json:"actions"`
}

// NewProductRow renders one product
func NewProductRow(p models.Product, pending Pending) ProductRow {
	level := resources.StockLevelOf(p.StockQuantity)
	row := ProductRow{
		ID:            p.ID,
		ProductName:   p.ProductName,
		Category:      p.Category.CategoryName,
		Price:         resources.FormatCurrency(p.Price),
		Material:      p.Material,
		Weight:        fmt.Sprintf("%gg", p.Weight),
		StockQuantity: p.StockQuantity,
		Stock:         Badge{Text: fmt.Sprintf("%d", p.StockQuantity), Class: resources.StockColor(level)},
		InStock:       p.StockQuantity > 0,
		Featured:      p.IsFeatured,
		Actions:       CrudActions(ProductsScreen, p.ID, p.ProductName, true, pending != nil && pending(p.ID)),
	}
	if len(p.Images) > 0 {
		row.Image = p.Images[0]
	}
	return row
}

// ProductDetail is the product detail panel
type ProductDetail struct {
	ProductRow
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Views       int      `json:"views"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// NewProductDetail renders one product for its detail page
func NewProductDetail(p models.Product, pending Pending) ProductDetail {
	return ProductDetail{
		ProductRow:  NewProductRow(p, pending),
		Description: p.Description,
		Images:      p.Images,
		Views:       p.Views,
		CreatedAt:   resources.FormatDate(p.CreatedAt),
		UpdatedAt:   resources.FormatDate(p.UpdatedAt),
	}
}

// CategoryRow is one line of the category table
type CategoryRow struct {
	ID           string   `json:"id"`
	CategoryName string   `json:"categoryName"`
	Description  string   `json:"description"`
	Active       Badge    `json:"active"`
	CreatedAt    string   `json:"createdAt"`
	Actions      []Action `json:"actions"`
}

// ActiveBadge renders an active flag
func ActiveBadge(active bool) Badge {
	if active {
		return Badge{Text: "Hoạt động", Class: "bg-green-100 text-green-800"}
	}
	return Badge{Text: "Không hoạt động", Class: "bg-gray-100 text-gray-800"}
}

// NewCategoryRow renders one category. Categories have no detail page.
func NewCategoryRow(c models.Category, pending Pending) CategoryRow {
	return CategoryRow{
		ID:           c.ID,
		CategoryName: c.CategoryName,
		Description:  c.Description,
		Active:       ActiveBadge(c.IsActive),
		CreatedAt:    resources.FormatDay(c.CreatedAt),
		Actions:      CrudActions(CategoriesScreen, c.ID, c.CategoryName, false, pending != nil && pending(c.ID)),
	}
}

// CustomerRow is one line of the customer table
type CustomerRow struct {
	ID        string   `json:"id"`
	FullName  string   `json:"fullName"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	CreatedAt string   `json:"createdAt"`
	Actions   []Action `json:"actions"`
}

// NewCustomerRow renders one customer
func NewCustomerRow(c models.Customer, pending Pending) CustomerRow {
	return CustomerRow{
		ID:        c.ID,
		FullName:  c.FullName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: resources.FormatDay(c.CreatedAt),
		Actions:   CrudActions(CustomersScreen, c.ID, c.FullName, true, pending != nil && pending(c.ID)),
	}
}

// AdminRow is one line of the admin table
type AdminRow struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	FullName  string   `json:"fullName"`
	Email     string   `json:"email"`
	Role      Badge    `json:"role"`
	Active    Badge    `json:"active"`
	CreatedAt string   `json:"createdAt"`
	Actions   []Action `json:"actions"`
}

// RoleBadge renders an admin role
func RoleBadge(r models.AdminRole) Badge {
	switch r {
	case models.AdminRoleSuperAdmin:
		return Badge{Text: "Super Admin", Class: "bg-purple-100 text-purple-800"}
	case models.AdminRoleAdmin:
		return Badge{Text: "Admin", Class: "bg-blue-100 text-blue-800"}
	default:
		return Badge{Text: "Nhân viên", Class: "bg-gray-100 text-gray-800"}
	}
}

// NewAdminRow renders one admin account
func NewAdminRow(a models.Admin, pending Pending) AdminRow {
	return AdminRow{
		ID:        a.ID,
		Username:  a.Username,
		FullName:  a.FullName,
		Email:     a.Email,
		Role:      RoleBadge(a.Role),
		Active:    ActiveBadge(a.IsActive),
		CreatedAt: resources.FormatDay(a.CreatedAt),
		Actions:   CrudActions(AdminsScreen, a.ID, a.Username, true, pending != nil && pending(a.ID)),
	}
}
