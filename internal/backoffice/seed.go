package backoffice

import (
	"fmt"

	"github.com/ashendes/jewelry-admin/internal/models"
)

// Seed fills s with a small jewelry catalog, a few customers and accounts,
// and one order in every status
func Seed(s *Store) error {
	categories := map[string]models.CreateCategoryRequest{
		"rings":     {CategoryName: "Nhẫn", Description: "Nhẫn vàng, bạc và kim cương", IsActive: true},
		"necklaces": {CategoryName: "Dây chuyền", Description: "Dây chuyền và mặt dây", IsActive: true},
		"earrings":  {CategoryName: "Bông tai", Description: "Bông tai các loại", IsActive: true},
		"bracelets": {CategoryName: "Lắc tay", Description: "Lắc và vòng tay", IsActive: false},
	}
	categoryIDs := make(map[string]string, len(categories))
	for _, key := range []string{"rings", "necklaces", "earrings", "bracelets"} {
		c, err := s.CreateCategory(categories[key])
		if err != nil {
			return fmt.Errorf("seed category %s: %w", key, err)
		}
		categoryIDs[key] = c.ID
	}

	products := []struct {
		category string
		req      models.CreateProductRequest
	}{
		{"rings", models.CreateProductRequest{ProductName: "Nhẫn vàng 18K đính đá", Description: "Nhẫn nữ vàng 18K", Price: models.NewMoney(4500000), Weight: 2.5, StockQuantity: 8, Material: "Vàng 18K", Images: []string{"https://cdn.example.com/rings/1.jpg"}, IsFeatured: true}},
		{"rings", models.CreateProductRequest{ProductName: "Nhẫn bạc trơn", Description: "Nhẫn bạc 925", Price: models.NewMoney(350000), Weight: 3, StockQuantity: 120, Material: "Bạc 925", Images: []string{"https://cdn.example.com/rings/2.jpg"}}},
		{"necklaces", models.CreateProductRequest{ProductName: "Dây chuyền vàng trắng", Description: "Dây chuyền vàng trắng 14K", Price: models.NewMoney(7200000), Weight: 5.2, StockQuantity: 25, Material: "Vàng trắng 14K", Images: []string{"https://cdn.example.com/necklaces/1.jpg"}, IsFeatured: true}},
		{"earrings", models.CreateProductRequest{ProductName: "Bông tai ngọc trai", Description: "Bông tai ngọc trai nước ngọt", Price: models.NewMoney(1500000), Weight: 1.8, StockQuantity: 40, Material: "Ngọc trai", Images: []string{"https://cdn.example.com/earrings/1.jpg"}}},
		{"bracelets", models.CreateProductRequest{ProductName: "Lắc tay bạc", Description: "Lắc tay bạc 925 mắt xích", Price: models.NewMoney(890000), Weight: 6, StockQuantity: 0, Material: "Bạc 925", Images: []string{"https://cdn.example.com/bracelets/1.jpg"}}},
	}
	var catalog []models.Product
	for _, p := range products {
		p.req.CategoryID = categoryIDs[p.category]
		created, err := s.CreateProduct(p.req)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.req.ProductName, err)
		}
		catalog = append(catalog, created)
	}

	customers := []models.CreateCustomerRequest{
		{FullName: "Nguyễn Văn An", Email: "an.nguyen@example.com", Phone: "0901234567", Address: "12 Lê Lợi, Quận 1, TP.HCM", Password: "matkhau123"},
		{FullName: "Trần Thị Bình", Email: "binh.tran@example.com", Phone: "0912345678", Address: "45 Trần Phú, Hà Đông, Hà Nội", Password: "matkhau123"},
		{FullName: "Lê Minh Châu", Email: "chau.le@example.com", Phone: "0987654321", Address: "8 Nguyễn Huệ, Huế", Password: "matkhau123"},
	}
	var buyers []models.Customer
	for _, req := range customers {
		c, err := s.CreateCustomer(req)
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", req.Email, err)
		}
		buyers = append(buyers, c)
	}

	admins := []models.CreateAdminRequest{
		{Username: "admin", Password: "admin123", FullName: "Quản trị hệ thống", Email: "admin@example.com", Role: models.AdminRoleSuperAdmin},
		{Username: "staff01", Password: "staff123", FullName: "Phạm Thu Hà", Email: "ha.pham@example.com", Role: models.AdminRoleStaff},
	}
	for _, req := range admins {
		if _, err := s.CreateAdmin(req); err != nil {
			return fmt.Errorf("seed admin %s: %w", req.Username, err)
		}
	}

	// One order per status, each reached through legal transitions only
	paths := [][]models.OrderStatus{
		nil,
		{models.OrderStatusConfirmed},
		{models.OrderStatusConfirmed, models.OrderStatusShipping},
		{models.OrderStatusConfirmed, models.OrderStatusShipping, models.OrderStatusSuccess},
		{models.OrderStatusFailed},
	}
	for i, path := range paths {
		buyer := buyers[i%len(buyers)]
		product := catalog[i%len(catalog)]
		items := []models.OrderItem{{
			ProductID:   product.ID,
			ProductName: product.ProductName,
			Quantity:    1 + i%2,
			Price:       product.Price,
		}}
		o, err := s.PlaceOrder(buyer.ID, items, models.NewMoney(30000), models.NewMoney(0), buyer.Address)
		if err != nil {
			return fmt.Errorf("seed order: %w", err)
		}
		for _, status := range path {
			if _, err := s.UpdateOrderStatus(o.ID, status); err != nil {
				return fmt.Errorf("seed order %s: %w", o.OrderCode, err)
			}
		}
	}
	return nil
}
