// Package backoffice is an in-memory implementation of the back office REST
// API the console talks to. It exists for local development and integration
// tests and enforces the same rules a production API would: order status
// transitions, unique accounts and category references.
package backoffice

import (
	"fmt"
	"sync"
	"time"

	"github.com/ashendes/jewelry-admin/internal/metrics"
	"github.com/ashendes/jewelry-admin/internal/models"
	"github.com/ashendes/jewelry-admin/internal/resources"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Messages returned by the API
const (
	MsgProductNotFound  = "Sản phẩm không tồn tại"
	MsgCategoryNotFound = "Danh mục không tồn tại"
	MsgCustomerNotFound = "Khách hàng không tồn tại"
	MsgAdminNotFound    = "Quản trị viên không tồn tại"
	MsgOrderNotFound    = "Đơn hàng không tồn tại"
	MsgInvalidStatus    = "Trạng thái đơn hàng không hợp lệ"
	MsgCannotCancel     = "Không thể hủy đơn hàng đã hoàn thành hoặc đã hủy"
	MsgCategoryInUse    = "Không thể xóa danh mục đang có sản phẩm"
	MsgEmailTaken       = "Email đã được sử dụng"
	MsgUsernameTaken    = "Tên đăng nhập đã tồn tại"
)

type customerRecord struct {
	models.Customer
	passwordHash []byte
}

type adminRecord struct {
	models.Admin
	passwordHash []byte
}

// Store holds every entity of the back office
type Store struct {
	mu         sync.RWMutex
	products   *collection[models.Product]
	categories *collection[models.Category]
	customers  *collection[customerRecord]
	admins     *collection[adminRecord]
	orders     *collection[models.Order]
	orderSeq   int
	now        func() time.Time
	hashCost   int
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock replaces time.Now
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithHashCost sets the bcrypt cost used for passwords
func WithHashCost(cost int) StoreOption {
	return func(s *Store) { s.hashCost = cost }
}

// NewStore creates an empty store
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		products:   newCollection[models.Product](),
		categories: newCollection[models.Category](),
		customers:  newCollection[customerRecord](),
		admins:     newCollection[adminRecord](),
		orders:     newCollection[models.Order](),
		now:        time.Now,
		hashCost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newID() string {
	return uuid.New().String()
}

// ListProducts returns one page of products matching params
func (s *Store) ListProducts(params models.ListParams) models.Page[models.Product] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category := params.Filters[resources.FilterCategoryID]
	material := params.Filters[resources.FilterMaterial]
	items := s.products.filter(func(p models.Product) bool {
		return matchesSearch(params.Search, p.ProductName, p.Description) &&
			(category == "" || p.Category.ID == category) &&
			(material == "" || containsFold(p.Material, material))
	})
	return paginate(items, params)
}

// GetProduct returns one product
func (s *Store) GetProduct(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products.get(id)
	if !ok {
		return models.Product{}, notFound(MsgProductNotFound)
	}
	return p, nil
}

// CreateProduct adds a product to an existing category
func (s *Store) CreateProduct(req models.CreateProductRequest) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := models.Product{ID: newID(), CreatedAt: now}
	if err := s.applyProductLocked(&p, req, now); err != nil {
		return models.Product{}, err
	}
	s.products.put(p.ID, p)
	return p, nil
}

// UpdateProduct replaces the editable fields of a product
func (s *Store) UpdateProduct(id string, req models.UpdateProductRequest) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products.get(id)
	if !ok {
		return models.Product{}, notFound(MsgProductNotFound)
	}
	if err := s.applyProductLocked(&p, models.CreateProductRequest(req), s.now()); err != nil {
		return models.Product{}, err
	}
	s.products.put(p.ID, p)
	return p, nil
}

func (s *Store) applyProductLocked(p *models.Product, req models.CreateProductRequest, now time.Time) error {
	category, ok := s.categories.get(req.CategoryID)
	if !ok {
		return badRequest(MsgCategoryNotFound)
	}

	p.ProductName = req.ProductName
	p.Description = req.Description
	p.Price = req.Price
	p.Weight = req.Weight
	p.StockQuantity = req.StockQuantity
	p.Material = req.Material
	p.Images = append([]string(nil), req.Images...)
	p.Category = models.CategoryRef{ID: category.ID, CategoryName: category.CategoryName}
	p.IsFeatured = req.IsFeatured
	p.UpdatedAt = now
	return nil
}

// DeleteProduct removes a product
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.products.remove(id) {
		return notFound(MsgProductNotFound)
	}
	return nil
}

// ListCategories returns one page of categories
func (s *Store) ListCategories(params models.ListParams) models.Page[models.Category] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := params.Filters[resources.FilterIsActive]
	items := s.categories.filter(func(c models.Category) bool {
		return matchesSearch(params.Search, c.CategoryName, c.Description) && matchesBool(active, c.IsActive)
	})
	return paginate(items, params)
}

// GetCategory returns one category
func (s *Store) GetCategory(id string) (models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories.get(id)
	if !ok {
		return models.Category{}, notFound(MsgCategoryNotFound)
	}
	return c, nil
}

// CreateCategory adds a category
func (s *Store) CreateCategory(req models.CreateCategoryRequest) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := models.Category{
		ID:           newID(),
		CategoryName: req.CategoryName,
		Description:  req.Description,
		IsActive:     req.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.categories.put(c.ID, c)
	return c, nil
}

// UpdateCategory edits a category and renames it in the products that reference it
func (s *Store) UpdateCategory(id string, req models.UpdateCategoryRequest) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories.get(id)
	if !ok {
		return models.Category{}, notFound(MsgCategoryNotFound)
	}
	c.CategoryName = req.CategoryName
	c.Description = req.Description
	c.IsActive = req.IsActive
	c.UpdatedAt = s.now()
	s.categories.put(id, c)

	for _, p := range s.products.filter(func(p models.Product) bool { return p.Category.ID == id }) {
		p.Category.CategoryName = c.CategoryName
		s.products.put(p.ID, p)
	}
	return c, nil
}

// DeleteCategory removes a category that no product references
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories.get(id); !ok {
		return notFound(MsgCategoryNotFound)
	}
	if len(s.products.filter(func(p models.Product) bool { return p.Category.ID == id })) > 0 {
		return badRequest(MsgCategoryInUse)
	}
	s.categories.remove(id)
	return nil
}

// ListCustomers returns one page of customers
func (s *Store) ListCustomers(params models.ListParams) models.Page[models.Customer] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.customers.filter(func(c customerRecord) bool {
		return matchesSearch(params.Search, c.FullName, c.Email, c.Phone)
	})
	items := make([]models.Customer, len(records))
	for i, r := range records {
		items[i] = r.Customer
	}
	return paginate(items, params)
}

// GetCustomer returns one customer
func (s *Store) GetCustomer(id string) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers.get(id)
	if !ok {
		return models.Customer{}, notFound(MsgCustomerNotFound)
	}
	return c.Customer, nil
}

// CreateCustomer registers a customer with a unique email
func (s *Store) CreateCustomer(req models.CreateCustomerRequest) (models.Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return models.Customer{}, fmt.Errorf("hash customer password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.customers.filter(func(c customerRecord) bool { return c.Email == req.Email })) > 0 {
		return models.Customer{}, conflict(MsgEmailTaken)
	}

	now := s.now()
	rec := customerRecord{
		Customer: models.Customer{
			ID:        newID(),
			FullName:  req.FullName,
			Email:     req.Email,
			Phone:     req.Phone,
			Address:   req.Address,
			CreatedAt: now,
			UpdatedAt: now,
		},
		passwordHash: hash,
	}
	s.customers.put(rec.ID, rec)
	return rec.Customer, nil
}

// UpdateCustomer edits a customer's contact details
func (s *Store) UpdateCustomer(id string, req models.UpdateCustomerRequest) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.customers.get(id)
	if !ok {
		return models.Customer{}, notFound(MsgCustomerNotFound)
	}
	rec.FullName = req.FullName
	rec.Phone = req.Phone
	rec.Address = req.Address
	rec.UpdatedAt = s.now()
	s.customers.put(id, rec)
	return rec.Customer, nil
}

// DeleteCustomer removes a customer. Their orders keep the embedded reference.
func (s *Store) DeleteCustomer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.customers.remove(id) {
		return notFound(MsgCustomerNotFound)
	}
	return nil
}

// ListAdmins returns one page of back office accounts
func (s *Store) ListAdmins(params models.ListParams) models.Page[models.Admin] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role := params.Filters[resources.FilterRole]
	active := params.Filters[resources.FilterIsActive]
	records := s.admins.filter(func(a adminRecord) bool {
		return matchesSearch(params.Search, a.Username, a.FullName, a.Email) &&
			(role == "" || string(a.Role) == role) &&
			matchesBool(active, a.IsActive)
	})
	items := make([]models.Admin, len(records))
	for i, r := range records {
		items[i] = r.Admin
	}
	return paginate(items, params)
}

// GetAdmin returns one account
func (s *Store) GetAdmin(id string) (models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.admins.get(id)
	if !ok {
		return models.Admin{}, notFound(MsgAdminNotFound)
	}
	return a.Admin, nil
}

// CreateAdmin adds an active account with a unique username
func (s *Store) CreateAdmin(req models.CreateAdminRequest) (models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return models.Admin{}, fmt.Errorf("hash admin password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.admins.filter(func(a adminRecord) bool { return a.Username == req.Username })) > 0 {
		return models.Admin{}, conflict(MsgUsernameTaken)
	}

	now := s.now()
	rec := adminRecord{
		Admin: models.Admin{
			ID:        newID(),
			Username:  req.Username,
			FullName:  req.FullName,
			Email:     req.Email,
			Role:      req.Role,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		passwordHash: hash,
	}
	s.admins.put(rec.ID, rec)
	return rec.Admin, nil
}

// UpdateAdmin edits an account
func (s *Store) UpdateAdmin(id string, req models.UpdateAdminRequest) (models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.admins.get(id)
	if !ok {
		return models.Admin{}, notFound(MsgAdminNotFound)
	}
	rec.FullName = req.FullName
	rec.Email = req.Email
	rec.Role = req.Role
	rec.IsActive = req.IsActive
	rec.UpdatedAt = s.now()
	s.admins.put(id, rec)
	return rec.Admin, nil
}

// DeleteAdmin removes an account
func (s *Store) DeleteAdmin(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.admins.remove(id) {
		return notFound(MsgAdminNotFound)
	}
	return nil
}

// CheckAdminPassword reports whether password matches the account's stored hash
func (s *Store) CheckAdminPassword(username, password string) bool {
	s.mu.RLock()
	matches := s.admins.filter(func(a adminRecord) bool { return a.Username == username })
	s.mu.RUnlock()

	if len(matches) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(matches[0].passwordHash, []byte(password)) == nil
}

// ListOrders returns one page of orders
func (s *Store) ListOrders(params models.ListParams) models.Page[models.Order] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := params.Filters[resources.FilterStatus]
	items := s.orders.filter(func(o models.Order) bool {
		customer := ""
		if o.Customer != nil {
			customer = o.Customer.FullName
		}
		return matchesSearch(params.Search, o.OrderCode, customer) && (status == "" || string(o.Status) == status)
	})
	return paginate(items, params)
}

// GetOrder returns one order
func (s *Store) GetOrder(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders.get(id)
	if !ok {
		return models.Order{}, notFound(MsgOrderNotFound)
	}
	return o, nil
}

// PlaceOrder records a new pending order for an existing customer. Orders
// normally come from the storefront checkout; the console never calls this.
func (s *Store) PlaceOrder(customerID string, items []models.OrderItem, shippingFee, discount models.Money, address string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers.get(customerID)
	if !ok {
		return models.Order{}, badRequest(MsgCustomerNotFound)
	}

	total := models.NewMoney(0)
	for _, item := range items {
		total = total.Add(item.Price.Mul(models.NewMoney(int64(item.Quantity))))
	}

	s.orderSeq++
	now := s.now()
	o := models.Order{
		ID:        newID(),
		OrderCode: fmt.Sprintf("DH%05d", s.orderSeq),
		Customer: &models.OrderCustomer{
			ID:       customer.ID,
			FullName: customer.FullName,
			Email:    customer.Email,
			Phone:    customer.Phone,
		},
		OrderDate:       now,
		Items:           append([]models.OrderItem(nil), items...),
		TotalAmount:     total,
		ShippingFee:     shippingFee,
		Discount:        discount,
		FinalAmount:     total.Add(shippingFee).Sub(discount),
		Status:          models.OrderStatusPending,
		ShippingAddress: address,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.orders.put(o.ID, o)
	return o, nil
}

// UpdateOrderStatus moves an order along one legal transition
func (s *Store) UpdateOrderStatus(id string, next models.OrderStatus) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders.get(id)
	if !ok {
		return models.Order{}, notFound(MsgOrderNotFound)
	}
	if !next.Valid() {
		metrics.OrderTransitionsTotal.WithLabelValues(string(o.Status), string(next), "rejected").Inc()
		return models.Order{}, badRequest(MsgInvalidStatus)
	}
	if !o.Status.CanTransitionTo(next) {
		metrics.OrderTransitionsTotal.WithLabelValues(string(o.Status), string(next), "rejected").Inc()
		return models.Order{}, badRequest(fmt.Sprintf("Không thể chuyển trạng thái từ %s sang %s",
			resources.StatusText(o.Status), resources.StatusText(next)))
	}

	return s.setStatusLocked(o, next), nil
}

// CancelOrder moves a non-terminal order to failed
func (s *Store) CancelOrder(id string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders.get(id)
	if !ok {
		return models.Order{}, notFound(MsgOrderNotFound)
	}
	if !o.Status.Cancellable() {
		metrics.OrderTransitionsTotal.WithLabelValues(string(o.Status), string(models.OrderStatusFailed), "rejected").Inc()
		return models.Order{}, badRequest(MsgCannotCancel)
	}

	return s.setStatusLocked(o, models.OrderStatusFailed), nil
}

func (s *Store) setStatusLocked(o models.Order, next models.OrderStatus) models.Order {
	metrics.OrderTransitionsTotal.WithLabelValues(string(o.Status), string(next), "accepted").Inc()
	log.WithFields(log.Fields{
		"order_id": o.ID,
		"from":     o.Status,
		"to":       next,
	}).Info("Order status changed")

	o.Status = next
	o.UpdatedAt = s.now()
	s.orders.put(o.ID, o)
	return o
}

// DeleteOrder removes an order whatever its status
func (s *Store) DeleteOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.orders.remove(id) {
		return notFound(MsgOrderNotFound)
	}
	return nil
}
