package views

import (
	"net/http"

	"github.com/ashendes/jewelry-admin/internal/models"
	"github.com/ashendes/jewelry-admin/internal/resources"
)

// OrdersScreen describes the order list
var OrdersScreen = Screen{Entity: "orders", Noun: "đơn hàng", Title: "Quản lý đơn hàng", Empty: "Không có đơn hàng nào"}

// OrderRow is one line of the order table
type OrderRow struct {
	ID            string   `json:"id"`
	OrderCode     string   `json:"orderCode"`
	CustomerName  string   `json:"customerName"`
	CustomerEmail string   `json:"customerEmail"`
	OrderDate     string   `json:"orderDate"`
	FinalAmount   string   `json:"finalAmount"`
	Status        Badge    `json:"status"`
	Actions       []Action `json:"actions"`
}

// OrderLine is one purchased product on the order detail page
type OrderLine struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Subtotal    string `json:"subtotal"`
}

// OrderDetail is the order detail panel
type OrderDetail struct {
	OrderRow
	CustomerPhone   string      `json:"customerPhone"`
	Items           []OrderLine `json:"items"`
	TotalAmount     string      `json:"totalAmount"`
	ShippingFee     string      `json:"shippingFee"`
	Discount        string      `json:"discount"`
	ShippingAddress string      `json:"shippingAddress"`
	Note            string      `json:"note,omitempty"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}

// StatusBadge renders an order status
func StatusBadge(s models.OrderStatus) Badge {
	return Badge{
		Text:  resources.StatusText(s),
		Class: resources.StatusColor(s),
		Icon:  resources.StatusIcon(s),
	}
}

// OrderActions builds the action menu of one order. Status changes are offered
// only along legal transitions and cancel only while the order is not terminal.
// Every mutating entry is disabled while the order has a request outstanding.
func OrderActions(o models.Order, busy bool) []Action {
	actions := []Action{{
		Kind:  ActionLink,
		Label: "Xem chi tiết",
		Href:  DetailPath(OrdersScreen.Entity, o.ID),
		Icon:  "eye",
	}}

	for _, next := range o.Status.NextStatuses() {
		actions = append(actions, Action{
			Kind:     ActionSubmit,
			Label:    "Chuyển sang " + resources.StatusText(next),
			Href:     "/orders/status/" + escape(o.ID),
			Method:   http.MethodPost,
			Body:     map[string]string{"status": string(next)},
			Icon:     resources.StatusIcon(next),
			Disabled: busy,
		})
	}

	if o.Status.Cancellable() {
		actions = append(actions, Action{
			Kind:        ActionSubmit,
			Label:       "Hủy đơn hàng",
			Href:        "/orders/cancel/" + escape(o.ID),
			Method:      http.MethodPost,
			Icon:        "x-circle",
			Destructive: true,
			Disabled:    busy,
		})
	}

	actions = append(actions, Action{
		Kind:        ActionDialog,
		Label:       "Xóa đơn hàng",
		Href:        DeletePath(OrdersScreen.Entity, o.ID),
		Method:      http.MethodPost,
		Icon:        "trash",
		Dialog:      DeleteDialog(OrdersScreen.Entity, OrdersScreen.Noun, o.ID, o.OrderCode),
		Destructive: true,
		Disabled:    busy,
	})
	return actions
}

// NewOrderRow renders one order for the table
func NewOrderRow(o models.Order, pending Pending) OrderRow {
	row := OrderRow{
		ID:          o.ID,
		OrderCode:   o.OrderCode,
		OrderDate:   resources.FormatDate(o.OrderDate),
		FinalAmount: resources.FormatCurrency(o.FinalAmount),
		Status:      StatusBadge(o.Status),
		Actions:     OrderActions(o, pending != nil && pending(o.ID)),
	}
	if o.Customer != nil {
		row.CustomerName = o.Customer.FullName
		row.CustomerEmail = o.Customer.Email
	}
	return row
}

// NewOrderDetail renders one order for its detail page
func NewOrderDetail(o models.Order, pending Pending) OrderDetail {
	d := OrderDetail{
		OrderRow:        NewOrderRow(o, pending),
		Items:           make([]OrderLine, 0, len(o.Items)),
		TotalAmount:     resources.FormatCurrency(o.TotalAmount),
		ShippingFee:     resources.FormatCurrency(o.ShippingFee),
		Discount:        resources.FormatCurrency(o.Discount),
		ShippingAddress: o.ShippingAddress,
		Note:            o.Note,
		CreatedAt:       resources.FormatDate(o.CreatedAt),
		UpdatedAt:       resources.FormatDate(o.UpdatedAt),
	}
	if o.Customer != nil {
		d.CustomerPhone = o.Customer.Phone
	}
	for _, item := range o.Items {
		d.Items = append(d.Items, OrderLine{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       resources.FormatCurrency(item.Price),
			Subtotal:    resources.FormatCurrency(item.Price.Mul(models.NewMoney(int64(item.Quantity)))),
		})
	}
	return d
}
