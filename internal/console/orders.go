package console

import (
	"net/http"

	"github.com/ashendes/jewelry-admin/internal/access"
	"github.com/ashendes/jewelry-admin/internal/models"
	"github.com/ashendes/jewelry-admin/internal/views"
	"github.com/gin-gonic/gin"
)

// registerOrders mounts the order list, detail and status actions. Orders are
// never created or edited from the console.
func registerOrders(r gin.IRouter, orders *access.Orders) {
	screen := views.OrdersScreen
	row := func(o models.Order) views.OrderRow { return views.NewOrderRow(o, orders.Pending) }
	g := r.Group(views.ListPath(screen.Entity))

	g.GET("", func(c *gin.Context) {
		params := models.ParseListParams(c.Request.URL.Query(), orders.Filters()...)
		result := orders.List(c.Request.Context(), params)
		respond(c, statusFor(result.Err), views.BuildList(screen, params, result, row))
	})

	g.GET("/detail/:id", func(c *gin.Context) {
		result := orders.Detail(c.Request.Context(), c.Param("id"))
		detail := views.BuildDetail(screen, "Chi tiết đơn hàng", result, func(o models.Order) views.OrderDetail {
			return views.NewOrderDetail(o, orders.Pending)
		}, nil)
		respond(c, statusFor(result.Err), detail)
	})

	// The menu only offers legal next statuses; a forged request is still
	// forwarded and left to the API to refuse.
	g.POST("/status/:id", func(c *gin.Context) {
		var req models.UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalid(c, err)
			return
		}
		updated, err := orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, row(*updated))
	})

	g.POST("/cancel/:id", func(c *gin.Context) {
		cancelled, err := orders.Cancel(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, row(*cancelled))
	})

	g.POST("/delete/:id", confirmDelete(screen, orders.PeekDetail, func(o models.Order) string { return o.OrderCode }, orders.Delete))
}
