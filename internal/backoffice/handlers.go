package backoffice

import (
	"net/http"
	"time"

	"github.com/ashendes/jewelry-admin/internal/metrics"
	"github.com/ashendes/jewelry-admin/internal/models"
	"github.com/ashendes/jewelry-admin/internal/resources"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// NewRouter exposes store over the REST endpoints the console consumes.
// Chaos applies to the entity routes only.
func NewRouter(store *Store, chaos *Chaos) (*gin.Engine, error) {
	if err := models.RegisterBindings(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), metrics.PrometheusMiddleware(serviceName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":         serviceName,
			"status":          "healthy",
			"chaos_enabled":   chaos.Enabled(),
			"chaos_slow_mode": chaos.Slow(),
			"timestamp":       time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	chaos.register(router)

	api := router.Group("/", chaos.Middleware())

	products := api.Group("/products")
	products.GET("", listHandler(store.ListProducts, resources.FilterCategoryID, resources.FilterMaterial))
	products.POST("", createHandler(store.CreateProduct, "Tạo sản phẩm thành công"))
	products.GET("/:id", getHandler(store.GetProduct))
	products.PUT("/:id", updateHandler(store.UpdateProduct, "Cập nhật sản phẩm thành công"))
	products.PATCH("/:id", updateHandler(store.UpdateProduct, "Cập nhật sản phẩm thành công"))
	products.DELETE("/:id", deleteHandler(store.DeleteProduct, "Xóa sản phẩm thành công"))

	categories := api.Group("/categories")
	categories.GET("", listHandler(store.ListCategories, resources.FilterIsActive))
	categories.POST("", createHandler(store.CreateCategory, "Tạo danh mục thành công"))
	categories.GET("/:id", getHandler(store.GetCategory))
	categories.PUT("/:id", updateHandler(store.UpdateCategory, "Cập nhật danh mục thành công"))
	categories.PATCH("/:id", updateHandler(store.UpdateCategory, "Cập nhật danh mục thành công"))
	categories.DELETE("/:id", deleteHandler(store.DeleteCategory, "Xóa danh mục thành công"))

	customers := api.Group("/customers")
	customers.GET("", listHandler(store.ListCustomers))
	customers.POST("", createHandler(store.CreateCustomer, "Tạo khách hàng thành công"))
	customers.GET("/:id", getHandler(store.GetCustomer))
	customers.PUT("/:id", updateHandler(store.UpdateCustomer, "Cập nhật khách hàng thành công"))
	customers.PATCH("/:id", updateHandler(store.UpdateCustomer, "Cập nhật khách hàng thành công"))
	customers.DELETE("/:id", deleteHandler(store.DeleteCustomer, "Xóa khách hàng thành công"))

	admins := api.Group("/admins")
	admins.GET("", listHandler(store.ListAdmins, resources.FilterRole, resources.FilterIsActive))
	admins.POST("", createHandler(store.CreateAdmin, "Tạo quản trị viên thành công"))
	admins.GET("/:id", getHandler(store.GetAdmin))
	admins.PUT("/:id", updateHandler(store.UpdateAdmin, "Cập nhật quản trị viên thành công"))
	admins.PATCH("/:id", updateHandler(store.UpdateAdmin, "Cập nhật quản trị viên thành công"))
	admins.DELETE("/:id", deleteHandler(store.DeleteAdmin, "Xóa quản trị viên thành công"))

	orders := api.Group("/orders")
	orders.GET("", listHandler(store.ListOrders, resources.FilterStatus))
	orders.GET("/:id", getHandler(store.GetOrder))
	orders.PATCH("/:id/status", updateHandler(func(id string, req models.UpdateOrderStatusRequest) (models.Order, error) {
		return store.UpdateOrderStatus(id, req.Status)
	}, "Cập nhật trạng thái đơn hàng thành công"))
	orders.POST("/:id/cancel", func(c *gin.Context) {
		o, err := store.CancelOrder(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.Envelope[models.Order]{Message: "Hủy đơn hàng thành công", Data: o})
	})
	orders.DELETE("/:id", deleteHandler(store.DeleteOrder, "Xóa đơn hàng thành công"))

	return router, nil
}

func listHandler[T any](list func(models.ListParams) models.Page[T], filters ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := list(models.ParseListParams(c.Request.URL.Query(), filters...))
		c.JSON(http.StatusOK, models.Envelope[models.Page[T]]{Data: page})
	}
}

func getHandler[T any](get func(id string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := get(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.Envelope[T]{Data: v})
	}
}

func createHandler[C, T any](create func(C) (T, error), message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req C
		if err := c.ShouldBindJSON(&req); err != nil {
			writeInvalid(c, err)
			return
		}
		v, err := create(req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.Envelope[T]{Message: message, Data: v})
	}
}

func updateHandler[U, T any](update func(string, U) (T, error), message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req U
		if err := c.ShouldBindJSON(&req); err != nil {
			writeInvalid(c, err)
			return
		}
		v, err := update(c.Param("id"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.Envelope[T]{Message: message, Data: v})
	}
}

func deleteHandler(del func(string) error, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := del(c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.Envelope[any]{Message: message})
	}
}

func writeInvalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorBody{Message: "Dữ liệu không hợp lệ", Error: err.Error()})
}

func writeError(c *gin.Context, err error) {
	status, message := statusOf(err)
	entry := log.WithFields(log.Fields{"path": c.Request.URL.Path, "status": status})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.WithField("message", message).Info("Request rejected")
	}
	c.JSON(status, models.ErrorBody{Message: message})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  c.GetHeader("X-Request-ID"),
		}).Debug("Handled request")
	}
}
