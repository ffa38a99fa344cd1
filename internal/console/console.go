// Package console is the admin console backend: it maps the console's page
// routes onto the data-access layer and answers with page models.
package console

import (
	"net/http"
	"time"

	"github.com/ashendes/jewelry-admin/internal/access"
	"github.com/ashendes/jewelry-admin/internal/apiclient"
	"github.com/ashendes/jewelry-admin/internal/cache"
	"github.com/ashendes/jewelry-admin/internal/metrics"
	"github.com/ashendes/jewelry-admin/internal/models"
	"github.com/ashendes/jewelry-admin/internal/notify"
	"github.com/ashendes/jewelry-admin/internal/resources"
	"github.com/ashendes/jewelry-admin/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const serviceName = "console-service"

// Deps are the shared services every page works through
type Deps struct {
	Client   *apiclient.Client
	Cache    *cache.Cache
	Notifier notify.Notifier
}

// Console holds one data-access component per resource
type Console struct {
	client     *apiclient.Client
	cache      *cache.Cache
	products   *access.Resource[models.Product, models.CreateProductRequest, models.UpdateProductRequest]
	categories *access.Resource[models.Category, models.CreateCategoryRequest, models.UpdateCategoryRequest]
	customers  *access.Resource[models.Customer, models.CreateCustomerRequest, models.UpdateCustomerRequest]
	admins     *access.Resource[models.Admin, models.CreateAdminRequest, models.UpdateAdminRequest]
	orders     *access.Orders
}

// New wires the resource modules to the shared cache. Notifications go to
// d.Notifier and to the response of the request that caused them.
func New(d Deps) *Console {
	if d.Notifier == nil {
		d.Notifier = notify.NewLogNotifier(nil)
	}
	n := notify.Multi{d.Notifier, notify.Collecting{}}

	return &Console{
		client:     d.Client,
		cache:      d.Cache,
		products:   access.NewResource[models.Product, models.CreateProductRequest, models.UpdateProductRequest](resources.NewProducts(d.Client), d.Cache, n, access.ProductMessages),
		categories: access.NewResource[models.Category, models.CreateCategoryRequest, models.UpdateCategoryRequest](resources.NewCategories(d.Client), d.Cache, n, access.CategoryMessages),
		customers:  access.NewResource[models.Customer, models.CreateCustomerRequest, models.UpdateCustomerRequest](resources.NewCustomers(d.Client), d.Cache, n, access.CustomerMessages),
		admins:     access.NewResource[models.Admin, models.CreateAdminRequest, models.UpdateAdminRequest](resources.NewAdmins(d.Client), d.Cache, n, access.AdminMessages),
		orders:     access.NewOrders(resources.NewOrders(d.Client), d.Cache, n),
	}
}

// Router builds the console's HTTP surface
func (cn *Console) Router() (*gin.Engine, error) {
	if err := models.RegisterBindings(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), metrics.PrometheusMiddleware(serviceName), collectNotifications())

	router.GET("/health", cn.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", func(c *gin.Context) {
		respond(c, http.StatusOK, gin.H{"title": "Dashboard"})
	})

	registerResource(router, cn.products, page[models.Product, views.ProductRow, views.ProductDetail]{
		screen: views.ProductsScreen,
		row:    views.NewProductRow,
		detail: views.NewProductDetail,
		label:  func(p models.Product) string { return p.ProductName },
	})
	registerResource(router, cn.categories, page[models.Category, views.CategoryRow, views.CategoryRow]{
		screen: views.CategoriesScreen,
		row:    views.NewCategoryRow,
		label:  func(c models.Category) string { return c.CategoryName },
	})
	registerResource(router, cn.customers, page[models.Customer, views.CustomerRow, views.CustomerRow]{
		screen: views.CustomersScreen,
		row:    views.NewCustomerRow,
		detail: views.NewCustomerRow,
		label:  func(c models.Customer) string { return c.FullName },
	})
	registerResource(router, cn.admins, page[models.Admin, views.AdminRow, views.AdminRow]{
		screen: views.AdminsScreen,
		row:    views.NewAdminRow,
		detail: views.NewAdminRow,
		label:  func(a models.Admin) string { return a.Username },
	})
	registerOrders(router, cn.orders)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{
			Error:         &models.ErrorBody{Message: "Không tìm thấy trang"},
			Notifications: []notify.Notification{},
			Sidebar:       views.Sidebar(c.Request.URL.Path),
		})
	})

	log.WithField("service", serviceName).Debug("Console routes registered")
	return router, nil
}

func (cn *Console) health(c *gin.Context) {
	status := "healthy"
	breaker := cn.client.BreakerState()
	if breaker == "open" {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"service":       serviceName,
		"status":        status,
		"circuit_state": breaker,
		"cache_entries": cn.cache.Len(),
		"timestamp":     time.Now().Format(time.RFC3339),
	})
}
