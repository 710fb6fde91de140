package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Amrsono/Store-2090/internal/interface/http"
	"github.com/Amrsono/Store-2090/internal/interface/middleware"
	"github.com/Amrsono/Store-2090/pkg/helpers"
)

// OrderModule wires order routes. All require authentication.
// User: POST /api/orders, GET /api/orders, GET /api/orders/:id
// Admin: GET /api/orders/all, PUT /api/orders/:id/status
type OrderModule struct {
	Handler *handlers.OrderHandler
	JWT     *helpers.JWTManager
}

func NewOrder(h *handlers.OrderHandler, jwt *helpers.JWTManager) *OrderModule {
	return &OrderModule{Handler: h, JWT: jwt}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.Use(middleware.Auth(m.JWT))
	{
		orders.POST("", m.Handler.Place)
		orders.GET("", m.Handler.MyOrders)
	}

	admin := orders.Group("/")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/all", m.Handler.ListAll)
		admin.PUT("/:id/status", m.Handler.UpdateStatus)
	}

	// registered after /all so the literal route wins
	orders.GET("/:id", m.Handler.Get)
}
