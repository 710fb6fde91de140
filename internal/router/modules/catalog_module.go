package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Amrsono/Store-2090/internal/interface/http"
	"github.com/Amrsono/Store-2090/internal/interface/middleware"
	"github.com/Amrsono/Store-2090/pkg/helpers"
)

// CatalogModule wires product routes.
// Public: GET /api/products, GET /api/products/search, GET /api/products/:id
// Admin: POST/PUT/DELETE /api/products, POST /api/products/:id/image
type CatalogModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
}

func NewCatalog(h *handlers.ProductHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Handler: h, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rg.GET("/products", m.Handler.List)
	rg.GET("/products/search", m.Handler.Search)
	rg.GET("/products/:id", m.Handler.Get)

	admin := rg.Group("/products")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireAdmin())
	{
		admin.POST("", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
		admin.POST("/:id/image", m.Handler.UploadImage)
	}
}
