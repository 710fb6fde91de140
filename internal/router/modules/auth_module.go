package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amrsono/Store-2090/internal/container"
	handlers "github.com/Amrsono/Store-2090/internal/interface/http"
	"github.com/Amrsono/Store-2090/internal/interface/middleware"
	"github.com/Amrsono/Store-2090/pkg/helpers"
)

// AuthModule wires account routes.
// Public: POST /api/register, POST /api/login, POST /api/verify-email
// Protected: GET /api/profile
// Admin: PUT /api/users/:id, POST /api/users/:id/toggle
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuth(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get a tight per-IP limiter.
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/verify-email", m.Handler.VerifyEmail)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/profile", m.Handler.Profile)
	}

	admin := rg.Group("/users")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireAdmin())
	{
		admin.PUT("/:id", m.Handler.UpdateUser)
		admin.POST("/:id/toggle", m.Handler.ToggleUserStatus)
	}
}
