package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Amrsono/Store-2090/internal/application"
	"github.com/Amrsono/Store-2090/internal/domain/entity"
	"github.com/Amrsono/Store-2090/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AccountService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,pwd"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

type updateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"full_name"`
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":             u.ID,
		"email":          u.Email,
		"username":       u.Username,
		"full_name":      u.FullName,
		"is_active":      u.IsActive,
		"is_admin":       u.IsAdmin,
		"email_verified": u.EmailVerified,
		"created_at":     u.CreatedAt,
	}
}

func authPayload(u *entity.User, token string) gin.H {
	return gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userJSON(u),
	}
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, authPayload(u, token), "registered", nil)
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, authPayload(u, token), "login successful", nil)
}

// VerifyEmail POST /api/verify-email {token}
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, userJSON(u), "email verified", nil)
}

// Profile GET /api/profile (auth required)
func (h *AuthHandler) Profile(c *gin.Context) {
	uid := c.GetInt64("userID")
	u, err := h.Svc.GetUser(c.Request.Context(), uid)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, userJSON(u), "profile", nil)
}

// UpdateUser PUT /api/users/:id (admin)
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), id, application.UpdateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, userJSON(u), "user updated", nil)
}

// ToggleUserStatus POST /api/users/:id/toggle (admin)
func (h *AuthHandler) ToggleUserStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	u, err := h.Svc.ToggleUserStatus(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, userJSON(u), "user status updated", nil)
}
