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

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type orderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type placeOrderRequest struct {
	ShippingAddress string             `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
	Items           []orderItemRequest `json:"items" binding:"required,dive"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func orderJSON(o *entity.Order) gin.H {
	items := make([]gin.H, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, gin.H{
			"id":         item.ID,
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"price":      item.Price,
		})
	}
	return gin.H{
		"id":               o.ID,
		"user_id":          o.UserID,
		"total_amount":     o.TotalAmount,
		"status":           o.Status,
		"shipping_address": o.ShippingAddress,
		"payment_method":   o.PaymentMethod,
		"items":            items,
		"created_at":       o.CreatedAt,
		"updated_at":       o.UpdatedAt,
	}
}

// Place POST /api/orders (auth required)
func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	lines := make([]application.LineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, application.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	o, err := h.Svc.PlaceOrder(c.Request.Context(), c.GetInt64("userID"), req.ShippingAddress, req.PaymentMethod, lines)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, orderJSON(o), "order placed", nil)
}

// MyOrders GET /api/orders (auth required)
func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.Svc.ListUserOrders(c.Request.Context(), c.GetInt64("userID"))
	if err != nil {
		failErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderJSON(&orders[i]))
	}
	ok(c, http.StatusOK, out, "orders", nil)
}

// Get GET /api/orders/:id (auth required; non-admins only see their own)
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid order id", nil)
		return
	}
	o, err := h.Svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	if o.UserID != c.GetInt64("userID") && !c.GetBool("isAdmin") {
		fail(c, http.StatusNotFound, "not found: order", nil)
		return
	}
	ok(c, http.StatusOK, orderJSON(o), "order", nil)
}

// ListAll GET /api/orders/all (admin)
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.Svc.ListOrders(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderJSON(&orders[i]))
	}
	ok(c, http.StatusOK, out, "orders", nil)
}

// UpdateStatus PUT /api/orders/:id/status (admin)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid order id", nil)
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	o, err := h.Svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, orderJSON(o), "order status updated", nil)
}
