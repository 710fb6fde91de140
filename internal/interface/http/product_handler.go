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

type ProductHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	Category    string  `json:"category" binding:"required"`
	Gradient    string  `json:"gradient"`
	Size        string  `json:"size"`
	Stock       int     `json:"stock" binding:"gte=0"`
	ImageURL    string  `json:"image_url"`
}

type updateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Gradient    *string  `json:"gradient"`
	Size        *string  `json:"size"`
	Stock       *int     `json:"stock"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
}

func productJSON(p *entity.Product) gin.H {
	return gin.H{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"gradient":    p.Gradient,
		"size":        p.Size,
		"stock":       p.Stock,
		"image_url":   p.ImageURL,
		"is_active":   p.IsActive,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

func productListJSON(products []entity.Product) []gin.H {
	out := make([]gin.H, 0, len(products))
	for i := range products {
		out = append(out, productJSON(&products[i]))
	}
	return out
}

// List GET /api/products?category=&limit=&offset=
func (h *ProductHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	products, err := h.Svc.List(c.Request.Context(), c.Query("category"), limit, offset)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, productListJSON(products), "products", gin.H{"limit": limit, "offset": offset})
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid product id", nil)
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, productJSON(p), "product", nil)
}

// Search GET /api/products/search?q=&size=
func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, hits, "search results", gin.H{"query": q})
}

// Create POST /api/products (admin)
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), application.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Gradient:    req.Gradient,
		Size:        req.Size,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, productJSON(p), "product created", nil)
}

// Update PUT /api/products/:id (admin)
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid product id", nil)
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, application.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Gradient:    req.Gradient,
		Size:        req.Size,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, productJSON(p), "product updated", nil)
}

// Delete DELETE /api/products/:id (admin)
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid product id", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": true}, "product deleted", nil)
}

// UploadImage POST /api/products/:id/image (admin, multipart)
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid product id", nil)
		return
	}
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	p, err := h.Svc.UploadImage(c.Request.Context(), id, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, productJSON(p), "image uploaded", nil)
}
