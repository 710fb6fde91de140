package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amrsono/Store-2090/internal/domain/apperr"
	"github.com/Amrsono/Store-2090/pkg/response"
)

func ok[T any](c *gin.Context, status int, data T, message string, meta any) {
	resp := response.Success(c, status, data, message, meta)
	c.JSON(resp.Status, resp)
}

func fail(c *gin.Context, status int, message string, details any) {
	resp := response.Error[any](c, status, message, details)
	c.JSON(resp.Status, resp)
}

// failErr maps a domain error kind to its transport status. Errors that are
// not one of the domain kinds are infrastructure failures and surface as an
// opaque 500.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		fail(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apperr.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, apperr.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrInsufficientStock):
		fail(c, http.StatusConflict, err.Error(), nil)
	default:
		fail(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
