package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Amrsono/Store-2090/internal/domain/apperr"
)

func TestFailErrStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", fmt.Errorf("%w: bad qty", apperr.ErrInvalidArgument), http.StatusBadRequest},
		{"unauthorized", fmt.Errorf("%w: incorrect email or password", apperr.ErrUnauthorized), http.StatusUnauthorized},
		{"not found", fmt.Errorf("%w: product 1", apperr.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: email in use", apperr.ErrConflict), http.StatusConflict},
		{"insufficient stock", fmt.Errorf("%w: jacket", apperr.ErrInsufficientStock), http.StatusConflict},
		{"infrastructure", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { failErr(c, tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

// Database details must never leak through an infrastructure failure.
func TestFailErrOpaqueInternalMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		failErr(c, errors.New(`pq: relation "orders" does not exist`))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "orders")
}
