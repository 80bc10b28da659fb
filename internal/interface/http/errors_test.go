package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-marketplace-ddd/internal/application"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
	"github.com/oksasatya/go-marketplace-ddd/internal/infrastructure/postgres"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domainerr.Validation("bad value"), http.StatusBadRequest},
		{"null argument", domainerr.NullArgument("email"), http.StatusBadRequest},
		{"divide by zero", domainerr.DivideByZero(), http.StatusBadRequest},
		{"illegal state", domainerr.IllegalState("cannot activate"), http.StatusConflict},
		{"illegal operation", domainerr.IllegalOperation("currency mismatch"), http.StatusUnprocessableEntity},
		{"user not found", application.ErrUserNotFound, http.StatusNotFound},
		{"product not found", application.ErrProductNotFound, http.StatusNotFound},
		{"category not found", application.ErrCategoryNotFound, http.StatusNotFound},
		{"row not found", postgres.ErrNotFound, http.StatusNotFound},
		{"invalid credentials", application.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid otp", application.ErrInvalidOTP, http.StatusUnauthorized},
		{"user not active", application.ErrUserNotActive, http.StatusForbidden},
		{"category cycle", application.ErrCategoryCycle, http.StatusConflict},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			writeError(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
