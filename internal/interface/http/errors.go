package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-marketplace-ddd/internal/application"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
	"github.com/oksasatya/go-marketplace-ddd/internal/infrastructure/postgres"
	"github.com/oksasatya/go-marketplace-ddd/pkg/response"
)

// writeError maps domain and application errors onto HTTP statuses:
// validation and null-argument failures are 400, illegal state transitions
// 409, illegal operations 422, lookups 404.
func writeError(c *gin.Context, err error) {
	switch {
	case domainerr.IsValidation(err), domainerr.IsNullArgument(err), domainerr.IsDivideByZero(err):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case domainerr.IsIllegalState(err):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case domainerr.IsIllegalOperation(err):
		response.Error[any](c, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrProductNotFound),
		errors.Is(err, application.ErrCategoryNotFound),
		errors.Is(err, postgres.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials), errors.Is(err, application.ErrInvalidOTP):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrUserNotActive):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrCategoryCycle):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
