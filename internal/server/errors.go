package server

import (
	"errors"
	"net/http"

	gatewaydomain "github.com/gemorahq/gemora/internal/gateway/domain"
	orderdomain "github.com/gemorahq/gemora/internal/order/domain"
	statusdomain "github.com/gemorahq/gemora/internal/orderstatus/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid request")

// ErrorHandlingMiddleware translates domain errors collected by handlers
// into one JSON error shape.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var driverNotFound *gatewaydomain.DriverNotFoundError
	var providerErr *gatewaydomain.ProviderError

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, statusdomain.ErrInvalidName):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case errors.Is(err, statusdomain.ErrNameExists),
		errors.Is(err, statusdomain.ErrDeleteDefault),
		errors.Is(err, statusdomain.ErrBulkDeleteDefault):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, statusdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrOrderNotFound),
		errors.Is(err, gatewaydomain.ErrGatewayNotFound),
		errors.As(err, &driverNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case errors.As(err, &providerErr):
		return http.StatusBadGateway, errorPayload{
			Type:    "provider_error",
			Message: providerErr.Message,
		}
	case errors.Is(err, gatewaydomain.ErrMissingSecretKey),
		errors.Is(err, gatewaydomain.ErrMissingPublishableKey),
		errors.Is(err, gatewaydomain.ErrInvalidGatewayConfig):
		return http.StatusInternalServerError, errorPayload{
			Type:    "configuration_error",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}
