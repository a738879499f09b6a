package server

import (
	"net/http"

	gatewaydomain "github.com/gemorahq/gemora/internal/gateway/domain"
	"github.com/gin-gonic/gin"
)

// gatewayResponse deliberately omits the config blob: credentials never
// leave the database through this surface.
type gatewayResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Driver    string `json:"driver"`
	IsActive  bool   `json:"is_active"`
	IsDefault bool   `json:"is_default"`
}

func (s *Server) ListPaymentGateways(c *gin.Context) {
	gateways, err := s.gatewayRepo.List(c.Request.Context(), s.db)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items := make([]gatewayResponse, 0, len(gateways))
	for i := range gateways {
		items = append(items, toGatewayResponse(&gateways[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func toGatewayResponse(gateway *gatewaydomain.PaymentGateway) gatewayResponse {
	return gatewayResponse{
		ID:        gateway.ID.String(),
		Name:      gateway.Name,
		Slug:      gateway.Slug,
		Driver:    gateway.Driver,
		IsActive:  gateway.IsActive,
		IsDefault: gateway.IsDefault,
	}
}
