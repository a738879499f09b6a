package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) CheckoutConfig(c *gin.Context) {
	resp, err := s.checkoutSvc.Config(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) EnsurePaymentIntent(c *gin.Context) {
	orderID, err := parseSnowflakeParam(c, "id")
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.checkoutSvc.EnsurePaymentIntent(c.Request.Context(), orderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
