package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping-quote-service/internal/models"
	"shipping-quote-service/internal/services"
)

// QuoteHandler handles HTTP requests for shipping quotes
type QuoteHandler struct {
	quoteService services.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// GetQuote handles POST /api/quotes
//
// Domain failures (NO_ZONE, NO_METHOD, NO_RATE_RULE) are part of the quote
// result and return 200 so storefronts can render partial state; only
// malformed requests and infrastructure failures map to error statuses.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	tenantID := getTenantID(c)

	var request models.QuoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	result, err := h.quoteService.GetQuote(c.Request.Context(), request, tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to compute shipping quote",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    result,
	})
}

// RefreshRules handles POST /api/shipping-rules/refresh
func (h *QuoteHandler) RefreshRules(c *gin.Context) {
	tenantID := getTenantID(c)
	actorID := c.GetString("user_id")

	if err := h.quoteService.RefreshRules(c.Request.Context(), tenantID, actorID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to refresh shipping rules",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Shipping rules cache invalidated"),
	})
}

// getTenantID extracts the tenant ID from the request context
func getTenantID(c *gin.Context) string {
	return c.GetString("tenant_id")
}

// stringPtr returns a pointer to the given string
func stringPtr(s string) *string {
	return &s
}
