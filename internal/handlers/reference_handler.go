package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping-quote-service/internal/models"
	"shipping-quote-service/internal/repository"
)

// ReferenceHandler serves the shipping reference tables storefronts need to
// render destination, method and add-on choices
type ReferenceHandler struct {
	rulesRepo *repository.RulesRepository
}

// NewReferenceHandler creates a new reference data handler
func NewReferenceHandler(rulesRepo *repository.RulesRepository) *ReferenceHandler {
	return &ReferenceHandler{rulesRepo: rulesRepo}
}

// ListZones handles GET /api/shipping-zones
func (h *ReferenceHandler) ListZones(c *gin.Context) {
	zones, err := h.rulesRepo.ListActiveZones(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to list shipping zones",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    zones,
	})
}

// ListMethods handles GET /api/shipping-methods
func (h *ReferenceHandler) ListMethods(c *gin.Context) {
	methods, err := h.rulesRepo.ListActiveMethods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to list shipping methods",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    methods,
	})
}

// ListOptions handles GET /api/shipping-options
func (h *ReferenceHandler) ListOptions(c *gin.Context) {
	options, err := h.rulesRepo.ListActiveOptions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to list shipping options",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    options,
	})
}

// ListSizeClasses handles GET /api/size-classes
func (h *ReferenceHandler) ListSizeClasses(c *gin.Context) {
	classes, err := h.rulesRepo.ListActiveSizeClasses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to list size classes",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    classes,
	})
}
