package handlers

import (
	"net/http"
	"strconv"

	"estately/models"
	"estately/services/search"
	"estately/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PropertyHandler exposes property listing endpoints.
type PropertyHandler struct {
	Service search.PropertySearchService
}

func NewPropertyHandler(service search.PropertySearchService) *PropertyHandler {
	return &PropertyHandler{Service: service}
}

// SearchPropertiesHandler handles GET /api/properties/search with slot-shaped
// query parameters.
func (h *PropertyHandler) SearchPropertiesHandler(c *gin.Context) {
	logger := utils.GetLogger()

	slots := models.Slots{
		Action:   c.Query("action"),
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Location: c.Query("location"),
	}
	if v := c.Query("budget_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			slots.BudgetMin = &f
		}
	}
	if v := c.Query("budget_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			slots.BudgetMax = &f
		}
	}

	props, err := h.Service.Search(c.Request.Context(), slots)
	if err != nil {
		logger.Error("property search failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Search failed", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": props,
		"count":      len(props),
	})
}

// AddPropertyHandler handles POST /api/properties.
func (h *PropertyHandler) AddPropertyHandler(c *gin.Context) {
	var prop models.Property
	if err := c.ShouldBindJSON(&prop); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	created, err := h.Service.Add(c.Request.Context(), &prop)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to add property", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}
