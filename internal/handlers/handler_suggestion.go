package handlers

import (
	"net/http"

	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	"github.com/arthaworks/ledgerengine/internal/dto"
	"github.com/gin-gonic/gin"
)

// suggestionHandler exposes the advisory category suggester.
type suggestionHandler struct {
	suggester portssvc.CategorySuggester
}

// registerSuggestionRoutes registers the category suggestion route.
func registerSuggestionRoutes(rg *gin.RouterGroup, suggester portssvc.CategorySuggester) {
	h := &suggestionHandler{suggester: suggester}
	rg.POST("/suggestions/category", h.suggestCategory)
}

func (h *suggestionHandler) suggestCategory(c *gin.Context) {
	var req dto.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	suggestion, err := h.suggester.SuggestCategory(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to suggest category"})
		return
	}
	c.JSON(http.StatusOK, suggestion)
}
