package handlers

import (
	"errors"
	"net/http"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	"github.com/arthaworks/ledgerengine/internal/core/services"
	"github.com/gin-gonic/gin"
)

// respondError maps engine errors onto HTTP statuses. Validation failures
// carried by a LedgerError are enriched into a full error report so clients
// get severity, category and recovery suggestions per finding.
func respondError(c *gin.Context, recovery *services.ErrorRecoveryManager, err error) {
	if ledgerErr, ok := apperrors.AsLedgerError(err); ok {
		body := gin.H{
			"error": ledgerErr.Message,
			"code":  ledgerErr.Code,
		}
		if len(ledgerErr.Details) > 0 && recovery != nil {
			aggregator := services.NewErrorAggregator()
			for _, detail := range ledgerErr.Details {
				aggregator.Add(recovery.EnhanceError(detail))
			}
			body["report"] = aggregator.GenerateReport()
		}
		c.JSON(ledgerErr.StatusCode, body)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// respondValidationErrors renders direct validation findings without a
// wrapping LedgerError.
func respondValidationErrors(c *gin.Context, recovery *services.ErrorRecoveryManager, errs []domain.ValidationError) {
	aggregator := services.NewErrorAggregator()
	for _, err := range errs {
		aggregator.Add(recovery.EnhanceError(err))
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "validation failed",
		"report": aggregator.GenerateReport(),
	})
}

// actorFromRequest identifies the caller for audit fields. Authentication is
// out of scope here; upstream infrastructure sets the header.
func actorFromRequest(c *gin.Context) string {
	if actor := c.GetHeader("X-User-ID"); actor != "" {
		return actor
	}
	return "system"
}
