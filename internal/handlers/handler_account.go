package handlers

import (
	"log/slog"
	"net/http"

	"github.com/arthaworks/ledgerengine/internal/core/domain"
	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	"github.com/arthaworks/ledgerengine/internal/core/services"
	"github.com/arthaworks/ledgerengine/internal/dto"
	"github.com/arthaworks/ledgerengine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	registry portssvc.AccountRegistrySvcFacade
	recovery *services.ErrorRecoveryManager
}

func newAccountHandler(registry portssvc.AccountRegistrySvcFacade, recovery *services.ErrorRecoveryManager) *accountHandler {
	return &accountHandler{registry: registry, recovery: recovery}
}

// registerAccountRoutes registers the chart-of-accounts routes.
func registerAccountRoutes(rg *gin.RouterGroup, registry portssvc.AccountRegistrySvcFacade, recovery *services.ErrorRecoveryManager) {
	h := newAccountHandler(registry, recovery)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:code", h.getAccount)
		accounts.GET("", h.listAccountsByType)
		accounts.DELETE("/:code", h.deleteAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	allowTransactions := true
	if req.AllowTransactions != nil {
		allowTransactions = *req.AllowTransactions
	}

	account := domain.Account{
		Code:              req.Code,
		Name:              req.Name,
		AccountType:       req.AccountType,
		CurrencyCode:      req.CurrencyCode,
		ParentCode:        req.ParentCode,
		Description:       req.Description,
		IsSystem:          req.IsSystem,
		AllowTransactions: allowTransactions,
		AuditFields:       domain.AuditFields{CreatedBy: actorFromRequest(c)},
	}

	created, err := h.registry.RegisterAccount(c.Request.Context(), account)
	if err != nil {
		respondError(c, h.recovery, err)
		return
	}

	logger.Info("Account registered", slog.String("code", created.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(created))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.registry.GetAccount(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, h.recovery, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccountsByType(c *gin.Context) {
	accountType := domain.AccountType(c.Query("type"))
	if accountType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'type' is required"})
		return
	}

	accounts := h.registry.GetAccountsByType(c.Request.Context(), accountType)
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	code := c.Param("code")
	if err := h.registry.RemoveAccount(c.Request.Context(), code); err != nil {
		respondError(c, h.recovery, err)
		return
	}

	logger.Info("Account removed", slog.String("code", code))
	c.Status(http.StatusNoContent)
}
