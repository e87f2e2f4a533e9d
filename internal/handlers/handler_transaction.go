package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	"github.com/arthaworks/ledgerengine/internal/core/services"
	"github.com/arthaworks/ledgerengine/internal/dto"
	"github.com/arthaworks/ledgerengine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for transactions and their journal
// entries.
type transactionHandler struct {
	journal  portssvc.PersistedJournalSvcFacade
	engine   portssvc.AccountingEngineSvcFacade
	recovery *services.ErrorRecoveryManager
}

func newTransactionHandler(journal portssvc.PersistedJournalSvcFacade, engine portssvc.AccountingEngineSvcFacade, recovery *services.ErrorRecoveryManager) *transactionHandler {
	return &transactionHandler{journal: journal, engine: engine, recovery: recovery}
}

// registerTransactionRoutes registers transaction and journal entry routes.
func registerTransactionRoutes(rg *gin.RouterGroup, journal portssvc.PersistedJournalSvcFacade, engine portssvc.AccountingEngineSvcFacade, recovery *services.ErrorRecoveryManager) {
	h := newTransactionHandler(journal, engine, recovery)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.POST("/validate", h.validateTransaction)
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/post", h.postTransaction)
	}

	entries := rg.Group("/journal-entries")
	{
		entries.POST("/:id/reconcile", h.reconcileEntry)
		entries.POST("/:id/unreconcile", h.unreconcileEntry)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, entries, err := h.journal.CreateAndPersistTransaction(c.Request.Context(), req.ToTransactionData(), actorFromRequest(c))
	if err != nil {
		respondError(c, h.recovery, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn, entries))
}

// validateTransaction runs the submission through the engine's double-entry
// checks without persisting anything.
func (h *transactionHandler) validateTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if _, err := h.engine.CreateTransaction(c.Request.Context(), req.ToTransactionData()); err != nil {
		respondError(c, h.recovery, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	txn, entries, err := h.journal.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.recovery, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn, entries))
}

func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	transactionID := c.Param("id")
	if err := h.journal.PostTransaction(c.Request.Context(), transactionID, actorFromRequest(c)); err != nil {
		respondError(c, h.recovery, err)
		return
	}

	logger.Info("Transaction posted via API", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, gin.H{"status": "POSTED"})
}

func (h *transactionHandler) reconcileEntry(c *gin.Context) {
	var req dto.ReconcileEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.journal.ReconcileJournalEntry(c.Request.Context(), c.Param("id"), req.ReconciliationID, actorFromRequest(c)); err != nil {
		respondError(c, h.recovery, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reconciled": true})
}

func (h *transactionHandler) unreconcileEntry(c *gin.Context) {
	if err := h.journal.UnreconcileJournalEntry(c.Request.Context(), c.Param("id"), actorFromRequest(c)); err != nil {
		respondError(c, h.recovery, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reconciled": false})
}
