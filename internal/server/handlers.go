package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tiongMax/stocktracker/internal/quote"
	"github.com/tiongMax/stocktracker/internal/store"
)

// StockStore is the persistence surface the handlers depend on.
type StockStore interface {
	List(ctx context.Context) ([]store.Stock, error)
	Upsert(ctx context.Context, symbol, name string, price, change float64) (*store.Stock, bool, error)
	UpdateFields(ctx context.Context, symbol string, price, change float64) (*store.Stock, error)
	Delete(ctx context.Context, symbol string) error
}

// QuoteFetcher resolves a symbol against the external quote service.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*quote.Quote, error)
}

// Handler holds the dependencies for HTTP handlers.
type Handler struct {
	store  StockStore
	quotes QuoteFetcher
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(store StockStore, quotes QuoteFetcher) *Handler {
	return &Handler{
		store:  store,
		quotes: quotes,
	}
}

// createStockRequest is the body for POST /api/stocks.
// Pointer numerics so a present zero passes the required check.
type createStockRequest struct {
	Symbol string   `json:"symbol" binding:"required"`
	Name   string   `json:"name" binding:"required"`
	Price  *float64 `json:"price" binding:"required"`
	Change *float64 `json:"change" binding:"required"`
}

// updateStockRequest is the body for PUT /api/stocks/:symbol.
type updateStockRequest struct {
	Price  *float64 `json:"price" binding:"required"`
	Change *float64 `json:"change" binding:"required"`
}

// ListStocks handles GET /api/stocks
// Returns every stock record in insertion order.
func (h *Handler) ListStocks(c *gin.Context) {
	stocks, err := h.store.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list stocks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stocks"})
		return
	}

	c.JSON(http.StatusOK, stocks)
}

// CreateStock handles POST /api/stocks
// Upserts a record keyed by the symbol exactly as provided. The symbol is
// deliberately not uppercased here: the lookup routes normalize, POST stores
// what the client sent.
func (h *Handler) CreateStock(c *gin.Context) {
	var req createStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid CreateStock payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol, name, price and change are required"})
		return
	}

	stock, created, err := h.store.Upsert(c.Request.Context(), req.Symbol, req.Name, *req.Price, *req.Change)
	if err != nil {
		slog.Error("Failed to upsert stock", "symbol", req.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save stock"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	slog.Info("Stock saved", "symbol", stock.Symbol, "created", created)
	c.JSON(status, stock)
}

// UpdateStock handles PUT /api/stocks/:symbol
// Updates price and change on an existing record.
func (h *Handler) UpdateStock(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid UpdateStock payload", "symbol", symbol, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "price and change are required"})
		return
	}

	stock, err := h.store.UpdateFields(c.Request.Context(), symbol, *req.Price, *req.Change)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
		return
	}
	if err != nil {
		slog.Error("Failed to update stock", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}

	c.JSON(http.StatusOK, stock)
}

// DeleteStock handles DELETE /api/stocks/:symbol
func (h *Handler) DeleteStock(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	err := h.store.Delete(c.Request.Context(), symbol)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
		return
	}
	if err != nil {
		slog.Error("Failed to delete stock", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stock"})
		return
	}

	slog.Info("Stock deleted", "symbol", symbol)
	c.JSON(http.StatusOK, gin.H{"message": "Stock " + symbol + " deleted successfully"})
}

// SearchStock handles GET /api/search/:symbol
// Fetches a quote from the external service and caches it in the store.
// Every failure collapses into the same client-facing error.
func (h *Handler) SearchStock(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	q, err := h.quotes.FetchQuote(c.Request.Context(), symbol)
	if err != nil {
		slog.Error("Quote lookup failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stock not found or API error"})
		return
	}

	stock, created, err := h.store.Upsert(c.Request.Context(), symbol, q.Name, q.Price, q.Change)
	if err != nil {
		slog.Error("Failed to cache quote", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stock not found or API error"})
		return
	}

	slog.Info("Quote cached", "symbol", symbol, "created", created)
	c.JSON(http.StatusOK, stock)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "stocktracker",
	})
}
