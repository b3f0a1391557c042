package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/trogers1052/stock-dashboard/internal/directory"
	"github.com/trogers1052/stock-dashboard/internal/models"
	"github.com/trogers1052/stock-dashboard/internal/pricegen"
	"github.com/trogers1052/stock-dashboard/internal/stream"
	"github.com/trogers1052/stock-dashboard/internal/watchlist"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// EventLister reads the watchlist audit trail
type EventLister interface {
	GetRecentWatchlistEvents(ctx context.Context, limit int) ([]*models.WatchlistEvent, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	directory *directory.Directory
	watchlist *watchlist.Watchlist
	hub       *stream.Hub
	events    EventLister
	logger    *slog.Logger
}

// NewHandler creates a new Handler. hub and events may be nil.
func NewHandler(dir *directory.Directory, wl *watchlist.Watchlist, hub *stream.Hub, events EventLister, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		directory: dir,
		watchlist: wl,
		hub:       hub,
		events:    events,
		logger:    logger,
	}
}

// GetAllStocks handles GET /stocks
func (h *Handler) GetAllStocks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.directory.GetAllStocks(r.Context()))
}

// GetStock handles GET /stocks/{symbol}
func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	stock := h.directory.GetStock(r.Context(), symbol)
	if stock == nil {
		http.Error(w, "stock not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, stock)
}

// SearchStocks handles GET /stocks/search?q=
func (h *Handler) SearchStocks(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	respondJSON(w, http.StatusOK, h.directory.SearchStocks(r.Context(), query))
}

// GetTrendingStocks handles GET /stocks/trending
func (h *Handler) GetTrendingStocks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.directory.GetTrendingStocks(r.Context()))
}

// GetTopMovers handles GET /stocks/movers
func (h *Handler) GetTopMovers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.directory.GetTopMovers(r.Context()))
}

// GetStockChart handles GET /stocks/{symbol}/chart?days=N
func (h *Handler) GetStockChart(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > pricegen.MaxDays {
			http.Error(w, "days must be a positive integer", http.StatusBadRequest)
			return
		}
		days = n
	}

	points, ok := h.directory.GetChart(r.Context(), symbol, days)
	if !ok {
		http.Error(w, "stock not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, points)
}

// GetMarketIndices handles GET /indices
func (h *Handler) GetMarketIndices(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.directory.GetMarketIndices(r.Context()))
}

// GetIntradayChart handles GET /chart/intraday?base=
func (h *Handler) GetIntradayChart(w http.ResponseWriter, r *http.Request) {
	var base float64
	if raw := r.URL.Query().Get("base"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			http.Error(w, "base must be a positive number", http.StatusBadRequest)
			return
		}
		base = v
	}

	respondJSON(w, http.StatusOK, h.directory.GetIntradayChart(r.Context(), base))
}

// GetWatchlist handles GET /watchlist
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.watchlist.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load watchlist", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// AddToWatchlist handles POST /watchlist
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol string `json:"symbol"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Symbol == "" {
		http.Error(w, "symbol is required", http.StatusBadRequest)
		return
	}

	stock := h.directory.GetStock(r.Context(), req.Symbol)
	if stock == nil {
		http.Error(w, "stock not found", http.StatusNotFound)
		return
	}

	entries, err := h.watchlist.Add(r.Context(), *stock)
	if err != nil {
		h.writeWatchlistError(w, req.Symbol, err)
		return
	}

	respondJSON(w, http.StatusCreated, entries)
}

// RemoveFromWatchlist handles DELETE /watchlist/{symbol}
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	if _, err := h.watchlist.Remove(r.Context(), symbol); err != nil {
		h.writeWatchlistError(w, symbol, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetWatchlistEvents handles GET /watchlist/events?limit=N
func (h *Handler) GetWatchlistEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxEventLimit)
	}

	events, err := h.events.GetRecentWatchlistEvents(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to load watchlist events", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "healthy"}
	if h.hub != nil {
		status["clients"] = h.hub.ClientCount()
	}
	respondJSON(w, http.StatusOK, status)
}

func (h *Handler) writeWatchlistError(w http.ResponseWriter, symbol string, err error) {
	if errors.Is(err, watchlist.ErrInvalidSymbol) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logger.Error("watchlist update failed", "symbol", symbol, "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
