package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Stock routes; fixed paths before {symbol}
	api.HandleFunc("/stocks", handler.GetAllStocks).Methods("GET")
	api.HandleFunc("/stocks/search", handler.SearchStocks).Methods("GET")
	api.HandleFunc("/stocks/trending", handler.GetTrendingStocks).Methods("GET")
	api.HandleFunc("/stocks/movers", handler.GetTopMovers).Methods("GET")
	api.HandleFunc("/stocks/{symbol}", handler.GetStock).Methods("GET")
	api.HandleFunc("/stocks/{symbol}/chart", handler.GetStockChart).Methods("GET")

	// Market routes
	api.HandleFunc("/indices", handler.GetMarketIndices).Methods("GET")
	api.HandleFunc("/chart/intraday", handler.GetIntradayChart).Methods("GET")

	// Watchlist routes
	api.HandleFunc("/watchlist", handler.GetWatchlist).Methods("GET")
	api.HandleFunc("/watchlist", handler.AddToWatchlist).Methods("POST")
	if handler.events != nil {
		api.HandleFunc("/watchlist/events", handler.GetWatchlistEvents).Methods("GET")
	}
	api.HandleFunc("/watchlist/{symbol}", handler.RemoveFromWatchlist).Methods("DELETE")

	if handler.hub != nil {
		r.HandleFunc("/ws/watchlist", handler.hub.ServeWS)
	}

	return r
}
