package models

import "time"

// Watchlist event type constants
const (
	EventWatchlistAdded   = "WATCHLIST_ADDED"
	EventWatchlistRemoved = "WATCHLIST_REMOVED"
)

// Stock is a snapshot of one tradable instrument's price and fundamentals.
// The JSON layout is also the persisted watchlist layout.
type Stock struct {
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	Price         float64      `json:"price"`
	Change        float64      `json:"change"`
	ChangePercent float64      `json:"changePercent"`
	Volume        int64        `json:"volume"`
	MarketCap     int64        `json:"marketCap"`
	High52Week    float64      `json:"high52Week"`
	Low52Week     float64      `json:"low52Week"`
	PE            float64      `json:"pe"`
	Dividend      float64      `json:"dividend"`
	ChartData     []ChartPoint `json:"chartData"`
}

// Clone returns a deep copy so callers never share chart slices.
func (s Stock) Clone() Stock {
	if s.ChartData != nil {
		points := make([]ChartPoint, len(s.ChartData))
		copy(points, s.ChartData)
		s.ChartData = points
	}
	return s
}

// IsPositive reports whether the stock is flat or up on the day
func (s Stock) IsPositive() bool {
	return s.Change >= 0
}

// MarketIndex represents a headline market index
type MarketIndex struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// Movers groups the day's biggest gainers and losers
type Movers struct {
	Gainers []Stock `json:"gainers"`
	Losers  []Stock `json:"losers"`
}

// WatchlistEvent is published whenever the watchlist changes
type WatchlistEvent struct {
	ID        string    `json:"id"`
	EventType string    `json:"event_type"`
	Stock     *Stock    `json:"stock,omitempty"`
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
}
