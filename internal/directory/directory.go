package directory

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/trogers1052/stock-dashboard/internal/models"
	"github.com/trogers1052/stock-dashboard/internal/pricegen"
)

const (
	trendingLimit = 4
	moversLimit   = 4
)

// Simulated response times of the mock feed
const (
	latencyAllStocks = 300 * time.Millisecond
	latencyGetStock  = 200 * time.Millisecond
	latencySearch    = 150 * time.Millisecond
	latencyIndices   = 100 * time.Millisecond
	latencyTrending  = 200 * time.Millisecond
	latencyMovers    = 200 * time.Millisecond
)

// Directory is the read-only source of stock and index data. It is built once
// at startup and passed to whatever needs market data.
type Directory struct {
	stocks       []models.Stock
	indices      []models.MarketIndex
	movers       []models.Stock
	gen          *pricegen.Generator
	latencyScale float64
	logger       *slog.Logger
}

// Option configures a Directory
type Option func(*Directory)

// WithLatencyScale multiplies every simulated delay. Zero disables them.
func WithLatencyScale(scale float64) Option {
	return func(d *Directory) {
		d.latencyScale = math.Max(scale, 0)
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(d *Directory) {
		d.logger = logger
	}
}

// New builds the directory, generating chart history for each stock
func New(gen *pricegen.Generator, opts ...Option) *Directory {
	d := &Directory{
		gen:          gen,
		latencyScale: 1,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.stocks = seedStocks(gen)
	d.indices = seedIndices()
	d.movers = seedMovers()

	d.logger.Info("stock directory ready",
		"stocks", len(d.stocks),
		"indices", len(d.indices),
		"latency_scale", d.latencyScale,
	)
	return d
}

// GetAllStocks returns every stock in directory order
func (d *Directory) GetAllStocks(ctx context.Context) []models.Stock {
	d.wait(ctx, latencyAllStocks)
	return cloneAll(d.stocks)
}

// GetStock returns the stock with exactly this symbol, or nil. The extra
// mover symbols are found too, so anything listed by GetTopMovers resolves.
func (d *Directory) GetStock(ctx context.Context, symbol string) *models.Stock {
	d.wait(ctx, latencyGetStock)
	stock, ok := d.lookup(symbol)
	if !ok {
		return nil
	}
	return &stock
}

// SearchStocks matches query against symbol and name, ignoring case.
// An empty query matches nothing.
func (d *Directory) SearchStocks(ctx context.Context, query string) []models.Stock {
	d.wait(ctx, latencySearch)

	q := strings.ToLower(strings.TrimSpace(query))
	results := []models.Stock{}
	if q == "" {
		return results
	}

	for _, s := range d.stocks {
		if strings.Contains(strings.ToLower(s.Symbol), q) || strings.Contains(strings.ToLower(s.Name), q) {
			results = append(results, s.Clone())
		}
	}
	return results
}

// GetTrendingStocks returns the four stocks with the largest absolute move.
// Ties keep directory order.
func (d *Directory) GetTrendingStocks(ctx context.Context) []models.Stock {
	d.wait(ctx, latencyTrending)

	trending := cloneAll(d.stocks)
	sort.SliceStable(trending, func(i, j int) bool {
		return math.Abs(trending[i].ChangePercent) > math.Abs(trending[j].ChangePercent)
	})

	if len(trending) > trendingLimit {
		trending = trending[:trendingLimit]
	}
	return trending
}

// GetMarketIndices returns the headline indices
func (d *Directory) GetMarketIndices(ctx context.Context) []models.MarketIndex {
	d.wait(ctx, latencyIndices)

	indices := make([]models.MarketIndex, len(d.indices))
	copy(indices, d.indices)
	return indices
}

// GetTopMovers ranks gainers and losers across the directory and the extra
// mover symbols
func (d *Directory) GetTopMovers(ctx context.Context) models.Movers {
	d.wait(ctx, latencyMovers)

	universe := append(cloneAll(d.stocks), cloneAll(d.movers)...)
	movers := models.Movers{
		Gainers: []models.Stock{},
		Losers:  []models.Stock{},
	}
	for _, s := range universe {
		switch {
		case s.ChangePercent > 0:
			movers.Gainers = append(movers.Gainers, s)
		case s.ChangePercent < 0:
			movers.Losers = append(movers.Losers, s)
		}
	}

	sort.SliceStable(movers.Gainers, func(i, j int) bool {
		return movers.Gainers[i].ChangePercent > movers.Gainers[j].ChangePercent
	})
	sort.SliceStable(movers.Losers, func(i, j int) bool {
		return movers.Losers[i].ChangePercent < movers.Losers[j].ChangePercent
	})

	if len(movers.Gainers) > moversLimit {
		movers.Gainers = movers.Gainers[:moversLimit]
	}
	if len(movers.Losers) > moversLimit {
		movers.Losers = movers.Losers[:moversLimit]
	}
	return movers
}

// GetChart returns price history for symbol. The precomputed series is used
// for the default window; any other window, or a record without history, is
// generated from the current price.
func (d *Directory) GetChart(ctx context.Context, symbol string, days int) ([]models.ChartPoint, bool) {
	d.wait(ctx, latencyGetStock)

	stock, ok := d.lookup(symbol)
	if !ok {
		return nil, false
	}

	if days <= 0 {
		days = pricegen.DefaultDays
	}
	if days == pricegen.DefaultDays && len(stock.ChartData) > 0 {
		return stock.ChartData, true
	}

	d.logger.Debug("generating chart history", "symbol", symbol, "days", days)
	return d.gen.Daily(stock.Price, days), true
}

// GetIntradayChart returns a session chart for an index level
func (d *Directory) GetIntradayChart(ctx context.Context, base float64) []models.IntradayPoint {
	d.wait(ctx, latencyIndices)
	return d.gen.Intraday(base)
}

func (d *Directory) lookup(symbol string) (models.Stock, bool) {
	for _, s := range d.stocks {
		if s.Symbol == symbol {
			return s.Clone(), true
		}
	}
	for _, s := range d.movers {
		if s.Symbol == symbol {
			return s.Clone(), true
		}
	}
	return models.Stock{}, false
}

// wait simulates feed latency. Cancellation cuts the delay short; results are
// still returned because the mock feed cannot fail.
func (d *Directory) wait(ctx context.Context, base time.Duration) {
	delay := time.Duration(float64(base) * d.latencyScale)
	if delay <= 0 {
		return
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func cloneAll(stocks []models.Stock) []models.Stock {
	out := make([]models.Stock, len(stocks))
	for i, s := range stocks {
		out[i] = s.Clone()
	}
	return out
}
