package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-dashboard/internal/models"
	"github.com/trogers1052/stock-dashboard/internal/pricegen"
)

func newTestDirectory() *Directory {
	gen := pricegen.New(pricegen.WithSource(func() float64 { return 0.5 }))
	return New(gen, WithLatencyScale(0))
}

func symbols(stocks []models.Stock) []string {
	out := make([]string, len(stocks))
	for i, s := range stocks {
		out[i] = s.Symbol
	}
	return out
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	dir := newTestDirectory()

	t.Run("GetAllStocks returns the fixed set in order", func(t *testing.T) {
		stocks := dir.GetAllStocks(ctx)
		assert.Equal(t, []string{"AAPL", "GOOGL", "MSFT", "TSLA", "AMZN", "NVDA"}, symbols(stocks))

		for _, s := range stocks {
			assert.Len(t, s.ChartData, pricegen.DefaultDays+1, s.Symbol)
			assert.Equal(t, s.Change >= 0, s.ChangePercent >= 0, "sign mismatch for %s", s.Symbol)
		}
	})

	t.Run("GetStock finds every known symbol", func(t *testing.T) {
		for _, symbol := range []string{"AAPL", "GOOGL", "MSFT", "TSLA", "AMZN", "NVDA"} {
			stock := dir.GetStock(ctx, symbol)
			require.NotNil(t, stock, symbol)
			assert.Equal(t, symbol, stock.Symbol)
		}
	})

	t.Run("GetStock is case-sensitive and returns nil when absent", func(t *testing.T) {
		assert.Nil(t, dir.GetStock(ctx, "aapl"))
		assert.Nil(t, dir.GetStock(ctx, "SPY"))
		assert.Nil(t, dir.GetStock(ctx, ""))
	})

	t.Run("SearchStocks matches symbol substrings ignoring case", func(t *testing.T) {
		results := dir.SearchStocks(ctx, "goog")
		assert.Equal(t, []string{"GOOGL"}, symbols(results))
	})

	t.Run("SearchStocks matches names", func(t *testing.T) {
		assert.Equal(t, []string{"MSFT", "NVDA"}, symbols(dir.SearchStocks(ctx, "Corporation")))
		assert.Equal(t, []string{"AAPL", "GOOGL", "TSLA", "AMZN"}, symbols(dir.SearchStocks(ctx, "INC")))
	})

	t.Run("SearchStocks returns empty for empty query", func(t *testing.T) {
		assert.Empty(t, dir.SearchStocks(ctx, ""))
		assert.Empty(t, dir.SearchStocks(ctx, "   "))
		assert.NotNil(t, dir.SearchStocks(ctx, ""))
	})

	t.Run("SearchStocks returns empty when nothing matches", func(t *testing.T) {
		assert.Empty(t, dir.SearchStocks(ctx, "zzz"))
	})

	t.Run("GetTrendingStocks ranks by absolute percent change", func(t *testing.T) {
		trending := dir.GetTrendingStocks(ctx)
		assert.Equal(t, []string{"TSLA", "AMZN", "MSFT", "NVDA"}, symbols(trending))
	})

	t.Run("GetMarketIndices returns the headline indices", func(t *testing.T) {
		indices := dir.GetMarketIndices(ctx)
		require.Len(t, indices, 3)
		assert.Equal(t, "S&P 500", indices[0].Name)
		assert.Equal(t, "Dow Jones", indices[1].Name)
		assert.Equal(t, "NASDAQ", indices[2].Name)
	})

	t.Run("GetTopMovers splits gainers and losers", func(t *testing.T) {
		movers := dir.GetTopMovers(ctx)
		assert.Equal(t, []string{"RBLX", "SNAP", "UBER", "LYFT"}, symbols(movers.Gainers))
		assert.Equal(t, []string{"COIN", "TSLA", "GOOGL"}, symbols(movers.Losers))
	})

	t.Run("GetChart returns precomputed history for the default window", func(t *testing.T) {
		points, ok := dir.GetChart(ctx, "AAPL", 0)
		require.True(t, ok)
		assert.Equal(t, dir.GetStock(ctx, "AAPL").ChartData, points)
	})

	t.Run("GetChart generates other windows from the current price", func(t *testing.T) {
		points, ok := dir.GetChart(ctx, "MSFT", 7)
		require.True(t, ok)
		require.Len(t, points, 8)
		assert.Equal(t, 378.85, points[0].Price)
	})

	t.Run("GetChart generates history for the top gainer", func(t *testing.T) {
		gainer := dir.GetTopMovers(ctx).Gainers[0]
		require.Equal(t, "RBLX", gainer.Symbol)
		assert.Empty(t, gainer.ChartData)

		points, ok := dir.GetChart(ctx, gainer.Symbol, 0)
		require.True(t, ok)
		require.Len(t, points, pricegen.DefaultDays+1)
		for _, p := range points {
			assert.Equal(t, 45.67, p.Price)
		}
	})

	t.Run("GetStock resolves mover symbols", func(t *testing.T) {
		for _, symbol := range []string{"RBLX", "SNAP", "UBER", "LYFT", "COIN"} {
			stock := dir.GetStock(ctx, symbol)
			require.NotNil(t, stock, symbol)
			assert.Equal(t, symbol, stock.Symbol)
		}
	})

	t.Run("GetChart reports unknown symbols", func(t *testing.T) {
		points, ok := dir.GetChart(ctx, "SPY", 30)
		assert.False(t, ok)
		assert.Nil(t, points)
	})

	t.Run("GetIntradayChart returns a session series", func(t *testing.T) {
		points := dir.GetIntradayChart(ctx, 0)
		assert.Len(t, points, 13)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		stock := dir.GetStock(ctx, "AAPL")
		require.NotNil(t, stock)
		stock.Price = 1
		stock.ChartData[0].Price = 1

		fresh := dir.GetStock(ctx, "AAPL")
		assert.Equal(t, 175.43, fresh.Price)
		assert.NotEqual(t, 1.0, fresh.ChartData[0].Price)
	})
}

func TestTrendingTiesKeepDirectoryOrder(t *testing.T) {
	dir := newTestDirectory()
	dir.stocks = []models.Stock{
		{Symbol: "A", ChangePercent: 1},
		{Symbol: "B", ChangePercent: -2},
		{Symbol: "C", ChangePercent: 2},
		{Symbol: "D", ChangePercent: 1},
		{Symbol: "E", ChangePercent: -1},
	}

	trending := dir.GetTrendingStocks(context.Background())
	assert.Equal(t, []string{"B", "C", "A", "D"}, symbols(trending))
}

func TestLatency(t *testing.T) {
	gen := pricegen.New()

	t.Run("delays each call", func(t *testing.T) {
		dir := New(gen, WithLatencyScale(0.1))

		start := time.Now()
		dir.GetMarketIndices(context.Background())
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("cancelled context still returns data", func(t *testing.T) {
		dir := New(gen, WithLatencyScale(100))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		stocks := dir.GetAllStocks(ctx)
		assert.Less(t, time.Since(start), time.Second)
		assert.Len(t, stocks, 6)
	})
}
