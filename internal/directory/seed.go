package directory

import (
	"github.com/trogers1052/stock-dashboard/internal/models"
	"github.com/trogers1052/stock-dashboard/internal/pricegen"
)

func seedStocks(gen *pricegen.Generator) []models.Stock {
	stocks := []models.Stock{
		{
			Symbol: "AAPL", Name: "Apple Inc.",
			Price: 175.43, Change: 2.15, ChangePercent: 1.24,
			Volume: 52_840_000, MarketCap: 2_750_000_000_000,
			High52Week: 198.23, Low52Week: 124.17, PE: 28.5, Dividend: 0.96,
		},
		{
			Symbol: "GOOGL", Name: "Alphabet Inc.",
			Price: 138.21, Change: -1.82, ChangePercent: -1.30,
			Volume: 23_450_000, MarketCap: 1_750_000_000_000,
			High52Week: 151.55, Low52Week: 83.34, PE: 25.8, Dividend: 0,
		},
		{
			Symbol: "MSFT", Name: "Microsoft Corporation",
			Price: 378.85, Change: 5.67, ChangePercent: 1.52,
			Volume: 18_900_000, MarketCap: 2_820_000_000_000,
			High52Week: 384.30, Low52Week: 213.43, PE: 32.1, Dividend: 3.00,
		},
		{
			Symbol: "TSLA", Name: "Tesla Inc.",
			Price: 248.50, Change: -8.23, ChangePercent: -3.20,
			Volume: 89_500_000, MarketCap: 790_000_000_000,
			High52Week: 299.29, Low52Week: 138.80, PE: 65.4, Dividend: 0,
		},
		{
			Symbol: "AMZN", Name: "Amazon.com Inc.",
			Price: 153.32, Change: 3.45, ChangePercent: 2.30,
			Volume: 31_200_000, MarketCap: 1_590_000_000_000,
			High52Week: 170.15, Low52Week: 83.12, PE: 45.2, Dividend: 0,
		},
		{
			Symbol: "NVDA", Name: "NVIDIA Corporation",
			Price: 875.28, Change: 12.45, ChangePercent: 1.44,
			Volume: 45_600_000, MarketCap: 2_160_000_000_000,
			High52Week: 974.86, Low52Week: 180.96, PE: 71.3, Dividend: 0.16,
		},
	}

	for i := range stocks {
		stocks[i].ChartData = gen.Daily(stocks[i].Price, pricegen.DefaultDays)
	}
	return stocks
}

func seedIndices() []models.MarketIndex {
	return []models.MarketIndex{
		{Name: "S&P 500", Value: 4783.35, Change: 15.42, ChangePercent: 0.32},
		{Name: "Dow Jones", Value: 37689.54, Change: -89.16, ChangePercent: -0.24},
		{Name: "NASDAQ", Value: 14942.65, Change: 98.27, ChangePercent: 0.66},
	}
}

// Extra symbols that only appear in the top movers board
func seedMovers() []models.Stock {
	return []models.Stock{
		{Symbol: "RBLX", Name: "Roblox Corporation", Price: 45.67, Change: 15.23, ChangePercent: 15.23},
		{Symbol: "SNAP", Name: "Snap Inc.", Price: 12.34, Change: 12.45, ChangePercent: 12.45},
		{Symbol: "UBER", Name: "Uber Technologies", Price: 67.89, Change: 8.90, ChangePercent: 8.90},
		{Symbol: "LYFT", Name: "Lyft Inc.", Price: 23.45, Change: 7.65, ChangePercent: 7.65},
		{Symbol: "COIN", Name: "Coinbase Global", Price: 78.90, Change: -12.34, ChangePercent: -12.34},
	}
}
