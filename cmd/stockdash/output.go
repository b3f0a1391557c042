package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/trogers1052/stock-dashboard/internal/format"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printStocks(w io.Writer, stocks []models.Stock) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "SYMBOL\tNAME\tPRICE\tCHANGE\tCHANGE %\tVOLUME\tMARKET CAP")
	for _, s := range stocks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Symbol, s.Name,
			format.Currency(s.Price),
			format.SignedChange(s.Change),
			format.SignedPercent(s.ChangePercent),
			format.Volume(s.Volume),
			format.MarketCap(s.MarketCap))
	}
	return tw.Flush()
}

func printStockDetail(w io.Writer, s *models.Stock) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "%s\t%s\n", s.Symbol, s.Name)
	arrow := "▼"
	if s.IsPositive() {
		arrow = "▲"
	}
	fmt.Fprintf(tw, "Price\t%s %s (%s, %s)\n", format.Currency(s.Price), arrow, format.SignedChange(s.Change), format.SignedPercent(s.ChangePercent))
	fmt.Fprintf(tw, "Volume\t%s\n", format.Volume(s.Volume))
	fmt.Fprintf(tw, "Market Cap\t%s\n", format.MarketCap(s.MarketCap))
	fmt.Fprintf(tw, "P/E Ratio\t%s\n", format.PE(s.PE))
	fmt.Fprintf(tw, "Dividend Yield\t%s\n", format.DividendYield(s.Dividend, s.Price))
	fmt.Fprintf(tw, "52W High\t%s (%s)\n", format.Currency(s.High52Week), format.PercentFrom(s.Price, s.High52Week))
	fmt.Fprintf(tw, "52W Low\t%s (%s)\n", format.Currency(s.Low52Week), format.PercentFrom(s.Price, s.Low52Week))
	return tw.Flush()
}

func printMovers(w io.Writer, movers models.Movers) error {
	fmt.Fprintln(w, "Top Gainers")
	if err := printStocks(w, movers.Gainers); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Top Losers")
	return printStocks(w, movers.Losers)
}

func printIndices(w io.Writer, indices []models.MarketIndex) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "INDEX\tVALUE\tCHANGE\tCHANGE %")
	for _, idx := range indices {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\n",
			idx.Name, idx.Value, format.SignedChange(idx.Change), format.SignedPercent(idx.ChangePercent))
	}
	return tw.Flush()
}

func printChart(w io.Writer, points []models.ChartPoint) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tPRICE\tVOLUME")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Time, format.Currency(p.Price), format.Volume(p.Volume))
	}
	return tw.Flush()
}

func printIntraday(w io.Writer, points []models.IntradayPoint) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "TIME\tVALUE")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%.2f\n", p.Time, p.Value)
	}
	return tw.Flush()
}
