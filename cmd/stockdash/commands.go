package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trogers1052/stock-dashboard/internal/app"
	"github.com/trogers1052/stock-dashboard/internal/pricegen"
)

func stocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stocks",
		Short: "Query the market directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				return printStocks(cmd.OutOrStdout(), a.Directory.GetAllStocks(cmd.Context()))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get SYMBOL",
		Short: "Show one stock in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := strings.ToUpper(args[0])
			return withApp(cmd, func(a *app.App) error {
				stock := a.Directory.GetStock(cmd.Context(), symbol)
				if stock == nil {
					return fmt.Errorf("stock not found: %s", symbol)
				}
				return printStockDetail(cmd.OutOrStdout(), stock)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search QUERY",
		Short: "Search by symbol or company name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withApp(cmd, func(a *app.App) error {
				return printStocks(cmd.OutOrStdout(), a.Directory.SearchStocks(cmd.Context(), query))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "trending",
		Short: "Show the biggest percent moves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				return printStocks(cmd.OutOrStdout(), a.Directory.GetTrendingStocks(cmd.Context()))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "movers",
		Short: "Show top gainers and losers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				return printMovers(cmd.OutOrStdout(), a.Directory.GetTopMovers(cmd.Context()))
			})
		},
	})

	return cmd
}

func indicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indices",
		Short: "Show the market indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				return printIndices(cmd.OutOrStdout(), a.Directory.GetMarketIndices(cmd.Context()))
			})
		},
	}
}

func chartCmd() *cobra.Command {
	var days int
	var intraday bool

	cmd := &cobra.Command{
		Use:   "chart SYMBOL",
		Short: "Print price history for a stock, or an intraday index chart with --intraday BASE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if intraday {
				base, err := strconv.ParseFloat(args[0], 64)
				if err != nil || base <= 0 {
					return fmt.Errorf("intraday base must be a positive number: %s", args[0])
				}
				return withApp(cmd, func(a *app.App) error {
					return printIntraday(cmd.OutOrStdout(), a.Directory.GetIntradayChart(cmd.Context(), base))
				})
			}

			if days <= 0 || days > pricegen.MaxDays {
				return fmt.Errorf("days must be between 1 and %d: %d", pricegen.MaxDays, days)
			}
			symbol := strings.ToUpper(args[0])
			return withApp(cmd, func(a *app.App) error {
				points, ok := a.Directory.GetChart(cmd.Context(), symbol, days)
				if !ok {
					return fmt.Errorf("stock not found: %s", symbol)
				}
				return printChart(cmd.OutOrStdout(), points)
			})
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", pricegen.DefaultDays, "Number of days of history")
	cmd.Flags().BoolVar(&intraday, "intraday", false, "Treat the argument as an index level and print a session chart")
	return cmd
}

func watchlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage the persistent watchlist",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the watchlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				entries, err := a.Watchlist.Load(cmd.Context())
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Watchlist is empty")
					return nil
				}
				return printStocks(cmd.OutOrStdout(), entries)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add SYMBOL",
		Short: "Add a stock to the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := strings.ToUpper(args[0])
			return withApp(cmd, func(a *app.App) error {
				stock := a.Directory.GetStock(cmd.Context(), symbol)
				if stock == nil {
					return fmt.Errorf("stock not found: %s", symbol)
				}
				entries, err := a.Watchlist.Add(cmd.Context(), *stock)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d on watchlist)\n", symbol, len(entries))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove SYMBOL",
		Short: "Remove a stock from the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := strings.ToUpper(args[0])
			return withApp(cmd, func(a *app.App) error {
				entries, err := a.Watchlist.Remove(cmd.Context(), symbol)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%d on watchlist)\n", symbol, len(entries))
				return nil
			})
		},
	})

	return cmd
}
