package pricegen

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

const (
	// DefaultDays is the history length used when a caller passes zero
	DefaultDays = 30
	// MaxDays bounds history windows requested by callers
	MaxDays = 3650

	dailyVolatility = 0.02
	floorRatio      = 0.7
	minVolume       = 1_000_000
	volumeSpread    = 10_000_000

	sessionOpenHour   = 9
	sessionOpenMinute = 30
	sessionMinutes    = 390
	intradayStep      = 30
	intradaySpread    = 50.0
	intradayDrift     = 0.1

	// DefaultIntradayBase is the S&P 500 level used by the intraday chart
	DefaultIntradayBase = 4567.89
)

// Source returns a uniformly distributed value in [0, 1)
type Source func() float64

// Generator produces synthetic price series
type Generator struct {
	rand Source
	now  func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithSource replaces the random source. Tests use this to get exact sequences.
func WithSource(src Source) Option {
	return func(g *Generator) {
		g.rand = src
	}
}

// WithClock replaces the clock used to anchor series on "today"
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator backed by an unseeded random source
func New(opts ...Option) *Generator {
	g := &Generator{
		rand: rand.Float64,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Daily returns days+1 daily points ending today, oldest first.
// Prices never drop below 70% of basePrice.
func (g *Generator) Daily(basePrice float64, days int) []models.ChartPoint {
	if days <= 0 {
		days = DefaultDays
	}

	floor := decimal.NewFromFloat(basePrice * floorRatio).RoundCeil(2).InexactFloat64()
	today := g.now()
	points := make([]models.ChartPoint, 0, days+1)
	currentPrice := basePrice

	for i := days; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)

		delta := (g.rand() - 0.5) * dailyVolatility * currentPrice
		currentPrice = math.Max(currentPrice+delta, floor)

		points = append(points, models.ChartPoint{
			Time:   date.Format(time.DateOnly),
			Price:  round2(currentPrice),
			Volume: int64(math.Floor(g.rand()*volumeSpread)) + minVolume,
		})
	}

	return points
}

// Intraday returns 30-minute samples from the 09:30 open. There is no floor;
// a small linear drift pulls the series upward through the session.
func (g *Generator) Intraday(baseValue float64) []models.IntradayPoint {
	if baseValue <= 0 {
		baseValue = DefaultIntradayBase
	}

	now := g.now()
	open := time.Date(now.Year(), now.Month(), now.Day(), sessionOpenHour, sessionOpenMinute, 0, 0, now.Location())

	points := make([]models.IntradayPoint, 0, sessionMinutes/intradayStep)
	for minutes := 0; minutes < sessionMinutes; minutes += intradayStep {
		variance := (g.rand() - 0.5) * intradaySpread
		points = append(points, models.IntradayPoint{
			Time:  open.Add(time.Duration(minutes) * time.Minute).Format("15:04"),
			Value: round2(baseValue + variance + float64(minutes)*intradayDrift),
		})
	}

	return points
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
