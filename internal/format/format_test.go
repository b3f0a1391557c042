package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$175.43", Currency(175.43))
	assert.Equal(t, "$248.50", Currency(248.5))
	assert.Equal(t, "$0.00", Currency(0))
	assert.Equal(t, "-$5.00", Currency(-5))
}

func TestSignedChange(t *testing.T) {
	assert.Equal(t, "+2.15", SignedChange(2.15))
	assert.Equal(t, "-1.82", SignedChange(-1.82))
	assert.Equal(t, "+0.00", SignedChange(0))
}

func TestSignedPercent(t *testing.T) {
	assert.Equal(t, "+1.24%", SignedPercent(1.24))
	assert.Equal(t, "-3.20%", SignedPercent(-3.2))
}

func TestVolume(t *testing.T) {
	assert.Equal(t, "52.8M", Volume(52_840_000))
	assert.Equal(t, "89.5M", Volume(89_500_000))
	assert.Equal(t, "0.0M", Volume(0))
}

func TestMarketCap(t *testing.T) {
	assert.Equal(t, "$2.75T", MarketCap(2_750_000_000_000))
	assert.Equal(t, "$1.75T", MarketCap(1_750_000_000_000))
	assert.Equal(t, "$999.9B", MarketCap(999_900_000_000))
	assert.Equal(t, "$790.0B", MarketCap(790_000_000_000))
	assert.Equal(t, "$500.0M", MarketCap(500_000_000))
}

func TestDividendYield(t *testing.T) {
	assert.Equal(t, "0.55%", DividendYield(0.96, 175.43))
	assert.Equal(t, "0.79%", DividendYield(3.00, 378.85))
	assert.Equal(t, NotAvailable, DividendYield(0, 138.21))
	assert.Equal(t, NotAvailable, DividendYield(1, 0))
}

func TestPercentFrom(t *testing.T) {
	assert.Equal(t, "-11.5%", PercentFrom(175.43, 198.23))
	assert.Equal(t, "41.3%", PercentFrom(175.43, 124.17))
	assert.Equal(t, NotAvailable, PercentFrom(10, 0))
}

func TestPE(t *testing.T) {
	assert.Equal(t, "28.5", PE(28.5))
	assert.Equal(t, NotAvailable, PE(0))
}
