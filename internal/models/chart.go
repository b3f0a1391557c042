package models

// ChartPoint is one daily sample in a price history series
type ChartPoint struct {
	Time   string  `json:"time"` // YYYY-MM-DD
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// IntradayPoint is one sample in a single trading session
type IntradayPoint struct {
	Time  string  `json:"time"` // HH:MM
	Value float64 `json:"value"`
}
