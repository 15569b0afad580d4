package dataflows

import (
	"time"

	"github.com/dyike/CoinScope/config"
	"github.com/shopspring/decimal"
)

// Config is an alias for the main application config
type Config = config.Config

// MarketData represents one daily OHLCV observation
type MarketData struct {
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	AdjClose  decimal.Decimal `json:"adj_close"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// Snapshot is a point-in-time market quote. Fields the provider does not
// populate stay zero.
type Snapshot struct {
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	PrevClose        float64 `json:"prev_close"`
	DayHigh          float64 `json:"day_high"`
	DayLow           float64 `json:"day_low"`
	MarketCap        int64   `json:"market_cap"`
	Volume           int64   `json:"volume"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low"`
	FetchedAt        time.Time
}

// NewsArticle represents a news search result
type NewsArticle struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Highlights []string `json:"highlights,omitempty"`
}

// FetchResult carries a normalized text block for the analyst stages.
// Degraded marks Text as a sentinel (no usable data) rather than content;
// downstream stages must not spend a model call on a degraded result.
type FetchResult struct {
	Text     string
	Degraded bool
}

// OK wraps a normalized data block.
func OK(text string) FetchResult {
	return FetchResult{Text: text}
}

// Marker wraps a sentinel message for a recoverable fetch failure.
func Marker(text string) FetchResult {
	return FetchResult{Text: text, Degraded: true}
}
