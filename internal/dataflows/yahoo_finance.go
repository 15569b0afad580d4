package dataflows

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
)

// symbolToYahoo maps short crypto tickers to Yahoo Finance pair identifiers.
var symbolToYahoo = map[string]string{
	"BTC":   "BTC-USD",
	"ETH":   "ETH-USD",
	"SOL":   "SOL-USD",
	"ADA":   "ADA-USD",
	"DOT":   "DOT-USD",
	"MATIC": "MATIC-USD",
	"AVAX":  "AVAX-USD",
	"LINK":  "LINK-USD",
	"UNI":   "UNI-USD",
	"XRP":   "XRP-USD",
	"DOGE":  "DOGE-USD",
	"SHIB":  "SHIB-USD",
	"LTC":   "LTC-USD",
	"BCH":   "BCH-USD",
	"ATOM":  "ATOM-USD",
	"XLM":   "XLM-USD",
	"ALGO":  "ALGO-USD",
	"VET":   "VET-USD",
	"ICP":   "ICP-USD",
	"FIL":   "FIL-USD",
}

// YahooSymbol converts a crypto ticker to Yahoo Finance format. Symbols
// already carrying the quote-currency suffix pass through unchanged; unknown
// tickers get the default suffix appended.
func YahooSymbol(symbol string) string {
	symbol = NormalizeSymbol(symbol)
	if strings.Contains(symbol, "-USD") {
		return symbol
	}
	if mapped, ok := symbolToYahoo[symbol]; ok {
		return mapped
	}
	return symbol + "-USD"
}

// ClampDays bounds a lookback window to [1, 365].
func ClampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > 365 {
		return 365
	}
	return days
}

// QuantizeWindow picks the smallest discrete fetch window covering the
// requested number of days. The provider serves fixed granularities only.
func QuantizeWindow(days int) int {
	days = ClampDays(days)
	switch {
	case days <= 7:
		return 7
	case days <= 30:
		return 30
	case days <= 90:
		return 90
	case days <= 180:
		return 180
	default:
		return 365
	}
}

// YahooClient handles Yahoo Finance data operations
type YahooClient struct {
	cache *CacheManager
	retry *RetryConfig
}

// NewYahooClient creates a new Yahoo Finance client
func NewYahooClient(cfg *Config) *YahooClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "yahoo_finance")
	cache := NewCacheManager(cacheDir, 15*time.Minute, cfg.CacheEnabled)

	return &YahooClient{
		cache: cache,
		retry: DefaultRetryConfig(),
	}
}

// Snapshot fetches the current quote and renders it as a text block. Any
// provider failure becomes a marker, never an error crossing this boundary.
func (yc *YahooClient) Snapshot(symbol string) FetchResult {
	if err := ValidateSymbol(symbol); err != nil {
		return Marker(fmt.Sprintf("Error fetching current price for %s: %v", symbol, err))
	}

	symbol = NormalizeSymbol(symbol)
	ySymbol := YahooSymbol(symbol)

	var cached Snapshot
	if yc.cache.Get("yahoo", "quote", ySymbol, &cached) {
		return OK(FormatSnapshot(symbol, ySymbol, cached))
	}

	var snap Snapshot
	err := WithRetry(yc.retry, func() error {
		q, err := equity.Get(ySymbol)
		if err != nil {
			return fmt.Errorf("get quote for %s: %w", ySymbol, err)
		}
		if q == nil {
			return fmt.Errorf("empty quote for %s", ySymbol)
		}

		snap = Snapshot{
			Symbol:           symbol,
			Price:            q.RegularMarketPrice,
			PrevClose:        q.RegularMarketPreviousClose,
			DayHigh:          q.RegularMarketDayHigh,
			DayLow:           q.RegularMarketDayLow,
			MarketCap:        q.MarketCap,
			Volume:           int64(q.RegularMarketVolume),
			FiftyTwoWeekHigh: q.FiftyTwoWeekHigh,
			FiftyTwoWeekLow:  q.FiftyTwoWeekLow,
			FetchedAt:        time.Now(),
		}
		return nil
	})
	if err != nil {
		return Marker(fmt.Sprintf("Error fetching current price for %s: %v", symbol, err))
	}
	if snap.Price == 0 {
		return Marker(fmt.Sprintf("Could not retrieve data for %s. Please check the symbol.", symbol))
	}

	yc.cache.Set("yahoo", "quote", ySymbol, snap)

	return OK(FormatSnapshot(symbol, ySymbol, snap))
}

// History fetches daily OHLCV bars over the quantized window and renders the
// derived statistics. An empty series or provider failure becomes a marker.
func (yc *YahooClient) History(symbol string, days int) FetchResult {
	if err := ValidateSymbol(symbol); err != nil {
		return Marker(fmt.Sprintf("Error fetching historical prices for %s: %v", symbol, err))
	}

	symbol = NormalizeSymbol(symbol)
	ySymbol := YahooSymbol(symbol)
	days = ClampDays(days)
	window := QuantizeWindow(days)

	cacheKey := map[string]interface{}{"symbol": ySymbol, "window": window}
	var series []*MarketData
	if !yc.cache.Get("yahoo", "historical", cacheKey, &series) {
		var err error
		series, err = yc.fetchDailyBars(ySymbol, window)
		if err != nil {
			return Marker(fmt.Sprintf("Error fetching historical prices for %s: %v", symbol, err))
		}
		yc.cache.Set("yahoo", "historical", cacheKey, series)
	}

	if len(series) == 0 {
		return Marker(fmt.Sprintf("No historical data found for %s (%s)", symbol, ySymbol))
	}

	metrics := ComputeMetrics(series)
	return OK(FormatHistory(symbol, days, metrics))
}

func (yc *YahooClient) fetchDailyBars(ySymbol string, windowDays int) ([]*MarketData, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -windowDays)

	var result []*MarketData
	err := WithRetry(yc.retry, func() error {
		params := &chart.Params{
			Symbol:   ySymbol,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)

		result = make([]*MarketData, 0)
		for iter.Next() {
			bar := iter.Bar()
			result = append(result, &MarketData{
				Symbol:    ySymbol,
				Date:      time.Unix(int64(bar.Timestamp), 0),
				Open:      bar.Open,
				High:      bar.High,
				Low:       bar.Low,
				Close:     bar.Close,
				AdjClose:  bar.AdjClose,
				Volume:    int64(bar.Volume),
				Timestamp: time.Now(),
			})
		}

		if err := iter.Err(); err != nil {
			return fmt.Errorf("get historical data for %s: %w", ySymbol, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
