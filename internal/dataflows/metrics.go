package dataflows

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Trend labels derived from the period change percentage. Boundary values
// fall into the non-strong bucket, comparisons are strict.
const (
	TrendStrongUptrend   = "Strong Uptrend"
	TrendUptrend         = "Uptrend"
	TrendSideways        = "Sideways/Consolidation"
	TrendDowntrend       = "Downtrend"
	TrendStrongDowntrend = "Strong Downtrend"
)

// DerivedMetrics holds statistics computed from an OHLCV series. Recomputed
// on every analysis call, never persisted.
type DerivedMetrics struct {
	CurrentClose    float64
	StartClose      float64
	StartDate       time.Time
	PeriodChangePct float64
	TrendLabel      string
	PeriodHigh      float64
	PeriodHighDate  time.Time
	PeriodLow       float64
	PeriodLowDate   time.Time
	AvgClose        float64
	AvgVolume       float64
	SMA7            float64
	SMA30           float64
	Momentum7d      float64
	VolatilityPct   float64
}

// ComputeMetrics derives summary statistics from a chronological series.
// The series must be non-empty.
func ComputeMetrics(series []*MarketData) DerivedMetrics {
	closes := make([]float64, len(series))
	for i, bar := range series {
		closes[i], _ = bar.Close.Float64()
	}

	m := DerivedMetrics{
		CurrentClose: closes[len(closes)-1],
		StartClose:   closes[0],
		StartDate:    series[0].Date,
	}

	if m.StartClose != 0 {
		m.PeriodChangePct = (m.CurrentClose - m.StartClose) / m.StartClose * 100
	}
	m.TrendLabel = trendLabel(m.PeriodChangePct)

	m.PeriodHigh = math.Inf(-1)
	m.PeriodLow = math.Inf(1)
	var closeSum, volumeSum float64
	for _, bar := range series {
		high, _ := bar.High.Float64()
		low, _ := bar.Low.Float64()
		closeV, _ := bar.Close.Float64()
		if high > m.PeriodHigh {
			m.PeriodHigh = high
			m.PeriodHighDate = bar.Date
		}
		if low < m.PeriodLow {
			m.PeriodLow = low
			m.PeriodLowDate = bar.Date
		}
		closeSum += closeV
		volumeSum += float64(bar.Volume)
	}
	m.AvgClose = closeSum / float64(len(series))
	m.AvgVolume = volumeSum / float64(len(series))

	m.SMA7 = tailMean(closes, 7)
	m.SMA30 = tailMean(closes, 30)

	// Momentum needs two full 7-day windows; shorter series report 0.
	if len(closes) >= 14 {
		recent := mean(closes[len(closes)-7:])
		previous := mean(closes[len(closes)-14 : len(closes)-7])
		if previous != 0 {
			m.Momentum7d = (recent - previous) / previous * 100
		}
	}

	m.VolatilityPct = dailyReturnStdDev(closes)

	return m
}

func trendLabel(changePct float64) string {
	switch {
	case changePct > 10:
		return TrendStrongUptrend
	case changePct > 3:
		return TrendUptrend
	case changePct < -10:
		return TrendStrongDowntrend
	case changePct < -3:
		return TrendDowntrend
	default:
		return TrendSideways
	}
}

// tailMean averages the trailing n values, or all values when the series is
// shorter than the window.
func tailMean(values []float64, n int) float64 {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return mean(values)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// dailyReturnStdDev computes the sample standard deviation of day-over-day
// percentage returns. Deliberately not annualized.
func dailyReturnStdDev(closes []float64) float64 {
	var returns []float64
	for i := 1; i < len(closes); i++ {
		if closes[i-1] != 0 {
			returns = append(returns, (closes[i]-closes[i-1])/closes[i-1]*100)
		}
	}
	if len(returns) < 2 {
		return 0
	}
	avg := mean(returns)
	var sumSq float64
	for _, r := range returns {
		sumSq += (r - avg) * (r - avg)
	}
	return math.Sqrt(sumSq / float64(len(returns)-1))
}

// FormatHistory renders the derived metrics as the text block consumed by
// the price analyst. Monetary values carry 4 decimals, percentages 2 with
// explicit sign.
func FormatHistory(symbol string, days int, m DerivedMetrics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Historical Price Analysis for %s (%d days):\n\n", symbol, days)
	fmt.Fprintf(&b, "Price Summary:\n")
	fmt.Fprintf(&b, "- Current Close:    $%s\n", money(m.CurrentClose))
	fmt.Fprintf(&b, "- Period Start:     $%s (%s)\n", money(m.StartClose), m.StartDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Period Change:    %+.2f%%\n", m.PeriodChangePct)
	fmt.Fprintf(&b, "- Trend:            %s\n\n", m.TrendLabel)

	fmt.Fprintf(&b, "OHLCV Range:\n")
	fmt.Fprintf(&b, "- Period High:      $%s (on %s)\n", money(m.PeriodHigh), m.PeriodHighDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Period Low:       $%s (on %s)\n", money(m.PeriodLow), m.PeriodLowDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Average Close:    $%s\n", money(m.AvgClose))
	fmt.Fprintf(&b, "- Average Volume:   $%s\n\n", amount(m.AvgVolume))

	fmt.Fprintf(&b, "Moving Averages:\n")
	fmt.Fprintf(&b, "- 7-day SMA:        $%s\n", money(m.SMA7))
	fmt.Fprintf(&b, "- 30-day SMA:       $%s\n\n", money(m.SMA30))

	fmt.Fprintf(&b, "Momentum & Volatility:\n")
	fmt.Fprintf(&b, "- 7-day Momentum:   %+.2f%%\n", m.Momentum7d)
	fmt.Fprintf(&b, "- Daily Volatility: %.2f%%\n", m.VolatilityPct)

	return b.String()
}

// FormatSnapshot renders a point-in-time quote as the text block consumed by
// the price analyst.
func FormatSnapshot(symbol, providerSymbol string, s Snapshot) string {
	change24h := 0.0
	if s.PrevClose != 0 {
		change24h = (s.Price - s.PrevClose) / s.PrevClose * 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current Market Data for %s (%s):\n\n", symbol, providerSymbol)
	fmt.Fprintf(&b, "Price:          $%s\n", money(s.Price))
	fmt.Fprintf(&b, "24h Change:     %+.2f%%\n", change24h)
	fmt.Fprintf(&b, "24h High:       $%s\n", money(s.DayHigh))
	fmt.Fprintf(&b, "24h Low:        $%s\n\n", money(s.DayLow))
	fmt.Fprintf(&b, "Market Cap:     $%s\n", amount(float64(s.MarketCap)))
	fmt.Fprintf(&b, "24h Volume:     $%s\n\n", amount(float64(s.Volume)))
	fmt.Fprintf(&b, "52-Week High:   $%s\n", money(s.FiftyTwoWeekHigh))
	fmt.Fprintf(&b, "52-Week Low:    $%s\n", money(s.FiftyTwoWeekLow))

	return b.String()
}

// FormatNews renders search results as a numbered list, preserving the
// provider's relevance order.
func FormatNews(symbol string, articles []NewsArticle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recent news for %s:\n\n", symbol)
	for i, article := range articles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, article.Title)
		if len(article.Highlights) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(article.Highlights, " "))
		}
		fmt.Fprintf(&b, "   URL: %s\n\n", article.URL)
	}
	return b.String()
}

func money(v float64) string {
	return humanize.FormatFloat("#,###.####", v)
}

func amount(v float64) string {
	return humanize.FormatFloat("#,###.", v)
}
