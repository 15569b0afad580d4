package agents

import "github.com/dyike/CoinScope/internal/dataflows"

// AnalysisRequest holds the structured parameters extracted from the user's
// query. Immutable for the rest of the session.
type AnalysisRequest struct {
	Symbol string `json:"symbol"`
	Days   int    `json:"days"`
	Focus  string `json:"focus"`
}

const (
	defaultSymbol = "BTC"
	defaultDays   = 30
	defaultFocus  = "general overview"
)

// DefaultRequest is the fixed fallback used whenever extraction fails.
func DefaultRequest() AnalysisRequest {
	return AnalysisRequest{
		Symbol: defaultSymbol,
		Days:   defaultDays,
		Focus:  defaultFocus,
	}
}

func (r AnalysisRequest) normalized() AnalysisRequest {
	if r.Symbol == "" {
		r.Symbol = defaultSymbol
	}
	r.Symbol = dataflows.NormalizeSymbol(r.Symbol)
	if r.Days == 0 {
		r.Days = defaultDays
	}
	r.Days = dataflows.ClampDays(r.Days)
	if r.Focus == "" {
		r.Focus = defaultFocus
	}
	return r
}
