package agents

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/dyike/CoinScope/internal/dataflows"
	"github.com/dyike/CoinScope/internal/utils"
)

// MarketSource fetches and normalizes market data for a symbol.
type MarketSource interface {
	Snapshot(symbol string) dataflows.FetchResult
	History(symbol string, days int) dataflows.FetchResult
}

// PriceAnalyst fetches current and historical price data and delegates
// technical analysis to the chat model.
type PriceAnalyst struct {
	model  ChatGenerator
	source MarketSource
	log    zerolog.Logger
}

func NewPriceAnalyst(model ChatGenerator, source MarketSource, log zerolog.Logger) *PriceAnalyst {
	return &PriceAnalyst{
		model:  model,
		source: source,
		log:    log.With().Str("component", "price_analyst").Logger(),
	}
}

// Analyze produces a prose price analysis for the symbol over the lookback
// window. When both the snapshot and the history come back degraded there is
// nothing to analyze and the model call is skipped; a model failure
// propagates as a terminal error.
func (a *PriceAnalyst) Analyze(ctx context.Context, symbol string, days int) (string, error) {
	snapshot := a.source.Snapshot(symbol)
	history := a.source.History(symbol, days)

	if snapshot.Degraded && history.Degraded {
		a.log.Warn().Str("symbol", symbol).Msg("all price fetches degraded, skipping analysis")
		return fmt.Sprintf("Could not retrieve price data for %s", symbol), nil
	}

	systemPrompt, err := utils.LoadPrompt("price_analyst")
	if err != nil {
		return "", fmt.Errorf("load price analyst prompt: %w", err)
	}

	userContent := fmt.Sprintf(
		"Analyze the following price data for %s over the last %d days:\n\nCURRENT DATA:\n%s\n\nHISTORICAL DATA:\n%s\n",
		symbol, days, snapshot.Text, history.Text)

	resp, err := a.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userContent),
	})
	if err != nil {
		return "", fmt.Errorf("price analysis for %s: %w", symbol, err)
	}

	return resp.Content, nil
}
