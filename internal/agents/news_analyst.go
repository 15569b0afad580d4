package agents

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/dyike/CoinScope/internal/dataflows"
	"github.com/dyike/CoinScope/internal/utils"
)

// NewsSource fetches and normalizes news for a symbol.
type NewsSource interface {
	News(symbol string, count int) dataflows.FetchResult
}

// NewsAnalyst fetches recent news and delegates sentiment analysis to the
// chat model.
type NewsAnalyst struct {
	model  ChatGenerator
	source NewsSource
	count  int
	log    zerolog.Logger
}

func NewNewsAnalyst(model ChatGenerator, source NewsSource, count int, log zerolog.Logger) *NewsAnalyst {
	if count < 1 {
		count = 5
	}
	return &NewsAnalyst{
		model:  model,
		source: source,
		count:  count,
		log:    log.With().Str("component", "news_analyst").Logger(),
	}
}

// Analyze produces a prose news analysis for the symbol. A degraded fetch
// short-circuits to a marker echo without spending a model call; a model
// failure propagates as a terminal error.
func (a *NewsAnalyst) Analyze(ctx context.Context, symbol string) (string, error) {
	fetched := a.source.News(symbol, a.count)
	if fetched.Degraded {
		a.log.Warn().Str("symbol", symbol).Str("marker", fetched.Text).
			Msg("news fetch degraded, skipping analysis")
		return fmt.Sprintf("No news analysis available: %s", fetched.Text), nil
	}

	systemPrompt, err := utils.LoadPrompt("news_analyst")
	if err != nil {
		return "", fmt.Errorf("load news analyst prompt: %w", err)
	}

	resp, err := a.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(fmt.Sprintf("Analyze the following news for %s:\n\n%s", symbol, fetched.Text)),
	})
	if err != nil {
		return "", fmt.Errorf("news analysis for %s: %w", symbol, err)
	}

	return resp.Content, nil
}
