package agents

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/dyike/CoinScope/internal/utils"
)

// Communicator extracts structured analysis requirements from free-form
// user input.
type Communicator struct {
	model ChatGenerator
	log   zerolog.Logger
}

func NewCommunicator(model ChatGenerator, log zerolog.Logger) *Communicator {
	return &Communicator{
		model: model,
		log:   log.With().Str("component", "communicator").Logger(),
	}
}

var errNoJSONObject = errors.New("no JSON object in model output")

type extractedRequest struct {
	Cryptocurrency string `json:"cryptocurrency"`
	Days           int    `json:"days"`
	Focus          string `json:"focus"`
}

// GatherRequirements parses user input into an AnalysisRequest. Any failure
// of the model call or of output parsing yields the fixed fallback request;
// this boundary never returns an error.
func (c *Communicator) GatherRequirements(ctx context.Context, userInput string) AnalysisRequest {
	systemPrompt, err := utils.LoadPrompt("communicator")
	if err != nil {
		c.log.Error().Err(err).Msg("load communicator prompt")
		return DefaultRequest()
	}

	resp, err := c.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userInput),
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("requirement extraction failed, using defaults")
		return DefaultRequest()
	}

	extracted, err := parseExtraction(resp.Content)
	if err != nil {
		c.log.Warn().Err(err).Str("output", resp.Content).
			Msg("unparseable extraction output, using defaults")
		return DefaultRequest()
	}

	req := AnalysisRequest{
		Symbol: extracted.Cryptocurrency,
		Days:   extracted.Days,
		Focus:  extracted.Focus,
	}.normalized()

	c.log.Debug().Str("symbol", req.Symbol).Int("days", req.Days).
		Str("focus", req.Focus).Msg("requirements extracted")
	return req
}

// parseExtraction recovers a JSON object from model output that may carry
// surrounding prose or code fences.
func parseExtraction(content string) (extractedRequest, error) {
	var extracted extractedRequest

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return extracted, errNoJSONObject
	}

	if err := json.Unmarshal([]byte(content[start:end+1]), &extracted); err != nil {
		return extracted, err
	}
	return extracted, nil
}
