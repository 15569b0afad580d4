package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/dyike/CoinScope/internal/utils"
	pkgutils "github.com/dyike/CoinScope/pkg/utils"
)

const disclaimer = "This report is for informational purposes only and does not constitute financial advice."

// ReportWriter synthesizes the analyses into a markdown report and persists
// it under the reports directory.
type ReportWriter struct {
	model      ChatGenerator
	reportsDir string
	log        zerolog.Logger
	now        func() time.Time
}

func NewReportWriter(model ChatGenerator, reportsDir string, log zerolog.Logger) *ReportWriter {
	return &ReportWriter{
		model:      model,
		reportsDir: reportsDir,
		log:        log.With().Str("component", "report_writer").Logger(),
		now:        time.Now,
	}
}

// Generate combines both analyses and the request parameters into the final
// markdown document. The footer (timestamp, timeframe, focus, disclaimer) is
// appended here rather than requested from the model so it is always present
// and exact. A model failure propagates as a terminal error.
func (w *ReportWriter) Generate(ctx context.Context, req AnalysisRequest, newsAnalysis, priceAnalysis string) (string, error) {
	systemPrompt, err := utils.LoadPrompt("report_writer")
	if err != nil {
		return "", fmt.Errorf("load report writer prompt: %w", err)
	}

	userContent := fmt.Sprintf(
		"Generate a report for %s (timeframe: %d days, focus: %s):\n\nPRICE ANALYSIS:\n%s\n\nNEWS ANALYSIS:\n%s\n",
		req.Symbol, req.Days, req.Focus, priceAnalysis, newsAnalysis)

	resp, err := w.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userContent),
	})
	if err != nil {
		return "", fmt.Errorf("report synthesis for %s: %w", req.Symbol, err)
	}

	footer := fmt.Sprintf("\n\n---\n*Report generated on %s | Timeframe: %d days | Focus: %s*\n*%s*\n",
		w.now().UTC().Format("2006-01-02 15:04 UTC"), req.Days, req.Focus, disclaimer)

	return resp.Content + footer, nil
}

// Save writes the report under the reports directory as
// <SYMBOL>_report_<YYYYMMDD_HHMMSS>.md and returns the file path. The
// second-granularity timestamp keeps filenames unique per run.
func (w *ReportWriter) Save(content, symbol string) (string, error) {
	fileName := fmt.Sprintf("%s_report_%s.md", symbol, w.now().UTC().Format("20060102_150405"))

	path, err := pkgutils.WriteMarkdown(w.reportsDir, fileName, content)
	if err != nil {
		return "", err
	}

	w.log.Info().Str("path", path).Msg("report saved")
	return path, nil
}
