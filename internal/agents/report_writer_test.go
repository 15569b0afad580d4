package agents

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAppendsFooter(t *testing.T) {
	model := &fakeModel{reply: "# ETH Cryptocurrency Analysis Report\n\n## Executive Summary\nAll good."}
	w := NewReportWriter(model, t.TempDir(), zerolog.Nop())
	w.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}

	req := AnalysisRequest{Symbol: "ETH", Days: 30, Focus: "news"}
	report, err := w.Generate(context.Background(), req, "news prose", "price prose")

	require.NoError(t, err)
	assert.Contains(t, report, "# ETH Cryptocurrency Analysis Report")
	assert.Contains(t, report, "Report generated on 2026-08-30 12:00 UTC")
	assert.Contains(t, report, "Timeframe: 30 days | Focus: news")
	assert.Contains(t, report, "informational purposes only")
}

func TestGeneratePassesAnalysesToModel(t *testing.T) {
	model := &fakeModel{reply: "report body"}
	w := NewReportWriter(model, t.TempDir(), zerolog.Nop())

	req := AnalysisRequest{Symbol: "BTC", Days: 90, Focus: "price trends"}
	_, err := w.Generate(context.Background(), req, "the news analysis", "the price analysis")

	require.NoError(t, err)
	user := model.lastUserContent()
	assert.Contains(t, user, "the news analysis")
	assert.Contains(t, user, "the price analysis")
	assert.Contains(t, user, "90 days")
}

func TestSaveFilenamePattern(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	w := NewReportWriter(&fakeModel{}, dir, zerolog.Nop())

	path, err := w.Save("# report", "SOL")

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^SOL_report_\d{8}_\d{6}\.md$`), filepath.Base(path))

	// Directory is created on demand and the content lands on disk.
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# report", string(content))
}
