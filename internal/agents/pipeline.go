package agents

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session is the outcome of one pipeline run.
type Session struct {
	ID            string
	Request       AnalysisRequest
	NewsAnalysis  string
	PriceAnalysis string
	Report        string
	ReportPath    string
	StartedAt     time.Time
	Duration      time.Duration
}

// Pipeline chains the four agent stages: requirement extraction, the two
// independent analysts (run concurrently), and report synthesis. Each
// session owns its data exclusively; nothing is shared across runs.
type Pipeline struct {
	communicator *Communicator
	newsAnalyst  *NewsAnalyst
	priceAnalyst *PriceAnalyst
	reportWriter *ReportWriter
	log          zerolog.Logger
}

func NewPipeline(communicator *Communicator, newsAnalyst *NewsAnalyst, priceAnalyst *PriceAnalyst, reportWriter *ReportWriter, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		communicator: communicator,
		newsAnalyst:  newsAnalyst,
		priceAnalyst: priceAnalyst,
		reportWriter: reportWriter,
		log:          log.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes a full analysis session for the user's query. Extraction
// never fails (it falls back to defaults); an analyst or synthesis model
// failure is terminal and no partial report is persisted.
func (p *Pipeline) Run(ctx context.Context, userInput string) (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}

	session.Request = p.communicator.GatherRequirements(ctx, userInput)
	p.log.Info().Str("session", session.ID).Str("symbol", session.Request.Symbol).
		Int("days", session.Request.Days).Str("focus", session.Request.Focus).
		Msg("starting analysis")

	// The two analysts have no data dependency on each other; fork and join
	// before synthesis.
	var (
		wg       sync.WaitGroup
		newsErr  error
		priceErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		session.NewsAnalysis, newsErr = p.newsAnalyst.Analyze(ctx, session.Request.Symbol)
	}()
	go func() {
		defer wg.Done()
		session.PriceAnalysis, priceErr = p.priceAnalyst.Analyze(ctx, session.Request.Symbol, session.Request.Days)
	}()
	wg.Wait()

	if newsErr != nil {
		return nil, fmt.Errorf("news analysis stage: %w", newsErr)
	}
	if priceErr != nil {
		return nil, fmt.Errorf("price analysis stage: %w", priceErr)
	}

	report, err := p.reportWriter.Generate(ctx, session.Request, session.NewsAnalysis, session.PriceAnalysis)
	if err != nil {
		return nil, fmt.Errorf("report synthesis stage: %w", err)
	}
	session.Report = report

	path, err := p.reportWriter.Save(report, session.Request.Symbol)
	if err != nil {
		return nil, fmt.Errorf("persist report: %w", err)
	}
	session.ReportPath = path
	session.Duration = time.Since(session.StartedAt)

	p.log.Info().Str("session", session.ID).Dur("duration", session.Duration).
		Str("path", path).Msg("analysis complete")
	return session, nil
}
