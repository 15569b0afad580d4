// Package cli provides the command-line interface for CoinScope
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dyike/CoinScope/config"
	"github.com/dyike/CoinScope/internal/agents"
	"github.com/dyike/CoinScope/internal/dataflows"
)

const version = "1.0.0"

// NewRootCmd builds the coinscope command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coinscope",
		Short: "AI-powered cryptocurrency analysis agent",
		Long: `CoinScope answers free-form questions about a cryptocurrency by
extracting structured requirements, fetching news and price data, and
synthesizing a markdown research report.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ShowBanner()
			query, err := PromptForQuery()
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), query)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(), newVersionCmd())
	return rootCmd
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <query>",
		Short: "Run a single analysis for a free-form query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CoinScope version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("coinscope v%s\n", version)
		},
	}
}

func runSession(ctx context.Context, query string) error {
	cfg := config.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	log := newLogger(cfg)

	pipeline, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}

	ShowProgress("Processing your request...")
	session, err := pipeline.Run(ctx, query)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	ShowReport(session)
	return nil
}

func buildPipeline(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*agents.Pipeline, error) {
	model, err := agents.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	exa := dataflows.NewExaClient(cfg)
	yahoo := dataflows.NewYahooClient(cfg)

	communicator := agents.NewCommunicator(model, log)
	newsAnalyst := agents.NewNewsAnalyst(model, exa, cfg.NewsCount, log)
	priceAnalyst := agents.NewPriceAnalyst(model, yahoo, log)
	reportWriter := agents.NewReportWriter(model, cfg.ReportsDir, log)

	return agents.NewPipeline(communicator, newsAnalyst, priceAnalyst, reportWriter, log), nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
