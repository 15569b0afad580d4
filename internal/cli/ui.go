package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dyike/CoinScope/internal/agents"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2).
			Width(64)

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	reportStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(1, 2)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)
)

// ShowBanner displays the welcome screen
func ShowBanner() {
	banner := fmt.Sprintf("%s\n\nExtractor → News + Price Analysts → Report Writer",
		titleStyle.Render(fmt.Sprintf("CoinScope v%s - Cryptocurrency Analysis Agent", version)))
	fmt.Println(bannerStyle.Render(banner))
	fmt.Println()
}

// ShowProgress prints a short status line
func ShowProgress(msg string) {
	fmt.Println(progressStyle.Render(msg))
}

// ShowReport renders the finished session
func ShowReport(session *agents.Session) {
	fmt.Println(reportStyle.Render(session.Report))
	fmt.Printf("\nReport saved to: %s\n", pathStyle.Render(session.ReportPath))
	fmt.Printf("Session %s finished in %s\n", session.ID, session.Duration.Round(time.Millisecond))
}
