package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// PromptForQuery asks the user what to analyze.
func PromptForQuery() (string, error) {
	var query string
	prompt := &survey.Input{
		Message: "What would you like to analyze?",
		Help:    "Examples: \"What's happening with Ethereum lately, focus on news\" or \"BTC over the last 90 days\"",
	}

	err := survey.AskOne(prompt, &query, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if len(str) == 0 {
			return fmt.Errorf("query cannot be empty")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(query), nil
}
