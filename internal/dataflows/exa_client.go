package dataflows

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultExaBaseURL = "https://api.exa.ai"

// ExaClient handles news search through the Exa API
type ExaClient struct {
	client  *resty.Client
	cache   *CacheManager
	retry   *RetryConfig
	apiKey  string
	baseURL string
}

// NewExaClient creates a new Exa search client
func NewExaClient(cfg *Config) *ExaClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "exa_news")
	cache := NewCacheManager(cacheDir, 30*time.Minute, cfg.CacheEnabled)

	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("Content-Type", "application/json")

	return &ExaClient{
		client:  client,
		cache:   cache,
		retry:   DefaultRetryConfig(),
		apiKey:  cfg.ExaAPIKey,
		baseURL: defaultExaBaseURL,
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (ec *ExaClient) SetBaseURL(url string) {
	ec.baseURL = url
}

type exaSearchRequest struct {
	Query      string      `json:"query"`
	NumResults int         `json:"numResults"`
	Type       string      `json:"type"`
	Contents   exaContents `json:"contents"`
}

type exaContents struct {
	Highlights exaHighlights `json:"highlights"`
}

type exaHighlights struct {
	MaxCharacters int `json:"maxCharacters"`
}

type exaSearchResponse struct {
	Results []struct {
		Title      string   `json:"title"`
		URL        string   `json:"url"`
		Highlights []string `json:"highlights"`
	} `json:"results"`
}

// News searches for recent news about a cryptocurrency and renders the
// results as a numbered list. Count is clamped to [1, 10]. A missing
// credential, provider failure, or empty result set becomes a marker.
func (ec *ExaClient) News(symbol string, count int) FetchResult {
	if ec.apiKey == "" {
		return Marker("Error: EXA_API_KEY not found. Please add the key in .env")
	}

	symbol = NormalizeSymbol(symbol)
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}

	cacheKey := map[string]interface{}{"symbol": symbol, "count": count}
	var articles []NewsArticle
	if !ec.cache.Get("exa", "search", cacheKey, &articles) {
		var err error
		articles, err = ec.search(fmt.Sprintf("%s cryptocurrency news", symbol), count)
		if err != nil {
			return Marker(fmt.Sprintf("Error fetching news for %s: %v", symbol, err))
		}
		ec.cache.Set("exa", "search", cacheKey, articles)
	}

	if len(articles) == 0 {
		return Marker(fmt.Sprintf("No recent news found on %s", symbol))
	}

	return OK(FormatNews(symbol, articles))
}

func (ec *ExaClient) search(query string, count int) ([]NewsArticle, error) {
	body := exaSearchRequest{
		Query:      query,
		NumResults: count,
		Type:       "auto",
		Contents: exaContents{
			Highlights: exaHighlights{MaxCharacters: 4000},
		},
	}

	var parsed exaSearchResponse
	err := WithRetry(ec.retry, func() error {
		resp, err := ec.client.R().
			SetHeader("x-api-key", ec.apiKey).
			SetBody(body).
			SetResult(&parsed).
			Post(ec.baseURL + "/search")
		if err != nil {
			return fmt.Errorf("exa search request: %w", err)
		}
		if resp.IsError() {
			return fmt.Errorf("exa search returned status %d", resp.StatusCode())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	articles := make([]NewsArticle, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		articles = append(articles, NewsArticle{
			Title:      r.Title,
			URL:        r.URL,
			Highlights: r.Highlights,
		})
	}
	return articles, nil
}
