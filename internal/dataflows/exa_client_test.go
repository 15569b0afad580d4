package dataflows

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExaClient(t *testing.T, apiKey, baseURL string) *ExaClient {
	t.Helper()
	return &ExaClient{
		client:  resty.New().SetTimeout(5 * time.Second),
		cache:   NewCacheManager(t.TempDir(), time.Minute, false),
		retry:   &RetryConfig{MaxRetries: 0, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1},
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

func TestNewsMissingCredential(t *testing.T) {
	ec := newTestExaClient(t, "", "http://127.0.0.1:0")

	result := ec.News("BTC", 5)

	assert.True(t, result.Degraded)
	assert.Contains(t, result.Text, "EXA_API_KEY not found")
}

func TestNewsSuccess(t *testing.T) {
	var gotBody exaSearchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"title": "ETH upgrade ships", "url": "https://example.com/1", "highlights": []string{"upgrade live"}},
				{"title": "Staking inflows rise", "url": "https://example.com/2"},
			},
		})
	}))
	defer server.Close()

	ec := newTestExaClient(t, "test-key", server.URL)
	result := ec.News("eth", 5)

	require.False(t, result.Degraded)
	assert.Equal(t, "ETH cryptocurrency news", gotBody.Query)
	assert.Equal(t, 5, gotBody.NumResults)
	assert.Contains(t, result.Text, "1. ETH upgrade ships")
	assert.Contains(t, result.Text, "   upgrade live")
	assert.Contains(t, result.Text, "2. Staking inflows rise")
	assert.Contains(t, result.Text, "URL: https://example.com/2")
}

func TestNewsCountClamped(t *testing.T) {
	var gotBody exaSearchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"title": "headline", "url": "https://example.com"},
			},
		})
	}))
	defer server.Close()

	ec := newTestExaClient(t, "test-key", server.URL)

	ec.News("BTC", 50)
	assert.Equal(t, 10, gotBody.NumResults)

	ec.News("BTC", 0)
	assert.Equal(t, 1, gotBody.NumResults)
}

func TestNewsZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}})
	}))
	defer server.Close()

	ec := newTestExaClient(t, "test-key", server.URL)
	result := ec.News("BTC", 5)

	assert.True(t, result.Degraded)
	assert.Contains(t, result.Text, "No recent news found on BTC")
}

func TestNewsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	ec := newTestExaClient(t, "bad-key", server.URL)
	result := ec.News("BTC", 5)

	assert.True(t, result.Degraded)
	assert.Contains(t, result.Text, "Error fetching news for BTC")
}
