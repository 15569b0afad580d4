package agents

import (
	"context"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/dyike/CoinScope/internal/dataflows"
)

// fakeModel is a ChatGenerator test double. It routes on the system message
// content so the concurrent analyst stages stay deterministic, and counts
// calls so tests can assert that degraded stages skip delegation.
type fakeModel struct {
	mu     sync.Mutex
	calls  int
	inputs [][]*schema.Message
	// routes maps a substring of the system message to the reply content.
	routes map[string]string
	// reply is used when no route matches.
	reply string
	err   error
}

func (f *fakeModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.inputs = append(f.inputs, input)

	if f.err != nil {
		return nil, f.err
	}

	if len(input) > 0 && input[0].Role == schema.System {
		for needle, content := range f.routes {
			if strings.Contains(input[0].Content, needle) {
				return schema.AssistantMessage(content, nil), nil
			}
		}
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeModel) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// lastUserContent returns the user message of the most recent call.
func (f *fakeModel) lastUserContent() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.inputs) == 0 {
		return ""
	}
	input := f.inputs[len(f.inputs)-1]
	for _, msg := range input {
		if msg.Role == schema.User {
			return msg.Content
		}
	}
	return ""
}

// fakeNewsSource returns a fixed fetch result.
type fakeNewsSource struct {
	result dataflows.FetchResult
}

func (f *fakeNewsSource) News(symbol string, count int) dataflows.FetchResult {
	return f.result
}

// fakeMarketSource returns fixed snapshot and history results.
type fakeMarketSource struct {
	snapshot dataflows.FetchResult
	history  dataflows.FetchResult
}

func (f *fakeMarketSource) Snapshot(symbol string) dataflows.FetchResult {
	return f.snapshot
}

func (f *fakeMarketSource) History(symbol string, days int) dataflows.FetchResult {
	return f.history
}
