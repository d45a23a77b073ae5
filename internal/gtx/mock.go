package gtx

import (
	"context"
	"sync/atomic"
)

// Translator interface for mocking and dependency injection.
type Translator interface {
	Translate(ctx context.Context, text, sourceName, targetName string) (Result, error)
}

// Ensure Client implements Translator
var _ Translator = (*Client)(nil)

// MockClient for testing. Translations maps source text to canned output;
// unmapped inputs fall back to Response/Err. Safe for concurrent use.
type MockClient struct {
	Translations map[string]string
	Response     Result
	Err          error
	calls        atomic.Int64
}

func (m *MockClient) Translate(ctx context.Context, text, sourceName, targetName string) (Result, error) {
	m.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if out, ok := m.Translations[text]; ok {
		return Result{Text: out}, nil
	}
	return m.Response, m.Err
}

// Calls reports how many times Translate was invoked.
func (m *MockClient) Calls() int {
	return int(m.calls.Load())
}
