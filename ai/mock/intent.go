package mock

import (
	"context"
	"strings"

	"github.com/foundrly/matchcore/ai"
)

// MockIntentExtractor is a test double for ai.IntentExtractor.
// It allows custom behavior injection via function fields.
type MockIntentExtractor struct {
	// ExtractIntentFunc is called by ExtractIntent if set.
	// If nil, uses default keyword-scanning behavior.
	ExtractIntentFunc func(ctx context.Context, query string, caller ai.CallerContext) (*ai.ExtractedIntent, error)

	callCount int
}

// NewMockIntentExtractor creates a mock intent extractor with default behavior.
func NewMockIntentExtractor() *MockIntentExtractor {
	return &MockIntentExtractor{}
}

// ExtractIntent extracts a naive intent: any collaboration name appearing in
// the query wins, and capitalized tokens become required skills.
func (m *MockIntentExtractor) ExtractIntent(ctx context.Context, query string, caller ai.CallerContext) (*ai.ExtractedIntent, error) {
	m.callCount++

	if m.ExtractIntentFunc != nil {
		return m.ExtractIntentFunc(ctx, query, caller)
	}

	lower := strings.ToLower(query)
	collaboration := "other"
	for _, name := range ai.CollaborationNames {
		if strings.Contains(lower, name) {
			collaboration = name
			break
		}
	}

	var required []string
	for _, tok := range strings.Fields(query) {
		if tok != "" && tok[0] >= 'A' && tok[0] <= 'Z' {
			required = append(required, strings.Trim(tok, ".,!?"))
		}
	}

	return &ai.ExtractedIntent{
		RequiredSkills: required,
		Collaboration:  collaboration,
	}, nil
}

// CallCount returns the number of times ExtractIntent was called.
func (m *MockIntentExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockIntentExtractor) Reset() {
	m.callCount = 0
	m.ExtractIntentFunc = nil
}
