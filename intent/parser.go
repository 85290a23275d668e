// Copyright 2025 Foundrly
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package intent

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/foundrly/matchcore/ai"
	"github.com/foundrly/matchcore/core"
)

// DefaultTimeout bounds a single model extraction. Intent parsing sits on
// the interactive search path, so a slow model must not stall the request
// past what a user would wait for the fallback to kick in.
const DefaultTimeout = 3 * time.Second

// Parser converts free-text queries into structured search intents.
type Parser struct {
	extractor ai.IntentExtractor
	timeout   time.Duration
	logger    *slog.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithTimeout overrides the model extraction deadline.
func WithTimeout(timeout time.Duration) ParserOption {
	return func(p *Parser) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a Parser over the given intent extractor.
func NewParser(extractor ai.IntentExtractor, opts ...ParserOption) (*Parser, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	p := &Parser{
		extractor: extractor,
		timeout:   DefaultTimeout,
		logger:    slog.Default().With("component", "intent"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Parse extracts a structured intent from the query. Model failures of any
// kind degrade to the keyword heuristic; the only error a caller sees is an
// empty query.
func (p *Parser) Parse(ctx context.Context, query string, caller ai.CallerContext) (*core.SearchIntent, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	extractCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	extracted, err := p.extractor.ExtractIntent(extractCtx, query, caller)
	if err != nil {
		// Respect the caller's own cancellation; only the extraction
		// deadline and model failures fall through to the heuristic.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Warn("model extraction failed, using keyword fallback", "error", err)
		return heuristicParse(query), nil
	}

	return fromExtracted(query, extracted), nil
}

// fromExtracted converts the model's output into a SearchIntent, filling
// gaps from the heuristic where the model returned nothing usable.
func fromExtracted(query string, extracted *ai.ExtractedIntent) *core.SearchIntent {
	intent := &core.SearchIntent{
		RequiredSkills:  lowerAll(extracted.RequiredSkills),
		PreferredSkills: lowerAll(extracted.PreferredSkills),
		Collaboration:   core.ParseCollaborationType(extracted.Collaboration),
		LocationHint:    strings.TrimSpace(extracted.LocationHint),
		RawQuery:        query,
	}
	if len(intent.RequiredSkills) == 0 && len(intent.PreferredSkills) == 0 {
		intent.RequiredSkills = heuristicParse(query).RequiredSkills
	}
	if intent.LocationHint == "" {
		intent.LocationHint = extractLocation(query)
	}
	return intent
}

func lowerAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
