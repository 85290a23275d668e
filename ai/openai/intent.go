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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/foundrly/matchcore/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// IntentExtractor implements ai.IntentExtractor using OpenAI-compatible
// chat APIs.
type IntentExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// intentResponse is an internal type used for JSON unmarshaling.
// It matches the structure requested from the LLM.
type intentResponse struct {
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Collaboration   string   `json:"collaboration"`
	Location        string   `json:"location"`
}

// newIntentExtractor is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newIntentExtractor(config *ai.Config) (*IntentExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.IntentHost),
		openai.WithToken("none"),
		openai.WithModel(config.IntentModel),
	)
	if err != nil {
		return nil, err
	}

	return &IntentExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-intent"),
	}, nil
}

// NewIntentExtractor creates a new intent extractor using the provided
// configuration.
//
// Returns ai.IntentExtractor interface to enforce abstraction.
func NewIntentExtractor(config *ai.Config) (ai.IntentExtractor, error) {
	return newIntentExtractor(config)
}

// ExtractIntent extracts structured retrieval parameters from a free-text
// query using an LLM. Malformed output is repaired once and then surfaced
// as an error — no retried calls, so latency stays bounded and the caller's
// keyword fallback takes over.
func (e *IntentExtractor) ExtractIntent(ctx context.Context, query string, caller ai.CallerContext) (*ai.ExtractedIntent, error) {
	query = scrubString(query)

	systemPrompt := buildIntentPrompt(caller)
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		e.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from model")
		return nil, ErrEmptyResponse
	}

	// Strip markdown code fences if present
	responseText := strings.TrimSpace(response.Choices[0].Content)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	// Try to repair common JSON issues
	responseText = repairJSON(responseText)

	var result intentResponse
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		e.logger.Warn("error parsing intent response", "response", responseText, "err", err)
		return nil, err
	}

	collaboration := strings.ToLower(strings.TrimSpace(result.Collaboration))
	if !slices.Contains(ai.CollaborationNames, collaboration) {
		e.logger.Debug("unrecognized collaboration label, defaulting", "label", collaboration)
		collaboration = "other"
	}

	extracted := &ai.ExtractedIntent{
		RequiredSkills:  dedupeSkills(result.RequiredSkills),
		PreferredSkills: dedupeSkills(result.PreferredSkills),
		Collaboration:   collaboration,
		LocationHint:    strings.TrimSpace(result.Location),
	}

	e.logger.Debug("extracted intent",
		"required", len(extracted.RequiredSkills),
		"preferred", len(extracted.PreferredSkills),
		"collaboration", extracted.Collaboration)

	return extracted, nil
}

// dedupeSkills trims, drops empties, and removes case-insensitive duplicates
// while preserving order.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
