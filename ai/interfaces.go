package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as
	// the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// CallerContext carries the caller's own attributes into intent extraction
// so implicit references ("someone like me but in design") resolve against
// the caller's profile.
type CallerContext struct {
	Skills   []string
	Goals    []string
	Location string
}

// ExtractedIntent is the raw structured output of intent extraction, before
// the intent parser normalizes it into a core.SearchIntent.
type ExtractedIntent struct {
	// RequiredSkills the candidate must have.
	RequiredSkills []string

	// PreferredSkills that are nice to have.
	PreferredSkills []string

	// Collaboration is one of the CollaborationNames values.
	Collaboration string

	// LocationHint is a city or region name, or empty.
	LocationHint string
}

// IntentExtractor extracts a structured search intent from free text.
// Implementations must be thread-safe for concurrent use.
type IntentExtractor interface {
	// ExtractIntent analyzes a free-text query, seeded with the caller's
	// own profile context, and extracts the structured retrieval
	// parameters. Returns an error on malformed model output or transport
	// failure; callers are expected to fall back to a heuristic.
	ExtractIntent(ctx context.Context, query string, caller CallerContext) (*ExtractedIntent, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// IntentExtractor returns the intent extraction service.
	// The returned IntentExtractor is safe for concurrent use.
	IntentExtractor() IntentExtractor

	// Close releases resources held by the provider and its services.
	Close() error
}
