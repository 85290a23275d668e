package intent

import "errors"

var (
	// ErrEmptyQuery is returned when the query is empty or whitespace.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrExtractorRequired is returned when no intent extractor is provided.
	ErrExtractorRequired = errors.New("intent extractor required")
)
