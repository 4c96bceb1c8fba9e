// Package retrieval adapts an external document index into the advisory
// pipeline's optional context-enrichment step. It never blocks the
// pipeline: a disabled or failing index degrades to an empty result set.
package retrieval

import "context"

// Document is one retrieved record, kept deliberately generic so a caller
// can read whichever metadata fields its index happens to populate.
type Document struct {
	ID       string
	Score    float64
	Metadata map[string]interface{}
}

// Retriever looks up documents relevant to query. Implementations must
// never return an error that aborts the caller's request; a failing or
// disabled index should be represented by a (nil, nil) or empty result.
type Retriever interface {
	Retrieve(ctx context.Context, query string, limit int) ([]Document, error)
}
