package retrieval

import "context"

// NoOpRetriever is used when RetrievalConfig.Enabled is false. It always
// returns an empty result set so the orchestrator's enrichment step is a
// pure no-op rather than a branch the caller has to special-case.
type NoOpRetriever struct{}

func (NoOpRetriever) Retrieve(ctx context.Context, query string, limit int) ([]Document, error) {
	return nil, nil
}
