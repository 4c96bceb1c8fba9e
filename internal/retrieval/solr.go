package retrieval

import (
	"context"
	"fmt"
	"time"

	solr "github.com/stevenferrer/solr-go"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/resilience"
)

// SolrRetriever queries an Apache Solr collection over its JSON query API.
type SolrRetriever struct {
	client     solr.Client
	collection string
	cb         *resilience.CircuitBreaker
	retry      *resilience.RetryConfig
	logger     core.Logger
}

// NewSolrRetriever builds a SolrRetriever against baseURL/collection.
func NewSolrRetriever(baseURL, collection string, timeout time.Duration, cbConfig core.CircuitBreakerConfig, logger core.Logger) *SolrRetriever {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &SolrRetriever{
		client:     solr.NewJSONClient(baseURL),
		collection: collection,
		cb:         resilience.NewCircuitBreaker("solr_retriever", cbConfig, logger),
		retry:      resilience.DefaultRetryConfig(),
		logger:     logger,
	}
}

// Retrieve runs a standard Solr query restricted to limit rows, converting
// every returned document into the adapter's generic Document shape. Any
// failure degrades to an empty result rather than propagating the error,
// since retrieval only enriches the LLM prompt and never gates a response.
func (s *SolrRetriever) Retrieve(ctx context.Context, query string, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 5
	}

	var docs []Document
	err := resilience.RetryWithCircuitBreaker(ctx, s.retry, s.cb, func() error {
		resp, err := s.client.Query(ctx, s.collection, solr.M{
			"query": query,
			"limit": limit,
		})
		if err != nil {
			return fmt.Errorf("%w: solr query: %v", core.ErrUpstreamUnavailable, err)
		}

		docs = make([]Document, 0, len(resp.Response.Docs))
		for _, raw := range resp.Response.Docs {
			doc := Document{Metadata: map[string]interface{}(raw)}
			if id, ok := raw["id"].(string); ok {
				doc.ID = id
			}
			if score, ok := raw["score"].(float64); ok {
				doc.Score = score
			}
			docs = append(docs, doc)
		}
		return nil
	})

	if err != nil {
		s.logger.Warn("retrieval failed", map[string]interface{}{"query": query, "error": err.Error()})
		return nil, nil
	}
	return docs, nil
}
