package retrieval

import (
	"github.com/subham11/farmer-advisor-go/core"
)

// New builds the Retriever the pipeline should use: a SolrRetriever when
// enabled, a NoOpRetriever otherwise.
func New(cfg core.RetrievalConfig, cbConfig core.CircuitBreakerConfig, logger core.Logger) Retriever {
	if !cfg.Enabled || cfg.SolrURL == "" {
		return NoOpRetriever{}
	}
	return NewSolrRetriever(cfg.SolrURL, cfg.Collection, cfg.Timeout, cbConfig, logger)
}
