package port

import "docqa/internal/domain"

// Retriever defines the interface for ranked search over an index.
type Retriever interface {
	// Retrieve returns at most topK chunks ordered by decreasing relevance.
	Retrieve(store IndexStore, question string, topK int) ([]domain.ScoredChunk, error)
}
