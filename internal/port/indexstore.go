package port

import "docqa/internal/domain"

type IndexStore interface {
	PutChunk(chunk domain.Chunk) error

	GetChunk(id string) (domain.Chunk, error)

	DeleteChunk(id string) error

	ListChunks() ([]domain.Chunk, error)

	GetPostings(term string) ([]domain.Posting, error)

	GetStats() (domain.Stats, error)

	Close() error
}

// Registry resolves an index name to its store, creating the index on first
// reference. Repeated calls with the same name return the same handle.
type Registry interface {
	Get(indexName string) (IndexStore, error)

	Close() error
}
