package memstore

import (
	"sort"
	"sync"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// MemoryStore is an in-memory IndexStore used by tests and as a
// non-persistent backend.
type MemoryStore struct {
	mu       sync.RWMutex
	chunks   map[string]domain.Chunk
	postings map[string][]domain.Posting
	tokens   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		chunks:   make(map[string]domain.Chunk),
		postings: make(map[string][]domain.Posting),
	}
}

func (s *MemoryStore) PutChunk(chunk domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks[chunk.ID] = chunk
	s.tokens += len(chunk.Tokens)

	tf := make(map[string]int, len(chunk.Tokens))
	for _, tok := range chunk.Tokens {
		tf[tok]++
	}
	for term, freq := range tf {
		s.postings[term] = append(s.postings[term], domain.Posting{ChunkID: chunk.ID, TF: freq})
	}
	return nil
}

func (s *MemoryStore) GetChunk(id string) (domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunk, ok := s.chunks[id]
	if !ok {
		return domain.Chunk{}, domain.ErrNotFound
	}
	return chunk, nil
}

func (s *MemoryStore) DeleteChunk(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chunk, ok := s.chunks[id]
	if !ok {
		return nil
	}
	delete(s.chunks, id)
	s.tokens -= len(chunk.Tokens)

	seen := make(map[string]struct{}, len(chunk.Tokens))
	for _, tok := range chunk.Tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		kept := s.postings[tok][:0]
		for _, p := range s.postings[tok] {
			if p.ChunkID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			delete(s.postings, tok)
		} else {
			s.postings[tok] = kept
		}
	}
	return nil
}

func (s *MemoryStore) ListChunks() ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := make([]domain.Chunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		chunks = append(chunks, c)
	}
	// Stable order, matching the bolt store's key iteration.
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ID < chunks[j].ID })
	return chunks, nil
}

func (s *MemoryStore) GetPostings(term string) ([]domain.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	postings := make([]domain.Posting, len(s.postings[term]))
	copy(postings, s.postings[term])
	return postings, nil
}

func (s *MemoryStore) GetStats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.Stats{TotalChunks: len(s.chunks)}
	if stats.TotalChunks > 0 {
		stats.AvgChunkLen = float64(s.tokens) / float64(stats.TotalChunks)
	}
	return stats, nil
}

func (s *MemoryStore) Close() error { return nil }

// MemoryRegistry hands out MemoryStores keyed by index name.
type MemoryRegistry struct {
	mu     sync.Mutex
	stores map[string]*MemoryStore
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{stores: make(map[string]*MemoryStore)}
}

func (r *MemoryRegistry) Get(indexName string) (port.IndexStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.stores[indexName]; ok {
		return st, nil
	}
	st := NewMemoryStore()
	r.stores[indexName] = st
	return st, nil
}

func (r *MemoryRegistry) Close() error { return nil }
