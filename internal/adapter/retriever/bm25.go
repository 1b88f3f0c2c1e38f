package retriever

import (
	"math"
	"sort"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// BM25Retriever ranks an index's chunks against a query using BM25 over the
// store's term postings.
type BM25Retriever struct {
	tokenizer port.Tokenizer
	k1        float64
	b         float64
}

func NewBM25Retriever(tokenizer port.Tokenizer, k1, b float64) *BM25Retriever {
	return &BM25Retriever{
		tokenizer: tokenizer,
		k1:        k1,
		b:         b,
	}
}

func (r *BM25Retriever) Retrieve(store port.IndexStore, question string, topK int) ([]domain.ScoredChunk, error) {
	queryTokens := r.tokenizer.Tokenize(question)
	if len(queryTokens) == 0 {
		return nil, nil
	}

	stats, err := store.GetStats()
	if err != nil {
		return nil, err
	}
	if stats.TotalChunks == 0 {
		return nil, nil
	}

	chunkScores := make(map[string]float64)
	chunkLengths := make(map[string]int)
	chunkCache := make(map[string]domain.Chunk)

	for _, term := range queryTokens {
		postings, err := store.GetPostings(term)
		if err != nil {
			continue
		}

		n := float64(len(postings))
		N := float64(stats.TotalChunks)
		idf := math.Log((N-n+0.5)/(n+0.5) + 1)

		for _, posting := range postings {
			if _, exists := chunkLengths[posting.ChunkID]; !exists {
				chunk, err := store.GetChunk(posting.ChunkID)
				if err != nil {
					continue
				}
				chunkLengths[posting.ChunkID] = len(chunk.Tokens)
				chunkCache[posting.ChunkID] = chunk
			}

			dl := float64(chunkLengths[posting.ChunkID])
			avgDl := stats.AvgChunkLen
			tf := float64(posting.TF)

			score := idf * (tf * (r.k1 + 1)) / (tf + r.k1*(1-r.b+r.b*dl/avgDl))
			chunkScores[posting.ChunkID] += score
		}
	}

	results := make([]domain.ScoredChunk, 0, len(chunkScores))
	for chunkID, score := range chunkScores {
		results = append(results, domain.ScoredChunk{
			Chunk: chunkCache[chunkID],
			Score: score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.ID < results[j].Chunk.ID
	})

	if len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}
