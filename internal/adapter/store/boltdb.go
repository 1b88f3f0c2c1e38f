package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"docqa/internal/domain"
)

var (
	bucketChunks = []byte("chunks")
	bucketTerms  = []byte("terms")
	bucketStats  = []byte("stats")
	keyStats     = []byte("corpus_stats")
)

// BoltStore persists one index (a named chunk collection) in a single bolt
// file. Postings and corpus stats are maintained in the same transaction as
// the chunk they belong to.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketChunks, bucketTerms, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type chunkRecord struct {
	Name    string   `json:"name"`
	Content string   `json:"content"`
	Tokens  []string `json:"tokens"`
}

type statsRecord struct {
	TotalChunks int     `json:"total_chunks"`
	TotalTokens int     `json:"total_tokens"`
	AvgChunkLen float64 `json:"avg_chunk_len"`
}

func (s *BoltStore) PutChunk(chunk domain.Chunk) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		rec := chunkRecord{
			Name:    chunk.Name,
			Content: chunk.Content,
			Tokens:  chunk.Tokens,
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketChunks).Put([]byte(chunk.ID), data); err != nil {
			return err
		}

		tf := make(map[string]int, len(chunk.Tokens))
		for _, tok := range chunk.Tokens {
			tf[tok]++
		}
		for term, freq := range tf {
			if err := putPosting(tx, term, chunk.ID, freq); err != nil {
				return err
			}
		}

		return adjustStats(tx, 1, len(chunk.Tokens))
	})
}

func (s *BoltStore) GetChunk(id string) (domain.Chunk, error) {
	var chunk domain.Chunk
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketChunks).Get([]byte(id))
		if data == nil {
			return domain.ErrNotFound
		}
		var rec chunkRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		chunk = domain.Chunk{
			ID:      id,
			Name:    rec.Name,
			Content: rec.Content,
			Tokens:  rec.Tokens,
		}
		return nil
	})
	return chunk, err
}

func (s *BoltStore) DeleteChunk(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketChunks).Get([]byte(id))
		if data == nil {
			return nil
		}
		var rec chunkRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}

		seen := make(map[string]struct{}, len(rec.Tokens))
		for _, tok := range rec.Tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			if err := dropPosting(tx, tok, id); err != nil {
				return err
			}
		}

		if err := tx.Bucket(bucketChunks).Delete([]byte(id)); err != nil {
			return err
		}
		return adjustStats(tx, -1, -len(rec.Tokens))
	})
}

func (s *BoltStore) ListChunks() ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketChunks).ForEach(func(k, v []byte) error {
			var rec chunkRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			chunks = append(chunks, domain.Chunk{
				ID:      string(k),
				Name:    rec.Name,
				Content: rec.Content,
				Tokens:  rec.Tokens,
			})
			return nil
		})
	})
	return chunks, err
}

func (s *BoltStore) GetPostings(term string) ([]domain.Posting, error) {
	var postings []domain.Posting
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTerms).Get([]byte(term))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &postings)
	})
	return postings, err
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil
		}
		var rec statsRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		stats = domain.Stats{
			TotalChunks: rec.TotalChunks,
			AvgChunkLen: rec.AvgChunkLen,
		}
		return nil
	})
	return stats, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func putPosting(tx *bbolt.Tx, term, chunkID string, tf int) error {
	b := tx.Bucket(bucketTerms)

	var postings []domain.Posting
	if existing := b.Get([]byte(term)); existing != nil {
		if err := json.Unmarshal(existing, &postings); err != nil {
			return err
		}
	}
	postings = append(postings, domain.Posting{ChunkID: chunkID, TF: tf})

	data, err := json.Marshal(postings)
	if err != nil {
		return err
	}
	return b.Put([]byte(term), data)
}

func dropPosting(tx *bbolt.Tx, term, chunkID string) error {
	b := tx.Bucket(bucketTerms)

	existing := b.Get([]byte(term))
	if existing == nil {
		return nil
	}
	var postings []domain.Posting
	if err := json.Unmarshal(existing, &postings); err != nil {
		return err
	}

	kept := postings[:0]
	for _, p := range postings {
		if p.ChunkID != chunkID {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return b.Delete([]byte(term))
	}

	data, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	return b.Put([]byte(term), data)
}

func adjustStats(tx *bbolt.Tx, chunkDelta, tokenDelta int) error {
	b := tx.Bucket(bucketStats)

	var rec statsRecord
	if existing := b.Get(keyStats); existing != nil {
		if err := json.Unmarshal(existing, &rec); err != nil {
			return err
		}
	}

	rec.TotalChunks += chunkDelta
	rec.TotalTokens += tokenDelta
	if rec.TotalChunks < 0 {
		rec.TotalChunks = 0
	}
	if rec.TotalTokens < 0 {
		rec.TotalTokens = 0
	}
	if rec.TotalChunks > 0 {
		rec.AvgChunkLen = float64(rec.TotalTokens) / float64(rec.TotalChunks)
	} else {
		rec.AvgChunkLen = 0
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return b.Put(keyStats, data)
}
