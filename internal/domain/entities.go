package domain

import (
	"errors"
	"fmt"
)

// Chunk is a stored unit of searchable text. Name and Content are separate
// fields; Tokens carries the analyzed terms of both so retrieval still sees
// the display name as a hint.
type Chunk struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Content string   `json:"content"`
	Tokens  []string `json:"-"`
}

// ScoredChunk is a chunk paired with its retrieval score.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Posting records one chunk's term frequency for an indexed term.
type Posting struct {
	ChunkID string
	TF      int
}

// Stats holds corpus-level counters used by BM25 scoring.
type Stats struct {
	TotalChunks int
	AvgChunkLen float64
}

// ErrNotFound reports a chunk id absent from the index.
var ErrNotFound = errors.New("document not found")

// IngestErrKind distinguishes the failure classes of an ingestion request.
type IngestErrKind int

const (
	// IngestErrIO covers failures reading or writing raw files.
	IngestErrIO IngestErrKind = iota
	// IngestErrConvert covers failures turning a raw file into chunks.
	IngestErrConvert
)

// IngestError wraps an ingestion failure with its kind so callers can tell
// retryable I/O problems from unconvertible input.
type IngestError struct {
	Kind IngestErrKind
	Path string
	Err  error
}

func (e *IngestError) Error() string {
	if e.Kind == IngestErrConvert {
		return fmt.Sprintf("convert %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }
