package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"

	"docqa/internal/adapter/fs"
	"docqa/internal/domain"
	"docqa/internal/port"
)

// IngestedChunk is the caller-visible summary of one written chunk.
type IngestedChunk struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// IngestUseCase normalizes raw documents into bounded word chunks and writes
// them to an index.
type IngestUseCase struct {
	registry  port.Registry
	chunker   port.Chunker
	tokenizer port.Tokenizer
	walker    *fs.Walker
}

func NewIngestUseCase(
	registry port.Registry,
	chunker port.Chunker,
	tokenizer port.Tokenizer,
	walker *fs.Walker,
) *IngestUseCase {
	return &IngestUseCase{
		registry:  registry,
		chunker:   chunker,
		tokenizer: tokenizer,
		walker:    walker,
	}
}

// Save writes one named document as a single chunk and returns its id.
// Name and content stay separate fields; the name's tokens are indexed
// alongside the content's so retrieval still scores the title.
func (u *IngestUseCase) Save(indexName, name, content string) (string, error) {
	store, err := u.registry.Get(indexName)
	if err != nil {
		return "", err
	}

	chunk := domain.Chunk{
		ID:      uuid.NewString(),
		Name:    name,
		Content: content,
		Tokens:  u.tokenizer.Tokenize(name + " " + content),
	}
	if err := store.PutChunk(chunk); err != nil {
		return "", err
	}
	return chunk.ID, nil
}

// IngestFolder converts every file under folder into chunks named after the
// file, writes them to the index, and returns one summary per chunk in
// processing order.
func (u *IngestUseCase) IngestFolder(folder, indexName string) ([]IngestedChunk, error) {
	store, err := u.registry.Get(indexName)
	if err != nil {
		return nil, err
	}

	files, err := u.walker.Walk(folder)
	if err != nil {
		return nil, &domain.IngestError{Kind: domain.IngestErrIO, Path: folder, Err: err}
	}

	out := make([]IngestedChunk, 0)
	for _, path := range files {
		chunks, err := u.ingestFile(store, path)
		if err != nil {
			return nil, err
		}
		out = append(out, chunks...)
	}
	return out, nil
}

// IngestFile converts one file into chunks and writes them to the index.
func (u *IngestUseCase) IngestFile(indexName, path string) ([]IngestedChunk, error) {
	store, err := u.registry.Get(indexName)
	if err != nil {
		return nil, err
	}
	return u.ingestFile(store, path)
}

func (u *IngestUseCase) ingestFile(store port.IndexStore, path string) ([]IngestedChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.IngestError{Kind: domain.IngestErrIO, Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &domain.IngestError{
			Kind: domain.IngestErrConvert,
			Path: path,
			Err:  fmt.Errorf("not valid utf-8 text"),
		}
	}

	name := filepath.Base(path)
	pieces := u.chunker.Chunk(string(data))

	out := make([]IngestedChunk, 0, len(pieces))
	for _, piece := range pieces {
		chunk := domain.Chunk{
			ID:      uuid.NewString(),
			Name:    name,
			Content: piece,
			Tokens:  u.tokenizer.Tokenize(name + " " + piece),
		}
		if err := store.PutChunk(chunk); err != nil {
			return nil, &domain.IngestError{Kind: domain.IngestErrIO, Path: path, Err: err}
		}
		out = append(out, IngestedChunk{ID: chunk.ID, Name: chunk.Name, Content: chunk.Content})
	}
	return out, nil
}
