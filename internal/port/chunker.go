package port

// Chunker splits cleaned document text into bounded word chunks.
type Chunker interface {
	Chunk(text string) []string
}
