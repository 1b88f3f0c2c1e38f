package retriever

import (
	"strings"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// KeywordSearch returns every chunk whose name or content contains the query
// as a case-insensitive substring, in store-native order. No ranking.
func KeywordSearch(store port.IndexStore, query string) ([]domain.Chunk, error) {
	chunks, err := store.ListChunks()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]domain.Chunk, 0)
	for _, c := range chunks {
		if strings.Contains(strings.ToLower(c.Content), needle) ||
			strings.Contains(strings.ToLower(c.Name), needle) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}
