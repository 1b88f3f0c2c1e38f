package usecase

import (
	"strings"

	"docqa/internal/domain"
)

// Assemble reconstructs "{name} {content}" for each chunk in rank order,
// joins them with newlines, and bounds the result to wordBudget whitespace
// words. Words are never split; input within the budget is returned
// unchanged. Empty input yields "".
func Assemble(chunks []domain.Chunk, wordBudget int) string {
	if len(chunks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		content := c.Content
		// Older writers prefixed the display name into the stored content as
		// a retrieval hint; strip exactly that before reconstructing.
		if c.Name != "" && strings.HasPrefix(content, c.Name+" ") {
			content = content[len(c.Name)+1:]
		}
		if c.Name == "" {
			parts = append(parts, content)
			continue
		}
		parts = append(parts, c.Name+" "+content)
	}

	joined := strings.Join(parts, "\n")
	return firstNWords(joined, wordBudget)
}

// firstNWords keeps the first n whitespace-delimited words. Input with at
// most n words comes back untouched, separators included.
func firstNWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ")
}
