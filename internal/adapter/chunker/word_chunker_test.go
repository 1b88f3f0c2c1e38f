package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func TestWordChunkerSplitsLongDocument(t *testing.T) {
	c := NewWordChunker(50, true)

	// 120 words, no sentence terminators: expect 50 + 50 + 20.
	words := make([]string, 120)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	chunks := c.Chunk(strings.Join(words, " "))

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if wordCount(chunk) > 50 {
			t.Errorf("chunk %d has %d words, budget is 50", i, wordCount(chunk))
		}
	}

	// Zero overlap: every word appears in exactly one chunk.
	seen := make(map[string]int)
	for _, chunk := range chunks {
		for _, w := range strings.Fields(chunk) {
			seen[w]++
		}
	}
	for w, n := range seen {
		if n != 1 {
			t.Errorf("word %q appears in %d chunks, want 1", w, n)
		}
	}
	if len(seen) != 120 {
		t.Errorf("expected all 120 words kept, got %d", len(seen))
	}
}

func TestWordChunkerPrefersSentenceBoundaries(t *testing.T) {
	c := NewWordChunker(10, true)

	text := "One two three four five six. Seven eight nine ten eleven twelve."
	chunks := c.Chunk(text)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "One two three four five six." {
		t.Errorf("first chunk should end at the sentence boundary, got %q", chunks[0])
	}
}

func TestWordChunkerPacksShortSentences(t *testing.T) {
	c := NewWordChunker(50, true)

	text := "First sentence here. Second sentence here. Third sentence here."
	chunks := c.Chunk(text)

	if len(chunks) != 1 {
		t.Fatalf("expected short sentences packed into 1 chunk, got %d", len(chunks))
	}
	if wordCount(chunks[0]) != 9 {
		t.Errorf("expected 9 words, got %d", wordCount(chunks[0]))
	}
}

func TestWordChunkerDropsEmptyLinesAndWhitespace(t *testing.T) {
	c := NewWordChunker(50, true)

	text := "  Hello there.  \n\n\n   General greeting.   \n"
	chunks := c.Chunk(text)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "Hello there. General greeting." {
		t.Errorf("unexpected chunk text: %q", chunks[0])
	}
}

func TestWordChunkerDropsRepeatedHeaderLines(t *testing.T) {
	c := NewWordChunker(50, true)

	var b strings.Builder
	for page := 0; page < 3; page++ {
		b.WriteString("ACME Corp Confidential\n")
		fmt.Fprintf(&b, "Unique content for page number %d goes right here.\n", page)
	}
	chunks := c.Chunk(b.String())

	joined := strings.Join(chunks, " ")
	if strings.Contains(joined, "Confidential") {
		t.Errorf("expected repeated header line to be dropped, got %q", joined)
	}
	if !strings.Contains(joined, "page number 2") {
		t.Errorf("expected page content kept, got %q", joined)
	}
}

func TestWordChunkerKeepsHeaderNoiseWhenDisabled(t *testing.T) {
	c := NewWordChunker(50, false)

	text := "Header\nbody one.\nHeader\nbody two.\nHeader\nbody three.\n"
	chunks := c.Chunk(text)

	if !strings.Contains(strings.Join(chunks, " "), "Header") {
		t.Error("header lines should be kept when cleaning is disabled")
	}
}

func TestWordChunkerEmptyInput(t *testing.T) {
	c := NewWordChunker(50, true)

	if chunks := c.Chunk(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(chunks))
	}
	if chunks := c.Chunk("   \n\n  "); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace input, got %d", len(chunks))
	}
}

func TestWordChunkerCutsOversizedSentenceAtWordBoundary(t *testing.T) {
	c := NewWordChunker(5, true)

	words := make([]string, 12)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	chunks := c.Chunk(strings.Join(words, " ") + ".")

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	for _, chunk := range chunks {
		for _, w := range strings.Fields(chunk) {
			if !strings.HasPrefix(w, "w") {
				t.Errorf("word was split: %q", w)
			}
		}
	}
}
