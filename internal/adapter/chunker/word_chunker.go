package chunker

import (
	"regexp"
	"strings"
)

// WordChunker cleans document text and splits it into chunks of at most
// maxWords words, preferring to break at sentence boundaries, with no
// overlap between adjacent chunks.
type WordChunker struct {
	maxWords        int
	dropHeaderNoise bool
	sentenceRe      *regexp.Regexp
}

func NewWordChunker(maxWords int, dropHeaderNoise bool) *WordChunker {
	if maxWords <= 0 {
		maxWords = 50
	}
	return &WordChunker{
		maxWords:        maxWords,
		dropHeaderNoise: dropHeaderNoise,
		sentenceRe:      regexp.MustCompile(`[^.!?]+[.!?]+`),
	}
}

func (c *WordChunker) Chunk(text string) []string {
	text = c.clean(text)
	if text == "" {
		return nil
	}

	sentences := c.splitSentences(text)

	var chunks []string
	var current []string
	currentWords := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
			currentWords = 0
		}
	}

	for _, sentence := range sentences {
		words := strings.Fields(sentence)
		if len(words) == 0 {
			continue
		}

		// A sentence longer than the budget is cut at word boundaries.
		if len(words) > c.maxWords {
			flush()
			for start := 0; start < len(words); start += c.maxWords {
				end := start + c.maxWords
				if end > len(words) {
					end = len(words)
				}
				chunks = append(chunks, strings.Join(words[start:end], " "))
			}
			continue
		}

		if currentWords+len(words) > c.maxWords {
			flush()
		}
		current = append(current, strings.Join(words, " "))
		currentWords += len(words)
	}
	flush()

	return chunks
}

// clean trims lines, drops empty ones, and removes short lines that repeat
// throughout the document (page headers and footers).
func (c *WordChunker) clean(text string) string {
	lines := strings.Split(text, "\n")

	counts := make(map[string]int, len(lines))
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
		if lines[i] != "" {
			counts[lines[i]]++
		}
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if c.dropHeaderNoise && len(line) < 60 && counts[line] >= 3 {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// splitSentences cuts text at sentence-ending punctuation. Trailing text
// without a terminator is kept as a final sentence.
func (c *WordChunker) splitSentences(text string) []string {
	var sentences []string
	last := 0
	for _, loc := range c.sentenceRe.FindAllStringIndex(text, -1) {
		sentences = append(sentences, strings.TrimSpace(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
