package usecase

import (
	"fmt"
	"strings"
	"testing"

	"docqa/internal/domain"
)

func TestAssembleEmptyInput(t *testing.T) {
	if got := Assemble(nil, 200); got != "" {
		t.Errorf("expected empty string for no chunks, got %q", got)
	}
}

func TestAssembleShortInputUnchanged(t *testing.T) {
	chunks := []domain.Chunk{
		{Name: "greeting", Content: "hello world"},
		{Name: "farewell", Content: "goodbye now"},
	}

	got := Assemble(chunks, 200)
	want := "greeting hello world\nfarewell goodbye now"
	if got != want {
		t.Errorf("Assemble = %q, want %q", got, want)
	}
}

func TestAssembleTruncatesToBudget(t *testing.T) {
	words := make([]string, 300)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	chunks := []domain.Chunk{{Name: "doc", Content: strings.Join(words, " ")}}

	got := Assemble(chunks, 200)
	gotWords := strings.Fields(got)
	if len(gotWords) != 200 {
		t.Fatalf("expected exactly 200 words, got %d", len(gotWords))
	}
	// Never cut mid-word: every token must be one of the originals.
	valid := map[string]struct{}{"doc": {}}
	for _, w := range words {
		valid[w] = struct{}{}
	}
	for _, w := range gotWords {
		if _, ok := valid[w]; !ok {
			t.Errorf("word %q was split or mangled", w)
		}
	}
}

func TestAssembleExactBudgetUnchanged(t *testing.T) {
	words := make([]string, 199)
	for i := range words {
		words[i] = "x"
	}
	chunks := []domain.Chunk{{Name: "n", Content: strings.Join(words, " ")}}

	got := Assemble(chunks, 200)
	if len(strings.Fields(got)) != 200 {
		t.Errorf("expected 200 words (name + 199 content), got %d", len(strings.Fields(got)))
	}
	if !strings.HasPrefix(got, "n x") {
		t.Errorf("unexpected assembly: %q", got[:10])
	}
}

func TestAssembleStripsNamePrefixRoundTrip(t *testing.T) {
	// Content written with the legacy "{name} {body}" prefix must assemble
	// to exactly "{name} {body}", not "{name} {name} {body}".
	chunks := []domain.Chunk{
		{Name: "greeting", Content: "greeting hello world"},
	}

	got := Assemble(chunks, 200)
	if got != "greeting hello world" {
		t.Errorf("prefix did not round-trip: %q", got)
	}
}

func TestAssembleKeepsContentThatMerelyResemblesName(t *testing.T) {
	// No prefix present: name is prepended once.
	chunks := []domain.Chunk{
		{Name: "greeting", Content: "greetings earthling"},
	}

	got := Assemble(chunks, 200)
	if got != "greeting greetings earthling" {
		t.Errorf("Assemble = %q", got)
	}
}

func TestAssembleEmptyName(t *testing.T) {
	chunks := []domain.Chunk{{Name: "", Content: "just content"}}

	if got := Assemble(chunks, 200); got != "just content" {
		t.Errorf("Assemble = %q, want %q", got, "just content")
	}
}

func TestAssemblePreservesRankOrder(t *testing.T) {
	chunks := []domain.Chunk{
		{Name: "second-best", Content: "b"},
		{Name: "best", Content: "a"},
	}

	got := Assemble(chunks, 200)
	if got != "second-best b\nbest a" {
		t.Errorf("chunks must be concatenated in input order, got %q", got)
	}
}
