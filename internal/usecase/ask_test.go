package usecase

import (
	"context"
	"testing"

	"docqa/internal/adapter/memstore"
	"docqa/internal/domain"
	"docqa/internal/port"
)

type stubRetriever struct {
	results []domain.ScoredChunk
}

func (s *stubRetriever) Retrieve(_ port.IndexStore, _ string, topK int) ([]domain.ScoredChunk, error) {
	if len(s.results) > topK {
		return s.results[:topK], nil
	}
	return s.results, nil
}

type recordingGenerator struct {
	question  string
	knowledge string
	called    bool
	answer    string
}

func (g *recordingGenerator) Generate(_ context.Context, question, knowledge string) (string, error) {
	g.called = true
	g.question = question
	g.knowledge = knowledge
	return g.answer, nil
}

func TestAskAssemblesRetrievedChunks(t *testing.T) {
	ret := &stubRetriever{results: []domain.ScoredChunk{
		{Chunk: domain.Chunk{Name: "milk", Content: "we sell lactose free milk"}, Score: 2.0},
		{Chunk: domain.Chunk{Name: "hours", Content: "open nine to five"}, Score: 1.0},
	}}
	gen := &recordingGenerator{answer: "Yes, we do!"}

	uc := NewAskUseCase(memstore.NewMemoryRegistry(), ret, gen, 2, 200)
	answer, err := uc.Ask(context.Background(), "test", "do you sell lactose free milk?")
	if err != nil {
		t.Fatal(err)
	}

	if answer != "Yes, we do!" {
		t.Errorf("unexpected answer %q", answer)
	}
	want := "milk we sell lactose free milk\nhours open nine to five"
	if gen.knowledge != want {
		t.Errorf("generator knowledge = %q, want %q", gen.knowledge, want)
	}
	if gen.question != "do you sell lactose free milk?" {
		t.Errorf("generator question = %q", gen.question)
	}
}

func TestAskEmptyIndexStillCallsGenerator(t *testing.T) {
	ret := &stubRetriever{}
	gen := &recordingGenerator{answer: "I don't know, I'll have to check."}

	uc := NewAskUseCase(memstore.NewMemoryRegistry(), ret, gen, 2, 200)
	answer, err := uc.Ask(context.Background(), "empty", "anything?")
	if err != nil {
		t.Fatal(err)
	}

	if !gen.called {
		t.Fatal("generator must be called even with no retrieved chunks")
	}
	if gen.knowledge != "" {
		t.Errorf("expected empty knowledge, got %q", gen.knowledge)
	}
	if answer == "" {
		t.Error("expected the generator's answer to pass through")
	}
}

func TestAskHonorsTopK(t *testing.T) {
	ret := &stubRetriever{results: []domain.ScoredChunk{
		{Chunk: domain.Chunk{Name: "a", Content: "1"}},
		{Chunk: domain.Chunk{Name: "b", Content: "2"}},
		{Chunk: domain.Chunk{Name: "c", Content: "3"}},
	}}
	gen := &recordingGenerator{answer: "ok"}

	uc := NewAskUseCase(memstore.NewMemoryRegistry(), ret, gen, 2, 200)
	if _, err := uc.Ask(context.Background(), "test", "q"); err != nil {
		t.Fatal(err)
	}

	if gen.knowledge != "a 1\nb 2" {
		t.Errorf("expected only top 2 chunks in context, got %q", gen.knowledge)
	}
}
