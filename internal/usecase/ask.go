package usecase

import (
	"context"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// AskUseCase answers a question against one index: retrieve top-k chunks,
// assemble a bounded context, generate an answer. Single pass, no state
// carried between questions.
type AskUseCase struct {
	registry   port.Registry
	retriever  port.Retriever
	generator  port.Generator
	topK       int
	wordBudget int
}

func NewAskUseCase(
	registry port.Registry,
	retriever port.Retriever,
	generator port.Generator,
	topK int,
	wordBudget int,
) *AskUseCase {
	return &AskUseCase{
		registry:   registry,
		retriever:  retriever,
		generator:  generator,
		topK:       topK,
		wordBudget: wordBudget,
	}
}

// Ask runs the retrieve-then-generate pipeline. An empty index is not an
// error: the generator is still called, with an empty context.
func (u *AskUseCase) Ask(ctx context.Context, indexName, question string) (string, error) {
	store, err := u.registry.Get(indexName)
	if err != nil {
		return "", err
	}

	scored, err := u.retriever.Retrieve(store, question, u.topK)
	if err != nil {
		return "", err
	}

	chunks := make([]domain.Chunk, 0, len(scored))
	for _, sc := range scored {
		chunks = append(chunks, sc.Chunk)
	}

	knowledge := Assemble(chunks, u.wordBudget)
	return u.generator.Generate(ctx, question, knowledge)
}
