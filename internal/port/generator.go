package port

import "context"

// Generator produces an answer for a question given assembled knowledge.
// An empty knowledge string is a valid input.
type Generator interface {
	Generate(ctx context.Context, question, knowledge string) (string, error)
}
