package content

import "context"

// TextModel sends a prompt to a generative text model and returns its reply.
type TextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextModelFunc adapts a function to TextModel.
type TextModelFunc func(ctx context.Context, prompt string) (string, error)

func (f TextModelFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
