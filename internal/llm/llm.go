package llm

import (
	"context"
	"errors"

	"beast-hub/internal/shared"
)

// ErrNotConfigured is returned when no API key is set for the provider.
var ErrNotConfigured = errors.New("AI key not configured")

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator generates free text from a system instruction and a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, systemPrompt, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

// unconfigured is used when the selected provider has no API key, so the
// service still starts and the AI endpoints fail individually.
type unconfigured struct{}

// NewUnconfigured returns a TextGenerator that always fails with ErrNotConfigured.
func NewUnconfigured() TextGenerator {
	return unconfigured{}
}

func (unconfigured) GenerateContent(context.Context, string, string) (ContentResponse, error) {
	return ContentResponse{}, ErrNotConfigured
}
