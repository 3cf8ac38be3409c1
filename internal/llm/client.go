package llm

import (
	"context"
	"fmt"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client performs one chat completion. A returned *MalformedResponseError means the
// backend answered but the answer could not be used; any other error means no
// answer was received.
type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}

// MalformedResponseError carries the raw body of a response that arrived but did
// not have the expected shape.
type MalformedResponseError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed completion response (status %d): %v", e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
