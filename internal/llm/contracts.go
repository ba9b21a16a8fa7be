package llm

import "context"

// Request is a single completion request. When ImagePNG is non-empty the
// request is sent in vision mode with the image attached; otherwise the
// prompt text carries the document content.
type Request struct {
	System      string
	Prompt      string
	ImagePNG    []byte
	Temperature float32
	MaxTokens   int
}

// Completer is the interface the extraction ladder depends on. Implementations
// call an external completion service and return its raw text response.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
