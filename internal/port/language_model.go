package port

import "context"

// CompletionInput carries one system instruction plus the user content. At most
// one of UserText-only or UserText+ImageDataURL is sent per call.
type CompletionInput struct {
	SystemPrompt string
	UserText     string
	ImageDataURL string // data:<mime>;base64,<payload>
}

// CompletionOutput is the raw model text returned by a provider.
type CompletionOutput struct {
	Text      string
	ModelUsed string
}

// LanguageModel abstracts a hosted LLM reachable over HTTP. Implementations
// must request JSON output and report upstream 429/402 as typed errors.
type LanguageModel interface {
	Complete(ctx context.Context, input CompletionInput) (*CompletionOutput, error)
}
