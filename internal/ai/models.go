package ai

import "strings"

// Request describes a single completion call to a backend model.
type Request struct {
	// System carries role instructions for the model. Optional.
	System string

	// Prompt is the user-facing content.
	Prompt string

	// Model overrides the provider's default model when non-empty.
	Model string

	// Temperature controls sampling randomness.
	Temperature float32

	// MaxTokens caps the response length. Zero leaves the backend default.
	MaxTokens int

	// JSON asks the backend for a JSON object response.
	JSON bool
}

// StripFences removes markdown code blocks if present (e.g. ```json ... ```)
// so that JSON-mode responses decode even when the model wraps them.
func StripFences(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
