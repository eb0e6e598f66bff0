package port

// Generation is the outcome of one call to the generation backend:
// the assembled plain text plus the raw response body it came from.
type Generation struct {
	Text string
	Raw  string
}

// Generator sends a prompt to a language-model backend.
type Generator interface {
	// Generate sends the prompt and returns assembled plain text.
	// Network and HTTP-status failures are hard errors; ambiguity in
	// the response shape degrades to the rawest available text.
	Generate(prompt string) (Generation, error)

	// ModelName returns the name of the generation model.
	ModelName() string
}
