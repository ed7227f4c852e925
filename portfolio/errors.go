package portfolio

import "errors"

// Sentinel errors for the three failure classes of the analysis pipeline.
// Call sites wrap them with fmt.Errorf("%w: ...") so consumers can match
// with errors.Is while still printing a specific message.
var (
	// ErrNotFound means the experiments file does not exist.
	ErrNotFound = errors.New("experiments file not found")

	// ErrSchema means a required column is absent from the input table.
	ErrSchema = errors.New("missing required column")

	// ErrInvalidInput covers an empty record set, a non-numeric required
	// field, or an unknown ranking strategy.
	ErrInvalidInput = errors.New("invalid input")
)
