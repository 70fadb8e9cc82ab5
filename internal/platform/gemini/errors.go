package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyPrompt is returned when a prompt is empty.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrInvalidConfig is returned when the client configuration is incomplete.
	ErrInvalidConfig = errors.New("invalid gemini configuration")

	// ErrContentBlocked is returned when the model refuses to answer because
	// of safety filters. Not retried.
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrEmptyResponse is returned when the model answers with no usable
	// content. Not retried.
	ErrEmptyResponse = errors.New("model returned no content")

	// ErrTransientFailure is returned when the API keeps failing after all
	// retry attempts.
	ErrTransientFailure = errors.New("transient failure calling gemini API")
)
