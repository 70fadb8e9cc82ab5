// Package gemini implements the ai.Client boundary on top of Google's
// Gemini API.
//
// It is an infrastructure adapter: the rest of the application talks to the
// model through the ai.Client interface and never sees genai types. The
// adapter handles authentication, JSON-mode generation, single-word
// classification, and retry with exponential backoff for transient errors.
package gemini
