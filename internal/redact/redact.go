// Package redact strips sensitive information from strings before they are
// logged or returned in error responses. Errors bubbling up from the Notion,
// Gemini, and Calendar clients can carry API keys, credential file paths,
// and contact email addresses; none of that belongs in a log line or an
// HTTP error body.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedKeyPlaceholder   = "[REDACTED_KEY]"
	RedactedPathPlaceholder  = "[REDACTED_PATH]"
	RedactedEmailPlaceholder = "[REDACTED_EMAIL]"
	RedactedHostPlaceholder  = "[REDACTED_HOST]"
)

var (
	// API keys, tokens, secrets named in error text.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|bearer|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Absolute file paths, such as the calendar credentials file.
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// Contact email addresses.
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// Hosts with an optional port, as reported by HTTP client errors.
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)

	// Panic output must never reach a response body.
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)

	replacements = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{apiKeyRegex, RedactedKeyPlaceholder},
		{stackTraceRegex, "[STACK_TRACE_REDACTED]"},
		{emailRegex, RedactedEmailPlaceholder},
		{unixPathRegex, RedactedPathPlaceholder},
		{hostPortRegex, RedactedHostPlaceholder},
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
