// Package intent classifies raw queries into a handling domain using a
// deterministic fast path with an AI classifier fallback.
package intent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jpcarmona/atenea/internal/domain"
)

// Classifier is the external classification capability the router falls back
// to when the fast path is uncertain. It is expected to answer with a single
// domain word.
type Classifier interface {
	Classify(ctx context.Context, prompt string) (string, error)
}

// Router routes queries to a handling domain. The fast path never fails;
// the fallback degrades to the general domain on any error, so Classify
// never propagates a failure to the caller.
type Router struct {
	classifier Classifier
	prompt     string
	logger     *slog.Logger
}

// NewRouter creates a Router. routerPrompt is the system prompt handed to
// the fallback classifier ahead of the user input.
func NewRouter(classifier Classifier, routerPrompt string, logger *slog.Logger) *Router {
	return &Router{
		classifier: classifier,
		prompt:     routerPrompt,
		logger:     logger.With("component", "intent_router"),
	}
}

// Classify returns the handling domain for the query.
func (r *Router) Classify(ctx context.Context, query string) domain.Domain {
	if d, ok := fastClassify(query); ok {
		r.logger.Debug("fast path classification", "domain", d)
		return d
	}

	prompt := fmt.Sprintf(
		"%s\n\nUSER INPUT: %q\n\nRespond with ONLY the domain name (tasks, contacts, or general):",
		r.prompt, query,
	)

	output, err := r.classifier.Classify(ctx, prompt)
	if err != nil {
		r.logger.Warn("fallback classification failed, defaulting to general", "error", err)
		return domain.DomainGeneral
	}

	d := extractDomainWord(output)
	r.logger.Debug("fallback classification", "domain", d, "raw_output", output)
	return d
}

// extractDomainWord scans the classifier output for a known domain word.
// Models occasionally wrap the answer in extra prose, so a substring scan is
// more robust than an exact match. Anything the scan misses goes through
// domain.ParseDomain, which maps unrecognized words to general.
func extractDomainWord(output string) domain.Domain {
	lowered := strings.ToLower(strings.TrimSpace(output))
	for _, d := range []domain.Domain{
		domain.DomainTasks, domain.DomainContacts, domain.DomainStatus,
	} {
		if strings.Contains(lowered, string(d)) {
			return d
		}
	}
	return domain.ParseDomain(lowered)
}
