package processor

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/jpcarmona/atenea/internal/domain"
)

// enrichContacts fills in page content for the contacts the query appears to
// be about. Fetches run in parallel, bounded by the configured worker count;
// a fetch failure leaves that contact's page content empty.
func (p *Processor) enrichContacts(ctx context.Context, query string, contacts []domain.Contact) {
	queryWords := strings.Fields(strings.ToLower(query))

	var relevant []*domain.Contact
	for i := range contacts {
		if contactRelevant(&contacts[i], queryWords) {
			relevant = append(relevant, &contacts[i])
		}
	}
	if len(relevant) == 0 {
		return
	}

	p.logger.Info("enriching relevant contacts", "count", len(relevant))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.enrichWorkers)
	for _, contact := range relevant {
		g.Go(func() error {
			content, err := p.data.PageContent(gctx, contact.ID)
			if err != nil {
				p.logger.Warn("failed to fetch contact page content",
					"contact", contact.Name, "error", err)
				return nil
			}
			contact.PageContent = content
			return nil
		})
	}
	// Goroutines never return errors; Wait only synchronizes.
	_ = g.Wait()
}

// contactRelevant reports whether a contact is worth enriching for the
// query: favorites and family always are, otherwise a meaningful query word
// must appear in the name or notes.
func contactRelevant(contact *domain.Contact, queryWords []string) bool {
	if contact.Favorite {
		return true
	}
	if contact.Groups == "Family" {
		return true
	}

	nameLower := strings.ToLower(contact.Name)
	notesLower := strings.ToLower(contact.Notes)
	for _, word := range queryWords {
		// Rune count, not byte length: accented words like "más" are still
		// too short to be meaningful.
		if utf8.RuneCountInString(word) <= 3 {
			continue
		}
		if strings.Contains(nameLower, word) || strings.Contains(notesLower, word) {
			return true
		}
	}
	return false
}
