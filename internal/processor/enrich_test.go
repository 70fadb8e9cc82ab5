package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpcarmona/atenea/internal/domain"
)

func TestContactRelevant(t *testing.T) {
	queryWords := []string{"cuándo", "cumple", "marcela"}

	favorite := &domain.Contact{Name: "Pedro", Favorite: true}
	assert.True(t, contactRelevant(favorite, queryWords), "favorites are always relevant")

	family := &domain.Contact{Name: "Luisa", Groups: "Family"}
	assert.True(t, contactRelevant(family, queryWords), "family is always relevant")

	named := &domain.Contact{Name: "Marcela Ríos"}
	assert.True(t, contactRelevant(named, queryWords), "name match on a meaningful word")

	noted := &domain.Contact{Name: "Jorge", Notes: "amigo de Marcela"}
	assert.True(t, contactRelevant(noted, queryWords), "notes match on a meaningful word")

	unrelated := &domain.Contact{Name: "Carlos", Groups: "Work"}
	assert.False(t, contactRelevant(unrelated, queryWords))

	// Short words never match, so connective words cannot drag in contacts.
	shortWords := []string{"de", "la", "el"}
	della := &domain.Contact{Name: "Adela"}
	assert.False(t, contactRelevant(della, shortWords))
}

func TestContactRelevantCountsRunesNotBytes(t *testing.T) {
	// "más" and "año" are three runes but four bytes; they are still too
	// short to count as meaningful.
	accentedShort := []string{"más", "año"}
	contact := &domain.Contact{Name: "Tomás", Notes: "cumple años en agosto"}
	assert.False(t, contactRelevant(contact, accentedShort))

	// A four-rune accented word still matches.
	assert.True(t, contactRelevant(&domain.Contact{Name: "Peña Morales"}, []string{"peña"}))
}

func TestEnrichContactsFillsPageContent(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainContacts, handler)
	fx.data.pageContent["c1"] = "le gustan las plantas"

	contacts := []domain.Contact{
		{ID: "c1", Name: "Marcela", Favorite: true},
		{ID: "c2", Name: "Carlos", Groups: "Work"},
	}

	fx.processor.enrichContacts(context.Background(), "cuándo cumple marcela", contacts)

	assert.Equal(t, "le gustan las plantas", contacts[0].PageContent)
	assert.Empty(t, contacts[1].PageContent, "irrelevant contacts are not enriched")
}

func TestEnrichContactsToleratesFetchFailure(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainContacts, handler)
	fx.data.pageErr = errors.New("notion unavailable")

	contacts := []domain.Contact{{ID: "c1", Name: "Marcela", Favorite: true}}
	fx.processor.enrichContacts(context.Background(), "algo de marcela", contacts)

	assert.Empty(t, contacts[0].PageContent)
}

func TestEnrichContactsNoRelevantContacts(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainContacts, handler)

	contacts := []domain.Contact{{ID: "c1", Name: "Carlos", Groups: "Work"}}
	fx.processor.enrichContacts(context.Background(), "hola", contacts)

	assert.Empty(t, contacts[0].PageContent)
}
