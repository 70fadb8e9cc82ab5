package domain

// Domain is the handling category a query is routed to.
type Domain string

// Possible routing domains
const (
	DomainTasks    Domain = "tasks"
	DomainContacts Domain = "contacts"
	DomainGeneral  Domain = "general"
	DomainStatus   Domain = "status"
)

// ParseDomain maps a classifier's output word to a Domain.
// Unknown words map to DomainGeneral, which is also the fallback used when
// classification fails entirely.
func ParseDomain(word string) Domain {
	switch Domain(word) {
	case DomainTasks, DomainContacts, DomainGeneral, DomainStatus:
		return Domain(word)
	default:
		return DomainGeneral
	}
}
