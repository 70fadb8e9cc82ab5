package intent

import (
	"regexp"
	"strings"

	"github.com/jpcarmona/atenea/internal/domain"
)

// The fast path is an ordered rule table evaluated without any external
// call: phrase patterns first, then word-pair rules, then keyword-set
// intersection, then a short-query greeting heuristic. The first matching
// rule wins. When no rule matches, classification falls through to the AI
// classifier.

// phraseRule matches a structural phrase anywhere in the query.
type phraseRule struct {
	pattern *regexp.Regexp
	domain  domain.Domain
}

// pairRule matches when the anchor word co-occurs with the second word.
// An empty second word makes the anchor alone sufficient.
type pairRule struct {
	anchor string
	with   string
	domain domain.Domain
}

// keywordSet is a bag of domain vocabulary. A keyword match is only accepted
// when exactly one domain's set intersects the query; ambiguous matches fall
// through to the AI classifier on purpose.
type keywordSet struct {
	domain domain.Domain
	words  map[string]struct{}
}

var phraseRules = []phraseRule{
	{regexp.MustCompile(`(?i)\brecu[eé]rdame\b`), domain.DomainTasks},
	{regexp.MustCompile(`(?i)\bno olvides?\b`), domain.DomainTasks},
	{regexp.MustCompile(`(?i)\bmarcar? como (hecha|hecho|completada|completado|lista|listo)\b`), domain.DomainTasks},
	{regexp.MustCompile(`(?i)\bmark(ed)? as done\b`), domain.DomainTasks},
	{regexp.MustCompile(`(?i)\btengo que\b`), domain.DomainTasks},
	{regexp.MustCompile(`(?i)\bcu[aá]ndo cumple\b`), domain.DomainContacts},
	{regexp.MustCompile(`(?i)\bd[ií]a del cumplea[nñ]os\b`), domain.DomainContacts},
}

var pairRules = []pairRule{
	{"crear", "tarea", domain.DomainTasks},
	{"crea", "tarea", domain.DomainTasks},
	{"create", "task", domain.DomainTasks},
	{"agrega", "tarea", domain.DomainTasks},
	{"nueva", "tarea", domain.DomainTasks},
	{"borra", "tarea", domain.DomainTasks},
	{"elimina", "tarea", domain.DomainTasks},
	{"delete", "task", domain.DomainTasks},
	{"agrega", "contacto", domain.DomainContacts},
	{"nuevo", "contacto", domain.DomainContacts},
	{"datos", "de", domain.DomainContacts},
	// Anchors that are unambiguous on their own.
	{"recordatorio", "", domain.DomainTasks},
	{"pendientes", "", domain.DomainTasks},
	{"cumpleaños", "", domain.DomainContacts},
	{"birthday", "", domain.DomainContacts},
}

var keywordSets = []keywordSet{
	{domain.DomainTasks, wordSet(
		"tarea", "tareas", "task", "tasks", "pendiente", "deadline",
		"entrega", "proyecto", "prioridad", "urgente", "agenda",
	)},
	{domain.DomainContacts, wordSet(
		"contacto", "contactos", "contact", "contacts", "teléfono",
		"telefono", "correo", "email", "dirección", "direccion",
		"amigo", "amiga", "familia",
	)},
}

var greetingWords = wordSet(
	"hola", "hello", "hi", "hey", "buenas", "buenos",
	"gracias", "thanks", "adiós", "adios", "chao",
)

// maxGreetingWords bounds the short-query heuristic: longer queries that
// happen to open with a greeting usually carry a real request.
const maxGreetingWords = 3

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// tokenize lowercases the query and splits it into words, stripping the
// punctuation Spanish voice transcriptions tend to include.
func tokenize(query string) []string {
	lowered := strings.ToLower(query)
	return strings.FieldsFunc(lowered, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', ',', '.', ';', ':', '?', '!', '¿', '¡', '"', '\'':
			return true
		default:
			return false
		}
	})
}

// fastClassify runs the deterministic rule table. It returns the matched
// domain and true on a match, or false when the query is uncertain and the
// AI classifier should decide.
func fastClassify(query string) (domain.Domain, bool) {
	for _, rule := range phraseRules {
		if rule.pattern.MatchString(query) {
			return rule.domain, true
		}
	}

	words := tokenize(query)
	wordLookup := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordLookup[w] = struct{}{}
	}

	for _, rule := range pairRules {
		if _, ok := wordLookup[rule.anchor]; !ok {
			continue
		}
		if rule.with == "" {
			return rule.domain, true
		}
		if _, ok := wordLookup[rule.with]; ok {
			return rule.domain, true
		}
	}

	var matched domain.Domain
	matches := 0
	for _, set := range keywordSets {
		for _, w := range words {
			if _, ok := set.words[w]; ok {
				matched = set.domain
				matches++
				break
			}
		}
	}
	// Exactly one domain vocabulary hit is decisive; a tie means the query
	// is ambiguous and the AI classifier gets the final word.
	if matches == 1 {
		return matched, true
	}

	if len(words) > 0 && len(words) <= maxGreetingWords {
		if _, ok := greetingWords[words[0]]; ok {
			return domain.DomainGeneral, true
		}
	}

	return "", false
}
