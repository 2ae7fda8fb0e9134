package store

import (
	"sort"
	"unicode"
)

// PrefixMapping associates a short prefix label with its full namespace URI.
type PrefixMapping struct {
	Prefix    string
	Namespace string
}

// DefaultPrefixMappings returns the core W3C prefixes.
func DefaultPrefixMappings() []PrefixMapping {
	return []PrefixMapping{
		{Prefix: "rdf", Namespace: NamespaceRDF},
		{Prefix: "rdfs", Namespace: NamespaceRDFS},
		{Prefix: "xsd", Namespace: NamespaceXSD},
	}
}

// prefixTable resolves IRIs to prefixed names. Later mappings override
// earlier ones with the same prefix.
type prefixTable struct {
	mappings       []PrefixMapping
	prefixIndex    map[string]string // prefix -> namespace
	namespaceIndex map[string]string // namespace -> prefix
}

func newPrefixTable(mappings []PrefixMapping) *prefixTable {
	table := &prefixTable{
		prefixIndex:    make(map[string]string, len(mappings)),
		namespaceIndex: make(map[string]string, len(mappings)),
	}

	for _, mapping := range mappings {
		if previous, ok := table.prefixIndex[mapping.Prefix]; ok {
			delete(table.namespaceIndex, previous)
		}
		table.prefixIndex[mapping.Prefix] = mapping.Namespace
		table.namespaceIndex[mapping.Namespace] = mapping.Prefix
	}

	for prefix, namespace := range table.prefixIndex {
		table.mappings = append(table.mappings, PrefixMapping{Prefix: prefix, Namespace: namespace})
	}
	sort.Slice(table.mappings, func(i, j int) bool {
		return table.mappings[i].Prefix < table.mappings[j].Prefix
	})

	return table
}

// compact replaces a full namespace IRI with its prefixed form. The longest
// matching namespace wins.
func (table *prefixTable) compact(fullURI string) (string, bool) {
	prefix, localName, ok := table.split(fullURI)
	if !ok {
		return "", false
	}
	return prefix + ":" + localName, true
}

// split returns the registered prefix and local name of an IRI.
func (table *prefixTable) split(fullURI string) (string, string, bool) {
	bestPrefix := ""
	bestNamespace := ""
	for namespace, prefix := range table.namespaceIndex {
		if len(namespace) <= len(bestNamespace) || len(fullURI) <= len(namespace) {
			continue
		}
		if fullURI[:len(namespace)] != namespace {
			continue
		}
		if isSafeLocalName(fullURI[len(namespace):]) {
			bestPrefix = prefix
			bestNamespace = namespace
		}
	}

	if bestNamespace == "" {
		return "", "", false
	}
	return bestPrefix, fullURI[len(bestNamespace):], true
}

// isSafeLocalName accepts the conservative subset of Turtle PN_LOCAL that
// every reader handles: a letter or underscore followed by letters, digits,
// underscores or hyphens.
func isSafeLocalName(localName string) bool {
	if localName == "" {
		return false
	}
	for i, char := range localName {
		switch {
		case unicode.IsLetter(char), char == '_':
		case i > 0 && (unicode.IsDigit(char) || char == '-'):
		default:
			return false
		}
	}
	return true
}

// subjectGroup is the predicate -> objects view of one subject.
type subjectGroup map[string][]Term

// groupTriplesBySubject organizes triples into subject -> predicate -> []object.
func groupTriplesBySubject(store *TripleStore) map[string]subjectGroup {
	groups := make(map[string]subjectGroup)
	for _, triple := range store.All() {
		if _, exists := groups[triple.Subject]; !exists {
			groups[triple.Subject] = make(subjectGroup)
		}
		groups[triple.Subject][triple.Predicate] = append(groups[triple.Subject][triple.Predicate], triple.Object)
	}
	return groups
}

// sortPredicatesTypeFirst sorts predicates with rdf:type first, then alphabetically.
func (group subjectGroup) sortPredicatesTypeFirst() []string {
	predicates := make([]string, 0, len(group))
	hasRDFType := false

	for predicate := range group {
		if predicate == RDFType {
			hasRDFType = true
			continue
		}
		predicates = append(predicates, predicate)
	}

	sort.Strings(predicates)

	if hasRDFType {
		predicates = append([]string{RDFType}, predicates...)
	}

	return predicates
}

// sortedKeys returns the keys of a map sorted alphabetically.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
