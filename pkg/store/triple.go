package store

import (
	"fmt"
	"strings"
)

// TermKind distinguishes resource objects from literal objects.
type TermKind uint8

const (
	// KindIRI marks an object that names another resource.
	KindIRI TermKind = iota
	// KindLiteral marks a string (or typed) value.
	KindLiteral
)

// Term is the object position of a triple. Subjects and predicates are always
// IRIs and are carried as plain strings; objects need the kind so that a title
// such as "http://example.org" is never mistaken for a link.
type Term struct {
	Value    string
	Kind     TermKind
	Datatype string // literals only, empty means xsd:string
}

// IRI returns a resource term.
func IRI(value string) Term {
	return Term{Value: value, Kind: KindIRI}
}

// Literal returns a plain string literal.
func Literal(value string) Term {
	return Term{Value: value, Kind: KindLiteral}
}

// TypedLiteral returns a literal with an explicit datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{Value: value, Kind: KindLiteral, Datatype: datatype}
}

// IsIRI reports whether the term names a resource.
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// IsZero reports whether the term is the empty wildcard term.
func (t Term) IsZero() bool {
	return t.Value == "" && t.Datatype == ""
}

// NTriples renders the term in N-Triples syntax.
func (t Term) NTriples() string {
	if t.IsIRI() {
		return "<" + escapeIRI(t.Value) + ">"
	}
	lit := `"` + escapeLiteralString(t.Value) + `"`
	if t.Datatype != "" && t.Datatype != XSDString {
		lit += "^^<" + escapeIRI(t.Datatype) + ">"
	}
	return lit
}

// String returns a human-readable representation of the term.
func (t Term) String() string {
	return t.NTriples()
}

// Triple represents an RDF Subject-Predicate-Object triple.
//   - Subject: an entity IRI (e.g. a person or issue node)
//   - Predicate: a relationship or attribute IRI
//   - Object: another IRI or a literal value
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// NewTriple creates a new triple with the given components.
func NewTriple(subject, predicate string, object Term) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

// Equals checks if two triples have identical components.
func (t Triple) Equals(other Triple) bool {
	return t.Subject == other.Subject &&
		t.Predicate == other.Predicate &&
		t.Object == other.Object
}

// String returns a human-readable representation of the triple.
func (t Triple) String() string {
	return fmt.Sprintf("<%s> <%s> %s", t.Subject, t.Predicate, t.Object)
}

// NTriples returns the triple in N-Triples format.
func (t Triple) NTriples() string {
	return fmt.Sprintf("<%s> <%s> %s .", escapeIRI(t.Subject), escapeIRI(t.Predicate), t.Object.NTriples())
}

// IsValid returns true if all components are non-empty.
func (t Triple) IsValid() bool {
	return t.Subject != "" && t.Predicate != "" && t.Object.Value != ""
}

// escapeLiteralString escapes special characters per the W3C Turtle and
// N-Triples grammars.
func escapeLiteralString(value string) string {
	var builder strings.Builder
	builder.Grow(len(value) + len(value)/8)

	for _, char := range value {
		switch char {
		case '\\':
			builder.WriteString(`\\`)
		case '"':
			builder.WriteString(`\"`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

// escapeIRI escapes characters not allowed in IRIs within angle brackets.
func escapeIRI(iri string) string {
	var builder strings.Builder
	builder.Grow(len(iri))

	for _, char := range iri {
		switch char {
		case '<':
			builder.WriteString(`\u003C`)
		case '>':
			builder.WriteString(`\u003E`)
		case '"':
			builder.WriteString(`\u0022`)
		case ' ':
			builder.WriteString(`\u0020`)
		case '{':
			builder.WriteString(`\u007B`)
		case '}':
			builder.WriteString(`\u007D`)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}
