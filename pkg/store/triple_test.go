package store

import "testing"

func TestTerm_Constructors(t *testing.T) {
	iri := IRI("http://example.org/a")
	if !iri.IsIRI() {
		t.Error("IRI() should produce a resource term")
	}

	literal := Literal("Kunst und Alltag")
	if literal.IsIRI() {
		t.Error("Literal() should not produce a resource term")
	}
	if literal.Datatype != "" {
		t.Errorf("Plain literal should have no datatype, got %q", literal.Datatype)
	}

	typed := TypedLiteral("P1923Y", XSDDuration)
	if typed.Datatype != XSDDuration {
		t.Errorf("Expected xsd:duration datatype, got %q", typed.Datatype)
	}

	if !(Term{}).IsZero() {
		t.Error("Empty term should be zero")
	}
	if iri.IsZero() {
		t.Error("IRI term should not be zero")
	}
}

func TestTerm_NTriples(t *testing.T) {
	testCases := []struct {
		name     string
		term     Term
		expected string
	}{
		{"iri", IRI("http://example.org/a"), "<http://example.org/a>"},
		{"plain_literal", Literal("De Man, Hendrik"), `"De Man, Hendrik"`},
		{"quoted_literal", Literal(`Der "Letzte"`), `"Der \"Letzte\""`},
		{"newline_literal", Literal("line1\nline2"), `"line1\nline2"`},
		{"backslash_literal", Literal(`a\b`), `"a\\b"`},
		{"xsd_string_literal", TypedLiteral("x", XSDString), `"x"`},
		{"typed_literal", TypedLiteral("P1923Y", XSDDuration), `"P1923Y"^^<http://www.w3.org/2001/XMLSchema#duration>`},
		{"iri_with_space", IRI("http://example.org/a b"), `<http://example.org/a\u0020b>`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.term.NTriples(); got != testCase.expected {
				t.Errorf("NTriples() = %s, want %s", got, testCase.expected)
			}
		})
	}
}

func TestTriple_Equals(t *testing.T) {
	first := NewTriple("http://example.org/s", RDFSLabel, Literal("x"))
	second := NewTriple("http://example.org/s", RDFSLabel, Literal("x"))
	third := NewTriple("http://example.org/s", RDFSLabel, IRI("x"))

	if !first.Equals(second) {
		t.Error("Identical triples should be equal")
	}
	if first.Equals(third) {
		t.Error("Literal and IRI objects should not compare equal")
	}
}

func TestTriple_IsValid(t *testing.T) {
	testCases := []struct {
		name     string
		triple   Triple
		expected bool
	}{
		{"complete", NewTriple("s", "p", Literal("o")), true},
		{"no_subject", NewTriple("", "p", Literal("o")), false},
		{"no_predicate", NewTriple("s", "", Literal("o")), false},
		{"no_object", NewTriple("s", "p", Literal("")), false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.triple.IsValid(); got != testCase.expected {
				t.Errorf("IsValid() = %v, want %v", got, testCase.expected)
			}
		})
	}
}

func TestTriple_NTriples(t *testing.T) {
	triple := NewTriple("http://example.org/s", RDFType, IRI("http://example.org/C"))
	expected := "<http://example.org/s> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/C> ."

	if got := triple.NTriples(); got != expected {
		t.Errorf("NTriples() = %s, want %s", got, expected)
	}
}
