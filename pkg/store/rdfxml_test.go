package store

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestRDFXMLSerializer_Serialize(t *testing.T) {
	store := NewTripleStore()
	issue := testIssues + "KA_1_2"
	store.Add(issue, RDFType, IRI(testLRM+"F1_Work"))
	store.Add(issue, RDFSLabel, Literal("Kunst & Alltag"))
	store.Add(issue, testLRM+"R67_has_part", IRI("http://spacesoftranslation.org/ns/translations/Louise"))
	store.Add(issue, "http://example.org/vocab#duration", TypedLiteral("P1923Y", XSDDuration))

	serializer := NewRDFXMLSerializer(WithPrefix("lrmoo", testLRM))
	output := serializer.SerializeToString(store)

	expectedFragments := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`xmlns:lrmoo="` + testLRM + `"`,
		`xmlns:ns0="http://example.org/vocab#"`,
		`<rdf:Description rdf:about="` + issue + `">`,
		`<rdf:type rdf:resource="` + testLRM + `F1_Work"/>`,
		`<rdfs:label>Kunst &amp; Alltag</rdfs:label>`,
		`<lrmoo:R67_has_part rdf:resource="http://spacesoftranslation.org/ns/translations/Louise"/>`,
		`<ns0:duration rdf:datatype="` + XSDDuration + `">P1923Y</ns0:duration>`,
		"</rdf:RDF>",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(output, fragment) {
			t.Errorf("Output missing %q\n%s", fragment, output)
		}
	}
}

func TestRDFXMLSerializer_WellFormed(t *testing.T) {
	store := NewTripleStore()
	store.Add("http://example.org/a?x=1&y=2", RDFSLabel, Literal(`<script>"quoted"</script>`))
	store.Add("http://example.org/b", "http://other.example.org/p", IRI("http://example.org/a?x=1&y=2"))

	output := NewRDFXMLSerializer().SerializeToString(store)

	decoder := xml.NewDecoder(strings.NewReader(output))
	for {
		_, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("Output is not well-formed XML: %v\n%s", err, output)
		}
	}
}

func TestEscapeXML(t *testing.T) {
	if got := escapeXMLText(`a<b>&"c"`); got != `a&lt;b&gt;&amp;"c"` {
		t.Errorf("escapeXMLText = %q", got)
	}
	if got := escapeXMLAttribute(`a<b>&"c"`); got != `a&lt;b&gt;&amp;&quot;c&quot;` {
		t.Errorf("escapeXMLAttribute = %q", got)
	}
}
