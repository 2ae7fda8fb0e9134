package store

import (
	"fmt"
	"io"
	"strings"
)

// RDFXMLSerializer converts a TripleStore into W3C-compliant RDF/XML format.
// Predicates whose namespace has no registered prefix cannot be written as
// XML element names; they are declared under generated ns0, ns1... prefixes.
type RDFXMLSerializer struct {
	prefixes *prefixTable
}

// NewRDFXMLSerializer creates an RDFXMLSerializer with standard namespace declarations.
func NewRDFXMLSerializer(options ...SerializerOption) *RDFXMLSerializer {
	config := newSerializerConfig(options)
	return &RDFXMLSerializer{prefixes: newPrefixTable(config.prefixMappings)}
}

// Format implements Serializer.
func (serializer *RDFXMLSerializer) Format() Format { return FormatRDFXML }

// Serialize writes all triples in the store to w in RDF/XML format.
func (serializer *RDFXMLSerializer) Serialize(w io.Writer, store *TripleStore) error {
	_, err := io.WriteString(w, serializer.SerializeToString(store))
	return err
}

// SerializeToString converts all triples in the store to an RDF/XML document.
func (serializer *RDFXMLSerializer) SerializeToString(store *TripleStore) string {
	var body strings.Builder

	subjectGroups := groupTriplesBySubject(store)
	extra := make(map[string]string)

	for _, subject := range sortedKeys(subjectGroups) {
		serializer.writeDescription(&body, subject, subjectGroups[subject], extra)
	}

	var builder strings.Builder
	serializer.writeXMLHeader(&builder, extra)
	builder.WriteString(body.String())
	builder.WriteString("</rdf:RDF>\n")

	return builder.String()
}

// writeXMLHeader writes the XML declaration and opening rdf:RDF element with namespace attributes.
func (serializer *RDFXMLSerializer) writeXMLHeader(builder *strings.Builder, extra map[string]string) {
	builder.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	builder.WriteString("<rdf:RDF")

	for _, mapping := range serializer.prefixes.mappings {
		fmt.Fprintf(builder, "\n    xmlns:%s=\"%s\"", mapping.Prefix, escapeXMLAttribute(mapping.Namespace))
	}
	for _, namespace := range sortedKeys(extra) {
		fmt.Fprintf(builder, "\n    xmlns:%s=\"%s\"", extra[namespace], escapeXMLAttribute(namespace))
	}

	builder.WriteString(">\n")
}

// writeDescription writes an rdf:Description block for a single subject.
func (serializer *RDFXMLSerializer) writeDescription(builder *strings.Builder, subject string, group subjectGroup, extra map[string]string) {
	builder.WriteString("\n")
	fmt.Fprintf(builder, "  <rdf:Description rdf:about=\"%s\">\n", escapeXMLAttribute(subject))

	for _, predicate := range group.sortPredicatesTypeFirst() {
		elementName := serializer.elementName(predicate, extra)
		for _, object := range group[predicate] {
			serializer.writeProperty(builder, elementName, object)
		}
	}

	builder.WriteString("  </rdf:Description>\n")
}

// writeProperty writes a single predicate-object pair as an XML element.
func (serializer *RDFXMLSerializer) writeProperty(builder *strings.Builder, elementName string, object Term) {
	switch {
	case object.IsIRI():
		fmt.Fprintf(builder, "    <%s rdf:resource=\"%s\"/>\n", elementName, escapeXMLAttribute(object.Value))
	case object.Datatype != "" && object.Datatype != XSDString:
		fmt.Fprintf(builder, "    <%s rdf:datatype=\"%s\">%s</%s>\n",
			elementName, escapeXMLAttribute(object.Datatype), escapeXMLText(object.Value), elementName)
	default:
		fmt.Fprintf(builder, "    <%s>%s</%s>\n", elementName, escapeXMLText(object.Value), elementName)
	}
}

// elementName converts a predicate IRI to a prefixed XML element name,
// allocating a generated prefix when the namespace is unknown.
func (serializer *RDFXMLSerializer) elementName(predicate string, extra map[string]string) string {
	if prefix, localName, ok := serializer.prefixes.split(predicate); ok {
		return prefix + ":" + localName
	}

	cut := strings.LastIndexAny(predicate, "/#")
	namespace, localName := predicate[:cut+1], predicate[cut+1:]
	prefix, ok := extra[namespace]
	if !ok {
		prefix = fmt.Sprintf("ns%d", len(extra))
		extra[namespace] = prefix
	}
	return prefix + ":" + localName
}

// escapeXMLText escapes characters that are special in XML text content.
func escapeXMLText(text string) string {
	var builder strings.Builder
	builder.Grow(len(text) + len(text)/8)

	for _, char := range text {
		switch char {
		case '&':
			builder.WriteString("&amp;")
		case '<':
			builder.WriteString("&lt;")
		case '>':
			builder.WriteString("&gt;")
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

// escapeXMLAttribute escapes characters that are special in XML attribute values.
func escapeXMLAttribute(text string) string {
	var builder strings.Builder
	builder.Grow(len(text) + len(text)/8)

	for _, char := range text {
		switch char {
		case '&':
			builder.WriteString("&amp;")
		case '<':
			builder.WriteString("&lt;")
		case '>':
			builder.WriteString("&gt;")
		case '"':
			builder.WriteString("&quot;")
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}
