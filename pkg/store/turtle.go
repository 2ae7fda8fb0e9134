package store

import (
	"fmt"
	"io"
	"strings"
)

// TurtleSerializer converts a TripleStore into W3C-compliant Turtle (TTL) format.
type TurtleSerializer struct {
	prefixes *prefixTable
}

// NewTurtleSerializer creates a TurtleSerializer with standard prefix declarations.
func NewTurtleSerializer(options ...SerializerOption) *TurtleSerializer {
	config := newSerializerConfig(options)
	return &TurtleSerializer{prefixes: newPrefixTable(config.prefixMappings)}
}

// Format implements Serializer.
func (serializer *TurtleSerializer) Format() Format { return FormatTurtle }

// Serialize writes all triples in the store to w in Turtle format.
func (serializer *TurtleSerializer) Serialize(w io.Writer, store *TripleStore) error {
	_, err := io.WriteString(w, serializer.SerializeToString(store))
	return err
}

// SerializeToString converts all triples in the store to a Turtle document.
func (serializer *TurtleSerializer) SerializeToString(store *TripleStore) string {
	var builder strings.Builder

	serializer.writePrefixDeclarations(&builder)

	subjectGroups := groupTriplesBySubject(store)
	for subjectIndex, subject := range sortedKeys(subjectGroups) {
		if subjectIndex > 0 {
			builder.WriteString("\n")
		}
		serializer.writeSubjectGroup(&builder, subject, subjectGroups[subject])
	}

	return builder.String()
}

func (serializer *TurtleSerializer) writePrefixDeclarations(builder *strings.Builder) {
	for _, mapping := range serializer.prefixes.mappings {
		fmt.Fprintf(builder, "@prefix %s: <%s> .\n", mapping.Prefix, mapping.Namespace)
	}

	if len(serializer.prefixes.mappings) > 0 {
		builder.WriteString("\n")
	}
}

func (serializer *TurtleSerializer) writeSubjectGroup(builder *strings.Builder, subject string, group subjectGroup) {
	builder.WriteString(serializer.formatResource(subject))

	for predicateIndex, predicate := range group.sortPredicatesTypeFirst() {
		if predicateIndex == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(" ;\n    ")
		}

		builder.WriteString(serializer.formatPredicate(predicate))

		for objectIndex, object := range group[predicate] {
			if objectIndex > 0 {
				builder.WriteString(" ,\n        ")
			} else {
				builder.WriteString(" ")
			}
			builder.WriteString(serializer.formatObject(object))
		}
	}

	builder.WriteString(" .\n")
}

// formatResource formats a subject or predicate IRI.
func (serializer *TurtleSerializer) formatResource(value string) string {
	if compacted, ok := serializer.prefixes.compact(value); ok {
		return compacted
	}
	return "<" + escapeIRI(value) + ">"
}

// formatPredicate formats a predicate, using "a" shorthand for rdf:type.
func (serializer *TurtleSerializer) formatPredicate(predicate string) string {
	if predicate == RDFType {
		return "a"
	}
	return serializer.formatResource(predicate)
}

// formatObject formats an object which may be an IRI or a literal.
func (serializer *TurtleSerializer) formatObject(object Term) string {
	if object.IsIRI() {
		return serializer.formatResource(object.Value)
	}

	literal := `"` + escapeLiteralString(object.Value) + `"`
	if object.Datatype != "" && object.Datatype != XSDString {
		literal += "^^" + serializer.formatResource(object.Datatype)
	}
	return literal
}
