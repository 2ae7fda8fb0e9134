package store

import (
	"encoding/json"
	"io"
)

// JSONLDContext represents a JSON-LD @context document.
type JSONLDContext map[string]interface{}

// JSONLDDocument represents a complete JSON-LD document.
type JSONLDDocument struct {
	Context JSONLDContext            `json:"@context,omitempty"`
	Graph   []map[string]interface{} `json:"@graph"`
}

// JSONLDSerializer converts a TripleStore into compact JSON-LD with an
// @context built from the prefix mappings.
type JSONLDSerializer struct {
	prefixes *prefixTable
}

// NewJSONLDSerializer creates a JSONLDSerializer with standard prefix declarations.
func NewJSONLDSerializer(options ...SerializerOption) *JSONLDSerializer {
	config := newSerializerConfig(options)
	return &JSONLDSerializer{prefixes: newPrefixTable(config.prefixMappings)}
}

// Format implements Serializer.
func (serializer *JSONLDSerializer) Format() Format { return FormatJSONLD }

// BuildContext creates the JSON-LD @context document from prefix mappings.
func (serializer *JSONLDSerializer) BuildContext() JSONLDContext {
	context := make(JSONLDContext, len(serializer.prefixes.mappings))
	for _, mapping := range serializer.prefixes.mappings {
		context[mapping.Prefix] = mapping.Namespace
	}
	return context
}

// Serialize writes the store to w as an indented JSON-LD document.
func (serializer *JSONLDSerializer) Serialize(w io.Writer, store *TripleStore) error {
	subjectGroups := groupTriplesBySubject(store)
	sortedSubjects := sortedKeys(subjectGroups)

	graph := make([]map[string]interface{}, 0, len(sortedSubjects))
	for _, subject := range sortedSubjects {
		graph = append(graph, serializer.buildNode(subject, subjectGroups[subject]))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(JSONLDDocument{
		Context: serializer.BuildContext(),
		Graph:   graph,
	})
}

// buildNode creates a compact JSON-LD node from a subject and its predicates.
func (serializer *JSONLDSerializer) buildNode(subject string, group subjectGroup) map[string]interface{} {
	node := map[string]interface{}{
		"@id": serializer.compactURI(subject),
	}

	for _, predicate := range group.sortPredicatesTypeFirst() {
		objects := group[predicate]

		if predicate == RDFType {
			types := make([]string, len(objects))
			for i, object := range objects {
				types[i] = serializer.compactURI(object.Value)
			}
			if len(types) == 1 {
				node["@type"] = types[0]
			} else {
				node["@type"] = types
			}
			continue
		}

		values := make([]interface{}, len(objects))
		for i, object := range objects {
			values[i] = serializer.formatObject(object)
		}
		key := serializer.compactURI(predicate)
		if len(values) == 1 {
			node[key] = values[0]
		} else {
			node[key] = values
		}
	}

	return node
}

func (serializer *JSONLDSerializer) formatObject(object Term) interface{} {
	if object.IsIRI() {
		return map[string]string{"@id": serializer.compactURI(object.Value)}
	}
	if object.Datatype != "" && object.Datatype != XSDString {
		return map[string]string{
			"@value": object.Value,
			"@type":  serializer.compactURI(object.Datatype),
		}
	}
	return object.Value
}

// compactURI replaces full namespace URIs with prefixed forms when possible.
func (serializer *JSONLDSerializer) compactURI(fullURI string) string {
	if compacted, ok := serializer.prefixes.compact(fullURI); ok {
		return compacted
	}
	return fullURI
}
