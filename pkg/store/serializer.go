package store

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnsupportedFormat is returned for an unknown serialization name.
var ErrUnsupportedFormat = errors.New("unsupported serialization format")

// Format names a textual triple serialization.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatJSONLD   Format = "jsonld"
	FormatRDFXML   Format = "rdfxml"
)

// ParseFormat resolves a user-supplied format name. File extensions are
// accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "turtle", "ttl", "":
		return FormatTurtle, nil
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, nil
	case "jsonld", "json-ld":
		return FormatJSONLD, nil
	case "rdfxml", "rdf", "xml":
		return FormatRDFXML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatNTriples:
		return "nt"
	case FormatJSONLD:
		return "jsonld"
	case FormatRDFXML:
		return "rdf"
	default:
		return "ttl"
	}
}

// Serializer writes a whole store in one textual format.
type Serializer interface {
	Serialize(w io.Writer, store *TripleStore) error
	Format() Format
}

// NewSerializer returns the serializer for format, declaring the given
// prefixes in addition to the core W3C ones.
func NewSerializer(format Format, prefixes []PrefixMapping) (Serializer, error) {
	switch format {
	case FormatTurtle:
		return NewTurtleSerializer(WithPrefixes(prefixes)), nil
	case FormatNTriples:
		return NTriplesSerializer{}, nil
	case FormatJSONLD:
		return NewJSONLDSerializer(WithPrefixes(prefixes)), nil
	case FormatRDFXML:
		return NewRDFXMLSerializer(WithPrefixes(prefixes)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SerializerOption configures the prefix-aware serializers.
type SerializerOption func(*serializerConfig)

type serializerConfig struct {
	prefixMappings []PrefixMapping
}

func newSerializerConfig(options []SerializerOption) *serializerConfig {
	config := &serializerConfig{prefixMappings: DefaultPrefixMappings()}
	for _, option := range options {
		option(config)
	}
	return config
}

// WithPrefix adds or overrides a prefix mapping.
func WithPrefix(prefix, namespace string) SerializerOption {
	return func(config *serializerConfig) {
		config.prefixMappings = append(config.prefixMappings, PrefixMapping{
			Prefix:    prefix,
			Namespace: namespace,
		})
	}
}

// WithPrefixes adds a batch of prefix mappings.
func WithPrefixes(mappings []PrefixMapping) SerializerOption {
	return func(config *serializerConfig) {
		config.prefixMappings = append(config.prefixMappings, mappings...)
	}
}

// WithoutDefaultPrefixes clears default prefixes so only custom ones are used.
func WithoutDefaultPrefixes() SerializerOption {
	return func(config *serializerConfig) {
		config.prefixMappings = nil
	}
}

// NTriplesSerializer writes one triple per line with full IRIs.
type NTriplesSerializer struct{}

// Format implements Serializer.
func (NTriplesSerializer) Format() Format { return FormatNTriples }

// Serialize implements Serializer.
func (NTriplesSerializer) Serialize(w io.Writer, store *TripleStore) error {
	for _, triple := range store.All() {
		if _, err := io.WriteString(w, triple.NTriples()+"\n"); err != nil {
			return err
		}
	}
	return nil
}
