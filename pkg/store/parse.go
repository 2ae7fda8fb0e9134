package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/knakk/rdf"
)

// Parse reads a Turtle or N-Triples document into a new store. It is the
// inverse of the Turtle and N-Triples serializers and is used to check that
// exported partitions survive a round trip.
func Parse(r io.Reader, format Format) (*TripleStore, error) {
	var decoderFormat rdf.Format
	switch format {
	case FormatTurtle:
		decoderFormat = rdf.Turtle
	case FormatNTriples:
		decoderFormat = rdf.NTriples
	default:
		return nil, fmt.Errorf("%w: cannot parse %q", ErrUnsupportedFormat, format)
	}

	store := NewTripleStore()
	decoder := rdf.NewTripleDecoder(r, decoderFormat)
	for {
		triple, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", format, err)
		}

		if err := store.Add(triple.Subj.String(), triple.Pred.String(), termFromRDF(triple.Obj)); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// ParseFile opens path and parses it with the format implied by its extension.
func ParseFile(path string) (*TripleStore, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file, format)
}

// FormatFromPath infers the serialization format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: no extension on %q", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext[1:])
}

func termFromRDF(object rdf.Object) Term {
	literal, ok := object.(rdf.Literal)
	if !ok {
		return IRI(object.String())
	}

	datatype := literal.DataType.String()
	if datatype == XSDString {
		datatype = ""
	}
	return TypedLiteral(literal.String(), datatype)
}
