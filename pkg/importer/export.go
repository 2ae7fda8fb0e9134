package importer

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/coolbeans/spatrem/pkg/store"
	"github.com/coolbeans/spatrem/pkg/vocab"
)

// ErrOutputDirNotFound is returned when the export target is not an
// existing directory.
var ErrOutputDirNotFound = errors.New("output directory not found")

// Partition is the union of the graphs of one category.
type Partition struct {
	Name  string
	Graph *store.TripleStore
}

// Partitions returns the nine category graphs in export order. Each call
// builds fresh unions.
func (s *Session) Partitions() []Partition {
	registries := s.registries()
	partitions := make([]Partition, 0, len(registries))

	for _, registry := range registries {
		graph := store.NewTripleStore()
		for _, node := range registry.Values() {
			graph.MergeFrom(node.Graph())
		}
		partitions = append(partitions, Partition{Name: registry.Category(), Graph: graph})
	}

	return partitions
}

// Exporter writes session partitions to a directory, one file each.
type Exporter struct {
	session    *Session
	serializer store.Serializer
	logger     *slog.Logger
}

// NewExporter returns an exporter writing format with the project
// prefixes declared.
func NewExporter(session *Session, format store.Format) (*Exporter, error) {
	serializer, err := store.NewSerializer(format, vocab.Prefixes())
	if err != nil {
		return nil, err
	}
	return &Exporter{
		session:    session,
		serializer: serializer,
		logger:     session.logger,
	}, nil
}

// Format returns the serialization the exporter writes.
func (e *Exporter) Format() store.Format {
	return e.serializer.Format()
}

// Export writes <partition>.<ext> for every partition into dir and returns
// the written paths. All partitions are serialized before any file is
// written, so a serializer failure leaves dir untouched.
func (e *Exporter) Export(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrOutputDirNotFound, dir)
	}

	partitions := e.session.Partitions()
	buffers := make([]bytes.Buffer, len(partitions))
	for i, partition := range partitions {
		if err := e.serializer.Serialize(&buffers[i], partition.Graph); err != nil {
			return nil, fmt.Errorf("serializing %s: %w", partition.Name, err)
		}
	}

	extension := e.serializer.Format().Extension()
	paths := make([]string, 0, len(partitions))
	for i, partition := range partitions {
		path := filepath.Join(dir, partition.Name+"."+extension)
		if err := os.WriteFile(path, buffers[i].Bytes(), 0o644); err != nil {
			e.logger.Error("failed to write partition", "partition", partition.Name, "path", path, "error", err)
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}

		triples := partition.Graph.Count()
		e.session.recorder.PartitionWritten(partition.Name, triples)
		e.logger.Info("wrote partition", "partition", partition.Name, "path", path, "triples", triples)
		paths = append(paths, path)
	}

	return paths, nil
}
