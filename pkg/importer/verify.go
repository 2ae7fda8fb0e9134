package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/coolbeans/spatrem/pkg/store"
)

// PartitionReport describes one exported partition read back from disk.
type PartitionReport struct {
	Name     string
	Path     string
	Triples  int
	Subjects int
	// Classes counts subjects per rdf:type.
	Classes map[string]int
	Graph   *store.TripleStore
}

// Union merges the graphs of reports into one store.
func Union(reports []PartitionReport) *store.TripleStore {
	union := store.NewTripleStore()
	for _, report := range reports {
		if report.Graph != nil {
			union.MergeFrom(report.Graph)
		}
	}
	return union
}

// PartitionNames lists the partition file stems in export order.
func PartitionNames() []string {
	return []string{
		CategoryTypes,
		CategoryJournals,
		CategoryIssues,
		CategoryTranslators,
		CategoryAuthors,
		CategoryLanguages,
		CategoryNames,
		CategoryTranslations,
		CategoryOriginals,
	}
}

// Verify parses the partitions exported to dir in format. Only Turtle and
// N-Triples can be read back.
func Verify(dir string, format store.Format) ([]PartitionReport, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrOutputDirNotFound, dir)
	}

	var reports []PartitionReport
	for _, name := range PartitionNames() {
		path := filepath.Join(dir, name+"."+format.Extension())

		file, err := os.Open(path)
		if err != nil {
			return reports, err
		}
		graph, err := store.Parse(file, format)
		file.Close()
		if err != nil {
			return reports, fmt.Errorf("parsing %s: %w", path, err)
		}

		reports = append(reports, report(name, path, graph))
	}

	return reports, nil
}

func report(name, path string, graph *store.TripleStore) PartitionReport {
	stats := graph.Stats()
	classes := make(map[string]int)
	for _, triple := range graph.Find("", store.RDFType, store.Term{}) {
		classes[triple.Object.Value]++
	}
	return PartitionReport{
		Name:     name,
		Path:     path,
		Triples:  stats.TotalTriples,
		Subjects: stats.UniqueSubjects,
		Classes:  classes,
		Graph:    graph,
	}
}

// SortedClasses returns the report's class IRIs in lexical order.
func (r PartitionReport) SortedClasses() []string {
	classes := make([]string, 0, len(r.Classes))
	for class := range r.Classes {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}
