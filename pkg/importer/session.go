// Package importer assembles the translation graph from table records.
//
// A Session owns one registry per entity category and the role types.
// Rows are fed in file order: translations first, then the biographical
// translators table, which only enriches people the translations named.
// An Exporter then writes one serialized partition per category.
package importer

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/coolbeans/spatrem/pkg/ontology"
)

// Registry categories, which are also the exported partition names.
const (
	CategoryTypes        = "types"
	CategoryJournals     = "journals"
	CategoryIssues       = "issues"
	CategoryTranslators  = "translators"
	CategoryAuthors      = "authors"
	CategoryLanguages    = "languages"
	CategoryNames        = "names"
	CategoryTranslations = "translations"
	CategoryOriginals    = "originals"
)

// Table names passed to the Recorder.
const (
	TableTranslations = "translations"
	TableTranslators  = "translators"
)

// ErrInvalidRecord is returned for a row that cannot identify its journal.
var ErrInvalidRecord = errors.New("invalid record")

// AnonymousPolicy decides how "Anon." mentions become people.
type AnonymousPolicy string

const (
	// AnonymousDistinct creates a new person for every mention.
	AnonymousDistinct AnonymousPolicy = "distinct"
	// AnonymousMerge folds all mentions of a role into one person.
	AnonymousMerge AnonymousPolicy = "merge"
)

// UntranslatedPolicy decides what happens to a titled row without a named
// translator.
type UntranslatedPolicy string

const (
	// UntranslatedBuild builds the translation and original anyway.
	UntranslatedBuild UntranslatedPolicy = "build"
	// UntranslatedSkip leaves the constituent out of the graph.
	UntranslatedSkip UntranslatedPolicy = "skip"
)

// Options are the assembler knobs.
type Options struct {
	Anonymous    AnonymousPolicy
	Untranslated UntranslatedPolicy
	// IssueNumbering attaches volume and number literals to issues.
	IssueNumbering bool
	// Manifestations adds a publication manifestation to every issue.
	Manifestations bool
}

// DefaultOptions returns the behaviour used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Anonymous:      AnonymousDistinct,
		Untranslated:   UntranslatedBuild,
		IssueNumbering: true,
	}
}

// Recorder receives run events. metrics.Metrics satisfies it.
type Recorder interface {
	RowProcessed(table string)
	EntityCreated(category string)
	UnknownTranslator()
	PartitionWritten(partition string, triples int)
}

type nopRecorder struct{}

func (nopRecorder) RowProcessed(string)          {}
func (nopRecorder) EntityCreated(string)         {}
func (nopRecorder) UnknownTranslator()           {}
func (nopRecorder) PartitionWritten(string, int) {}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sets the receiver of run events.
func WithRecorder(recorder Recorder) SessionOption {
	return func(s *Session) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

// Session is the state of one import run.
type Session struct {
	options  Options
	logger   *slog.Logger
	recorder Recorder

	roles map[string]*ontology.Node

	Types        *Registry[*ontology.Node]
	Journals     *Registry[*ontology.Node]
	Issues       *Registry[*ontology.Node]
	Translators  *Registry[*ontology.Node]
	Authors      *Registry[*ontology.Node]
	Languages    *Registry[*ontology.Node]
	Names        *Registry[*ontology.Node]
	Translations *Registry[*ontology.Node]
	Originals    *Registry[*ontology.Node]

	translationRows     atomic.Int64
	translatorRows      atomic.Int64
	skippedUntranslated atomic.Int64
	unknownTranslators  atomic.Int64
}

// NewSession creates an empty session holding the role types.
func NewSession(options Options, opts ...SessionOption) *Session {
	if options.Anonymous == "" {
		options.Anonymous = AnonymousDistinct
	}
	if options.Untranslated == "" {
		options.Untranslated = UntranslatedBuild
	}

	s := &Session{
		options:  options,
		logger:   slog.Default(),
		recorder: nopRecorder{},
		roles:    make(map[string]*ontology.Node, len(ontology.Roles)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Types = s.newRegistry(CategoryTypes)
	s.Journals = s.newRegistry(CategoryJournals)
	s.Issues = s.newRegistry(CategoryIssues)
	s.Translators = s.newRegistry(CategoryTranslators)
	s.Authors = s.newRegistry(CategoryAuthors)
	s.Languages = s.newRegistry(CategoryLanguages)
	s.Names = s.newRegistry(CategoryNames)
	s.Translations = s.newRegistry(CategoryTranslations)
	s.Originals = s.newRegistry(CategoryOriginals)

	for _, name := range ontology.Roles {
		role, _ := s.Types.ResolveOrCreate(name, func() *ontology.Node {
			return ontology.NewType(name)
		})
		s.roles[name] = role
	}

	return s
}

func (s *Session) newRegistry(category string) *Registry[*ontology.Node] {
	registry := NewRegistry[*ontology.Node](category)
	registry.onCreate = s.entityCreated
	return registry
}

func (s *Session) entityCreated(category string, node *ontology.Node) {
	s.recorder.EntityCreated(category)
	s.logger.Debug("created entity", "category", category, "iri", node.IRI())
}

// Options returns the knobs the session runs with.
func (s *Session) Options() Options {
	return s.options
}

// Role returns the type node for a role name such as "translator".
func (s *Session) Role(name string) *ontology.Node {
	return s.roles[name]
}

// registries lists every registry in export order.
func (s *Session) registries() []*Registry[*ontology.Node] {
	return []*Registry[*ontology.Node]{
		s.Types,
		s.Journals,
		s.Issues,
		s.Translators,
		s.Authors,
		s.Languages,
		s.Names,
		s.Translations,
		s.Originals,
	}
}

// Stats summarises a run.
type Stats struct {
	TranslationRows     int
	TranslatorRows      int
	SkippedUntranslated int
	UnknownTranslators  int
	// Entities counts nodes per category.
	Entities map[string]int
}

// Stats returns the run counters so far.
func (s *Session) Stats() Stats {
	stats := Stats{
		TranslationRows:     int(s.translationRows.Load()),
		TranslatorRows:      int(s.translatorRows.Load()),
		SkippedUntranslated: int(s.skippedUntranslated.Load()),
		UnknownTranslators:  int(s.unknownTranslators.Load()),
		Entities:            make(map[string]int),
	}
	for _, registry := range s.registries() {
		stats.Entities[registry.Category()] = registry.Len()
	}
	return stats
}
