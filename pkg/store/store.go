package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrEmptyComponent is returned when a triple is added with an empty subject,
// predicate or object.
var ErrEmptyComponent = errors.New("triple components cannot be empty")

// IndexStats contains statistics about the triple store.
type IndexStats struct {
	TotalTriples     int            `json:"total_triples"`
	UniqueSubjects   int            `json:"unique_subjects"`
	UniquePredicates int            `json:"unique_predicates"`
	PredicateCounts  map[string]int `json:"predicate_counts"`
}

// TripleStore is an in-memory RDF triple store with multiple indexes.
// Adding a triple that is already present is a no-op, which gives the store
// graph-union semantics: merging the same fragment twice changes nothing.
//   - SPO: Subject -> Predicate -> Object (find facts about a subject)
//   - POS: Predicate -> Object -> Subject (find subjects with property=value)
type TripleStore struct {
	mu sync.RWMutex

	spo map[string]map[string]map[Term]bool
	pos map[string]map[Term]map[string]bool

	count           int
	predicateCounts map[string]int
}

// NewTripleStore creates a new in-memory triple store with all indexes initialized.
func NewTripleStore() *TripleStore {
	return &TripleStore{
		spo:             make(map[string]map[string]map[Term]bool),
		pos:             make(map[string]map[Term]map[string]bool),
		predicateCounts: make(map[string]int),
	}
}

// Add inserts a triple into the store. Returns nil if successful or if the
// triple already exists (idempotent operation).
func (ts *TripleStore) Add(subject, predicate string, object Term) error {
	if subject == "" || predicate == "" || object.Value == "" {
		return ErrEmptyComponent
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.addUnsafe(subject, predicate, object)
	return nil
}

// AddTriple inserts a Triple struct into the store.
func (ts *TripleStore) AddTriple(triple Triple) error {
	return ts.Add(triple.Subject, triple.Predicate, triple.Object)
}

// BulkAdd inserts multiple triples while holding the write lock once.
// Invalid triples are skipped and reported in the returned error.
func (ts *TripleStore) BulkAdd(triples []Triple) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	skipped := 0
	for _, triple := range triples {
		if !triple.IsValid() {
			skipped++
			continue
		}
		ts.addUnsafe(triple.Subject, triple.Predicate, triple.Object)
	}

	if skipped > 0 {
		return fmt.Errorf("skipped %d triples: %w", skipped, ErrEmptyComponent)
	}
	return nil
}

// MergeFrom copies all triples from the source store into this store.
// Returns the number of new triples added.
func (ts *TripleStore) MergeFrom(source *TripleStore) int {
	if source == nil || source == ts {
		return 0
	}
	sourceTriples := source.All()
	previousCount := ts.Count()
	_ = ts.BulkAdd(sourceTriples)
	return ts.Count() - previousCount
}

// Find queries triples matching the pattern. Empty subject or predicate and a
// zero object term act as wildcards. Results are sorted.
func (ts *TripleStore) Find(subject, predicate string, object Term) []Triple {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	results := ts.findUnsafe(subject, predicate, object)
	sortTriples(results)
	return results
}

// Exists checks if a specific triple exists in the store.
func (ts *TripleStore) Exists(subject, predicate string, object Term) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.existsUnsafe(subject, predicate, object)
}

// Objects returns every object recorded for a subject-predicate pair.
func (ts *TripleStore) Objects(subject, predicate string) []Term {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	var objects []Term
	if pMap, ok := ts.spo[subject]; ok {
		for o := range pMap[predicate] {
			objects = append(objects, o)
		}
	}
	sort.Slice(objects, func(i, j int) bool { return termLess(objects[i], objects[j]) })
	return objects
}

// SubjectsOfType returns all subjects carrying rdf:type class.
func (ts *TripleStore) SubjectsOfType(class string) []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	var subjects []string
	for s := range ts.pos[RDFType][IRI(class)] {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// Count returns the total number of triples in the store.
func (ts *TripleStore) Count() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.count
}

// Subjects returns all unique subjects in the store, sorted.
func (ts *TripleStore) Subjects() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	subjects := make([]string, 0, len(ts.spo))
	for s := range ts.spo {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// Stats returns statistics about the store.
func (ts *TripleStore) Stats() IndexStats {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	predicateCounts := make(map[string]int, len(ts.predicateCounts))
	for k, v := range ts.predicateCounts {
		predicateCounts[k] = v
	}

	return IndexStats{
		TotalTriples:     ts.count,
		UniqueSubjects:   len(ts.spo),
		UniquePredicates: len(ts.pos),
		PredicateCounts:  predicateCounts,
	}
}

// String returns a string representation of the store statistics.
func (ts *TripleStore) String() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return fmt.Sprintf("TripleStore{triples: %d, subjects: %d, predicates: %d}",
		ts.count, len(ts.spo), len(ts.pos))
}

// All returns all triples in the store in a deterministic order.
func (ts *TripleStore) All() []Triple {
	return ts.Find("", "", Term{})
}

func (ts *TripleStore) addUnsafe(subject, predicate string, object Term) {
	if ts.existsUnsafe(subject, predicate, object) {
		return
	}

	if ts.spo[subject] == nil {
		ts.spo[subject] = make(map[string]map[Term]bool)
	}
	if ts.spo[subject][predicate] == nil {
		ts.spo[subject][predicate] = make(map[Term]bool)
	}
	ts.spo[subject][predicate][object] = true

	if ts.pos[predicate] == nil {
		ts.pos[predicate] = make(map[Term]map[string]bool)
	}
	if ts.pos[predicate][object] == nil {
		ts.pos[predicate][object] = make(map[string]bool)
	}
	ts.pos[predicate][object][subject] = true

	ts.predicateCounts[predicate]++
	ts.count++
}

// existsUnsafe checks if a triple exists without locking.
func (ts *TripleStore) existsUnsafe(subject, predicate string, object Term) bool {
	if pMap, ok := ts.spo[subject]; ok {
		if oMap, ok := pMap[predicate]; ok {
			return oMap[object]
		}
	}
	return false
}

// findUnsafe finds triples without locking.
func (ts *TripleStore) findUnsafe(subject, predicate string, object Term) []Triple {
	var results []Triple
	anyObject := object.IsZero()

	collect := func(s string, pMap map[string]map[Term]bool) {
		for p, oMap := range pMap {
			if predicate != "" && p != predicate {
				continue
			}
			if !anyObject {
				if oMap[object] {
					results = append(results, Triple{Subject: s, Predicate: p, Object: object})
				}
				continue
			}
			for o := range oMap {
				results = append(results, Triple{Subject: s, Predicate: p, Object: o})
			}
		}
	}

	switch {
	case subject != "":
		if pMap, ok := ts.spo[subject]; ok {
			collect(subject, pMap)
		}
	case predicate != "":
		// Use POS index (no subject specified)
		for o, sMap := range ts.pos[predicate] {
			if !anyObject && o != object {
				continue
			}
			for s := range sMap {
				results = append(results, Triple{Subject: s, Predicate: predicate, Object: o})
			}
		}
	default:
		for s, pMap := range ts.spo {
			collect(s, pMap)
		}
	}

	return results
}

func sortTriples(triples []Triple) {
	sort.Slice(triples, func(i, j int) bool {
		a, b := triples[i], triples[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Predicate != b.Predicate {
			return a.Predicate < b.Predicate
		}
		return termLess(a.Object, b.Object)
	})
}

func termLess(a, b Term) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Value != b.Value {
		return a.Value < b.Value
	}
	return a.Datatype < b.Datatype
}
