// Package ontology builds the nodes of the translation graph.
//
// Every entity is a *Node: an IRI, a kind tag and the graph that holds the
// node's own statements. Sub-nodes such as a work's primary expression or
// its creation event share their owner's graph, so exporting a work exports
// everything hanging off it. Relationships between independent nodes are
// written by the link functions in links.go, which always add both
// directions of a pair.
package ontology

import (
	"github.com/coolbeans/spatrem/pkg/ident"
	"github.com/coolbeans/spatrem/pkg/store"
	"github.com/coolbeans/spatrem/pkg/vocab"
)

// Kind tags the role a node plays in the graph.
type Kind string

const (
	KindType                  Kind = "type"
	KindNomen                 Kind = "nomen"
	KindLanguage              Kind = "language"
	KindPerson                Kind = "person"
	KindWork                  Kind = "work"
	KindJournal               Kind = "journal"
	KindIssue                 Kind = "issue"
	KindTranslation           Kind = "translation"
	KindOriginal              Kind = "original"
	KindExpression            Kind = "expression"
	KindWorkCreation          Kind = "work_creation"
	KindExpressionCreation    Kind = "expression_creation"
	KindManifestation         Kind = "manifestation"
	KindManifestationCreation Kind = "manifestation_creation"
	KindTimeSpan              Kind = "timespan"
)

// Resource is anything with an IRI whose statements live in a graph.
type Resource interface {
	IRI() string
	Graph() *store.TripleStore
}

// Realisable is a work that owns a primary expression.
type Realisable interface {
	Resource
	Expression() *Node
}

// Creatable is a work brought about by a creation event.
type Creatable interface {
	Resource
	Creation() *Node
}

// Node is a single graph entity.
type Node struct {
	iri   string
	token string
	label string
	kind  Kind
	graph *store.TripleStore

	expression         *Node
	creation           *Node
	expressionCreation *Node
}

// IRI derives the identifier a name receives in namespace.
func IRI(namespace, name string) string {
	return namespace + ident.Clean(name)
}

// newNode creates a node and asserts its class. A nil graph gives the node
// a graph of its own.
func newNode(namespace, token, label string, kind Kind, class string, graph *store.TripleStore) *Node {
	if graph == nil {
		graph = store.NewTripleStore()
	}

	node := &Node{
		iri:   namespace + token,
		token: token,
		label: label,
		kind:  kind,
		graph: graph,
	}
	node.add(store.RDFType, store.IRI(class))
	node.Set(store.RDFSLabel, label)
	return node
}

// IRI returns the node identifier.
func (n *Node) IRI() string { return n.iri }

// Token returns the derived token the IRI ends in.
func (n *Node) Token() string { return n.token }

// Label returns the human-readable label, which may be empty.
func (n *Node) Label() string { return n.label }

// Kind returns the role tag.
func (n *Node) Kind() Kind { return n.kind }

// Graph returns the graph holding the node's statements.
func (n *Node) Graph() *store.TripleStore { return n.graph }

// Expression returns the primary expression of a work, or nil.
func (n *Node) Expression() *Node { return n.expression }

// Creation returns the work creation event, or nil.
func (n *Node) Creation() *Node { return n.creation }

// ExpressionCreation returns the creation event of the primary expression,
// or nil.
func (n *Node) ExpressionCreation() *Node { return n.expressionCreation }

// Is reports whether the node carries rdf:type class.
func (n *Node) Is(class string) bool {
	return n.graph.Exists(n.iri, store.RDFType, store.IRI(class))
}

// Set attaches a literal attribute. Empty values are ignored.
func (n *Node) Set(predicate, value string) {
	if value == "" {
		return
	}
	n.add(predicate, store.Literal(value))
}

// HasType links the node to a role type.
func (n *Node) HasType(role *Node) {
	if role == nil {
		return
	}
	n.add(vocab.P2HasType, store.IRI(role.IRI()))
}

// HasLanguage records the language of the node's primary expression, or of
// the node itself when it has none.
func (n *Node) HasLanguage(language *Node) {
	target := n
	if n.expression != nil {
		target = n.expression
	}
	target.add(vocab.P72HasLanguage, store.IRI(language.IRI()))
}

func (n *Node) add(predicate string, object store.Term) {
	n.graph.Add(n.iri, predicate, object)
}

func (n *Node) String() string {
	if n.label != "" {
		return "<" + string(n.kind) + ": " + n.label + ">"
	}
	return "<" + string(n.kind) + ": " + n.token + ">"
}
