package ontology

import (
	"fmt"
	"strings"

	"github.com/coolbeans/spatrem/pkg/ident"
	"github.com/coolbeans/spatrem/pkg/store"
	"github.com/coolbeans/spatrem/pkg/vocab"
)

// Role type names created once per session.
const (
	RoleJournal     = "journal"
	RoleIssue       = "issue"
	RoleConstituent = "constituent"
	RoleTranslation = "translation"
	RoleOriginal    = "original"
	RoleAuthor      = "author"
	RoleTranslator  = "translator"
)

// Roles lists the role types in export order.
var Roles = []string{
	RoleJournal,
	RoleIssue,
	RoleConstituent,
	RoleTranslation,
	RoleOriginal,
	RoleAuthor,
	RoleTranslator,
}

// NewType returns an E55 type node.
func NewType(name string) *Node {
	name = strings.TrimSpace(name)
	node := newNode(vocab.Types, ident.Clean(name), name, KindType, vocab.E55Type, nil)
	node.Set(vocab.Identifier, name)
	return node
}

// NewNomen returns a name node carrying the raw string.
func NewNomen(name string) *Node {
	name = strings.TrimSpace(name)
	node := newNode(vocab.Names, ident.Clean(name), name, KindNomen, vocab.F12Nomen, nil)
	node.Set(vocab.R33HasString, name)
	return node
}

// NewLanguage returns a language node for a code such as "DE".
func NewLanguage(code string) *Node {
	code = strings.TrimSpace(code)
	node := newNode(vocab.Languages, ident.Clean(code), code, KindLanguage, vocab.E56Language, nil)
	node.add(store.RDFType, store.IRI(vocab.E55Type))
	node.Set(vocab.Identifier, code)
	return node
}

// NewPerson returns an actor node. The token is normally the cleaned name;
// anonymous agents get a numbered token of their own.
func NewPerson(token, name string, role *Node) *Node {
	node := newNode(vocab.People, token, strings.TrimSpace(name), KindPerson, vocab.E21Person, nil)
	node.add(store.RDFType, store.IRI(vocab.E39Actor))
	node.Set(vocab.Identifier, token)
	node.HasType(role)
	return node
}

// NewWork returns an F1 work realised by a primary expression.
func NewWork(namespace, token, label string, kind Kind) *Node {
	return newWork(namespace, token, label, kind, vocab.F1Work)
}

// NewSerialWork returns an F18 serial work realised by a primary
// expression. The class is fixed at construction.
func NewSerialWork(namespace, token, label string, kind Kind) *Node {
	return newWork(namespace, token, label, kind, vocab.F18SerialWork)
}

func newWork(namespace, token, label string, kind Kind, class string) *Node {
	work := newNode(namespace, token, label, kind, class, nil)
	work.expression = NewExpression(work)
	Realise(work, work.expression)
	return work
}

// NewExpression returns the primary expression of owner. It lives in the
// owner's graph; the caller links it with Realise.
func NewExpression(owner *Node) *Node {
	return newNode(vocab.Expressions, subToken(owner, ""), owner.label, KindExpression, vocab.F2Expression, owner.graph)
}

// NewWorkCreation attaches an F27 creation event to work.
func NewWorkCreation(work *Node) *Node {
	event := newNode(vocab.Events, subToken(work, "creation"), "", KindWorkCreation, vocab.F27WorkCreation, work.graph)
	pair(event, vocab.R16Created, work, vocab.R16iWasCreatedBy)
	work.creation = event
	return event
}

// NewExpressionCreation attaches an F28 creation event to the primary
// expression of work.
func NewExpressionCreation(work *Node) *Node {
	if work.expression == nil {
		return nil
	}
	event := newNode(vocab.Events, subToken(work, "expression_creation"), "", KindExpressionCreation, vocab.F28ExpressionCreation, work.graph)
	pair(event, vocab.R17Created, work.expression, vocab.R17iWasCreatedBy)
	work.expressionCreation = event
	return event
}

// NewJournal returns the serial work for a periodical.
func NewJournal(name string, role *Node) *Node {
	name = strings.TrimSpace(name)
	journal := NewSerialWork(vocab.Journals, ident.Clean(name), name, KindJournal)
	journal.Set(vocab.Identifier, name)
	journal.HasType(role)
	return journal
}

// IssueFields are the attributes of one journal issue. Empty fields are
// not attached.
type IssueFields struct {
	Key          string
	Volume       string
	Number       string
	PubDate      string
	LanguageArea string
}

// NewIssue returns the work for one journal issue.
func NewIssue(fields IssueFields, role *Node) *Node {
	issue := NewWork(vocab.Issues, ident.Clean(fields.Key), fields.Key, KindIssue)
	issue.Set(vocab.Identifier, fields.Key)
	issue.Set(vocab.Volume, fields.Volume)
	issue.Set(vocab.Number, fields.Number)
	issue.Set(vocab.PubDate, fields.PubDate)
	issue.Set(vocab.LanguageArea, fields.LanguageArea)
	issue.HasType(role)
	return issue
}

// NewTranslation returns a constituent work for a translated text with
// its creation events.
func NewTranslation(title string, roles ...*Node) *Node {
	title = strings.TrimSpace(title)
	return newConstituent(vocab.Translations, ident.Clean(title), title, KindTranslation, roles)
}

// NewOriginal returns the constituent work a translation was made from.
// Its title is not recorded, so it borrows the translation's token.
func NewOriginal(translation *Node, roles ...*Node) *Node {
	return newConstituent(vocab.Originals, translation.token, "", KindOriginal, roles)
}

func newConstituent(namespace, token, label string, kind Kind, roles []*Node) *Node {
	work := NewWork(namespace, token, label, kind)
	NewWorkCreation(work)
	NewExpressionCreation(work)
	for _, role := range roles {
		work.HasType(role)
	}
	return work
}

// NewManifestation returns the publication manifestation of owner.
func NewManifestation(owner *Node) *Node {
	return newNode(vocab.Manifestations, subToken(owner, ""), owner.label, KindManifestation, vocab.F3Manifestation, owner.graph)
}

// NewManifestationCreation attaches an F30 creation event to manifestation.
func NewManifestationCreation(manifestation *Node) *Node {
	event := newNode(vocab.Events, manifestation.token+"_publication", "", KindManifestationCreation, vocab.F30ManifestationCreation, manifestation.graph)
	pair(event, vocab.R24Created, manifestation, vocab.R24iWasCreatedBy)
	return event
}

// NewTimeSpan returns a span covering a publication year, stored in the
// owner's graph. The year is recorded as an xsd:duration "P<year>Y".
func NewTimeSpan(owner *Node, year string) *Node {
	year = strings.TrimSpace(year)
	span := newNode(vocab.TimeSpans, ident.Clean(year), year, KindTimeSpan, vocab.E52TimeSpan, owner.graph)
	span.add(vocab.P82AtSomeTimeWithin, store.TypedLiteral(fmt.Sprintf("P%sY", year), store.XSDDuration))
	return span
}

// Publish models the printing of work in year: a manifestation embodying
// the work's expression, created by an event within the year.
func Publish(work *Node, year string) *Node {
	manifestation := NewManifestation(work)
	if work.expression != nil {
		Embody(manifestation, work.expression)
	}

	event := NewManifestationCreation(manifestation)
	if year != "" {
		span := NewTimeSpan(work, year)
		event.add(vocab.P4HasTimeSpan, store.IRI(span.IRI()))
	}
	return manifestation
}

// subToken derives the token of a sub-node from its owner. The owner kind
// keeps a journal and a translation with the same token apart.
func subToken(owner *Node, suffix string) string {
	token := string(owner.kind) + "_" + owner.token
	if suffix != "" {
		token += "_" + suffix
	}
	return token
}
