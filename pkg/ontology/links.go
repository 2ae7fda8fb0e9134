package ontology

import (
	"github.com/coolbeans/spatrem/pkg/store"
	"github.com/coolbeans/spatrem/pkg/vocab"
)

// pair writes subject -forward-> object into the subject's graph and
// object -inverse-> subject into the object's graph.
func pair(subject Resource, forward string, object Resource, inverse string) {
	subject.Graph().Add(subject.IRI(), forward, store.IRI(object.IRI()))
	object.Graph().Add(object.IRI(), inverse, store.IRI(subject.IRI()))
}

// Realise attaches an expression to the work it realises.
func Realise(work, expression Resource) {
	pair(expression, vocab.R3Realises, work, vocab.R3iIsRealisedBy)
}

// LinkPart records that part is a component of whole.
func LinkPart(whole, part Resource) {
	pair(whole, vocab.R67HasPart, part, vocab.R67iIsPartOf)
}

// LinkMember records that member belongs to the serial whole.
func LinkMember(whole, member Resource) {
	pair(whole, vocab.R10HasMember, member, vocab.R10iIsMemberOf)
}

// Incorporate mirrors containment at expression level: the container's
// expression incorporates the part's expression.
func Incorporate(container, part Realisable) {
	if container.Expression() == nil || part.Expression() == nil {
		return
	}
	pair(container.Expression(), vocab.R75Incorporates, part.Expression(), vocab.R75iIsIncorporatedIn)
}

// Aggregate records that the aggregate's expression gathers the member's
// expression, as a journal run gathers its issues.
func Aggregate(aggregate, member Realisable) {
	if aggregate.Expression() == nil || member.Expression() == nil {
		return
	}
	pair(aggregate.Expression(), vocab.R25Aggregates, member.Expression(), vocab.R24iWasAggregatedBy)
}

// Perform records that actor carried out event.
func Perform(actor, event Resource) {
	pair(event, vocab.P14CarriedOutBy, actor, vocab.P14iPerformed)
}

// Embody records that a manifestation embodies an expression.
func Embody(manifestation, expression Resource) {
	pair(manifestation, vocab.R4Embodies, expression, vocab.R4iIsEmbodiedIn)
}

// Derive records that derivative (a translation) derives from source (its
// original), at work level and, when both have one, at expression level.
func Derive(source, derivative Realisable) {
	pair(source, vocab.R2HasDerivative, derivative, vocab.R2iIsDerivativeOf)
	if source.Expression() != nil && derivative.Expression() != nil {
		pair(source.Expression(), vocab.R76HasDerivative, derivative.Expression(), vocab.R76iIsDerivativeOf)
	}
}

// Identify records that nomen is a name of resource.
func Identify(resource, nomen Resource) {
	pair(resource, vocab.P1IsIdentifiedBy, nomen, vocab.P1iIdentifies)
}

// WriteWork records writer as the agent behind work: the writer carries
// out the work creation and, when present, the expression creation.
func WriteWork(work *Node, writer Resource) {
	if work.creation != nil {
		Perform(writer, work.creation)
	}
	if work.expressionCreation != nil {
		Perform(writer, work.expressionCreation)
	}
}
