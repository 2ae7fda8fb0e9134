// Package vocab holds the fixed ontology tables used when building the
// translation graph: the LRM bibliographic layer, the CIDOC-CRM actor and
// type layer, project-specific attribute predicates and the per-category
// entity namespaces.
package vocab

import "github.com/coolbeans/spatrem/pkg/store"

// Ontology namespaces.
const (
	// NamespaceLRM is the IFLA Library Reference Model (LRMoo) namespace.
	NamespaceLRM = "http://iflastandards.info/ns/lrm/lrmer/"

	// NamespaceCRM is the CIDOC Conceptual Reference Model namespace.
	NamespaceCRM = "http://www.cidoc-crm.org/cidoc-crm/"

	// NamespaceSchema is the schema.org namespace.
	NamespaceSchema = "http://schema.org/"

	// NamespaceDCTerms is the Dublin Core terms namespace.
	NamespaceDCTerms = "http://purl.org/dc/terms/"

	// NamespaceSpatrem holds the project's own attribute predicates.
	NamespaceSpatrem = "http://spacesoftranslation.org/ns/spatrem/"
)

// Base is the root under which every entity namespace lives.
const Base = "http://spacesoftranslation.org/ns/"

// Entity namespaces. A node IRI is one of these followed by a derived token.
const (
	Journals       = Base + "journals/"
	Issues         = Base + "issues/"
	People         = Base + "people/"
	Names          = Base + "names/"
	Languages      = Base + "languages/"
	Types          = Base + "types/"
	Translations   = Base + "translations/"
	Originals      = Base + "originals/"
	Expressions    = Base + "expressions/"
	Events         = Base + "events/"
	Manifestations = Base + "manifestations/"
	TimeSpans      = Base + "timespans/"
)

// LRM classes.
const (
	F1Work                   = NamespaceLRM + "F1_Work"
	F2Expression             = NamespaceLRM + "F2_Expression"
	F3Manifestation          = NamespaceLRM + "F3_Manifestation"
	F12Nomen                 = NamespaceLRM + "F12_Nomen"
	F18SerialWork            = NamespaceLRM + "F18_Serial_Work"
	F27WorkCreation          = NamespaceLRM + "F27_Work_Creation"
	F28ExpressionCreation    = NamespaceLRM + "F28_Expression_Creation"
	F30ManifestationCreation = NamespaceLRM + "F30_Manifestation_Creation"
)

// CRM classes.
const (
	E21Person   = NamespaceCRM + "E21_Person"
	E39Actor    = NamespaceCRM + "E39_Actor"
	E52TimeSpan = NamespaceCRM + "E52_Time_Span"
	E55Type     = NamespaceCRM + "E55_Type"
	E56Language = NamespaceCRM + "E56_Language"
)

// LRM relationship predicates. Each pair is written in both directions.
const (
	R2HasDerivative   = NamespaceLRM + "R2_has_derivative"
	R2iIsDerivativeOf = NamespaceLRM + "R2i_is_derivative_of"

	R3Realises      = NamespaceLRM + "R3_realises"
	R3iIsRealisedBy = NamespaceLRM + "R3i_is_realised_by"

	R4Embodies      = NamespaceLRM + "R4_embodies"
	R4iIsEmbodiedIn = NamespaceLRM + "R4i_is_embodied_in"

	R10HasMember   = NamespaceLRM + "R10_has_member"
	R10iIsMemberOf = NamespaceLRM + "R10i_is_member_of"

	R16Created       = NamespaceLRM + "R16_created"
	R16iWasCreatedBy = NamespaceLRM + "R16i_was_created_by"

	R17Created       = NamespaceLRM + "R17_created"
	R17iWasCreatedBy = NamespaceLRM + "R17i_was_created_by"

	R24Created       = NamespaceLRM + "R24_created"
	R24iWasCreatedBy = NamespaceLRM + "R24i_was_created_by"

	R25Aggregates       = NamespaceLRM + "R25_aggregates"
	R24iWasAggregatedBy = NamespaceLRM + "R24i_was_aggregated_by"

	R33HasString = NamespaceLRM + "R33_has_string"

	R67HasPart   = NamespaceLRM + "R67_has_part"
	R67iIsPartOf = NamespaceLRM + "R67i_is_part_of"

	R75Incorporates      = NamespaceLRM + "R75_incorporates"
	R75iIsIncorporatedIn = NamespaceLRM + "R75i_is_incorporated_in"

	R76HasDerivative   = NamespaceLRM + "R76_has_derivative"
	R76iIsDerivativeOf = NamespaceLRM + "R76i_is_derivative_of"
)

// CRM predicates.
const (
	P1IsIdentifiedBy = NamespaceCRM + "P1_is_identified_by"
	P1iIdentifies    = NamespaceCRM + "P1i_identifies"

	P2HasType = NamespaceCRM + "P2_has_type"

	P4HasTimeSpan = NamespaceCRM + "P4_has_time_span"

	P14CarriedOutBy = NamespaceCRM + "P14_carried_out_by"
	P14iPerformed   = NamespaceCRM + "P14i_performed"

	P72HasLanguage = NamespaceCRM + "P72_has_language"

	P82AtSomeTimeWithin = NamespaceCRM + "P82_at_some_time_within"
)

// Inverses maps every paired relationship predicate to its inverse, in
// both directions.
func Inverses() map[string]string {
	pairs := [][2]string{
		{R2HasDerivative, R2iIsDerivativeOf},
		{R3Realises, R3iIsRealisedBy},
		{R4Embodies, R4iIsEmbodiedIn},
		{R10HasMember, R10iIsMemberOf},
		{R16Created, R16iWasCreatedBy},
		{R17Created, R17iWasCreatedBy},
		{R24Created, R24iWasCreatedBy},
		{R25Aggregates, R24iWasAggregatedBy},
		{R67HasPart, R67iIsPartOf},
		{R75Incorporates, R75iIsIncorporatedIn},
		{R76HasDerivative, R76iIsDerivativeOf},
		{P1IsIdentifiedBy, P1iIdentifies},
		{P14CarriedOutBy, P14iPerformed},
	}

	inverses := make(map[string]string, 2*len(pairs))
	for _, pair := range pairs {
		inverses[pair[0]] = pair[1]
		inverses[pair[1]] = pair[0]
	}
	return inverses
}

// Attribute predicates.
const (
	Identifier = NamespaceDCTerms + "identifier"

	Volume       = NamespaceSpatrem + "volume"
	Number       = NamespaceSpatrem + "number"
	PubDate      = NamespaceSpatrem + "pubDate"
	LanguageArea = NamespaceSpatrem + "language_area"
	Genre        = NamespaceSpatrem + "genre"
	YearBirth    = NamespaceSpatrem + "year_birth"
	YearDeath    = NamespaceSpatrem + "year_death"
	Nationality  = NamespaceSpatrem + "nationality"
	Gender       = NamespaceSpatrem + "gender"
)

// Sentinel cell values.
const (
	// Absent marks an empty optional field in the translations table.
	Absent = "NONE"

	// Missing marks an empty field in the translators table.
	Missing = "Missing"

	// Anonymous is the cleaned token of "Anon." and "Anon".
	Anonymous = "Anon"
)

// Prefixes returns the prefix declarations written at the top of every
// serialized partition.
func Prefixes() []store.PrefixMapping {
	return []store.PrefixMapping{
		{Prefix: "lrm", Namespace: NamespaceLRM},
		{Prefix: "crm", Namespace: NamespaceCRM},
		{Prefix: "schema", Namespace: NamespaceSchema},
		{Prefix: "dcterms", Namespace: NamespaceDCTerms},
		{Prefix: "spatrem", Namespace: NamespaceSpatrem},
		{Prefix: "journal", Namespace: Journals},
		{Prefix: "issue", Namespace: Issues},
		{Prefix: "person", Namespace: People},
		{Prefix: "name", Namespace: Names},
		{Prefix: "language", Namespace: Languages},
		{Prefix: "type", Namespace: Types},
		{Prefix: "translation", Namespace: Translations},
		{Prefix: "original", Namespace: Originals},
		{Prefix: "expression", Namespace: Expressions},
		{Prefix: "event", Namespace: Events},
		{Prefix: "manifestation", Namespace: Manifestations},
		{Prefix: "timespan", Namespace: TimeSpans},
	}
}
