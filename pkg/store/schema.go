// Package store provides an in-memory RDF triple store and the serializers
// used to write graph partitions to disk.
package store

// Core W3C namespaces every serialization needs regardless of the ontology
// layered on top.
const (
	// NamespaceRDF is the standard RDF namespace.
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// NamespaceRDFS is the RDF Schema namespace.
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// NamespaceXSD is the XML Schema namespace for datatypes.
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"
)

// RDF standard predicates as full IRIs.
const (
	// RDFType indicates the class of a resource.
	RDFType = NamespaceRDF + "type"

	// RDFSLabel provides a human-readable label.
	RDFSLabel = NamespaceRDFS + "label"
)

// XSD datatypes used by literals.
const (
	XSDString   = NamespaceXSD + "string"
	XSDDuration = NamespaceXSD + "duration"
)
