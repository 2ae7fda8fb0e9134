/*
Package metrics counts what a compile run did and writes the counts as a
Prometheus textfile, ready for a node exporter textfile collector.

# Metrics Exported

  - spatrem_import_rows_total: Counter by table and status (accepted, rejected)
  - spatrem_import_entities_total: Counter of created nodes by category
  - spatrem_import_unknown_translators_total: Counter of biographical rows
    naming a person absent from the translations
  - spatrem_export_triples: Gauge of triples written per partition
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "spatrem"
	subsystemImport  = "import"
	subsystemExport  = "export"
)

// Row statuses.
const (
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Metrics holds the collectors of one run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	rowsTotal          *prometheus.CounterVec
	entitiesTotal      *prometheus.CounterVec
	unknownTranslators prometheus.Counter
	partitionTriples   *prometheus.GaugeVec
}

// New creates and registers the run collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		rowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystemImport,
				Name:      "rows_total",
				Help:      "Table rows read, by table and status",
			},
			[]string{"table", "status"},
		),

		entitiesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystemImport,
				Name:      "entities_total",
				Help:      "Graph nodes created, by registry category",
			},
			[]string{"category"},
		),

		unknownTranslators: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystemImport,
				Name:      "unknown_translators_total",
				Help:      "Biographical rows naming a translator absent from the translations",
			},
		),

		partitionTriples: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystemExport,
				Name:      "triples",
				Help:      "Triples written, by partition",
			},
			[]string{"partition"},
		),
	}

	m.registry.MustRegister(
		m.rowsTotal,
		m.entitiesTotal,
		m.unknownTranslators,
		m.partitionTriples,
	)
	return m
}

// Registry exposes the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RowProcessed counts an accepted row.
func (m *Metrics) RowProcessed(table string) {
	m.rowsTotal.WithLabelValues(table, StatusAccepted).Inc()
}

// RowsRejected counts rows the reader refused.
func (m *Metrics) RowsRejected(table string, n int) {
	m.rowsTotal.WithLabelValues(table, StatusRejected).Add(float64(n))
}

// EntityCreated counts a new node in category.
func (m *Metrics) EntityCreated(category string) {
	m.entitiesTotal.WithLabelValues(category).Inc()
}

// UnknownTranslator counts a biographical row that matched nobody.
func (m *Metrics) UnknownTranslator() {
	m.unknownTranslators.Inc()
}

// PartitionWritten records the size of an exported partition.
func (m *Metrics) PartitionWritten(partition string, triples int) {
	m.partitionTriples.WithLabelValues(partition).Set(float64(triples))
}

// WriteTextfile writes every collector to path in the text exposition
// format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
