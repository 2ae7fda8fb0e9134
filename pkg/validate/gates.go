package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/coolbeans/spatrem/pkg/store"
	"github.com/coolbeans/spatrem/pkg/vocab"
)

// ErrUnknownGate is returned when a gate name matches no default gate.
var ErrUnknownGate = errors.New("unknown gate")

// maxExamples caps how many offending triples a gate reports.
const maxExamples = 5

func newGateResult(name string) *GateResult {
	return &GateResult{
		Gate:     name,
		Metrics:  make(map[string]float64),
		Warnings: make([]GateWarning, 0),
		Errors:   make([]GateError, 0),
	}
}

// ratio returns part/whole, or 1 when there is nothing to measure.
func ratio(part, whole int) float64 {
	if whole == 0 {
		return 1.0
	}
	return float64(part) / float64(whole)
}

// emptyGraph fails every metric of a gate when there is no graph.
func emptyGraph(gate ValidationGate, ctx *ValidationContext, startTime time.Time) *GateResult {
	gateResult := newGateResult(gate.Name())
	for metricName := range gate.Thresholds() {
		gateResult.Metrics[metricName] = 0.0
	}
	evaluateMetrics(gateResult, ctx.Config, gate)
	gateResult.Duration = time.Since(startTime)
	return gateResult
}

func reportExamples(gateResult *GateResult, metric string, examples []string) {
	if len(examples) == 0 {
		return
	}
	gateResult.Warnings = append(gateResult.Warnings, GateWarning{
		Metric:  metric,
		Message: "e.g. " + strings.Join(examples, "; "),
	})
}

// TypingGate checks that every subject carries rdf:type.
type TypingGate struct{}

// NewTypingGate creates the typing gate.
func NewTypingGate() *TypingGate {
	return &TypingGate{}
}

// Name returns "typing".
func (typingGate *TypingGate) Name() string { return "typing" }

// Thresholds returns the default thresholds for typing metrics.
func (typingGate *TypingGate) Thresholds() map[string]float64 {
	return map[string]float64{"subjects_typed": 1.0}
}

// Run measures the share of subjects with at least one class.
func (typingGate *TypingGate) Run(ctx *ValidationContext) *GateResult {
	startTime := time.Now()
	if ctx.Graph == nil {
		return emptyGraph(typingGate, ctx, startTime)
	}

	gateResult := newGateResult(typingGate.Name())
	subjects := ctx.Graph.Subjects()
	typed := 0
	var untyped []string
	for _, subject := range subjects {
		if len(ctx.Graph.Objects(subject, store.RDFType)) > 0 {
			typed++
		} else if len(untyped) < maxExamples {
			untyped = append(untyped, subject)
		}
	}

	gateResult.Metrics["subjects_typed"] = ratio(typed, len(subjects))
	evaluateMetrics(gateResult, ctx.Config, typingGate)
	reportExamples(gateResult, "subjects_typed", untyped)
	gateResult.Duration = time.Since(startTime)
	return gateResult
}

// InverseGate checks that every paired relationship is present in both
// directions.
type InverseGate struct {
	inverses map[string]string
}

// NewInverseGate creates the inverse-pair gate for the project vocabulary.
func NewInverseGate() *InverseGate {
	return &InverseGate{inverses: vocab.Inverses()}
}

// Name returns "inverses".
func (inverseGate *InverseGate) Name() string { return "inverses" }

// Thresholds returns the default thresholds for inverse metrics.
func (inverseGate *InverseGate) Thresholds() map[string]float64 {
	return map[string]float64{"inverse_coverage": 1.0}
}

// Run measures the share of paired edges whose inverse exists.
func (inverseGate *InverseGate) Run(ctx *ValidationContext) *GateResult {
	startTime := time.Now()
	if ctx.Graph == nil {
		return emptyGraph(inverseGate, ctx, startTime)
	}

	gateResult := newGateResult(inverseGate.Name())
	paired, matched := 0, 0
	var missing []string
	for _, triple := range ctx.Graph.All() {
		inverse, ok := inverseGate.inverses[triple.Predicate]
		if !ok || !triple.Object.IsIRI() {
			continue
		}
		paired++
		if ctx.Graph.Exists(triple.Object.Value, inverse, store.IRI(triple.Subject)) {
			matched++
		} else if len(missing) < maxExamples {
			missing = append(missing, triple.String())
		}
	}

	gateResult.Metrics["inverse_coverage"] = ratio(matched, paired)
	evaluateMetrics(gateResult, ctx.Config, inverseGate)
	reportExamples(gateResult, "inverse_coverage", missing)
	gateResult.Duration = time.Since(startTime)
	return gateResult
}

// ReferenceGate checks that every IRI object inside the project namespace
// is described somewhere in the graph.
type ReferenceGate struct{}

// NewReferenceGate creates the dangling-reference gate.
func NewReferenceGate() *ReferenceGate {
	return &ReferenceGate{}
}

// Name returns "references".
func (referenceGate *ReferenceGate) Name() string { return "references" }

// Thresholds returns the default thresholds for reference metrics.
func (referenceGate *ReferenceGate) Thresholds() map[string]float64 {
	return map[string]float64{"references_resolved": 1.0}
}

// Run measures the share of entity references that resolve to a subject.
func (referenceGate *ReferenceGate) Run(ctx *ValidationContext) *GateResult {
	startTime := time.Now()
	if ctx.Graph == nil {
		return emptyGraph(referenceGate, ctx, startTime)
	}

	gateResult := newGateResult(referenceGate.Name())
	described := make(map[string]bool)
	for _, subject := range ctx.Graph.Subjects() {
		described[subject] = true
	}

	references, resolved := 0, 0
	var dangling []string
	for _, triple := range ctx.Graph.All() {
		if !triple.Object.IsIRI() || triple.Predicate == store.RDFType ||
			!strings.HasPrefix(triple.Object.Value, vocab.Base) {
			continue
		}
		references++
		if described[triple.Object.Value] {
			resolved++
		} else if len(dangling) < maxExamples {
			dangling = append(dangling, triple.Object.Value)
		}
	}

	gateResult.Metrics["references_resolved"] = ratio(resolved, references)
	evaluateMetrics(gateResult, ctx.Config, referenceGate)
	reportExamples(gateResult, "references_resolved", dangling)
	gateResult.Duration = time.Since(startTime)
	return gateResult
}

// IdentityGate checks that people and translations are named by a nomen
// and that every translation derives from an original.
type IdentityGate struct{}

// NewIdentityGate creates the identity gate.
func NewIdentityGate() *IdentityGate {
	return &IdentityGate{}
}

// Name returns "identity".
func (identityGate *IdentityGate) Name() string { return "identity" }

// Thresholds returns the default thresholds for identity metrics.
func (identityGate *IdentityGate) Thresholds() map[string]float64 {
	return map[string]float64{
		"persons_named":       1.0,
		"translations_named":  1.0,
		"translations_linked": 1.0,
	}
}

// Run measures naming and derivation coverage.
func (identityGate *IdentityGate) Run(ctx *ValidationContext) *GateResult {
	startTime := time.Now()
	if ctx.Graph == nil {
		return emptyGraph(identityGate, ctx, startTime)
	}

	gateResult := newGateResult(identityGate.Name())
	graph := ctx.Graph

	persons := graph.SubjectsOfType(vocab.E21Person)
	gateResult.Metrics["persons_named"] = ratio(countWith(graph, persons, vocab.P1IsIdentifiedBy), len(persons))

	var translations []string
	for _, work := range graph.SubjectsOfType(vocab.F1Work) {
		if strings.HasPrefix(work, vocab.Translations) {
			translations = append(translations, work)
		}
	}
	gateResult.Metrics["translations_named"] = ratio(countWith(graph, translations, vocab.P1IsIdentifiedBy), len(translations))
	gateResult.Metrics["translations_linked"] = ratio(countWith(graph, translations, vocab.R2iIsDerivativeOf), len(translations))

	evaluateMetrics(gateResult, ctx.Config, identityGate)
	gateResult.Duration = time.Since(startTime)
	return gateResult
}

func countWith(graph *store.TripleStore, subjects []string, predicate string) int {
	count := 0
	for _, subject := range subjects {
		if len(graph.Objects(subject, predicate)) > 0 {
			count++
		}
	}
	return count
}

// Check runs the default gates over graph.
func Check(graph *store.TripleStore, config *ValidationConfig) *GateReport {
	pipeline := NewGatePipeline(config)
	pipeline.RegisterDefaultGates()
	return pipeline.Run(&ValidationContext{Graph: graph, Config: pipeline.config})
}

// Summary returns a one-line verdict for a report.
func Summary(report *GateReport) string {
	status := "PASS"
	if !report.OverallPass {
		status = "FAIL"
	}
	return fmt.Sprintf("%s: %d passed, %d failed, %d skipped",
		status, report.GatesPassed, report.GatesFailed, report.GatesSkipped)
}

// CheckGate runs the single default gate called name over graph and wraps
// its result in a report.
func CheckGate(graph *store.TripleStore, config *ValidationConfig, name string) (*GateReport, error) {
	pipeline := NewGatePipeline(config)
	pipeline.RegisterDefaultGates()

	gateResult := pipeline.RunGate(name, &ValidationContext{Graph: graph, Config: pipeline.config})
	if gateResult == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGate, name)
	}

	gateReport := &GateReport{
		Results:     []*GateResult{gateResult},
		OverallPass: true,
		Duration:    gateResult.Duration,
	}
	switch {
	case gateResult.Skipped:
		gateReport.GatesSkipped = 1
		return gateReport, nil
	case gateResult.Passed:
		gateReport.GatesPassed = 1
	default:
		gateReport.GatesFailed = 1
		gateReport.OverallPass = false
	}
	gateReport.TotalScore = gateResult.Score

	if pipeline.config.FailOnWarn && len(gateResult.Warnings) > 0 {
		gateReport.OverallPass = false
		gateReport.HaltedAt = gateResult.Gate
	}
	return gateReport, nil
}

// ParseThresholds reads overrides written as gate.metric=value, with value
// between 0 and 1.
func ParseThresholds(overrides []string) (map[string]float64, error) {
	thresholds := make(map[string]float64, len(overrides))
	for _, override := range overrides {
		key, raw, found := strings.Cut(override, "=")
		key = strings.TrimSpace(key)
		gateName, metricName, dotted := strings.Cut(key, ".")
		if !found || !dotted || gateName == "" || metricName == "" {
			return nil, fmt.Errorf("invalid threshold %q: want gate.metric=value", override)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || value < 0 || value > 1 {
			return nil, fmt.Errorf("invalid threshold %q: value must be a number between 0 and 1", override)
		}
		thresholds[key] = value
	}
	return thresholds, nil
}
