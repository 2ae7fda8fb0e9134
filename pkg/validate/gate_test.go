package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/coolbeans/spatrem/pkg/ontology"
	"github.com/coolbeans/spatrem/pkg/store"
	"github.com/coolbeans/spatrem/pkg/vocab"
)

// buildTestGraph assembles a small consistent graph: one issue holding one
// translation of an original, a translator and an author.
func buildTestGraph() *store.TripleStore {
	translatorRole := ontology.NewType(ontology.RoleTranslator)
	authorRole := ontology.NewType(ontology.RoleAuthor)
	issueRole := ontology.NewType(ontology.RoleIssue)

	issue := ontology.NewIssue(ontology.IssueFields{Key: "KA_1_2", PubDate: "1946"}, issueRole)
	translation := ontology.NewTranslation("Louise")
	original := ontology.NewOriginal(translation)
	ontology.Derive(original, translation)
	ontology.LinkPart(issue, translation)
	ontology.Incorporate(issue, translation)

	title := ontology.NewNomen("Louise")
	ontology.Identify(translation, title)

	translator := ontology.NewPerson("WagenseilHansBeppo", "Wagenseil, Hans Beppo", translatorRole)
	translatorName := ontology.NewNomen("Wagenseil, Hans Beppo")
	ontology.Identify(translator, translatorName)
	ontology.WriteWork(translation, translator)

	author := ontology.NewPerson("SomersetMaughamW", "Somerset Maugham, W.", authorRole)
	authorName := ontology.NewNomen("Somerset Maugham, W.")
	ontology.Identify(author, authorName)
	ontology.WriteWork(original, author)

	graph := store.NewTripleStore()
	for _, node := range []*ontology.Node{
		translatorRole, authorRole, issueRole, issue, translation, original,
		title, translator, translatorName, author, authorName,
	} {
		graph.MergeFrom(node.Graph())
	}
	return graph
}

func runGate(gate ValidationGate, graph *store.TripleStore) *GateResult {
	return gate.Run(&ValidationContext{Graph: graph, Config: DefaultValidationConfig()})
}

func TestDefaultGates_ConsistentGraphPasses(t *testing.T) {
	report := Check(buildTestGraph(), nil)

	if !report.OverallPass {
		t.Fatalf("Expected consistent graph to pass:\n%s", report.String())
	}
	if report.GatesPassed != 4 {
		t.Errorf("Expected 4 gates passed, got %d", report.GatesPassed)
	}
	if report.TotalScore != 1.0 {
		t.Errorf("Expected total score 1.0, got %f", report.TotalScore)
	}
	for _, result := range report.Results {
		if len(result.Warnings) > 0 {
			t.Errorf("Gate %s: unexpected warnings %v", result.Gate, result.Warnings)
		}
	}
}

func TestInverseGate_MissingInverse(t *testing.T) {
	graph := buildTestGraph()
	graph.Add(vocab.Issues+"KA_1_2", vocab.R67HasPart, store.IRI(vocab.Translations+"Ashenden"))
	graph.Add(vocab.Translations+"Ashenden", store.RDFType, store.IRI(vocab.F1Work))

	result := runGate(NewInverseGate(), graph)

	if result.Passed {
		t.Error("Expected inverse gate to fail")
	}
	if result.Metrics["inverse_coverage"] >= 1.0 {
		t.Errorf("Expected coverage below 1, got %f", result.Metrics["inverse_coverage"])
	}
	if len(result.Errors) != 1 || result.Errors[0].Metric != "inverse_coverage" {
		t.Errorf("Expected one inverse_coverage error, got %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "Ashenden") {
		t.Errorf("Expected the offending edge as an example, got %v", result.Warnings)
	}
}

func TestTypingGate_UntypedSubject(t *testing.T) {
	graph := buildTestGraph()
	graph.Add(vocab.People+"Nobody", store.RDFSLabel, store.Literal("Nobody"))

	result := runGate(NewTypingGate(), graph)

	if result.Passed {
		t.Error("Expected typing gate to fail")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "Nobody") {
		t.Errorf("Expected the untyped subject as an example, got %v", result.Warnings)
	}
}

func TestReferenceGate_DanglingReference(t *testing.T) {
	graph := buildTestGraph()
	graph.Add(vocab.Translations+"Louise", vocab.P2HasType, store.IRI(vocab.Types+"poem"))

	result := runGate(NewReferenceGate(), graph)

	if result.Passed {
		t.Error("Expected reference gate to fail")
	}
}

func TestReferenceGate_IgnoresExternalIRIs(t *testing.T) {
	graph := buildTestGraph()
	graph.Add(vocab.Translations+"Louise", vocab.NamespaceSchema+"sameAs", store.IRI("http://example.org/louise"))

	if result := runGate(NewReferenceGate(), graph); !result.Passed {
		t.Errorf("External IRIs should not count as references: %v", result.Errors)
	}
}

func TestIdentityGate_UnnamedPerson(t *testing.T) {
	graph := buildTestGraph()
	anonymous := ontology.NewPerson("Anon_translator_1", "Anon.", nil)
	graph.MergeFrom(anonymous.Graph())

	result := runGate(NewIdentityGate(), graph)

	if result.Passed {
		t.Error("Expected identity gate to fail")
	}
	if got := result.Metrics["persons_named"]; got != 2.0/3.0 {
		t.Errorf("Expected persons_named 2/3, got %f", got)
	}
	if got := result.Metrics["translations_linked"]; got != 1.0 {
		t.Errorf("Expected translations_linked 1, got %f", got)
	}
}

func TestGates_NilGraph(t *testing.T) {
	for _, gate := range []ValidationGate{NewTypingGate(), NewInverseGate(), NewReferenceGate(), NewIdentityGate()} {
		t.Run(gate.Name(), func(t *testing.T) {
			result := runGate(gate, nil)
			if result.Passed {
				t.Error("Expected failure without a graph")
			}
			if len(result.Metrics) != len(gate.Thresholds()) {
				t.Errorf("Expected every metric reported, got %v", result.Metrics)
			}
		})
	}
}

func TestGates_EmptyGraphPasses(t *testing.T) {
	report := Check(store.NewTripleStore(), nil)
	if !report.OverallPass {
		t.Errorf("Expected an empty graph to pass:\n%s", report.String())
	}
}

func TestGatePipeline_SkipGates(t *testing.T) {
	graph := buildTestGraph()
	graph.Add(vocab.People+"Nobody", store.RDFSLabel, store.Literal("Nobody"))

	report := Check(graph, &ValidationConfig{SkipGates: []string{"TYPING"}})

	if !report.OverallPass {
		t.Errorf("Expected pass with typing skipped:\n%s", report.String())
	}
	if report.GatesSkipped != 1 {
		t.Errorf("Expected 1 skipped gate, got %d", report.GatesSkipped)
	}
}

func TestGatePipeline_StrictModeHalts(t *testing.T) {
	graph := buildTestGraph()
	graph.Add(vocab.People+"Nobody", store.RDFSLabel, store.Literal("Nobody"))

	report := Check(graph, &ValidationConfig{StrictMode: true})

	if report.HaltedAt != "typing" {
		t.Errorf("Expected halt at typing, got %q", report.HaltedAt)
	}
	if len(report.Results) != 1 {
		t.Errorf("Expected one result before halting, got %d", len(report.Results))
	}
}

func TestGatePipeline_ThresholdOverride(t *testing.T) {
	graph := buildTestGraph()
	graph.Add(vocab.People+"Nobody", store.RDFSLabel, store.Literal("Nobody"))

	report := Check(graph, &ValidationConfig{Thresholds: map[string]float64{"typing.subjects_typed": 0.5}})

	if !report.OverallPass {
		t.Errorf("Expected lowered threshold to pass:\n%s", report.String())
	}
}

func TestGatePipeline_RunGate(t *testing.T) {
	pipeline := NewGatePipeline(nil)
	pipeline.RegisterDefaultGates()
	ctx := &ValidationContext{Graph: buildTestGraph(), Config: DefaultValidationConfig()}

	if result := pipeline.RunGate("inverses", ctx); result == nil || !result.Passed {
		t.Errorf("Expected inverses to pass, got %+v", result)
	}
	if result := pipeline.RunGate("unknown", ctx); result != nil {
		t.Errorf("Expected nil for unknown gate, got %+v", result)
	}
}

func TestGateReport_StringAndSummary(t *testing.T) {
	report := Check(buildTestGraph(), nil)

	text := report.String()
	for _, expected := range []string{"[PASS] Gate typing", "[PASS] Gate identity", "persons_named: 100.0%", "Status: PASS"} {
		if !strings.Contains(text, expected) {
			t.Errorf("Report missing %q:\n%s", expected, text)
		}
	}
	if summary := Summary(report); summary != "PASS: 4 passed, 0 failed, 0 skipped" {
		t.Errorf("Unexpected summary %q", summary)
	}

	data, err := report.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(string(data), `"overall_pass": true`) {
		t.Errorf("JSON missing overall_pass: %s", data)
	}
}

func TestCheckGate(t *testing.T) {
	graph := buildTestGraph()

	report, err := CheckGate(graph, nil, "references")
	if err != nil {
		t.Fatalf("CheckGate failed: %v", err)
	}
	if !report.OverallPass || report.GatesPassed != 1 || len(report.Results) != 1 {
		t.Errorf("Expected a single passing gate:\n%s", report.String())
	}

	report, err = CheckGate(graph, &ValidationConfig{SkipGates: []string{"references"}}, "references")
	if err != nil {
		t.Fatalf("CheckGate failed: %v", err)
	}
	if report.GatesSkipped != 1 || !report.OverallPass {
		t.Errorf("Expected a skipped gate:\n%s", report.String())
	}

	if _, err := CheckGate(graph, nil, "unknown"); !errors.Is(err, ErrUnknownGate) {
		t.Errorf("Expected ErrUnknownGate, got %v", err)
	}
}

func TestCheckGate_ReportsFailure(t *testing.T) {
	graph := buildTestGraph()
	graph.Add(vocab.People+"Nobody", store.RDFSLabel, store.Literal("Nobody"))

	report, err := CheckGate(graph, nil, "typing")
	if err != nil {
		t.Fatalf("CheckGate failed: %v", err)
	}
	if report.OverallPass || report.GatesFailed != 1 {
		t.Errorf("Expected typing to fail:\n%s", report.String())
	}
}

func TestGatePipeline_FailOnWarn(t *testing.T) {
	graph := buildTestGraph()
	graph.Add(vocab.People+"Nobody", store.RDFSLabel, store.Literal("Nobody"))
	config := &ValidationConfig{
		Thresholds: map[string]float64{"typing.subjects_typed": 0.9},
		FailOnWarn: true,
	}

	report := Check(graph, config)
	if report.OverallPass {
		t.Errorf("Expected a warning to fail the run:\n%s", report.String())
	}
	if report.HaltedAt != "typing" {
		t.Errorf("Expected halt at typing, got %q", report.HaltedAt)
	}

	config.FailOnWarn = false
	if report := Check(graph, config); !report.OverallPass {
		t.Errorf("Expected a warning alone to pass:\n%s", report.String())
	}
}

func TestParseThresholds(t *testing.T) {
	thresholds, err := ParseThresholds([]string{"references.references_resolved=0.5", " typing.subjects_typed = 1 "})
	if err != nil {
		t.Fatalf("ParseThresholds failed: %v", err)
	}
	if thresholds["references.references_resolved"] != 0.5 || thresholds["typing.subjects_typed"] != 1 {
		t.Errorf("Unexpected thresholds %v", thresholds)
	}

	for _, invalid := range []string{"typing=0.5", "typing.subjects_typed", ".metric=0.5", "typing.subjects_typed=high", "typing.subjects_typed=1.5"} {
		t.Run(invalid, func(t *testing.T) {
			if _, err := ParseThresholds([]string{invalid}); err == nil {
				t.Errorf("Expected %q to be rejected", invalid)
			}
		})
	}
}
