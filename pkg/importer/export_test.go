package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/spatrem/pkg/logging"
	"github.com/coolbeans/spatrem/pkg/store"
	"github.com/coolbeans/spatrem/pkg/tabular"
	"github.com/coolbeans/spatrem/pkg/validate"
	"github.com/coolbeans/spatrem/pkg/vocab"
)

func populatedSession(t *testing.T) *Session {
	t.Helper()
	session := newTestSession(t, DefaultOptions())

	anonymous := louiseRecord()
	anonymous.Translator = "Anon."
	anonymous.Title = "Ashenden"
	anonymous.No = "23; 24"

	require.NoError(t, session.ProcessTranslation(louiseRecord()))
	require.NoError(t, session.ProcessTranslation(anonymous))
	session.ProcessTranslators([]tabular.TranslatorRecord{{
		SurnameName: "Wagenseil, Hans Beppo",
		Pseudonyms:  "Kurt Wagenseil",
		YearBirth:   "1898",
		Gender:      "M",
	}})
	return session
}

func TestExporter_WritesEveryPartition(t *testing.T) {
	session := populatedSession(t)
	exporter, err := NewExporter(session, store.FormatTurtle)
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := exporter.Export(dir)
	require.NoError(t, err)
	require.Len(t, paths, len(PartitionNames()))

	for i, name := range PartitionNames() {
		assert.Equal(t, filepath.Join(dir, name+".ttl"), paths[i])
		info, err := os.Stat(paths[i])
		require.NoError(t, err)
		assert.Positive(t, info.Size(), name)
	}

	content, err := os.ReadFile(filepath.Join(dir, "issues.ttl"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "@prefix issue: <"+vocab.Issues+"> .")
	assert.Contains(t, string(content), "issue:KA_1_23_24")
}

func TestExporter_MissingDirectory(t *testing.T) {
	exporter, err := NewExporter(populatedSession(t), store.FormatTurtle)
	require.NoError(t, err)

	_, err = exporter.Export(filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, ErrOutputDirNotFound)

	file := filepath.Join(t.TempDir(), "file.ttl")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = exporter.Export(file)
	assert.ErrorIs(t, err, ErrOutputDirNotFound)
}

func TestExporter_UnsupportedFormat(t *testing.T) {
	_, err := NewExporter(populatedSession(t), store.Format("csv"))
	assert.ErrorIs(t, err, store.ErrUnsupportedFormat)
}

func TestExporter_FileExtensions(t *testing.T) {
	testCases := []struct {
		format    store.Format
		extension string
	}{
		{store.FormatTurtle, "ttl"},
		{store.FormatNTriples, "nt"},
		{store.FormatJSONLD, "jsonld"},
		{store.FormatRDFXML, "rdf"},
	}

	for _, testCase := range testCases {
		t.Run(string(testCase.format), func(t *testing.T) {
			exporter, err := NewExporter(populatedSession(t), testCase.format)
			require.NoError(t, err)

			dir := t.TempDir()
			_, err = exporter.Export(dir)
			require.NoError(t, err)
			assert.FileExists(t, filepath.Join(dir, "translators."+testCase.extension))
		})
	}
}

func TestExporter_RecordsWrittenPartitions(t *testing.T) {
	recorder := newCountingRecorder()
	session := NewSession(DefaultOptions(), WithLogger(logging.Discard()), WithRecorder(recorder))
	require.NoError(t, session.ProcessTranslation(louiseRecord()))

	exporter, err := NewExporter(session, store.FormatNTriples)
	require.NoError(t, err)
	_, err = exporter.Export(t.TempDir())
	require.NoError(t, err)

	assert.Len(t, recorder.written, len(PartitionNames()))
	for _, partition := range session.Partitions() {
		assert.Equal(t, partition.Graph.Count(), recorder.written[partition.Name], partition.Name)
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	for _, format := range []store.Format{store.FormatTurtle, store.FormatNTriples} {
		t.Run(string(format), func(t *testing.T) {
			session := populatedSession(t)
			exporter, err := NewExporter(session, format)
			require.NoError(t, err)

			dir := t.TempDir()
			_, err = exporter.Export(dir)
			require.NoError(t, err)

			reports, err := Verify(dir, format)
			require.NoError(t, err)

			partitions := session.Partitions()
			require.Len(t, reports, len(partitions))
			for i, partition := range partitions {
				assert.Equal(t, partition.Name, reports[i].Name)
				assert.Equal(t, partition.Graph.Count(), reports[i].Triples, partition.Name)

				parsed, err := store.ParseFile(reports[i].Path)
				require.NoError(t, err)
				for _, triple := range partition.Graph.All() {
					assert.True(t, parsed.Exists(triple.Subject, triple.Predicate, triple.Object),
						"%s lost %s", partition.Name, triple)
				}
			}

			translators := reports[3]
			assert.Equal(t, 2, translators.Classes[vocab.E21Person])
		})
	}
}

func TestVerify_MissingPartition(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.ttl"), []byte(""), 0o644))

	reports, err := Verify(dir, store.FormatTurtle)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Len(t, reports, 1)
}

func TestVerify_UnreadableFormat(t *testing.T) {
	session := populatedSession(t)
	exporter, err := NewExporter(session, store.FormatJSONLD)
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = exporter.Export(dir)
	require.NoError(t, err)

	_, err = Verify(dir, store.FormatJSONLD)
	assert.ErrorIs(t, err, store.ErrUnsupportedFormat)
}

func TestPartitionReport_SortedClasses(t *testing.T) {
	report := PartitionReport{Classes: map[string]int{vocab.E39Actor: 1, vocab.E21Person: 1}}
	assert.Equal(t, []string{vocab.E21Person, vocab.E39Actor}, report.SortedClasses())
}

func TestPartitions_PassConsistencyGates(t *testing.T) {
	options := DefaultOptions()
	options.Manifestations = true
	session := NewSession(options, WithLogger(logging.Discard()))

	anonymous := louiseRecord()
	anonymous.Translator = "Anon.; Wagenseil, Hans Beppo"
	anonymous.Author = "Anon."
	anonymous.Title = "Ashenden"
	require.NoError(t, session.ProcessTranslation(louiseRecord()))
	require.NoError(t, session.ProcessTranslation(anonymous))
	session.ProcessTranslator(tabular.TranslatorRecord{
		SurnameName: "Wagenseil, Hans Beppo",
		Pseudonyms:  "Kurt Wagenseil",
	})

	union := store.NewTripleStore()
	for _, partition := range session.Partitions() {
		union.MergeFrom(partition.Graph)
	}

	report := validate.Check(union, nil)
	assert.True(t, report.OverallPass, report.String())
}
