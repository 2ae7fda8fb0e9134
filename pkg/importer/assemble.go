package importer

import (
	"fmt"
	"strings"

	"github.com/coolbeans/spatrem/pkg/ident"
	"github.com/coolbeans/spatrem/pkg/ontology"
	"github.com/coolbeans/spatrem/pkg/tabular"
	"github.com/coolbeans/spatrem/pkg/vocab"
)

// ProcessTranslation adds one row of the translations table to the graph.
//
// Every row contributes its journal and issue. Named people, languages and
// the listed translator's name are registered even when the row has no
// title. A titled row adds a translation, its original, and the links from
// the issue to the translation.
func (s *Session) ProcessTranslation(record tabular.TranslationRecord) error {
	journalName := ident.Value(record.Journal)
	if ident.Clean(journalName) == "" {
		return fmt.Errorf("%w: journal %q yields no identifier", ErrInvalidRecord, record.Journal)
	}

	s.translationRows.Add(1)
	s.recorder.RowProcessed(TableTranslations)

	journal := s.journal(journalName)
	issue := s.issue(journalName, record)
	ontology.LinkPart(journal, issue)
	ontology.LinkMember(journal, issue)
	ontology.Aggregate(journal, issue)

	translators := s.people(s.Translators, record.Translator, ontology.RoleTranslator)
	if listed := ident.Value(record.ListedTranslator); listed != "" {
		s.nomen(listed)
	}
	authors := s.people(s.Authors, record.Author, ontology.RoleAuthor)
	source := s.languages(record.SL)
	target := s.languages(record.TL)

	title := ident.Value(record.Title)
	if ident.Clean(title) == "" {
		return nil
	}
	if len(translators) == 0 && s.options.Untranslated == UntranslatedSkip {
		s.skippedUntranslated.Add(1)
		s.logger.Debug("skipping untranslated constituent", "title", title, "issue", issue.Label())
		return nil
	}

	translation := s.translation(title, record.Genre, translators, authors, source, target)
	ontology.LinkPart(issue, translation)
	ontology.Incorporate(issue, translation)
	return nil
}

func (s *Session) journal(name string) *ontology.Node {
	journal, _ := s.Journals.ResolveOrCreate(ident.Clean(name), func() *ontology.Node {
		return ontology.NewJournal(name, s.roles[ontology.RoleJournal])
	})
	return journal
}

func (s *Session) issue(journalName string, record tabular.TranslationRecord) *ontology.Node {
	key := ident.IssueKey(journalName, record.Vol, record.No)
	issue, _ := s.Issues.ResolveOrCreate(ident.Clean(key), func() *ontology.Node {
		fields := ontology.IssueFields{
			Key:          key,
			PubDate:      ident.Value(record.Year),
			LanguageArea: ident.Value(record.LanguageArea),
		}
		if s.options.IssueNumbering {
			fields.Volume = ident.Value(record.Vol)
			fields.Number = ident.NormalizeNumber(record.No)
		}

		issue := ontology.NewIssue(fields, s.roles[ontology.RoleIssue])
		if s.options.Manifestations {
			ontology.Publish(issue, fields.PubDate)
		}
		return issue
	})
	return issue
}

// people resolves every name in a cell to a person of the given role. A
// new person is identified by the nomen for its spelling.
func (s *Session) people(registry *Registry[*ontology.Node], cell, role string) []*ontology.Node {
	var people []*ontology.Node

	for _, name := range ident.SplitNames(cell) {
		nomen := s.nomen(name.Label)

		if name.Key == vocab.Anonymous && s.options.Anonymous != AnonymousMerge {
			person := registry.AppendAnonymous(func(n int) *ontology.Node {
				token := fmt.Sprintf("%s_%s_%d", vocab.Anonymous, role, n)
				return ontology.NewPerson(token, name.Label, s.roles[role])
			})
			ontology.Identify(person, nomen)
			people = append(people, person)
			continue
		}

		person, created := registry.ResolveOrCreate(name.Key, func() *ontology.Node {
			return ontology.NewPerson(name.Key, name.Label, s.roles[role])
		})
		if created {
			ontology.Identify(person, nomen)
		}
		people = append(people, person)
	}

	return people
}

func (s *Session) nomen(label string) *ontology.Node {
	nomen, _ := s.Names.ResolveOrCreate(ident.Clean(label), func() *ontology.Node {
		return ontology.NewNomen(label)
	})
	return nomen
}

func (s *Session) languages(cell string) []*ontology.Node {
	var languages []*ontology.Node

	for _, code := range ident.SplitValues(cell) {
		key := ident.Clean(code)
		if key == "" {
			continue
		}
		language, _ := s.Languages.ResolveOrCreate(key, func() *ontology.Node {
			return ontology.NewLanguage(code)
		})
		languages = append(languages, language)
	}

	return languages
}

// translation resolves the constituent for title. The first row naming a
// title builds it together with its original; later rows only link it.
func (s *Session) translation(title, genre string, translators, authors, source, target []*ontology.Node) *ontology.Node {
	key := ident.Clean(title)
	nomen := s.nomen(title)

	translation, _ := s.Translations.ResolveOrCreate(key, func() *ontology.Node {
		work := ontology.NewTranslation(title,
			s.roles[ontology.RoleConstituent], s.roles[ontology.RoleTranslation])
		ontology.Identify(work, nomen)
		work.Set(vocab.Genre, ident.Value(genre))
		for _, language := range target {
			work.HasLanguage(language)
		}
		for _, translator := range translators {
			ontology.WriteWork(work, translator)
		}

		original, _ := s.Originals.ResolveOrCreate(key, func() *ontology.Node {
			return ontology.NewOriginal(work,
				s.roles[ontology.RoleConstituent], s.roles[ontology.RoleOriginal])
		})
		for _, language := range source {
			original.HasLanguage(language)
		}
		for _, author := range authors {
			ontology.WriteWork(original, author)
		}
		ontology.Derive(original, work)

		return work
	})

	return translation
}

// ProcessTranslators feeds records to ProcessTranslator in order.
func (s *Session) ProcessTranslators(records []tabular.TranslatorRecord) {
	for _, record := range records {
		s.ProcessTranslator(record)
	}
}

// ProcessTranslator enriches a translator already named by the
// translations table with biographical attributes. It reports whether the
// translator was found; unknown names are logged and skipped.
func (s *Session) ProcessTranslator(record tabular.TranslatorRecord) bool {
	s.translatorRows.Add(1)
	s.recorder.RowProcessed(TableTranslators)

	name := strings.TrimSpace(record.SurnameName)
	key := ident.Clean(name)
	translator, ok := s.Translators.Get(key)
	if !ok {
		s.unknownTranslators.Add(1)
		s.recorder.UnknownTranslator()
		s.logger.Warn("translator not named in translations table", "name", name, "key", key)
		return false
	}

	if !ident.IsMissing(record.Pseudonyms) {
		for _, pseudonym := range ident.SplitNames(record.Pseudonyms) {
			ontology.Identify(translator, s.nomen(pseudonym.Label))
		}
	}

	translator.Set(vocab.YearBirth, present(record.YearBirth))
	translator.Set(vocab.YearDeath, present(record.YearDeath))
	for _, nationality := range ident.SplitValues(record.Nationality) {
		translator.Set(vocab.Nationality, nationality)
	}
	for _, gender := range ident.SplitValues(record.Gender) {
		translator.Set(vocab.Gender, gender)
	}
	translator.Set(vocab.LanguageArea, present(record.LanguageArea))

	return true
}

// present returns the trimmed cell, or "" for the sentinels of either table.
func present(cell string) string {
	if ident.IsMissing(cell) {
		return ""
	}
	return ident.Value(cell)
}
