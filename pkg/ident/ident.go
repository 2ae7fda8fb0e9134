// Package ident derives the stable tokens that name graph nodes.
//
// A token is the cleaned form of a free-text label: the label is composed
// to NFC, trimmed, and every rune that is not a letter, a number or an
// underscore is dropped. "Wagenseil, Hans Beppo" and "Wagenseil Hans-Beppo"
// therefore name the same person. Two genuinely different people whose
// names clean to the same token are treated as one node; nothing here
// tries to tell them apart.
package ident

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/coolbeans/spatrem/pkg/vocab"
)

// Clean returns the identifier token for label.
func Clean(label string) string {
	t := transform.Chain(norm.NFC, runes.Remove(runes.Predicate(isSeparator)))
	token, _, _ := transform.String(t, strings.TrimSpace(label))
	return token
}

// isSeparator reports whether r is dropped from tokens.
func isSeparator(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_')
}

// IsAbsent reports whether a translations-table cell carries no value.
func IsAbsent(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == vocab.Absent
}

// IsMissing reports whether a translators-table cell carries no value.
func IsMissing(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == vocab.Missing
}

// IsAnonymous reports whether a name denotes an anonymous agent.
func IsAnonymous(name string) bool {
	return Clean(name) == vocab.Anonymous
}

// Value returns the trimmed cell, or "" when it is absent.
func Value(cell string) string {
	if IsAbsent(cell) {
		return ""
	}
	return strings.TrimSpace(cell)
}

// Name is one entry of a multi-valued name cell.
type Name struct {
	// Key is the cleaned token used for registry lookups and IRIs.
	Key string
	// Label is the name as written in the table, trimmed.
	Label string
}

// SplitNames splits a semicolon-separated name cell. Entries are trimmed,
// "NONE" entries and entries that clean to nothing are dropped, and
// entries with the same key are collapsed. The first spelling wins.
func SplitNames(cell string) []Name {
	var names []Name
	seen := make(map[string]bool)

	for _, part := range strings.Split(cell, ";") {
		label := strings.TrimSpace(part)
		if IsAbsent(label) {
			continue
		}
		key := Clean(label)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, Name{Key: key, Label: label})
	}

	return names
}

// SplitValues splits a semicolon-separated cell into trimmed, distinct,
// non-absent values in input order.
func SplitValues(cell string) []string {
	var values []string
	seen := make(map[string]bool)

	for _, part := range strings.Split(cell, ";") {
		value := strings.TrimSpace(part)
		if IsAbsent(value) || value == vocab.Missing || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}

	return values
}

// NormalizeNumber repairs issue numbers written as a list: "23; 24"
// becomes "23_24".
func NormalizeNumber(number string) string {
	number = Value(number)
	if !strings.Contains(number, ";") {
		return number
	}

	parts := strings.Split(number, ";")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return strings.Join(parts, "_")
}

// IssueKey composes the identifier of an issue from its journal and the
// optional volume and number. Absent components are skipped.
func IssueKey(journal, volume, number string) string {
	key := strings.TrimSpace(journal)
	if v := Value(volume); v != "" {
		key += "_" + v
	}
	if n := NormalizeNumber(number); n != "" {
		key += "_" + n
	}
	return key
}
