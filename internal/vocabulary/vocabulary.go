// Copyright Wilhelm Language Services, 2026. All rights reserved.

// Package vocabulary parses wilhelm-vocabulary YAML files and flattens
// words into the attribute maps stored on graph nodes.
package vocabulary

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

// ExcludedDeclensionEntries lists declension-table cells that name table
// structure rather than word forms. They never become link hints.
var ExcludedDeclensionEntries = map[string]bool{
	"":           true,
	"singular":   true,
	"plural":     true,
	"masculine":  true,
	"feminine":   true,
	"neuter":     true,
	"nominative": true,
	"genitive":   true,
	"dative":     true,
	"accusative": true,
	"N/A":        true,
}

// ExcludedTokens lists term tokens too common to relate words (German articles).
var ExcludedTokens = map[string]bool{
	"der": true,
	"die": true,
	"das": true,
}

// Load reads a vocabulary YAML file and returns its words in file order.
func Load(path string) ([]types.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file: %w", err)
	}
	return Parse(data)
}

// Parse decodes vocabulary YAML. The file must carry a top-level
// "vocabulary" key holding the word list.
func Parse(data []byte) ([]types.Word, error) {
	var v types.Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing vocabulary YAML: %w", err)
	}
	if v.Words == nil {
		return nil, fmt.Errorf("vocabulary YAML has no 'vocabulary' key")
	}
	return v.Words, nil
}

// predicateRe matches a leading parenthesized predicate, e.g. "(adj.)".
var (
	predicateRe = regexp.MustCompile(`^\((.*?)\)`)
	parenRe     = regexp.MustCompile(`\(.*?\)`)
)

// Definitions extracts the parsed definitions of a word in source order.
//
// The raw definition is a scalar or a list of scalars; every scalar is
// stringified, so a numeric definition such as 1 yields "1". A leading
// "(...)" qualifier becomes the Predicate with all parenthesized spans
// stripped from the Meaning; without one the Predicate is empty.
//
// A word whose definition field is absent is an error: in practice this
// means the source YAML has a typo.
func Definitions(word types.Word) ([]types.Definition, error) {
	if word.Definition == nil {
		return nil, fmt.Errorf("word %q has no 'definition' field: possible typo in source", word.Term)
	}

	raw, ok := word.Definition.([]any)
	if !ok {
		raw = []any{word.Definition}
	}

	defs := make([]types.Definition, 0, len(raw))
	for _, entry := range raw {
		text := strings.TrimSpace(stringify(entry))

		if m := predicateRe.FindStringSubmatch(text); m != nil {
			defs = append(defs, types.Definition{
				Predicate: m[1],
				Meaning:   strings.TrimSpace(parenRe.ReplaceAllString(text, "")),
			})
			continue
		}
		defs = append(defs, types.Definition{Meaning: text})
	}
	return defs, nil
}

// DeclensionAttributes flattens a word's declension table into a map keyed
// "declension-<row>-<col>". A missing declension, or the scalar "Unknown",
// yields an empty map.
func DeclensionAttributes(word types.Word) map[string]string {
	attributes := map[string]string{}

	rows, ok := word.Declension.([]any)
	if !ok {
		return attributes
	}

	for i, rawRow := range rows {
		row, ok := rawRow.([]any)
		if !ok {
			continue
		}
		for j, cell := range row {
			attributes[fmt.Sprintf("declension-%d-%d", i, j)] = stringify(cell)
		}
	}
	return attributes
}

// Attributes returns the flat property map stored on a term node: the
// label key mapped to the term, the language, and every declension cell.
func Attributes(word types.Word, language types.Language, labelKey string) map[string]string {
	attributes := map[string]string{
		labelKey:   word.Term,
		"language": string(language),
	}
	for k, v := range DeclensionAttributes(word) {
		attributes[k] = v
	}
	return attributes
}

// OrderedAttributeValues returns a word's attribute values in a stable
// order: term, language, then declension cells in row-major order. Link
// inference scans values in this order and stops at the first hit, so the
// order is part of the observable behavior.
func OrderedAttributeValues(word types.Word, language types.Language, labelKey string) []string {
	values := []string{word.Term, string(language)}

	declension := DeclensionAttributes(word)
	keys := make([]string, 0, len(declension))
	for k := range declension {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		ra, ca := declensionIndex(keys[a])
		rb, cb := declensionIndex(keys[b])
		if ra != rb {
			return ra < rb
		}
		return ca < cb
	})
	for _, k := range keys {
		values = append(values, declension[k])
	}
	return values
}

// declensionIndex parses "declension-<row>-<col>" into its indices.
func declensionIndex(key string) (row, col int) {
	fmt.Sscanf(key, "declension-%d-%d", &row, &col)
	return row, col
}

// stringify renders a YAML scalar the way the source file wrote it.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
