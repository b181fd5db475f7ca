// Copyright Wilhelm Language Services, 2026. All rights reserved.

package graph

import (
	"strings"

	"github.com/qubitpi/wilhelm-loader/internal/vocabulary"
	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

// InferredLinks returns links between related terms that no YAML field
// states explicitly. Two inference passes contribute, in order:
// declension sharing (DeclensionLinks) and term tokenization
// (TokenizationLinks).
func InferredLinks(words []types.Word, language types.Language, labelKey string) []types.Link {
	return append(
		DeclensionLinks(words, language, labelKey),
		TokenizationLinks(words, labelKey)...,
	)
}

// DeclensionLinks links terms whose attribute values collide with another
// term's declension forms.
//
// The canonical example is "die Reise" and "der Reis", which share large
// portions of their declension tables; memorizing one anchors the other.
// Each declension cell is comma-split into form tokens and mapped back to
// its term; a term whose attribute values (scanned in term, language,
// row-major declension order) hit a token owned by a different term links
// to it. At most one declension link is emitted per source term.
func DeclensionLinks(words []types.Word, language types.Language, labelKey string) []types.Link {
	hints := map[string]string{}
	for _, word := range words {
		for _, value := range vocabulary.DeclensionAttributes(word) {
			if vocabulary.ExcludedDeclensionEntries[value] {
				continue
			}
			for _, form := range strings.Split(value, ",") {
				hints[strings.TrimSpace(form)] = word.Term
			}
		}
	}

	var links []types.Link
	for _, word := range words {
		for _, value := range vocabulary.OrderedAttributeValues(word, language, labelKey) {
			target, ok := hints[value]
			if !ok || target == word.Term {
				continue
			}
			links = append(links, types.Link{
				SourceLabel: word.Term,
				TargetLabel: target,
				Attributes:  map[string]string{labelKey: "sharing declensions"},
			})
			break
		}
	}
	return links
}

// TokenizationLinks links terms that share at least one token.
//
// A term's token set is its space-split term tokens (articles excluded)
// plus every comma-split declension form, all lowercased. "seit zwei
// Jahren" relates to "das Jahr" because "Jahren" appears in the latter's
// declension table, and to "in den letzten Jahren" because both terms
// carry the token "jahren". One link is emitted per related ordered pair,
// so such relations appear in both directions.
func TokenizationLinks(words []types.Word, labelKey string) []types.Link {
	tokens := make(map[string]map[string]bool, len(words))
	order := make([]string, 0, len(words))

	for _, word := range words {
		set := map[string]bool{}

		for _, value := range vocabulary.DeclensionAttributes(word) {
			if vocabulary.ExcludedDeclensionEntries[value] {
				continue
			}
			for _, form := range strings.Split(value, ",") {
				set[strings.ToLower(strings.TrimSpace(form))] = true
			}
		}

		for _, tok := range strings.Split(word.Term, " ") {
			cleansed := strings.ToLower(strings.TrimSpace(tok))
			if !vocabulary.ExcludedTokens[cleansed] {
				set[cleansed] = true
			}
		}

		tokens[word.Term] = set
		order = append(order, word.Term)
	}

	var links []types.Link
	for _, word := range words {
		for _, that := range order {
			if word.Term == that {
				continue
			}
			for _, tok := range strings.Split(word.Term, " ") {
				if tokens[that][strings.ToLower(strings.TrimSpace(tok))] {
					links = append(links, types.Link{
						SourceLabel: word.Term,
						TargetLabel: that,
						Attributes:  map[string]string{labelKey: "term related"},
					})
					break
				}
			}
		}
	}
	return links
}
