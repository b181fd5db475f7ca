// Copyright Wilhelm Language Services, 2026. All rights reserved.

// Package graph transforms parsed vocabulary into a graph document:
// term nodes, definition nodes, definition links, and inferred links
// between related terms.
package graph

import (
	"fmt"
	"sort"

	"github.com/qubitpi/wilhelm-loader/internal/vocabulary"
	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

// DefaultLabelKey is the node property graph databases display by.
const DefaultLabelKey = "name"

// Build constructs the graph document for a vocabulary. Nodes and links
// come out in deterministic order: term nodes in vocabulary order, then
// definition nodes in first-use order; definition links in vocabulary
// order, then inferred links. Duplicate links (same source, target, and
// attribute label) are suppressed.
func Build(words []types.Word, cfg types.GraphConfig) (*types.GraphDocument, error) {
	labelKey := cfg.LabelKey
	if labelKey == "" {
		labelKey = DefaultLabelKey
	}

	doc := &types.GraphDocument{
		Language: cfg.Language,
		LabelKey: labelKey,
	}

	var definitionNodes []types.Node
	seenDefinitions := map[string]bool{}

	for _, word := range words {
		doc.Nodes = append(doc.Nodes, types.Node{
			Kind:       types.NodeTerm,
			Label:      word.Term,
			Properties: vocabulary.Attributes(word, cfg.Language, labelKey),
		})

		definitions, err := vocabulary.Definitions(word)
		if err != nil {
			return nil, fmt.Errorf("building graph: %w", err)
		}

		for _, def := range definitions {
			if !seenDefinitions[def.Meaning] {
				seenDefinitions[def.Meaning] = true
				definitionNodes = append(definitionNodes, types.Node{
					Kind:       types.NodeDefinition,
					Label:      def.Meaning,
					Properties: map[string]string{labelKey: def.Meaning},
				})
			}

			label := def.Predicate
			if label == "" {
				label = "definition"
			}
			doc.Links = append(doc.Links, types.Link{
				SourceLabel: word.Term,
				TargetLabel: def.Meaning,
				Attributes:  map[string]string{labelKey: label},
			})
		}
	}

	doc.Nodes = append(doc.Nodes, definitionNodes...)

	if cfg.InferLinks {
		doc.Links = append(doc.Links, InferredLinks(words, cfg.Language, labelKey)...)
	}
	doc.Links = dedupeLinks(doc.Links)

	return doc, nil
}

// dedupeLinks drops repeated (source, target, label) triples, keeping first
// occurrences. Self-links survive: the inference passes never produce one,
// and a definition link from a word glossed by its own term is legitimate.
func dedupeLinks(links []types.Link) []types.Link {
	seen := map[string]bool{}
	out := links[:0]
	for _, l := range links {
		key := l.SourceLabel + "\x00" + l.TargetLabel + "\x00" + linkLabel(l)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}

// linkLabel returns a link's attribute values joined in key order; with the
// conventional single label-key attribute this is just the label.
func linkLabel(l types.Link) string {
	if len(l.Attributes) == 1 {
		for _, v := range l.Attributes {
			return v
		}
	}
	var label string
	for _, k := range sortedKeys(l.Attributes) {
		label += l.Attributes[k] + ";"
	}
	return label
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
