// Copyright Wilhelm Language Services, 2026. All rights reserved.

package types

// NodeKind distinguishes the two node populations written to the graph
// database: term nodes and definition nodes.
type NodeKind string

const (
	NodeTerm       NodeKind = "term"
	NodeDefinition NodeKind = "definition"
)

// Node is a graph vertex. Label is the display value (the term text or the
// definition text); Properties carries the flat attribute map stored on the
// database node, always including the label key itself.
type Node struct {
	// Kind selects the node population (term or definition).
	Kind NodeKind `json:"kind" yaml:"kind"`

	// Label is the node's display value, unique within its kind.
	Label string `json:"label" yaml:"label"`

	// Properties is the flat property map persisted on the node. Keys are
	// plain strings (e.g. "name", "language", "declension-1-2").
	Properties map[string]string `json:"properties" yaml:"properties"`
}

// Link is a directed graph edge between two nodes identified by label.
// Attributes carries the edge property map; by convention it contains the
// label key mapped to the relationship description (a definition predicate,
// "definition", "sharing declensions", or "term related").
type Link struct {
	SourceLabel string            `json:"source_label" yaml:"source_label"`
	TargetLabel string            `json:"target_label" yaml:"target_label"`
	Attributes  map[string]string `json:"attributes" yaml:"attributes"`
}

// GraphDocument is the complete output of the transformation stage: every
// node and link derived from one vocabulary file, in deterministic order.
type GraphDocument struct {
	// Language is the vocabulary language, repeated on every term node.
	Language Language `json:"language" yaml:"language"`

	// LabelKey is the property key under which node labels are stored
	// (default "name"); the graph databases display nodes by it.
	LabelKey string `json:"label_key" yaml:"label_key"`

	Nodes []Node `json:"nodes" yaml:"nodes"`
	Links []Link `json:"links" yaml:"links"`
}

// TermNodes returns the term-kind subset of Nodes in document order.
func (d *GraphDocument) TermNodes() []Node {
	var nodes []Node
	for _, n := range d.Nodes {
		if n.Kind == NodeTerm {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// LoadSummary holds counts from one database load run.
type LoadSummary struct {
	// RunID identifies the load run in loader logs.
	RunID string

	Nodes  int
	Links  int
	Failed int
}

// Total returns the number of write operations attempted.
func (s LoadSummary) Total() int {
	return s.Nodes + s.Links + s.Failed
}

// HasFailures reports whether any write failed.
func (s LoadSummary) HasFailures() bool {
	return s.Failed > 0
}
