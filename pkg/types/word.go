// Copyright Wilhelm Language Services, 2026. All rights reserved.

// Package types defines shared data structures for the wilhelm-loader
// pipeline: vocabulary words as parsed from YAML, the graph document
// produced from them, and per-stage configuration.
package types

// Language identifies the language a vocabulary file covers. The value is
// stored verbatim as a node property on every term node.
type Language string

const (
	German       Language = "German"
	Latin        Language = "Latin"
	AncientGreek Language = "Ancient Greek"
)

// Word is a single vocabulary entry from a wilhelm-vocabulary YAML file.
//
// Definition is either a scalar (string or number) or a list of scalars;
// each scalar may carry a leading parenthesized predicate, e.g.
// "(adj.) same". Declension is either the string "Unknown" or a table
// given as a list of rows, each row a list of cells. Both fields keep
// their raw YAML shape; the vocabulary package interprets them.
type Word struct {
	// Term is the vocabulary term, including any article (e.g. "der Hut").
	Term string `json:"term" yaml:"term"`

	// Definition holds the raw definition value: scalar or list of scalars.
	Definition any `json:"definition" yaml:"definition"`

	// Declension holds the raw declension value: "Unknown" or a table.
	Declension any `json:"declension,omitempty" yaml:"declension,omitempty"`

	// Audio is an optional pronunciation URL carried through untouched.
	Audio string `json:"audio,omitempty" yaml:"audio,omitempty"`
}

// Definition is one parsed meaning of a word. Predicate is the
// parenthesized qualifier preceding the meaning ("adj.", "adv.", ...) and
// is empty when the source definition carries none.
type Definition struct {
	Predicate string `json:"predicate,omitempty" yaml:"predicate,omitempty"`
	Meaning   string `json:"meaning" yaml:"meaning"`
}

// Vocabulary is the top-level shape of a wilhelm-vocabulary YAML file.
// Language is optional in hand-written files but always set on files the
// quizlet stage emits.
type Vocabulary struct {
	Language Language `json:"language,omitempty" yaml:"language,omitempty"`
	Words    []Word   `json:"vocabulary" yaml:"vocabulary"`
}
