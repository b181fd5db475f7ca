// Copyright Wilhelm Language Services, 2026. All rights reserved.

package vocabulary

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

const hutYAML = `
term: der Hut
definition: the hat
declension:
  - ["",         singular,      plural]
  - [nominative, Hut,           Hüte  ]
  - [genitive,   "Hutes, Huts", Hüte  ]
  - [dative,     Hut,           Hüten ]
  - [accusative, Hut,           Hüte  ]
`

var hutDeclension = map[string]string{
	"declension-0-0": "",
	"declension-0-1": "singular",
	"declension-0-2": "plural",

	"declension-1-0": "nominative",
	"declension-1-1": "Hut",
	"declension-1-2": "Hüte",

	"declension-2-0": "genitive",
	"declension-2-1": "Hutes, Huts",
	"declension-2-2": "Hüte",

	"declension-3-0": "dative",
	"declension-3-1": "Hut",
	"declension-3-2": "Hüten",

	"declension-4-0": "accusative",
	"declension-4-1": "Hut",
	"declension-4-2": "Hüte",
}

func parseWord(t *testing.T, src string) types.Word {
	t.Helper()
	var w types.Word
	if err := yaml.Unmarshal([]byte(src), &w); err != nil {
		t.Fatal(err)
	}
	return w
}

// --- Definitions ---

func TestDefinitions(t *testing.T) {
	tests := []struct {
		name string
		word types.Word
		want []types.Definition
	}{
		{
			name: "list with predicates",
			word: types.Word{Definition: []any{"(adj.) same", "(adv.) namely", "because"}},
			want: []types.Definition{
				{Predicate: "adj.", Meaning: "same"},
				{Predicate: "adv.", Meaning: "namely"},
				{Meaning: "because"},
			},
		},
		{
			name: "single scalar definition",
			word: types.Word{Definition: "one"},
			want: []types.Definition{{Meaning: "one"}},
		},
		{
			name: "numeric definition is stringified",
			word: types.Word{Definition: 1},
			want: []types.Definition{{Meaning: "1"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Definitions(tt.word)
			if err != nil {
				t.Fatalf("Definitions: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Definitions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefinitionsMissingField(t *testing.T) {
	_, err := Definitions(types.Word{Term: "der Fehler"})
	if err == nil {
		t.Fatal("expected error for missing definition field")
	}
	if !strings.Contains(err.Error(), "definition") {
		t.Errorf("error = %q, should mention the definition field", err)
	}
}

// --- DeclensionAttributes ---

func TestDeclensionAttributes(t *testing.T) {
	word := parseWord(t, hutYAML)
	got := DeclensionAttributes(word)
	if !reflect.DeepEqual(got, hutDeclension) {
		t.Errorf("DeclensionAttributes() = %v, want %v", got, hutDeclension)
	}
}

func TestDeclensionAttributesUnknown(t *testing.T) {
	word := parseWord(t, `
term: die Grilltomate
definition: the grilled tomato
declension: Unknown
`)
	if got := DeclensionAttributes(word); len(got) != 0 {
		t.Errorf("DeclensionAttributes() = %v, want empty map for Unknown", got)
	}
}

func TestDeclensionAttributesMissing(t *testing.T) {
	word := types.Word{Term: "na klar", Definition: "of course"}
	if got := DeclensionAttributes(word); len(got) != 0 {
		t.Errorf("DeclensionAttributes() = %v, want empty map", got)
	}
}

// --- Attributes ---

func TestAttributes(t *testing.T) {
	word := parseWord(t, hutYAML)

	want := map[string]string{"name": "der Hut", "language": "German"}
	for k, v := range hutDeclension {
		want[k] = v
	}

	got := Attributes(word, types.German, "name")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Attributes() = %v, want %v", got, want)
	}
}

func TestOrderedAttributeValues(t *testing.T) {
	word := parseWord(t, hutYAML)

	got := OrderedAttributeValues(word, types.German, "name")

	// Term and language lead; declension cells follow in row-major order.
	wantPrefix := []string{"der Hut", "German", "", "singular", "plural", "nominative", "Hut", "Hüte"}
	if len(got) != 2+15 {
		t.Fatalf("len = %d, want 17", len(got))
	}
	if !reflect.DeepEqual(got[:len(wantPrefix)], wantPrefix) {
		t.Errorf("OrderedAttributeValues() prefix = %v, want %v", got[:len(wantPrefix)], wantPrefix)
	}
}

// --- Load / Parse ---

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "german.yaml")
	src := `
vocabulary:
  - term: nämlich
    definition:
      - (adj.) same
      - (adv.) namely
      - because
  - term: na klar
    definition: of course
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	words, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("len(words) = %d, want 2", len(words))
	}
	if words[0].Term != "nämlich" || words[1].Term != "na klar" {
		t.Errorf("terms = %q, %q", words[0].Term, words[1].Term)
	}
}

func TestParseMissingVocabularyKey(t *testing.T) {
	_, err := Parse([]byte(`words: []`))
	if err == nil {
		t.Fatal("expected error for missing vocabulary key")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
