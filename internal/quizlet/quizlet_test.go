// Copyright Wilhelm Language Services, 2026. All rights reserved.

package quizlet

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

const sampleExport = "null\t0\neins\t1\nzwei\t2\ndrei\t3\n"

func TestParseExport(t *testing.T) {
	cards, malformed, err := ParseExport(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("ParseExport: %v", err)
	}
	if len(malformed) != 0 {
		t.Errorf("malformed = %v, want none", malformed)
	}

	want := []Card{
		{Term: "null", Definition: "0"},
		{Term: "eins", Definition: "1"},
		{Term: "zwei", Definition: "2"},
		{Term: "drei", Definition: "3"},
	}
	if !reflect.DeepEqual(cards, want) {
		t.Errorf("cards = %v, want %v", cards, want)
	}
}

func TestParseExportSkipsBlankAndMalformedLines(t *testing.T) {
	input := "null\t0\n\n   \nno separator here\neins\t1\n"

	cards, malformed, err := ParseExport(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseExport: %v", err)
	}
	if len(cards) != 2 {
		t.Errorf("len(cards) = %d, want 2", len(cards))
	}
	if len(malformed) != 1 || malformed[0] != "no separator here" {
		t.Errorf("malformed = %v, want the separator-less line", malformed)
	}
}

func TestParseExportTrimsWhitespace(t *testing.T) {
	cards, _, err := ParseExport(strings.NewReader("  der Hut \t the hat \n"))
	if err != nil {
		t.Fatalf("ParseExport: %v", err)
	}
	if cards[0].Term != "der Hut" || cards[0].Definition != "the hat" {
		t.Errorf("card = %+v, want trimmed fields", cards[0])
	}
}

func TestProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.txt")
	if err := os.WriteFile(path, []byte(sampleExport), 0o644); err != nil {
		t.Fatal(err)
	}

	cards, _, err := ProcessFile(path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(cards) != 4 || cards[0].Term != "null" || cards[3].Definition != "3" {
		t.Errorf("cards = %v", cards)
	}
}

func TestProcessFileMissing(t *testing.T) {
	if _, _, err := ProcessFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFetch(t *testing.T) {
	var gotAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, sampleExport)
	}))
	defer ts.Close()

	cfg := types.QuizletConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "wilhelm-loader/test"},
	}
	cards, _, err := Fetch(context.Background(), ts.Client(), ts.URL, cfg)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(cards) != 4 {
		t.Errorf("len(cards) = %d, want 4", len(cards))
	}
	if gotAgent != "wilhelm-loader/test" {
		t.Errorf("User-Agent = %q", gotAgent)
	}
}

func TestFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, _, err := Fetch(context.Background(), ts.Client(), ts.URL, types.QuizletConfig{})
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("err = %v, want HTTP 404", err)
	}
}

func TestToVocabulary(t *testing.T) {
	doc := ToVocabulary([]Card{{Term: "der Hut", Definition: "the hat"}}, types.German)
	if doc.Language != types.German {
		t.Errorf("Language = %q, want German", doc.Language)
	}
	if len(doc.Words) != 1 {
		t.Fatalf("len = %d", len(doc.Words))
	}
	if doc.Words[0].Term != "der Hut" {
		t.Errorf("Term = %q", doc.Words[0].Term)
	}
	if doc.Words[0].Definition != "the hat" {
		t.Errorf("Definition = %v", doc.Words[0].Definition)
	}
}

func TestToVocabularyYAMLCarriesLanguage(t *testing.T) {
	doc := ToVocabulary([]Card{{Term: "annus", Definition: "the year"}}, types.Latin)

	data, err := yaml.Marshal(&doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "language: Latin") {
		t.Errorf("marshaled vocabulary = %q, want language tag", data)
	}
}
