// Copyright Wilhelm Language Services, 2026. All rights reserved.

package wiktionary

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

const samplePage = `
<html><body>
<div class="NavFrame">
  <div class="NavHead">Present: ἀγγέλλω, ἀγγέλλομαι</div>
  <table class="grc-conj"><tbody>
    <tr><th rowspan="2">number</th><th colspan="2">singular</th></tr>
    <tr><th>first</th><th>second</th></tr>
    <tr><th>indicative</th><td>ἀγγέλλω</td><td colspan="2">ἀγγέλλεις</td></tr>
    <tr><th>Notes:</th><td>with obsolete forms</td></tr>
  </tbody></table>
</div>
<div class="NavFrame">
  <div class="NavHead">Links to other tenses</div>
</div>
<div class="NavFrame">
  <div class="NavHead">Future: ἀγγελῶ</div>
  <table class="grc-conj"><tbody>
    <tr><th>indicative</th><td>ἀγγελῶ</td></tr>
  </tbody></table>
</div>
</body></html>`

func TestParseTables(t *testing.T) {
	tables, err := ParseTables(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("ParseTables: %v", err)
	}

	// The frame without a conjugation table is skipped.
	if len(tables) != 2 {
		t.Fatalf("len(tables) = %d, want 2", len(tables))
	}

	present := tables[0]
	if present.Tense != "Present: ἀγγέλλω, ἀγγέλλομαι" {
		t.Errorf("Tense = %q", present.Tense)
	}

	want := [][]string{
		{"number", "singular", "singular"},
		{"number", "first", "second"},
		{"indicative", "ἀγγέλλω", "ἀγγέλλεις", "ἀγγέλλεις"},
	}
	if !reflect.DeepEqual(present.Rows, want) {
		t.Errorf("Rows = %v, want %v", present.Rows, want)
	}

	if tables[1].Tense != "Future: ἀγγελῶ" {
		t.Errorf("second tense = %q", tables[1].Tense)
	}
}

func TestParseTablesRowspanCarriesAcrossRows(t *testing.T) {
	page := `
<div class="NavFrame">
  <div class="NavHead">Aorist</div>
  <table class="grc-conj"><tbody>
    <tr><th rowspan="3">voice</th><th>active</th></tr>
    <tr><th>middle</th></tr>
    <tr><th>passive</th></tr>
  </tbody></table>
</div>`

	tables, err := ParseTables(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseTables: %v", err)
	}

	want := [][]string{
		{"voice", "active"},
		{"voice", "middle"},
		{"voice", "passive"},
	}
	if !reflect.DeepEqual(tables[0].Rows, want) {
		t.Errorf("Rows = %v, want %v", tables[0].Rows, want)
	}
}

func TestParseTablesNotesRowDropped(t *testing.T) {
	page := `
<div class="NavFrame">
  <div class="NavHead">Perfect</div>
  <table class="grc-conj"><tbody>
    <tr><th>indicative</th><td>τέθνηκα</td></tr>
    <tr><th>Notes:</th><td>rare</td></tr>
  </tbody></table>
</div>`

	tables, err := ParseTables(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseTables: %v", err)
	}
	if len(tables[0].Rows) != 1 {
		t.Errorf("Rows = %v, notes row should be dropped", tables[0].Rows)
	}
}

func TestParseTablesNoFrames(t *testing.T) {
	tables, err := ParseTables(strings.NewReader(`<html><body><p>nothing here</p></body></html>`))
	if err != nil {
		t.Fatalf("ParseTables: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("tables = %v, want none", tables)
	}
}

func TestFetchTables(t *testing.T) {
	var gotAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, samplePage)
	}))
	defer ts.Close()

	cfg := types.WiktionaryConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "wilhelm-loader/test"},
	}
	tables, err := FetchTables(context.Background(), ts.Client(), ts.URL, cfg)
	if err != nil {
		t.Fatalf("FetchTables: %v", err)
	}
	if len(tables) != 2 {
		t.Errorf("len(tables) = %d, want 2", len(tables))
	}
	if gotAgent != "wilhelm-loader/test" {
		t.Errorf("User-Agent = %q", gotAgent)
	}
}

func TestFetchTablesHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := FetchTables(context.Background(), ts.Client(), ts.URL, types.WiktionaryConfig{})
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("err = %v, want HTTP 404", err)
	}
}
