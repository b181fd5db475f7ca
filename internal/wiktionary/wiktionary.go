// Copyright Wilhelm Language Services, 2026. All rights reserved.

// Package wiktionary scrapes Ancient Greek conjugation tables from
// Wiktionary pages. Each collapsible "NavFrame" block on a verb page holds
// one tense table; the parser expands rowspan/colspan cells so every row
// comes out rectangular, ready for YAML declension-table emission.
package wiktionary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/qubitpi/wilhelm-loader/internal/httputil"
	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

// ConjugationTable is one tense's conjugation grid. Rows mix the expanded
// header cells and the word forms, in page order.
type ConjugationTable struct {
	Tense string     `json:"tense" yaml:"tense"`
	Rows  [][]string `json:"table" yaml:"table"`
}

// FetchTables downloads a Wiktionary page and parses all conjugation
// tables on it, in page order.
func FetchTables(ctx context.Context, client *http.Client, url string, cfg types.WiktionaryConfig) ([]ConjugationTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return ParseTables(resp.Body)
}

// ParseTables extracts every NavFrame conjugation table from page HTML.
func ParseTables(r io.Reader) ([]ConjugationTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page HTML: %w", err)
	}

	var tables []ConjugationTable
	doc.Find("div.NavFrame").Each(func(_ int, frame *goquery.Selection) {
		if table, ok := parseFrame(frame); ok {
			tables = append(tables, table)
		}
	})
	return tables, nil
}

// parseFrame parses one NavFrame block: the NavHead caption is the tense,
// the grc-conj table body is the grid. Frames without a conjugation table
// (navigation boxes share the class) are skipped.
func parseFrame(frame *goquery.Selection) (ConjugationTable, bool) {
	tense := strings.TrimSpace(frame.Find("div.NavHead").First().Text())

	body := frame.Find("table.grc-conj tbody").First()
	if body.Length() == 0 || tense == "" {
		return ConjugationTable{}, false
	}

	rows := body.Find("tr")
	grid := make([][]string, rows.Length())

	// Header cells first: a rowspan header repeats as the leading cell of
	// the rows it spans, a colspan header repeats in place.
	var carried string
	var carriedRemaining int
	rows.Each(func(i int, row *goquery.Selection) {
		if carriedRemaining > 0 {
			carriedRemaining--
			grid[i] = append(grid[i], carried)
		}

		row.Find("th").Each(func(_ int, cell *goquery.Selection) {
			value := strings.TrimSpace(cell.Text())

			if span := spanCount(cell, "rowspan"); span > 1 {
				grid[i] = append(grid[i], value)
				carried = value
				carriedRemaining = span - 1
				return
			}
			grid[i] = append(grid[i], repeat(value, spanCount(cell, "colspan"))...)
		})
	})

	// Then the word-form cells, expanded by colspan.
	rows.Each(func(i int, row *goquery.Selection) {
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			grid[i] = append(grid[i], repeat(strings.TrimSpace(cell.Text()), spanCount(cell, "colspan"))...)
		})
	})

	// Drop the trailing notes row.
	if n := len(grid); n > 0 && len(grid[n-1]) > 0 && grid[n-1][0] == "Notes:" {
		grid = grid[:n-1]
	}

	return ConjugationTable{Tense: tense, Rows: grid}, true
}

// spanCount reads a rowspan/colspan attribute, defaulting to 1.
func spanCount(cell *goquery.Selection, attr string) int {
	v, ok := cell.Attr(attr)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func repeat(value string, n int) []string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = value
	}
	return cells
}
