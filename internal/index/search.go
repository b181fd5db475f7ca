// Copyright Wilhelm Language Services, 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

// SearchOptions holds parameters for index queries.
type SearchOptions struct {
	// Query is the FTS5 full-text search string over terms and meanings.
	Query string

	// Language restricts results to one language.
	Language types.Language

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (o SearchOptions) IsEmpty() bool {
	return o.Query == "" && o.Language == ""
}

// SearchResult is one indexed word with its parsed definitions.
type SearchResult struct {
	Term        string             `json:"term" yaml:"term"`
	Language    string             `json:"language" yaml:"language"`
	Definitions []types.Definition `json:"definitions" yaml:"definitions"`
	SourceFile  string             `json:"source_file" yaml:"source_file"`
}

// Search queries the index with optional full-text search and a language
// filter. Full-text queries rank by FTS relevance; filter-only queries
// sort by term.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]SearchResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT w.term, w.language, w.definitions_json, w.source_file
			FROM words_fts
			JOIN words w ON w.rowid = words_fts.rowid
			WHERE words_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT w.term, w.language, w.definitions_json, w.source_file
			FROM words w
			WHERE 1=1`)
	}

	if opts.Language != "" {
		qb.WriteString(` AND w.language = ?`)
		args = append(args, string(opts.Language))
	}

	if useFTS {
		qb.WriteString(` ORDER BY words_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY w.term`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			r        SearchResult
			defsJSON sql.NullString
		)
		if err := rows.Scan(&r.Term, &r.Language, &defsJSON, &r.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if defsJSON.Valid {
			json.Unmarshal([]byte(defsJSON.String), &r.Definitions)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// ExportYAML writes every indexed word to path as YAML, sorted by term.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	results, err := s.Search(ctx, SearchOptions{MaxResults: 1 << 30})
	if err != nil {
		return err
	}

	doc := struct {
		Words []SearchResult `yaml:"words"`
	}{Words: results}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
