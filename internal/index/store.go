// Copyright Wilhelm Language Services, 2026. All rights reserved.

// Package index maintains a local SQLite index over parsed vocabulary for
// offline term lookup. Indexing is incremental: unchanged source files are
// skipped on re-runs based on their modification time.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/qubitpi/wilhelm-loader/internal/vocabulary"
	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

const dbFile = "vocabulary.db"

// Store manages the vocabulary index SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the index database at indexDir/vocabulary.db,
// creating the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS words (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			term TEXT NOT NULL,
			language TEXT NOT NULL,
			definitions TEXT NOT NULL,
			definitions_json TEXT NOT NULL,
			attributes_json TEXT,
			source_file TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_words_source ON words(source_file)`,
		`CREATE INDEX IF NOT EXISTS idx_words_language ON words(language)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			source_file TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='words_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE words_fts USING fts5(term, definitions, content=words, content_rowid=rowid)`,
			`CREATE TRIGGER words_ai AFTER INSERT ON words BEGIN
				INSERT INTO words_fts(rowid, term, definitions) VALUES (new.rowid, new.term, new.definitions);
			END`,
			`CREATE TRIGGER words_ad AFTER DELETE ON words BEGIN
				INSERT INTO words_fts(words_fts, rowid, term, definitions) VALUES('delete', old.rowid, old.term, old.definitions);
			END`,
			`CREATE TRIGGER words_au AFTER UPDATE ON words BEGIN
				INSERT INTO words_fts(words_fts, rowid, term, definitions) VALUES('delete', old.rowid, old.term, old.definitions);
				INSERT INTO words_fts(rowid, term, definitions) VALUES (new.rowid, new.term, new.definitions);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from one indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of vocabulary files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest indexes vocabulary files, detecting new, changed, and unchanged
// files by modification time. It continues after per-file failures and
// writes per-file status lines to w.
func (s *Store) Ingest(ctx context.Context, paths []string, language types.Language, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE source_file = ?`, path,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", path)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		words, err := vocabulary.Load(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		if err := s.ingestFile(ctx, path, words, language, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d words)\n", path, len(words))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d words)\n", path, len(words))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestFile(ctx context.Context, path string, words []types.Word, language types.Language, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE source_file = ?`, path); err != nil {
			return fmt.Errorf("deleting old words: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO words (term, language, definitions, definitions_json, attributes_json, source_file)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, word := range words {
		definitions, err := vocabulary.Definitions(word)
		if err != nil {
			return err
		}

		meanings := make([]string, 0, len(definitions))
		for _, d := range definitions {
			meanings = append(meanings, d.Meaning)
		}
		definitionsJSON, _ := json.Marshal(definitions)
		attributesJSON, _ := json.Marshal(vocabulary.Attributes(word, language, "name"))

		_, err = stmt.ExecContext(ctx,
			word.Term, string(language), strings.Join(meanings, "; "),
			string(definitionsJSON), string(attributesJSON), path,
		)
		if err != nil {
			return fmt.Errorf("inserting word %q: %w", word.Term, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (source_file, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(source_file) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		path, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}
