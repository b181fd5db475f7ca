// Copyright Wilhelm Language Services, 2026. All rights reserved.

// Package quizlet converts exported Quizlet study sets into vocabulary.
// An export is plain text with one card per line, term and definition
// separated by a tab: the format Quizlet's export dialog produces by
// default.
package quizlet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/qubitpi/wilhelm-loader/internal/httputil"
	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

// Card is one term/definition pair from a study set.
type Card struct {
	Term       string `json:"term" yaml:"term"`
	Definition string `json:"definition" yaml:"definition"`
}

// ParseExport reads an export and returns its cards in order. Blank lines
// are ignored; lines without a tab separator are returned as malformed so
// the caller can report them.
func ParseExport(r io.Reader) (cards []Card, malformed []string, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		term, definition, found := strings.Cut(line, "\t")
		if !found {
			malformed = append(malformed, line)
			continue
		}
		cards = append(cards, Card{
			Term:       strings.TrimSpace(term),
			Definition: strings.TrimSpace(definition),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading export: %w", err)
	}
	return cards, malformed, nil
}

// ProcessFile parses a study-set export from disk.
func ProcessFile(path string) ([]Card, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening export %s: %w", path, err)
	}
	defer f.Close()
	return ParseExport(f)
}

// Fetch downloads a study-set export from a URL and parses it. Rate-limit
// responses are retried with the shared backoff policy.
func Fetch(ctx context.Context, client *http.Client, url string, cfg types.QuizletConfig) ([]Card, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching study set: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return ParseExport(resp.Body)
}

// ToVocabulary converts cards into a language-tagged vocabulary. The
// definition stays a single scalar; predicates inside it are parsed
// downstream.
func ToVocabulary(cards []Card, language types.Language) types.Vocabulary {
	words := make([]types.Word, 0, len(cards))
	for _, c := range cards {
		words = append(words, types.Word{
			Term:       c.Term,
			Definition: c.Definition,
		})
	}
	return types.Vocabulary{Language: language, Words: words}
}
