// Copyright Wilhelm Language Services, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qubitpi/wilhelm-loader/internal/index"
	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Maintain a local full-text index over parsed vocabulary",
	Long: `Index manages a local SQLite database with full-text search over terms
and definitions. Use subcommands to ingest vocabulary files, search them, or
export the index contents.`,
}

// --- ingest subcommand ---

var indexIngestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Index vocabulary YAML files for offline search",
	Long: `Ingest parses vocabulary files and indexes every word. Files already
indexed with an unchanged modification time are skipped, so re-running after
edits only reprocesses what changed.`,
	RunE: runIndexIngest,
}

func runIndexIngest(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more vocabulary YAML files")
	}

	language, _ := cmd.Flags().GetString("language")

	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), args, types.Language(language), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the vocabulary index",
	Long: `Search queries the index with FTS5 full-text search over terms and
definitions, optionally restricted to one language. Without a query, the
--lang filter alone lists matching words alphabetically.`,
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	language, _ := cmd.Flags().GetString("lang")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := index.SearchOptions{
		Query:      strings.Join(args, " "),
		Language:   types.Language(language),
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query or --lang")
	}

	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []index.SearchResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-30s  %-14s  %s\n", "Rank", "Term", "Language", "Definitions")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for i, r := range results {
		meanings := make([]string, 0, len(r.Definitions))
		for _, d := range r.Definitions {
			if d.Predicate != "" {
				meanings = append(meanings, fmt.Sprintf("(%s) %s", d.Predicate, d.Meaning))
				continue
			}
			meanings = append(meanings, d.Meaning)
		}
		defs := strings.Join(meanings, "; ")
		if len(defs) > 40 {
			defs = defs[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-30s  %-14s  %s\n", i+1, r.Term, r.Language, defs)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the vocabulary index to YAML",
	RunE:  runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "index-export.yaml"
	}

	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ExportYAML(context.Background(), output); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Exported to %s\n", output)
	return nil
}

// --- shared helpers ---

func indexConfig(cmd *cobra.Command) types.IndexConfig {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	if indexDir == "" {
		indexDir = "index"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.IndexConfig{
		IndexDir:   indexDir,
		MaxResults: maxResults,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("index-dir", "index", "directory holding the index database")
	indexCmd.PersistentFlags().Int("max-results", 20, "maximum number of search results")

	indexIngestCmd.Flags().String("language", string(types.German), "language tag for indexed words")

	indexSearchCmd.Flags().String("lang", "", "restrict results to one language")
	indexSearchCmd.Flags().Int("limit", 0, "maximum results for this query")
	indexSearchCmd.Flags().Bool("json", false, "emit results as JSON")

	indexExportCmd.Flags().String("output", "", "output YAML file (default index-export.yaml)")

	indexCmd.AddCommand(indexIngestCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexExportCmd)
	rootCmd.AddCommand(indexCmd)
}
