// Copyright Wilhelm Language Services, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/qubitpi/wilhelm-loader/internal/wiktionary"
	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

var wiktionaryCmd = &cobra.Command{
	Use:   "wiktionary [url]",
	Short: "Fetch Ancient Greek conjugation tables from a Wiktionary page",
	Long: `Wiktionary downloads a Wiktionary entry page and extracts its Ancient
Greek conjugation tables (one per collapsible inflection frame), writing them
as YAML. Row and column spans are expanded so every row has the same width.`,
	RunE: runWiktionary,
}

func init() {
	wiktionaryCmd.Flags().String("output", "", "output YAML file (default stdout)")
	wiktionaryCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(wiktionaryCmd)
}

func runWiktionary(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one Wiktionary page URL")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := types.WiktionaryConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
	}

	client := &http.Client{Timeout: cfg.Timeout}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tables, err := wiktionary.FetchTables(ctx, client, args[0], cfg)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return fmt.Errorf("no conjugation tables found at %s", args[0])
	}

	doc := struct {
		Tables []wiktionary.ConjugationTable `yaml:"conjugation_tables"`
	}{Tables: tables}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling tables: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %d conjugation tables to %s\n", len(tables), output)
	return nil
}
