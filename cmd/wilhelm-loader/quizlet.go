// Copyright Wilhelm Language Services, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/qubitpi/wilhelm-loader/internal/quizlet"
	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "wilhelm-loader/0.1"
)

var quizletCmd = &cobra.Command{
	Use:   "quizlet [source]",
	Short: "Convert a Quizlet study-set export into vocabulary YAML",
	Long: `Quizlet reads a study-set export (tab-separated term and definition per
line) from a local file or an HTTP URL and writes it as a vocabulary YAML
file. Malformed lines are reported and skipped.`,
	RunE: runQuizlet,
}

func init() {
	quizletCmd.Flags().String("language", string(types.German), "language tag for the produced vocabulary")
	quizletCmd.Flags().String("output", "", "output YAML file (default stdout)")
	quizletCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(quizletCmd)
}

func runQuizlet(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one export file or URL")
	}
	source := args[0]

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	language, _ := cmd.Flags().GetString("language")

	cfg := types.QuizletConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Language: types.Language(language),
	}

	var (
		cards     []quizlet.Card
		malformed []string
		err       error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := &http.Client{Timeout: cfg.Timeout}
		cards, malformed, err = quizlet.Fetch(context.Background(), client, source, cfg)
	} else {
		cards, malformed, err = quizlet.ProcessFile(source)
	}
	if err != nil {
		return err
	}

	for _, line := range malformed {
		fmt.Fprintf(os.Stderr, "skipping malformed line: %q\n", line)
	}
	if len(cards) == 0 {
		return fmt.Errorf("no cards found in %s", source)
	}

	doc := quizlet.ToVocabulary(cards, cfg.Language)
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling vocabulary: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %d words to %s (%d malformed lines skipped)\n",
		len(cards), output, len(malformed))
	return nil
}
