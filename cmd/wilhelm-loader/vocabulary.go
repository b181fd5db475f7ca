// Copyright Wilhelm Language Services, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qubitpi/wilhelm-loader/internal/vocabulary"
)

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Parse and validate vocabulary YAML files",
	Long: `Vocabulary parses wilhelm-vocabulary YAML files. Use subcommands to
validate files or print per-file statistics.`,
}

// --- stats subcommand ---

var vocabularyStatsCmd = &cobra.Command{
	Use:   "stats [files...]",
	Short: "Print word, definition, and declension counts per file",
	RunE:  runVocabularyStats,
}

func runVocabularyStats(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more vocabulary YAML files")
	}

	for _, path := range args {
		words, err := vocabulary.Load(path)
		if err != nil {
			return err
		}

		definitions := 0
		declined := 0
		for _, word := range words {
			defs, err := vocabulary.Definitions(word)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			definitions += len(defs)
			if len(vocabulary.DeclensionAttributes(word)) > 0 {
				declined++
			}
		}

		fmt.Fprintf(os.Stdout, "%s: %d words, %d definitions, %d with declension tables\n",
			path, len(words), definitions, declined)
	}
	return nil
}

// --- validate subcommand ---

var vocabularyValidateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check vocabulary files for structural errors",
	Long: `Validate parses each file and checks every word: the definition field
must be present, and declension tables must be well formed. All files are
checked before reporting; any error fails the command.`,
	RunE: runVocabularyValidate,
}

func runVocabularyValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more vocabulary YAML files")
	}

	failed := 0
	for _, path := range args {
		if err := validateFile(path); err != nil {
			fmt.Fprintf(os.Stdout, "invalid %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "ok      %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

func validateFile(path string) error {
	words, err := vocabulary.Load(path)
	if err != nil {
		return err
	}
	for _, word := range words {
		if word.Term == "" {
			return fmt.Errorf("word with empty term")
		}
		if _, err := vocabulary.Definitions(word); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	vocabularyCmd.AddCommand(vocabularyStatsCmd)
	vocabularyCmd.AddCommand(vocabularyValidateCmd)

	rootCmd.AddCommand(vocabularyCmd)
}
