// Copyright Wilhelm Language Services, 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/qubitpi/wilhelm-loader/internal/graph"
	"github.com/qubitpi/wilhelm-loader/internal/vocabulary"
	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Transform vocabulary into graph nodes and links",
}

var graphExportCmd = &cobra.Command{
	Use:   "export [vocabulary-file]",
	Short: "Build a graph document from a vocabulary file and write it out",
	Long: `Export parses a vocabulary YAML file and builds the graph document that
the load stage writes to the database: one node per term, one per distinct
definition, definition links, and (with --infer-links) declension-sharing and
term-relation links.`,
	RunE: runGraphExport,
}

func init() {
	graphExportCmd.Flags().String("language", string(types.German), "language tag for term nodes")
	graphExportCmd.Flags().String("label-key", graph.DefaultLabelKey, "node property used as display label")
	graphExportCmd.Flags().Bool("infer-links", true, "compute declension-sharing and term-relation links")
	graphExportCmd.Flags().String("format", "yaml", "output format: yaml or json")
	graphExportCmd.Flags().String("output", "", "output file (default stdout)")

	graphCmd.AddCommand(graphExportCmd)
	rootCmd.AddCommand(graphCmd)
}

// graphConfigFromFlags reads the transformation flags shared by the graph
// and load commands.
func graphConfigFromFlags(cmd *cobra.Command) types.GraphConfig {
	language, _ := cmd.Flags().GetString("language")
	labelKey, _ := cmd.Flags().GetString("label-key")
	inferLinks, _ := cmd.Flags().GetBool("infer-links")

	return types.GraphConfig{
		Language:   types.Language(language),
		LabelKey:   labelKey,
		InferLinks: inferLinks,
	}
}

// buildGraphDocument parses one vocabulary file and transforms it.
func buildGraphDocument(path string, cfg types.GraphConfig) (*types.GraphDocument, error) {
	words, err := vocabulary.Load(path)
	if err != nil {
		return nil, err
	}
	return graph.Build(words, cfg)
}

func runGraphExport(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one vocabulary YAML file")
	}

	doc, err := buildGraphDocument(args[0], graphConfigFromFlags(cmd))
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	var data []byte
	switch format {
	case "yaml", "":
		data, err = yaml.Marshal(doc)
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling graph document: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %d nodes and %d links to %s\n",
		len(doc.Nodes), len(doc.Links), output)
	return nil
}
