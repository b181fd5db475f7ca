// Copyright Wilhelm Language Services, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qubitpi/wilhelm-loader/internal/arango"
	"github.com/qubitpi/wilhelm-loader/internal/neo4j"
	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

const loadTimeout = 10 * time.Minute

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Write a vocabulary file into a graph database",
	Long: `Load transforms a vocabulary YAML file into graph nodes and links and
writes them to the target database. Writes are idempotent: reloading the same
vocabulary merges into the existing graph instead of duplicating it.

Connection settings come from flags, environment variables (NEO4J_URI,
NEO4J_USERNAME, NEO4J_PASSWORD, NEO4J_DATABASE / ARANGO_ENDPOINT,
ARANGO_USERNAME, ARANGO_PASSWORD, ARANGO_DATABASE), or files in .secrets/
(e.g. .secrets/neo4j-password).`,
}

// --- neo4j subcommand ---

var loadNeo4jCmd = &cobra.Command{
	Use:   "neo4j [vocabulary-file]",
	Short: "Load vocabulary into a Neo4j database",
	RunE:  runLoadNeo4j,
}

func runLoadNeo4j(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one vocabulary YAML file")
	}

	doc, err := buildGraphDocument(args[0], graphConfigFromFlags(cmd))
	if err != nil {
		return err
	}

	cfg := neo4jConfigFromFlags(cmd)
	logger, err := newLoadLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	loader, err := neo4j.NewLoader(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer loader.Close(ctx)

	summary, err := loader.Load(ctx, doc)
	if err != nil {
		return err
	}
	return reportSummary(summary)
}

// --- arango subcommand ---

var loadArangoCmd = &cobra.Command{
	Use:   "arango [vocabulary-file]",
	Short: "Load vocabulary into an ArangoDB database",
	RunE:  runLoadArango,
}

func runLoadArango(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one vocabulary YAML file")
	}

	doc, err := buildGraphDocument(args[0], graphConfigFromFlags(cmd))
	if err != nil {
		return err
	}

	cfg := arangoConfigFromFlags(cmd)
	logger, err := newLoadLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	loader, err := arango.NewLoader(ctx, cfg, logger)
	if err != nil {
		return err
	}

	summary, err := loader.Load(ctx, doc)
	if err != nil {
		return err
	}
	return reportSummary(summary)
}

// --- shared helpers ---

func neo4jConfigFromFlags(cmd *cobra.Command) types.Neo4jConfig {
	uri, _ := cmd.Flags().GetString("uri")
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	database, _ := cmd.Flags().GetString("database")

	return types.Neo4jConfig{
		URI:      resolveCredential(uri, "NEO4J_URI", "neo4j-uri"),
		Username: resolveCredential(username, "NEO4J_USERNAME", "neo4j-username"),
		Password: resolveCredential(password, "NEO4J_PASSWORD", "neo4j-password"),
		Database: resolveCredential(database, "NEO4J_DATABASE", "neo4j-database"),
	}
}

func arangoConfigFromFlags(cmd *cobra.Command) types.ArangoConfig {
	endpoint, _ := cmd.Flags().GetString("endpoint")
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	database, _ := cmd.Flags().GetString("database")

	cfg := types.ArangoConfig{
		Endpoint: resolveCredential(endpoint, "ARANGO_ENDPOINT", "arango-endpoint"),
		Username: resolveCredential(username, "ARANGO_USERNAME", "arango-username"),
		Password: resolveCredential(password, "ARANGO_PASSWORD", "arango-password"),
		Database: resolveCredential(database, "ARANGO_DATABASE", "arango-database"),
	}
	if cfg.Database == "" {
		cfg.Database = "wilhelm"
	}
	return cfg
}

func newLoadLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func reportSummary(summary types.LoadSummary) error {
	fmt.Fprintf(os.Stdout, "Loaded %d nodes and %d links (run %s)\n",
		summary.Nodes, summary.Links, summary.RunID)
	if summary.HasFailures() {
		return fmt.Errorf("%d write(s) failed", summary.Failed)
	}
	return nil
}

func init() {
	// Transformation flags shared by both targets.
	loadCmd.PersistentFlags().String("language", string(types.German), "language tag for term nodes")
	loadCmd.PersistentFlags().String("label-key", "name", "node property used as display label")
	loadCmd.PersistentFlags().Bool("infer-links", true, "compute declension-sharing and term-relation links")
	loadCmd.PersistentFlags().String("username", "", "database username")
	loadCmd.PersistentFlags().String("password", "", "database password")
	loadCmd.PersistentFlags().String("database", "", "database name")
	loadCmd.PersistentFlags().Bool("verbose", false, "verbose loader logging")

	loadNeo4jCmd.Flags().String("uri", "", "Neo4j endpoint (e.g. neo4j://localhost:7687)")
	loadArangoCmd.Flags().String("endpoint", "", "ArangoDB endpoint (e.g. http://localhost:8529)")

	loadCmd.AddCommand(loadNeo4jCmd)
	loadCmd.AddCommand(loadArangoCmd)
	rootCmd.AddCommand(loadCmd)
}
