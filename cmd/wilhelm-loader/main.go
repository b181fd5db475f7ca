// Copyright Wilhelm Language Services, 2026. All rights reserved.

// Package main is the entry point for the wilhelm-loader CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qubitpi/wilhelm-loader/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// resolveCredential resolves one connection setting with flag value taking
// precedence over the environment, then over .secrets/ files.
func resolveCredential(explicit, envKey, secretKey string) string {
	return secrets.Resolve(loadedSecrets, explicit, envKey, secretKey)
}

// rootCmd is the base command for the wilhelm-loader CLI.
var rootCmd = &cobra.Command{
	Use:   "wilhelm-loader",
	Short: "Vocabulary ETL for the Wilhelm graph databases",
	Long: `wilhelm-loader processes language vocabulary files and loads them into
graph databases. It parses wilhelm-vocabulary YAML, converts Quizlet study-set
exports, scrapes Wiktionary conjugation tables, transforms vocabulary into
graph nodes and links, and writes the result to Neo4j or ArangoDB.

Each pipeline stage is a subcommand: vocabulary, quizlet, wiktionary, graph,
load, and index.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; missing files are not an error.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./wilhelm-loader.yaml or ~/.config/wilhelm-loader/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wilhelm-loader")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wilhelm-loader"))
		}
	}

	viper.SetEnvPrefix("WILHELM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
