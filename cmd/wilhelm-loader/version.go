// Copyright Wilhelm Language Services, 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of wilhelm-loader",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wilhelm-loader %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
