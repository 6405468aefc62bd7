package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of docshift",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docshift %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
