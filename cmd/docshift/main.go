// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docshift CLI. docshift converts
// PDF files to Word-compatible .doc files and Word documents to PDF on the
// local machine; no document leaves the process.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docshift CLI.
var rootCmd = &cobra.Command{
	Use:   "docshift",
	Short: "Convert between PDF and Word documents",
	Long: `docshift extracts the plain text of a document and lays it out again in
the other format. PDF pages become a single Word-compatible .doc file; Word
documents (.docx, or the .doc files docshift writes) are reflowed onto A4
PDF pages.

Only text survives a conversion. Fonts, images, tables and exact layout are
not carried over.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		return loadEnvFile(envFile)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docshift.yaml or ~/.config/docshift/docshift.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "file of KEY=value lines loaded into the environment before running")
}

// loadEnvFile loads DOCSHIFT_* overrides from path. A missing file is not
// an error; variables already set in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// addConfigPaths makes v look for docshift.yaml in the working directory,
// then under home/.config/docshift when home is known.
func addConfigPaths(v *viper.Viper, home string) {
	v.SetConfigName("docshift")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home != "" {
		v.AddConfigPath(filepath.Join(home, ".config", "docshift"))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		addConfigPaths(viper.GetViper(), home)
	}

	setDefaults(viper.GetViper())
	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
