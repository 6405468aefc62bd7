// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docshift/internal/convert"
	"github.com/pdiddy/docshift/internal/format"
	"github.com/pdiddy/docshift/internal/history"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert PDF files to .doc or Word documents to PDF",
	Long: `Convert reads each file, extracts its text and writes the converted
document to the output directory. The mode picks the direction:

  pdf-to-word  PDF -> Word-compatible .doc (all pages in one document)
  word-to-pdf  .docx or HTML .doc -> PDF, text reflowed onto A4 pages

Files whose output already exists are skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	d, err := format.ParseDirection(cfg.Conversion.Mode)
	if err != nil {
		return err
	}

	opts := convert.Options{
		Direction: d,
		OutDir:    cfg.Conversion.OutDir,
		Force:     cfg.Conversion.Force,
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Recorder = store
	}

	o := convert.NewDefault(cfg.PDF)
	result := convert.ConvertPaths(cmd.Context(), o, args, opts, os.Stdout)

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := convert.WriteReport(reportPath, convert.NewReport(result, opts)); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Report written to", reportPath)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	convertCmd.Flags().String("mode", "pdf-to-word", "conversion direction: pdf-to-word or word-to-pdf")
	convertCmd.Flags().String("out-dir", ".", "directory for converted files")
	convertCmd.Flags().Bool("force", false, "overwrite existing outputs")
	convertCmd.Flags().String("report", "", "write a batch report to this file (.yaml or .json)")

	_ = viper.BindPFlag("conversion.mode", convertCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("conversion.out_dir", convertCmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag("conversion.force", convertCmd.Flags().Lookup("force"))

	rootCmd.AddCommand(convertCmd)
}
