// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docshift/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or export the conversion journal",
	Long: `History lists recent conversion attempts recorded in the journal
database. Recording is off by default; enable it with history.enabled in the
config file or DOCSHIFT_HISTORY_ENABLED=true.

Only metadata is kept: file names, direction, outcome, output size and
duration. Document contents are never stored.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.History.Path); err != nil {
		if !cfg.History.Enabled {
			return fmt.Errorf("history is disabled: set history.enabled to record conversions")
		}
		fmt.Println("No conversions recorded.")
		return nil
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	switch export, _ := cmd.Flags().GetString("export"); export {
	case "":
	case "yaml":
		return store.ExportYAML(ctx, os.Stdout)
	case "json":
		return store.ExportJSON(ctx, os.Stdout)
	default:
		return fmt.Errorf("unknown export format %q: use yaml or json", export)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(ctx, limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	return formatHistory(entries)
}

func formatHistory(entries []history.Entry) error {
	if len(entries) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-16s  %-11s  %-9s  %-30s  %-9s  %s\n",
		"When", "Mode", "Status", "Source", "Size", "Detail")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, e := range entries {
		source := e.Source
		if len(source) > 30 {
			source = source[:27] + "..."
		}
		size := "-"
		if e.Bytes > 0 {
			size = humanize.Bytes(uint64(e.Bytes))
		}
		detail := e.Output
		if e.FailureMessage != "" {
			detail = e.FailureMessage
		}
		fmt.Fprintf(os.Stdout, "%-16s  %-11s  %-9s  %-30s  %-9s  %s\n",
			e.StartedAt.Local().Format("2006-01-02 15:04"), e.Direction, e.Status, source, size, detail)
	}

	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(entries))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to show")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")
	historyCmd.Flags().String("export", "", "export the whole journal: yaml or json")

	rootCmd.AddCommand(historyCmd)
}
