/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/friendsincode/grimnir_tv/internal/catalog"
	"github.com/friendsincode/grimnir_tv/internal/clock"
	"github.com/friendsincode/grimnir_tv/internal/schedule"
)

var (
	resolveDay   int
	resolveJSON  bool
	resolveCheck bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <channel.json>",
	Short: "Resolve a channel document into wall-clock timetables",
	Long: `Load a channel document and print the resolved timetable for each cycle
day: chained start times, pin jumps, overlap warnings, and end-of-day overrun.

Examples:
  # Every day in the cycle
  grimnirtv resolve channels/movies.json

  # A single day, machine readable
  grimnirtv resolve channels/movies.json --day 3 --json

  # Also report entries whose asset is gone from the content store
  grimnirtv resolve channels/movies.json --check
`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().IntVar(&resolveDay, "day", 0, "Resolve only this cycle day (default: all)")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Emit resolved timelines as JSON")
	resolveCmd.Flags().BoolVar(&resolveCheck, "check", false, "Cross-check entries against the content store")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	ch, err := schedule.Load(args[0])
	if err != nil {
		return fmt.Errorf("load channel: %w", err)
	}

	bday := cfg.BroadcastDay()

	var cat *catalog.Catalog
	if resolveCheck {
		if cat, err = catalog.Scan(cfg.ContentRoot, logger); err != nil {
			return fmt.Errorf("scan content store: %w", err)
		}
	}

	days := ch.DayNumbers()
	if resolveDay > 0 {
		days = []int{resolveDay}
	}

	if resolveJSON {
		payload := make(map[string]schedule.Timeline, len(days))
		for _, day := range days {
			payload[schedule.DayKey(day)] = ch.Resolve(day, bday)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	for _, day := range days {
		tl := ch.Resolve(day, bday)

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.SetStyle(table.StyleLight)
		tw.SetTitle(fmt.Sprintf("day %d", day))
		tw.AppendHeader(table.Row{"Start", "End", "Asset", "Duration", "Notes"})
		for _, entry := range tl.Entries {
			notes := ""
			if entry.Pinned {
				notes = "pinned"
			}
			if entry.Overlap {
				notes += " OVERLAP"
			}
			tw.AppendRow(table.Row{entry.Start, entry.End, entry.AssetID, clock.FormatDuration(entry.Duration), notes})
		}
		tw.AppendFooter(table.Row{"", "", "total", clock.FormatDuration(tl.TotalSeconds), ""})
		tw.Render()

		if tl.Overrun {
			fmt.Printf("warning: day %d runs past the %02d:00 cutoff\n", day, bday.CutoffHour)
		}
		if cat != nil {
			for _, entry := range ch.Day(day) {
				if _, ok := cat.Asset(entry.AssetID); !ok {
					fmt.Printf("warning: day %d entry %q is missing from the content store\n", day, entry.AssetID)
				}
			}
		}
		fmt.Println()
	}
	return nil
}
