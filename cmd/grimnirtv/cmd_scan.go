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
)

var (
	scanJSON  bool
	scanIndex string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the content store and report asset durations",
	Long: `Walk the configured content root, read each asset's HLS manifest, and
report the playable duration per asset. Assets whose manifest is missing or
unreadable are listed as invalid but do not abort the scan.

Examples:
  # Human-readable table
  grimnirtv scan

  # Machine-readable output
  grimnirtv scan --json

  # Also write the player's catalog index
  grimnirtv scan --index ./movies_hls/catalog.json
`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Emit the catalog as JSON instead of a table")
	scanCmd.Flags().StringVar(&scanIndex, "index", "", "Write a catalog index of valid assets to this path")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	cat, err := catalog.Scan(cfg.ContentRoot, logger)
	if err != nil {
		return fmt.Errorf("scan content store: %w", err)
	}

	if scanJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cat.Assets()); err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}
	} else {
		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"Asset", "Duration", "Status"})
		valid := 0
		for _, asset := range cat.Assets() {
			if asset.Valid {
				valid++
				tw.AppendRow(table.Row{asset.ID, clock.FormatDuration(asset.Duration), "ok"})
			} else {
				tw.AppendRow(table.Row{asset.ID, "-", asset.Error})
			}
		}
		tw.AppendFooter(table.Row{"total", "", fmt.Sprintf("%d valid / %d", valid, cat.Len())})
		tw.Render()
	}

	if scanIndex != "" {
		if err := cat.WriteIndex(scanIndex); err != nil {
			return fmt.Errorf("write catalog index: %w", err)
		}
		logger.Info().Str("path", scanIndex).Msg("catalog index written")
	}
	return nil
}
