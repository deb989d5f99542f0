/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/friendsincode/grimnir_tv/internal/catalog"
	"github.com/friendsincode/grimnir_tv/internal/clock"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <asset-dir>",
	Short: "Probe a single asset directory for its playable duration",
	Long: `Read the stream manifest inside one asset directory and print the summed
segment duration. Useful when checking a freshly packaged asset before the
next full scan.

Example:
  grimnirtv inspect ./movies_hls/big_buck_bunny
`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	seconds, err := catalog.Probe(args[0])
	if err != nil {
		return fmt.Errorf("probe asset: %w", err)
	}

	fmt.Printf("asset:    %s\n", filepath.Base(filepath.Clean(args[0])))
	fmt.Printf("duration: %s (%d seconds)\n", clock.FormatDuration(seconds), seconds)
	return nil
}
