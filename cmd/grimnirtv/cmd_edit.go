/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/friendsincode/grimnir_tv/internal/catalog"
	"github.com/friendsincode/grimnir_tv/internal/editor"
	"github.com/friendsincode/grimnir_tv/internal/schedule"
)

var editCmd = &cobra.Command{
	Use:   "edit <channel.json>",
	Short: "Edit a channel schedule interactively",
	Long: `Open the interactive schedule editor for one channel document. The
document is created on first save if it does not exist yet. Nothing is
written to disk until the save command is used.
`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	ch, existed, err := schedule.LoadOrInit(args[0], cfg.DefaultTimezone)
	if err != nil {
		return fmt.Errorf("load channel: %w", err)
	}
	if !existed {
		logger.Info().Str("path", args[0]).Msg("starting a new channel document")
	}

	cat, err := catalog.Scan(cfg.ContentRoot, logger)
	if err != nil {
		return fmt.Errorf("scan content store: %w", err)
	}

	return editor.New(editor.Options{
		Input:       os.Stdin,
		Output:      os.Stdout,
		Catalog:     cat,
		Channel:     ch,
		Path:        args[0],
		ContentRoot: cfg.ContentRoot,
		Broadcast:   cfg.BroadcastDay(),
		Logger:      logger,
	}).Run()
}
