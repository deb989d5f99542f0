/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package editor

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/friendsincode/grimnir_tv/internal/clock"
)

func (e *Editor) newTable(title string) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(e.out)
	tw.SetStyle(table.StyleLight)
	if title != "" {
		tw.SetTitle(title)
	}
	return tw
}

// printSummary renders one row per cycle day with its resolved totals.
func (e *Editor) printSummary() {
	e.printf("\nchannel: %s  timezone: %s  cycle: %d day(s)\n",
		e.path, e.channel.Timezone, e.channel.CycleLength())

	days := e.channel.DayNumbers()
	if len(days) == 0 {
		e.printf("no days scheduled yet, use 'd 1' to start one\n")
		return
	}

	tw := e.newTable("")
	tw.AppendHeader(table.Row{"Day", "Entries", "Total", "Ends", "Status"})
	for _, day := range days {
		tl := e.channel.Resolve(day, e.broadcast)

		ends := "-"
		if n := len(tl.Entries); n > 0 {
			ends = tl.Entries[n-1].End
		}
		status := "ok"
		if tl.Overrun {
			status = "OVERRUN"
		}
		tw.AppendRow(table.Row{
			day,
			len(tl.Entries),
			clock.FormatDuration(tl.TotalSeconds),
			ends,
			status,
		})
	}
	tw.Render()
}

// printCatalog renders the scanned asset listing; the leading index is what
// the add command takes.
func (e *Editor) printCatalog() {
	tw := e.newTable(fmt.Sprintf("catalog (%d assets)", e.catalog.Len()))
	tw.AppendHeader(table.Row{"#", "Asset", "Duration"})
	for i, asset := range e.catalog.Assets() {
		dur := clock.FormatDuration(asset.Duration)
		if !asset.Valid {
			dur = "unreadable"
		}
		tw.AppendRow(table.Row{i, asset.ID, dur})
	}
	tw.Render()
}

// printTimeline renders the resolved schedule for one day, flagging pin
// overlaps and end-of-day overrun.
func (e *Editor) printTimeline(day int) {
	if !e.channel.HasDay(day) {
		e.printf("\nday %d is new, add a program to create it\n", day)
		return
	}

	tl := e.channel.Resolve(day, e.broadcast)
	tw := e.newTable(fmt.Sprintf("day %d", day))
	tw.AppendHeader(table.Row{"Pos", "Start", "End", "Asset", "Duration", "Notes"})
	for i, entry := range tl.Entries {
		notes := ""
		if entry.Pinned {
			notes = "pinned"
		}
		if entry.Overlap {
			notes += " OVERLAP"
		}
		tw.AppendRow(table.Row{
			i,
			entry.Start,
			entry.End,
			entry.AssetID,
			clock.FormatDuration(entry.Duration),
			notes,
		})
	}
	tw.AppendFooter(table.Row{"", "", "", "total", clock.FormatDuration(tl.TotalSeconds), ""})
	tw.Render()

	if tl.Overrun {
		e.printf("warning: day %d runs past the %02d:00 cutoff\n", day, e.broadcast.CutoffHour)
	}
}
