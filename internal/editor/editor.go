/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package editor is the interactive schedule authoring loop. It is a thin
// adapter: every command maps onto the channel mutation API or the resolver,
// and all I/O goes through the injected reader/writer so sessions are fully
// scriptable in tests.
package editor

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_tv/internal/catalog"
	"github.com/friendsincode/grimnir_tv/internal/clock"
	"github.com/friendsincode/grimnir_tv/internal/schedule"
)

// Options wires an editor session.
type Options struct {
	Input       io.Reader
	Output      io.Writer
	Catalog     *catalog.Catalog
	Channel     *schedule.Channel
	Path        string // channel document path for save
	ContentRoot string // content store path for catalog refresh
	Broadcast   clock.Day
	Logger      zerolog.Logger
}

// Editor runs one interactive authoring session over a single channel.
type Editor struct {
	in        *bufio.Scanner
	out       io.Writer
	catalog   *catalog.Catalog
	channel   *schedule.Channel
	path      string
	root      string
	broadcast clock.Day
	logger    zerolog.Logger
	dirty     bool
}

// New builds an editor session.
func New(opts Options) *Editor {
	return &Editor{
		in:        bufio.NewScanner(opts.Input),
		out:       opts.Output,
		catalog:   opts.Catalog,
		channel:   opts.Channel,
		path:      opts.Path,
		root:      opts.ContentRoot,
		broadcast: opts.Broadcast,
		logger:    opts.Logger.With().Str("component", "editor").Logger(),
	}
}

// Run drives the main menu until the operator quits. It returns nil on a
// clean quit; unsaved edits are deliberately discarded, matching the
// explicit-save workflow.
func (e *Editor) Run() error {
	for {
		e.printSummary()
		e.printf("\ncommands: d <n>=edit day | c=copy day | t=timezone | r=refresh catalog | s=save | q=quit\n")

		line, ok := e.readLine("> ")
		if !ok {
			return nil
		}
		cmd, arg := splitCommand(line)

		switch cmd {
		case "q":
			if e.dirty {
				e.printf("quitting without saving.\n")
			}
			return nil
		case "s":
			if err := e.channel.Save(e.path); err != nil {
				e.printf("save failed: %v\n", err)
				continue
			}
			e.dirty = false
			e.printf("saved: %s\n", e.path)
		case "r":
			cat, err := catalog.Scan(e.root, e.logger)
			if err != nil {
				e.printf("refresh failed: %v\n", err)
				continue
			}
			e.catalog = cat
			e.printf("refresh: %d assets\n", cat.Len())
		case "t":
			e.editTimezone()
		case "c":
			e.copyDay()
		case "d":
			day, err := strconv.Atoi(arg)
			if err != nil || day < 1 {
				e.printf("usage: d <positive day number>\n")
				continue
			}
			e.editDay(day)
		case "":
			// blank line, reprint menu
		default:
			e.printf("unknown command %q\n", cmd)
		}
	}
}

// editDay is the per-day loop.
func (e *Editor) editDay(day int) {
	for {
		e.printCatalog()
		e.printTimeline(day)
		e.printf("\nday %d commands: a <idx> [HH:MM]=add | u=remove last | rm <pos> | pin <pos> HH:MM | unpin <pos> | c=clear | del=delete day | b=back\n", day)

		line, ok := e.readLine("> ")
		if !ok {
			return
		}
		cmd, arg := splitCommand(line)

		switch cmd {
		case "b":
			return
		case "a":
			e.addProgram(day, arg)
		case "u":
			removed, err := e.channel.RemoveLast(day)
			if err != nil {
				e.printf("%v\n", err)
				continue
			}
			e.dirty = true
			e.printf("removed: %s\n", removed.AssetID)
		case "rm":
			pos, err := strconv.Atoi(arg)
			if err != nil {
				e.printf("usage: rm <position>\n")
				continue
			}
			removed, err := e.channel.RemoveAt(day, pos)
			if err != nil {
				e.printf("%v\n", err)
				continue
			}
			e.dirty = true
			e.printf("removed: %s\n", removed.AssetID)
		case "pin":
			fields := strings.Fields(arg)
			if len(fields) != 2 {
				e.printf("usage: pin <position> HH:MM\n")
				continue
			}
			pos, err := strconv.Atoi(fields[0])
			if err != nil {
				e.printf("usage: pin <position> HH:MM\n")
				continue
			}
			if err := e.channel.SetPin(day, pos, fields[1]); err != nil {
				e.printf("%v\n", err)
				continue
			}
			e.dirty = true
		case "unpin":
			pos, err := strconv.Atoi(arg)
			if err != nil {
				e.printf("usage: unpin <position>\n")
				continue
			}
			if err := e.channel.ClearPin(day, pos); err != nil {
				e.printf("%v\n", err)
				continue
			}
			e.dirty = true
		case "c":
			if err := e.channel.ClearDay(day); err != nil {
				e.printf("%v\n", err)
				continue
			}
			e.dirty = true
			e.printf("day %d cleared\n", day)
		case "del":
			e.channel.DeleteDay(day)
			e.dirty = true
			e.printf("day %d deleted\n", day)
			return
		case "":
		default:
			e.printf("unknown command %q\n", cmd)
		}
	}
}

// addProgram handles "a <idx> [HH:MM]": the index is the catalog listing
// position, the optional time pins the new entry.
func (e *Editor) addProgram(day int, arg string) {
	fields := strings.Fields(arg)
	if len(fields) < 1 || len(fields) > 2 {
		e.printf("usage: a <catalog index> [HH:MM]\n")
		return
	}
	idx, err := strconv.Atoi(fields[0])
	if err != nil || idx < 0 || idx >= e.catalog.Len() {
		e.printf("catalog index out of range\n")
		return
	}
	asset := e.catalog.Assets()[idx]

	var pin *int
	if len(fields) == 2 {
		sec, err := clock.Parse(fields[1])
		if err != nil {
			e.printf("%v\n", err)
			return
		}
		pin = &sec
	}

	if err := e.channel.AddProgram(e.catalog, day, asset.ID, pin); err != nil {
		e.printf("%v\n", err)
		return
	}
	e.dirty = true
	e.printf("added: %s\n", asset.ID)
}

// copyDay prompts for a source day and a target list ("1,2,3" or "all").
func (e *Editor) copyDay() {
	src, ok := e.promptInt("copy FROM day: ")
	if !ok {
		return
	}
	if !e.channel.HasDay(src) {
		e.printf("day %d does not exist\n", src)
		return
	}

	line, ok := e.readLine("copy TO days (e.g. 2,3,4 or 'all'): ")
	if !ok {
		return
	}

	var targets []int
	if strings.EqualFold(strings.TrimSpace(line), "all") {
		targets = e.channel.DayNumbers()
	} else {
		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			day, err := strconv.Atoi(part)
			if err != nil || day < 1 {
				e.printf("bad day %q\n", part)
				return
			}
			targets = append(targets, day)
		}
	}
	if len(targets) == 0 {
		e.printf("no targets\n")
		return
	}

	if err := e.channel.CopyDayToMany(src, targets); err != nil {
		e.printf("%v\n", err)
		return
	}
	e.dirty = true
	sort.Ints(targets)
	e.printf("copied day %d to %v\n", src, targets)
}

func (e *Editor) editTimezone() {
	line, ok := e.readLine(fmt.Sprintf("timezone [%s]: ", e.channel.Timezone))
	if !ok {
		return
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	e.channel.Timezone = line
	e.dirty = true
	e.printf("timezone: %s\n", line)
}

func (e *Editor) promptInt(prompt string) (int, bool) {
	line, ok := e.readLine(prompt)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		e.printf("expected a number\n")
		return 0, false
	}
	return n, true
}

func (e *Editor) readLine(prompt string) (string, bool) {
	e.printf("%s", prompt)
	if !e.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(e.in.Text()), true
}

func (e *Editor) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

func splitCommand(line string) (string, string) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 2)
	cmd := strings.ToLower(fields[0])
	if len(fields) == 1 {
		return cmd, ""
	}
	return cmd, strings.TrimSpace(fields[1])
}
