/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package schedule holds the editable broadcast schedule of one virtual
// channel: a repeating cycle of numbered programming days, each an ordered
// list of program entries, plus the pure resolver that turns a day into a
// concrete timeline. All mutations are in-memory; the document is written
// back wholesale on an explicit save.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/friendsincode/grimnir_tv/internal/catalog"
	"github.com/friendsincode/grimnir_tv/internal/clock"
)

var (
	// ErrUnknownAsset means the asset id is not in the catalog or is not
	// schedulable (invalid manifest).
	ErrUnknownAsset = errors.New("asset not in catalog or not schedulable")

	// ErrUnknownDay means the referenced cycle day has no entry in the
	// schedule.
	ErrUnknownDay = errors.New("cycle day does not exist")

	// ErrEmptyDay means a removal was attempted on a day with no entries.
	ErrEmptyDay = errors.New("cycle day is empty")

	// ErrPositionOutOfRange means an entry position does not exist in the
	// referenced day.
	ErrPositionOutOfRange = errors.New("entry position out of range")

	// ErrInvalidDayNumber means a day number outside [1,..) was used.
	ErrInvalidDayNumber = errors.New("day number must be a positive integer")
)

// Entry is a single scheduled program. Duration is snapshotted from the
// catalog when the program is added, so later rescans never retroactively
// change an already-authored lineup. Pin is the variant tag: nil means the
// entry chains immediately after the previous one, non-nil pins the start to
// that wall-clock moment (seconds since midnight).
type Entry struct {
	AssetID  string
	Duration int
	Pin      *int
}

// Pinned reports whether the entry carries an operator-set start time.
func (e Entry) Pinned() bool {
	return e.Pin != nil
}

// clone returns a value copy; pins are reallocated so day copies never share
// pointers with their source.
func (e Entry) clone() Entry {
	out := e
	if e.Pin != nil {
		pin := *e.Pin
		out.Pin = &pin
	}
	return out
}

// Library is the read-only asset lookup consulted when adding programs. The
// catalog satisfies it.
type Library interface {
	Asset(id string) (catalog.Asset, bool)
}

// Channel is the full editable schedule for one virtual channel. It
// exclusively owns its days and, transitively, every entry; nothing is
// referenced from two places. Day numbers need not be contiguous.
type Channel struct {
	Timezone   string
	CycleStart time.Time
	Days       map[int][]Entry

	// extra preserves unknown top-level document keys across load/save.
	extra map[string][]byte
}

// New returns an empty channel with the given default timezone and the cycle
// anchored on today's date.
func New(timezone string) *Channel {
	now := time.Now()
	anchor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return &Channel{
		Timezone:   timezone,
		CycleStart: anchor,
		Days:       make(map[int][]Entry),
	}
}

// CycleLength is the highest day number present. Missing intermediate days
// count toward the length but hold no programming.
func (c *Channel) CycleLength() int {
	max := 0
	for day := range c.Days {
		if day > max {
			max = day
		}
	}
	return max
}

// DayNumbers returns the existing day numbers in ascending order.
func (c *Channel) DayNumbers() []int {
	days := make([]int, 0, len(c.Days))
	for day := range c.Days {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Day returns the entry list for a day; a missing day reads as empty.
func (c *Channel) Day(day int) []Entry {
	return c.Days[day]
}

// HasDay reports whether the day number exists, distinguishing a cleared day
// (present, zero entries) from a deleted one.
func (c *Channel) HasDay(day int) bool {
	_, ok := c.Days[day]
	return ok
}

// AddProgram appends a program to a cycle day, creating the day on first
// write. The asset must exist in lib and be schedulable; its duration is
// copied into the new entry. pin, when non-nil, is a start time in seconds
// since midnight.
func (c *Channel) AddProgram(lib Library, day int, assetID string, pin *int) error {
	if err := checkDayNumber(day); err != nil {
		return err
	}
	asset, ok := lib.Asset(assetID)
	if !ok || !asset.Valid {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, assetID)
	}

	entry := Entry{AssetID: asset.ID, Duration: asset.Duration}
	if pin != nil {
		p := *pin
		entry.Pin = &p
	}
	c.Days[day] = append(c.Days[day], entry)
	return nil
}

// RemoveLast drops the final entry of a day and returns it.
func (c *Channel) RemoveLast(day int) (Entry, error) {
	entries := c.Days[day]
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w: day %d", ErrEmptyDay, day)
	}
	last := entries[len(entries)-1]
	c.Days[day] = entries[:len(entries)-1]
	return last, nil
}

// RemoveAt drops the entry at position (0-based) without reordering the
// remainder.
func (c *Channel) RemoveAt(day, position int) (Entry, error) {
	entries := c.Days[day]
	if position < 0 || position >= len(entries) {
		return Entry{}, fmt.Errorf("%w: day %d position %d", ErrPositionOutOfRange, day, position)
	}
	removed := entries[position]
	c.Days[day] = append(entries[:position], entries[position+1:]...)
	return removed, nil
}

// SetPin anchors the entry at position to an explicit HH:MM start.
func (c *Channel) SetPin(day, position int, start string) error {
	entries := c.Days[day]
	if position < 0 || position >= len(entries) {
		return fmt.Errorf("%w: day %d position %d", ErrPositionOutOfRange, day, position)
	}
	sec, err := clock.Parse(start)
	if err != nil {
		return err
	}
	entries[position].Pin = &sec
	return nil
}

// ClearPin returns the entry at position to natural chaining.
func (c *Channel) ClearPin(day, position int) error {
	entries := c.Days[day]
	if position < 0 || position >= len(entries) {
		return fmt.Errorf("%w: day %d position %d", ErrPositionOutOfRange, day, position)
	}
	entries[position].Pin = nil
	return nil
}

// ClearDay empties a day's lineup. The day itself stays in the cycle (and
// keeps contributing to the cycle length); DeleteDay is the operation that
// removes it.
func (c *Channel) ClearDay(day int) error {
	if err := checkDayNumber(day); err != nil {
		return err
	}
	c.Days[day] = []Entry{}
	return nil
}

// DeleteDay removes the day number from the cycle entirely, leaving a gap.
func (c *Channel) DeleteDay(day int) {
	delete(c.Days, day)
}

// CopyDay deep-copies one day's lineup (pins included) over another,
// replacing whatever the destination held. Edits to the destination never
// reach the source.
func (c *Channel) CopyDay(from, to int) error {
	if err := checkDayNumber(to); err != nil {
		return err
	}
	src, ok := c.Days[from]
	if !ok {
		return fmt.Errorf("%w: day %d", ErrUnknownDay, from)
	}
	dst := make([]Entry, len(src))
	for i, e := range src {
		dst[i] = e.clone()
	}
	c.Days[to] = dst
	return nil
}

// CopyDayToMany applies CopyDay for each target. Targets equal to the source
// are skipped; the first failure aborts the remaining copies.
func (c *Channel) CopyDayToMany(from int, targets []int) error {
	for _, to := range targets {
		if to == from {
			continue
		}
		if err := c.CopyDay(from, to); err != nil {
			return err
		}
	}
	return nil
}

// Resolve computes the timeline of one day under the given broadcast-day
// window. A missing day resolves as empty.
func (c *Channel) Resolve(day int, bday clock.Day) Timeline {
	return Resolve(c.Days[day], bday)
}

func checkDayNumber(day int) error {
	if day < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDayNumber, day)
	}
	return nil
}
