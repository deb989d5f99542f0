/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/friendsincode/grimnir_tv/internal/clock"
)

// ErrPersistence wraps schedule document load/save failures. The in-memory
// channel is never touched by a failed load or save.
var ErrPersistence = errors.New("schedule document persistence failed")

const (
	dayKeyPrefix = "dia_"
	dateLayout   = "2006-01-02"
)

// documentEntry is the wire form of one program entry. A present "start"
// field is a pin; its absence means the entry chains after the previous one.
type documentEntry struct {
	ID       string `json:"id"`
	Duration int    `json:"duration"`
	Start    string `json:"start,omitempty"`
}

// Load reads a whole channel document. Unknown top-level keys are retained
// verbatim and written back by Save.
func Load(path string) (*Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrPersistence, path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrPersistence, path, err)
	}

	ch := &Channel{
		Days:  make(map[int][]Entry),
		extra: make(map[string][]byte),
	}

	for key, value := range raw {
		switch {
		case key == "timezone":
			if err := json.Unmarshal(value, &ch.Timezone); err != nil {
				return nil, fmt.Errorf("%w: timezone: %v", ErrPersistence, err)
			}
		case key == "cycle_start":
			var date string
			if err := json.Unmarshal(value, &date); err != nil {
				return nil, fmt.Errorf("%w: cycle_start: %v", ErrPersistence, err)
			}
			anchor, err := time.Parse(dateLayout, date)
			if err != nil {
				return nil, fmt.Errorf("%w: cycle_start %q: %v", ErrPersistence, date, err)
			}
			ch.CycleStart = anchor
		case strings.HasPrefix(key, dayKeyPrefix):
			day, err := parseDayKey(key)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
			}
			entries, err := decodeEntries(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrPersistence, key, err)
			}
			ch.Days[day] = entries
		default:
			ch.extra[key] = append([]byte(nil), value...)
		}
	}

	return ch, nil
}

// LoadOrInit loads an existing document or, when the file does not exist,
// returns a fresh empty channel with the given default timezone. Any other
// read failure is reported.
func LoadOrInit(path, defaultTimezone string) (*Channel, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(defaultTimezone), false, nil
	}
	ch, err := Load(path)
	if err != nil {
		return nil, false, err
	}
	return ch, true, nil
}

// Save writes the whole channel document, creating the parent directory when
// missing. Two-space indentation keeps the file hand-editable.
func (c *Channel) Save(path string) error {
	doc := make(map[string]any, len(c.Days)+len(c.extra)+2)
	for key, value := range c.extra {
		doc[key] = json.RawMessage(value)
	}
	doc["timezone"] = c.Timezone
	if !c.CycleStart.IsZero() {
		doc["cycle_start"] = c.CycleStart.Format(dateLayout)
	}
	for day, entries := range c.Days {
		doc[dayKeyPrefix+strconv.Itoa(day)] = encodeEntries(entries)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistence, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create %s: %v", ErrPersistence, dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, path, err)
	}
	return nil
}

// DayKey formats a cycle-day number as its document key ("dia_3").
func DayKey(day int) string {
	return dayKeyPrefix + strconv.Itoa(day)
}

func parseDayKey(key string) (int, error) {
	day, err := strconv.Atoi(strings.TrimPrefix(key, dayKeyPrefix))
	if err != nil || day < 1 {
		return 0, fmt.Errorf("bad day key %q", key)
	}
	return day, nil
}

func decodeEntries(value json.RawMessage) ([]Entry, error) {
	var wire []documentEntry
	if err := json.Unmarshal(value, &wire); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(wire))
	for i, w := range wire {
		entry := Entry{AssetID: w.ID, Duration: w.Duration}
		if w.Start != "" {
			sec, err := clock.Parse(w.Start)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %v", i, err)
			}
			entry.Pin = &sec
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func encodeEntries(entries []Entry) []documentEntry {
	wire := make([]documentEntry, 0, len(entries))
	for _, e := range entries {
		w := documentEntry{ID: e.AssetID, Duration: e.Duration}
		if e.Pin != nil {
			w.Start = clock.Format(*e.Pin)
		}
		wire = append(wire, w)
	}
	return wire
}
