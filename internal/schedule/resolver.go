/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import "github.com/friendsincode/grimnir_tv/internal/clock"

// ResolvedEntry is one program with its effective on-air window computed.
// Start/End are day-relative HH:MM strings; StartSeconds/EndSeconds carry the
// raw cursor values before midnight normalization so callers can reason about
// rollover. Overlap marks a pin that jumped the clock backwards past the
// previous entry's computed end — an editorial choice, surfaced but never
// rejected.
type ResolvedEntry struct {
	AssetID      string `json:"id"`
	Duration     int    `json:"duration"`
	Start        string `json:"start"`
	End          string `json:"end"`
	StartSeconds int    `json:"start_seconds"`
	EndSeconds   int    `json:"end_seconds"`
	Pinned       bool   `json:"pinned"`
	Overlap      bool   `json:"overlap,omitempty"`
}

// Timeline is the fully resolved lineup of one cycle day: the contract the
// presentation layer consumes.
type Timeline struct {
	Entries      []ResolvedEntry `json:"entries"`
	TotalSeconds int             `json:"total_seconds"`
	Overrun      bool            `json:"overrun"`
}

// Resolve walks the entry sequence once, carrying a running clock cursor.
// The cursor opens at the broadcast-day start; a pinned entry jumps it to the
// pinned moment (forward or backward — pins are authoritative and not
// validated against monotonicity), an unpinned entry starts wherever the
// previous one ended. The day is flagged overrun when the lineup, projected
// onto the extended clock, runs past the configured cutoff.
func Resolve(entries []Entry, bday clock.Day) Timeline {
	timeline := Timeline{Entries: make([]ResolvedEntry, 0, len(entries))}

	cursor := bday.StartSeconds()
	for _, entry := range entries {
		resolved := ResolvedEntry{
			AssetID:  entry.AssetID,
			Duration: entry.Duration,
			Pinned:   entry.Pinned(),
		}
		if entry.Pin != nil {
			pin := *entry.Pin
			if len(timeline.Entries) > 0 && bday.Extended(pin) < bday.Extended(cursor%clock.SecondsPerDay) {
				resolved.Overlap = true
			}
			cursor = pin
		}

		resolved.StartSeconds = cursor
		resolved.Start = clock.Format(cursor)
		cursor += entry.Duration
		resolved.EndSeconds = cursor
		resolved.End = clock.Format(cursor)

		timeline.Entries = append(timeline.Entries, resolved)
		timeline.TotalSeconds += entry.Duration
	}

	if len(timeline.Entries) > 0 {
		last := timeline.Entries[len(timeline.Entries)-1]
		endExtended := bday.Extended(last.EndSeconds % clock.SecondsPerDay)
		timeline.Overrun = endExtended > bday.CutoffSeconds()
	}

	return timeline
}
