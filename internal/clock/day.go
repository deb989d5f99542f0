/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package clock

import "fmt"

// Default broadcast-day boundaries. An on-air day opens at 07:00 and is
// considered over at 03:00 the next calendar morning (27:00 on the
// extended clock).
const (
	DefaultStartHour  = 7
	DefaultCutoffHour = 3
)

// Day describes the broadcast-day window. The window opens at StartHour and
// closes at CutoffHour the next calendar morning, so a moment that reads
// numerically below the opening hour belongs to the tail of the previous
// broadcast day.
type Day struct {
	StartHour  int
	CutoffHour int
}

// DefaultDay returns the standard 07:00-27:00 broadcast day.
func DefaultDay() Day {
	return Day{StartHour: DefaultStartHour, CutoffHour: DefaultCutoffHour}
}

// Validate rejects boundary hours outside a sane range. The cutoff must be
// an early-morning hour strictly before the opening hour.
func (d Day) Validate() error {
	if d.StartHour < 0 || d.StartHour > 23 {
		return fmt.Errorf("broadcast day start hour %d out of range [0,23]", d.StartHour)
	}
	if d.CutoffHour < 0 || d.CutoffHour >= d.StartHour {
		return fmt.Errorf("broadcast day cutoff hour %d must be in [0,%d)", d.CutoffHour, d.StartHour)
	}
	return nil
}

// StartSeconds returns the opening moment as seconds since midnight.
func (d Day) StartSeconds() int {
	return d.StartHour * 3600
}

// CutoffSeconds returns the closing moment on the extended clock
// (e.g. cutoff hour 3 yields 27:00 -> 97200).
func (d Day) CutoffSeconds() int {
	return d.CutoffHour*3600 + SecondsPerDay
}

// Extended projects a seconds-since-midnight value onto the extended clock:
// anything numerically before the opening hour rolled into the next calendar
// day and gets a full day added before comparison.
func (d Day) Extended(sec int) int {
	if sec < d.StartSeconds() {
		return sec + SecondsPerDay
	}
	return sec
}
