/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package clock

import (
	"errors"
	"fmt"
)

// SecondsPerDay is one calendar day in seconds.
const SecondsPerDay = 24 * 60 * 60

// ErrInvalidTime reports a wall-clock value that is not a valid HH:MM string.
var ErrInvalidTime = errors.New("invalid time, expected HH:MM")

// Parse converts a 24-hour "HH:MM" wall-clock value into seconds since
// midnight. The format is strict: exactly five characters with a colon at
// index 2, hour in [0,23] and minute in [0,59].
func Parse(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	hour, ok := parseTwoDigits(s[0:2])
	if !ok || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	minute, ok := parseTwoDigits(s[3:5])
	if !ok || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return hour*3600 + minute*60, nil
}

// Format renders seconds-since-midnight as "HH:MM". Any input, including
// negative values and values past a full day, is normalized into [0,86399].
// Day rollover is therefore lost here; callers that care about which
// calendar day a value belongs to track that on the extended clock.
func Format(sec int) string {
	sec %= SecondsPerDay
	if sec < 0 {
		sec += SecondsPerDay
	}
	return fmt.Sprintf("%02d:%02d", sec/3600, (sec%3600)/60)
}

// FormatDuration renders a duration in seconds as HH:MM:SS, or MM:SS when
// under an hour.
func FormatDuration(sec int) string {
	if sec < 0 {
		sec = 0
	}
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func parseTwoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
