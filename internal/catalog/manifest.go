/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package catalog

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// extinfTag marks a segment-duration line in an HLS media playlist:
//
//	#EXTINF:6.006,
//
// The decimal before the comma is the segment play length in seconds.
const extinfTag = "#EXTINF:"

// Probe reads the manifest inside a single asset directory and returns its
// playable duration in seconds.
func Probe(dir string) (int, error) {
	return manifestDuration(filepath.Join(dir, ManifestName))
}

// manifestDuration sums the declared segment durations of a stream manifest,
// rounded to the nearest whole second. Lines whose duration does not parse
// are skipped rather than failing the whole manifest.
func manifestDuration(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	var total float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, extinfTag) {
			continue
		}
		value := line[len(extinfTag):]
		if idx := strings.IndexByte(value, ','); idx >= 0 {
			value = value[:idx]
		}
		seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}
		total += seconds
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read manifest: %w", err)
	}

	return int(math.Round(total)), nil
}
