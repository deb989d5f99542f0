/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package catalog discovers playable assets in the content store. Each
// immediate subdirectory holding a stream manifest is one asset; its playable
// duration is the sum of the manifest's declared segment lengths. The catalog
// is a read-only lookup table rebuilt from disk on every scan, never
// persisted.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
)

// ManifestName is the stream manifest expected inside every asset directory.
const ManifestName = "stream.m3u8"

// Asset is one discovered content-store entry. Invalid assets (unreadable or
// malformed manifest) are listed for display but are not schedulable; Error
// carries the reason.
type Asset struct {
	ID       string `json:"id"`
	Duration int    `json:"duration"`
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
}

// Catalog is the result of one content-store scan, ordered lexicographically
// by asset id so interactive indexes stay stable between runs.
type Catalog struct {
	assets []Asset
	byID   map[string]Asset
}

// Scan enumerates the immediate subdirectories of root and probes each one
// for a stream manifest. A directory without a manifest is not an asset. One
// broken asset never aborts the scan; it is reported with Valid=false.
// Scan fails only when the content store itself cannot be read.
func Scan(root string, logger zerolog.Logger) (*Catalog, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read content store %s: %w", root, err)
	}

	cat := &Catalog{byID: make(map[string]Asset)}
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		manifest := filepath.Join(root, de.Name(), ManifestName)
		if _, err := os.Stat(manifest); err != nil {
			continue
		}

		asset := Asset{ID: de.Name()}
		duration, err := manifestDuration(manifest)
		if err != nil {
			asset.Error = err.Error()
			logger.Warn().Str("asset", asset.ID).Err(err).Msg("asset manifest unreadable, listing as invalid")
		} else {
			asset.Duration = duration
			asset.Valid = duration > 0
		}
		cat.assets = append(cat.assets, asset)
		cat.byID[asset.ID] = asset
	}

	sort.Slice(cat.assets, func(i, j int) bool {
		return cat.assets[i].ID < cat.assets[j].ID
	})

	logger.Debug().Int("assets", len(cat.assets)).Str("root", root).Msg("content store scanned")
	return cat, nil
}

// Assets returns all discovered assets in id order.
func (c *Catalog) Assets() []Asset {
	return c.assets
}

// Asset looks up one asset by id.
func (c *Catalog) Asset(id string) (Asset, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Len reports the number of discovered assets, valid or not.
func (c *Catalog) Len() int {
	return len(c.assets)
}

// WriteIndex writes a catalog.json style index ([{"id": ...}, ...]) listing
// the valid assets, which the web player uses to enumerate the library.
func (c *Catalog) WriteIndex(path string) error {
	type indexEntry struct {
		ID string `json:"id"`
	}
	entries := make([]indexEntry, 0, len(c.assets))
	for _, a := range c.assets {
		if !a.Valid {
			continue
		}
		entries = append(entries, indexEntry{ID: a.ID})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog index: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write catalog index: %w", err)
	}
	return nil
}
