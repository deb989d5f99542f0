/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_tv/internal/catalog"
	"github.com/friendsincode/grimnir_tv/internal/config"
)

const testManifest = `#EXTM3U
#EXTINF:6.0,
seg_000.m4s
#EXTINF:6.0,
seg_001.m4s
#EXT-X-ENDLIST
`

const testChannel = `{
  "timezone": "America/Sao_Paulo",
  "cycle_start": "2026-03-02",
  "dia_1": [
    {"id": "feature", "duration": 3600},
    {"id": "news", "duration": 1800, "start": "10:00"}
  ]
}
`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	contentRoot := t.TempDir()
	assetDir := filepath.Join(contentRoot, "feature")
	if err := os.MkdirAll(assetDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(assetDir, catalog.ManifestName), []byte(testManifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	channelsDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(channelsDir, "movies.json"), []byte(testChannel), 0o644); err != nil {
		t.Fatalf("write channel: %v", err)
	}

	cfg := &config.Config{
		Environment:         "development",
		HTTPBind:            "127.0.0.1",
		HTTPPort:            0,
		ContentRoot:         contentRoot,
		ChannelsDir:         channelsDir,
		DefaultTimezone:     "America/Sao_Paulo",
		BroadcastStartHour:  7,
		BroadcastCutoffHour: 3,
		AuthToken:           "tv-token",
		JWTSigningKey:       "test-key",
		MetricsEnabled:      true,
	}

	s, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestAnonymousRejected(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/time", "/feature/stream.m3u8", "/api/channels/movies/guide"} {
		if rec := get(t, s, path); rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s = %d, want 401", path, rec.Code)
		}
	}
}

func TestMetricsOpen(t *testing.T) {
	s := newTestServer(t)
	if rec := get(t, s, "/metrics"); rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d, want 200 without credentials", rec.Code)
	}
}

func TestTimeEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/time?auth=tv-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Timezone string  `json:"timezone"`
		ISO      string  `json:"iso"`
		Weekday  int     `json:"weekday"`
		Hour     float64 `json:"hour"`
	}
	decode(t, rec, &payload)
	if payload.Timezone != "America/Sao_Paulo" {
		t.Errorf("timezone = %q", payload.Timezone)
	}
	if payload.ISO == "" {
		t.Error("iso missing")
	}
	if payload.Weekday < 0 || payload.Weekday > 6 {
		t.Errorf("weekday = %d", payload.Weekday)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/catalog?auth=tv-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Assets []struct {
			ID       string `json:"id"`
			Duration int    `json:"duration"`
			Valid    bool   `json:"valid"`
		} `json:"assets"`
	}
	decode(t, rec, &payload)
	if len(payload.Assets) != 1 || payload.Assets[0].ID != "feature" {
		t.Fatalf("assets = %+v", payload.Assets)
	}
	if payload.Assets[0].Duration != 12 || !payload.Assets[0].Valid {
		t.Errorf("asset = %+v", payload.Assets[0])
	}
}

func TestChannelsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/channels?auth=tv-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Channels []string `json:"channels"`
	}
	decode(t, rec, &payload)
	if len(payload.Channels) != 1 || payload.Channels[0] != "movies" {
		t.Fatalf("channels = %v", payload.Channels)
	}
}

func TestGuideEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/channels/movies/guide?auth=tv-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Channel     string `json:"channel"`
		Timezone    string `json:"timezone"`
		CycleLength int    `json:"cycle_length"`
		Days        []struct {
			Day      int `json:"day"`
			Timeline struct {
				Entries []struct {
					Start string `json:"start"`
					End   string `json:"end"`
				} `json:"entries"`
				Overrun bool `json:"overrun"`
			} `json:"timeline"`
		} `json:"days"`
	}
	decode(t, rec, &payload)

	if payload.Channel != "movies" || payload.CycleLength != 1 {
		t.Fatalf("payload = %+v", payload)
	}
	entries := payload.Days[0].Timeline.Entries
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Start != "07:00" || entries[0].End != "08:00" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Start != "10:00" || entries[1].End != "10:30" {
		t.Errorf("pinned entry = %+v", entries[1])
	}
}

func TestGuideSingleDayAndErrors(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/channels/movies/guide?auth=tv-token&day=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if rec := get(t, s, "/api/channels/movies/guide?auth=tv-token&day=zero"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad day = %d, want 400", rec.Code)
	}
	if rec := get(t, s, "/api/channels/ghost/guide?auth=tv-token"); rec.Code != http.StatusNotFound {
		t.Errorf("missing channel = %d, want 404", rec.Code)
	}
}

func TestStaticDelivery(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/feature/stream.m3u8?auth=tv-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != testManifest {
		t.Error("manifest body mismatch")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
}
