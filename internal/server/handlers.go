/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/friendsincode/grimnir_tv/internal/schedule"
)

// handleTime reports the zone-local server time the player syncs its
// broadcast clock against.
func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(s.location)
	writeJSON(w, http.StatusOK, map[string]any{
		"timezone":  s.location.String(),
		"iso":       now.Format(time.RFC3339),
		"timestamp": float64(now.UnixNano()) / float64(time.Second),
		"year":      now.Year(),
		"month":     int(now.Month()),
		"day":       now.Day(),
		"hour":      now.Hour(),
		"minute":    now.Minute(),
		"second":    now.Second(),
		"weekday":   (int(now.Weekday()) + 6) % 7, // 0=Monday, matching the player
	})
}

// handleCatalog lists the scanned content store.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"assets": s.catalog.Assets()})
}

// handleChannels lists the channel documents available in the channels dir.
func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.cfg.ChannelsDir)
	if err != nil {
		s.logger.Error().Err(err).Str("dir", s.cfg.ChannelsDir).Msg("channels dir unreadable")
		writeError(w, http.StatusInternalServerError, "channels_unavailable")
		return
	}

	channels := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		channels = append(channels, strings.TrimSuffix(e.Name(), ".json"))
	}
	writeJSON(w, http.StatusOK, map[string]any{"channels": channels})
}

// guideDay is one cycle day of the guide payload.
type guideDay struct {
	Day      int               `json:"day"`
	Timeline schedule.Timeline `json:"timeline"`
}

// handleGuide resolves a channel's timetable. With ?day=N only that cycle
// day is resolved; otherwise every existing day is. Resolution happens on
// every read so a freshly saved document is picked up immediately.
func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "channel")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		writeError(w, http.StatusBadRequest, "bad_channel_name")
		return
	}

	path := filepath.Join(s.cfg.ChannelsDir, name+".json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		writeError(w, http.StatusNotFound, "channel_not_found")
		return
	}
	ch, err := schedule.Load(path)
	if err != nil {
		s.logger.Error().Err(err).Str("channel", name).Msg("channel document unreadable")
		writeError(w, http.StatusInternalServerError, "channel_unreadable")
		return
	}

	bday := s.cfg.BroadcastDay()

	var days []guideDay
	if rawDay := r.URL.Query().Get("day"); rawDay != "" {
		day, err := strconv.Atoi(rawDay)
		if err != nil || day < 1 {
			writeError(w, http.StatusBadRequest, "bad_day_number")
			return
		}
		days = []guideDay{{Day: day, Timeline: ch.Resolve(day, bday)}}
	} else {
		for _, day := range ch.DayNumbers() {
			days = append(days, guideDay{Day: day, Timeline: ch.Resolve(day, bday)})
		}
	}

	cycleStart := ""
	if !ch.CycleStart.IsZero() {
		cycleStart = ch.CycleStart.Format("2006-01-02")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"channel":      name,
		"timezone":     ch.Timezone,
		"cycle_start":  cycleStart,
		"cycle_length": ch.CycleLength(),
		"days":         days,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
