package storage

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/catalog"
	"github.com/aaronscribner/macos-dev-resource-monitor/internal/monitor"
)

const (
	snapshotsFile  = "snapshots.json"
	eventsFile     = "events.json"
	settingsFile   = "settings.json"
	categoriesFile = "categories.json"
)

// Store is the durable record of snapshots, threshold events, settings
// and categories, kept as JSON files under a data directory.
//
// One mutex serializes every read and write: concurrent callers block
// rather than interleave, which makes upserts atomic without help from
// the storage engine. Engine-level failures (unreadable dir, corrupt
// JSON) degrade to no-op writes and empty reads; a broken store must
// never stop the pipeline. That trades durability for availability, on
// purpose, for a local monitoring tool.
type Store struct {
	dataDir string
	logger  *slog.Logger
	now     func() time.Time

	mu            sync.Mutex
	snapshots     map[string]*monitor.ResourceSnapshot
	events        map[string]*monitor.ThresholdEvent
	settings      *monitor.AppSettings
	categories    []catalog.AppCategory
	hasCategories bool
}

// New opens (or creates) the store under dataDir, loads whatever is on
// disk and runs a retention pass for retentionDays.
func New(dataDir string, retentionDays int, logger *slog.Logger) *Store {
	s := &Store{
		dataDir:   dataDir,
		logger:    logger,
		now:       time.Now,
		snapshots: make(map[string]*monitor.ResourceSnapshot),
		events:    make(map[string]*monitor.ThresholdEvent),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var snaps []*monitor.ResourceSnapshot
	if s.readJSON(snapshotsFile, &snaps) {
		for _, snap := range snaps {
			if snap != nil && snap.ID != "" {
				s.snapshots[snap.ID] = snap
			}
		}
	}

	var events []*monitor.ThresholdEvent
	if s.readJSON(eventsFile, &events) {
		for _, e := range events {
			if e != nil && e.ID != "" {
				s.events[e.ID] = e
			}
		}
	}

	var settings monitor.AppSettings
	if s.readJSON(settingsFile, &settings) {
		s.settings = &settings
	}

	var cats []catalog.AppCategory
	if s.readJSON(categoriesFile, &cats) {
		s.categories = cats
		s.hasCategories = true
	}

	s.logger.Info("store opened",
		"data_dir", dataDir,
		"snapshots", len(s.snapshots),
		"events", len(s.events),
	)

	s.cleanupLocked(retentionDays)

	return s
}

// SaveSnapshot upserts by id: saving an existing id replaces the stored
// record, last write wins.
func (s *Store) SaveSnapshot(snap *monitor.ResourceSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[snap.ID] = snap
	s.writeJSON(snapshotsFile, s.snapshotListLocked())
	return nil
}

// LoadSnapshots returns all snapshots with from <= timestamp <= to,
// ascending by timestamp.
func (s *Store) LoadSnapshots(from, to time.Time) []*monitor.ResourceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*monitor.ResourceSnapshot, 0)
	for _, snap := range s.snapshots {
		if !snap.Timestamp.Before(from) && !snap.Timestamp.After(to) {
			out = append(out, snap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func (s *Store) SnapshotsLastHours(n int) []*monitor.ResourceSnapshot {
	now := s.now()
	return s.LoadSnapshots(now.Add(-time.Duration(n)*time.Hour), now)
}

func (s *Store) SnapshotsLastDays(n int) []*monitor.ResourceSnapshot {
	now := s.now()
	return s.LoadSnapshots(now.AddDate(0, 0, -n), now)
}

// SaveEvent upserts a threshold event by id.
func (s *Store) SaveEvent(e *monitor.ThresholdEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[e.ID] = e
	s.writeJSON(eventsFile, s.eventListLocked())
	return nil
}

// LoadEvents returns events from the last n days, descending by
// timestamp: the most recent event is first. Callers rely on this being
// the opposite of snapshot ordering.
func (s *Store) LoadEvents(lastDays int) []*monitor.ThresholdEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().AddDate(0, 0, -lastDays)
	out := make([]*monitor.ThresholdEvent, 0)
	for _, e := range s.events {
		if !e.Timestamp.Before(cutoff) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// SaveSettings replaces the single settings record.
func (s *Store) SaveSettings(settings monitor.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = &settings
	s.writeJSON(settingsFile, &settings)
	return nil
}

// LoadSettings never fails: it returns the last saved settings, or the
// hard-coded defaults when nothing valid was ever stored.
func (s *Store) LoadSettings() monitor.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		return monitor.DefaultSettings()
	}
	return *s.settings
}

// HasSettings reports whether a settings record was ever saved; used to
// decide whether the config file should seed the first run.
func (s *Store) HasSettings() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings != nil
}

// SaveCategories replaces the whole stored catalog. Edits always persist
// the full list; there is no per-category diffing.
func (s *Store) SaveCategories(cats []catalog.AppCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = catalog.Clone(cats)
	s.hasCategories = true
	s.writeJSON(categoriesFile, s.categories)
	return nil
}

// LoadCategories returns the stored catalog, or ok=false when nothing was
// ever saved. Unlike settings it does not substitute defaults; the caller
// decides whether to fall back to the built-in catalog.
func (s *Store) LoadCategories() ([]catalog.AppCategory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasCategories {
		return nil, false
	}
	return catalog.Clone(s.categories), true
}

// Cleanup deletes snapshots and events older than keepDays. Partial
// failure is logged, never surfaced.
func (s *Store) Cleanup(keepDays int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked(keepDays)
}

func (s *Store) cleanupLocked(keepDays int) {
	if keepDays < 1 {
		return
	}
	cutoff := s.now().AddDate(0, 0, -keepDays)

	removed := 0
	for id, snap := range s.snapshots {
		if snap.Timestamp.Before(cutoff) {
			delete(s.snapshots, id)
			removed++
		}
	}
	for id, e := range s.events {
		if e.Timestamp.Before(cutoff) {
			delete(s.events, id)
			removed++
		}
	}

	if removed > 0 {
		s.writeJSON(snapshotsFile, s.snapshotListLocked())
		s.writeJSON(eventsFile, s.eventListLocked())
		s.logger.Info("retention cleanup", "removed", removed, "keep_days", keepDays)
	}
}

func (s *Store) snapshotListLocked() []*monitor.ResourceSnapshot {
	out := make([]*monitor.ResourceSnapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func (s *Store) eventListLocked() []*monitor.ThresholdEvent {
	out := make([]*monitor.ThresholdEvent, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// readJSON reports whether name existed and decoded cleanly. A corrupt
// payload is logged and treated as absent.
func (s *Store) readJSON(name string, v any) bool {
	path := filepath.Join(s.dataDir, name)

	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to open data file", "path", path, "error", err)
		}
		return false
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		s.logger.Warn("failed to decode data file, treating as absent", "path", path, "error", err)
		return false
	}
	return true
}

// writeJSON writes atomically via a temp file and rename. Failures are
// logged; the in-memory state stays authoritative for this run.
func (s *Store) writeJSON(name string, v any) {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		s.logger.Warn("failed to create data dir", "path", s.dataDir, "error", err)
		return
	}

	path := filepath.Join(s.dataDir, name)
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		s.logger.Warn("failed to create data file", "path", tempPath, "error", err)
		return
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		file.Close()
		os.Remove(tempPath)
		s.logger.Warn("failed to encode data file", "path", tempPath, "error", err)
		return
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		s.logger.Warn("failed to close data file", "path", tempPath, "error", err)
		return
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		s.logger.Warn("failed to replace data file", "path", path, "error", err)
	}
}
