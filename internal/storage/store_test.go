package storage

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/catalog"
	"github.com/aaronscribner/macos-dev-resource-monitor/internal/monitor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), 30, testLogger())
}

func snapAt(id string, ts time.Time, cpu float64) *monitor.ResourceSnapshot {
	return &monitor.ResourceSnapshot{
		ID:        id,
		Timestamp: ts,
		TotalCPU:  cpu,
	}
}

func eventAt(id string, ts time.Time) *monitor.ThresholdEvent {
	return &monitor.ThresholdEvent{
		ID:        id,
		Timestamp: ts,
		Trigger:   monitor.TriggerCPU,
		Value:     90,
		Threshold: 80,
	}
}

func TestStore_SnapshotUpsertIsIdempotent(t *testing.T) {
	s := testStore(t)
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	if err := s.SaveSnapshot(snapAt("x", ts, 100)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := s.SaveSnapshot(snapAt("x", ts, 200)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got := s.LoadSnapshots(ts.Add(-time.Hour), ts.Add(time.Hour))
	if len(got) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(got))
	}
	if got[0].TotalCPU != 200 {
		t.Errorf("expected the second save to win, got cpu %f", got[0].TotalCPU)
	}
}

func TestStore_LoadSnapshotsAscendingWithinRange(t *testing.T) {
	s := testStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Saved out of order on purpose.
	_ = s.SaveSnapshot(snapAt("c", base.Add(2*time.Minute), 3))
	_ = s.SaveSnapshot(snapAt("a", base, 1))
	_ = s.SaveSnapshot(snapAt("b", base.Add(time.Minute), 2))
	_ = s.SaveSnapshot(snapAt("outside", base.Add(time.Hour), 4))

	got := s.LoadSnapshots(base, base.Add(2*time.Minute))
	if len(got) != 3 {
		t.Fatalf("expected 3 in range (bounds inclusive), got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Errorf("snapshots not strictly ascending at %d", i)
		}
	}
}

func TestStore_LoadEventsDescending(t *testing.T) {
	s := testStore(t)
	s.now = func() time.Time { return time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC) }
	base := time.Date(2026, 8, 8, 12, 0, 0, 0, time.UTC)

	_ = s.SaveEvent(eventAt("e1", base))
	_ = s.SaveEvent(eventAt("e2", base.Add(time.Hour)))
	_ = s.SaveEvent(eventAt("old", base.AddDate(0, 0, -30)))

	got := s.LoadEvents(7)
	if len(got) != 2 {
		t.Fatalf("expected 2 events in window, got %d", len(got))
	}
	// Most recent first; callers treat got[0] as "last event".
	if got[0].ID != "e2" || got[1].ID != "e1" {
		t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestStore_SettingsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, 30, testLogger())

	settings := monitor.DefaultSettings()
	settings.CPUThreshold = 75
	if err := s.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	// Fresh store instance over the same directory simulates a restart.
	s2 := New(dir, 30, testLogger())
	got := s2.LoadSettings()
	if got.CPUThreshold != 75 {
		t.Errorf("expected persisted threshold 75, got %g", got.CPUThreshold)
	}
}

func TestStore_LoadSettingsDefaultsWhenAbsent(t *testing.T) {
	s := testStore(t)

	got := s.LoadSettings()
	if got != monitor.DefaultSettings() {
		t.Errorf("expected defaults, got %+v", got)
	}
	if s.HasSettings() {
		t.Error("HasSettings should be false before any save")
	}
}

func TestStore_LoadSettingsDefaultsOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, settingsFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(dir, 30, testLogger())
	got := s.LoadSettings()
	if got != monitor.DefaultSettings() {
		t.Errorf("corrupt settings must read as defaults, got %+v", got)
	}
}

func TestStore_LoadCategoriesAbsentSignal(t *testing.T) {
	s := testStore(t)

	cats, ok := s.LoadCategories()
	if ok {
		t.Error("expected absent signal on a never-written store")
	}
	if cats != nil {
		t.Errorf("expected nil categories, got %v", cats)
	}

	// Distinct from an empty list, which is a real saved value.
	if err := s.SaveCategories([]catalog.AppCategory{}); err != nil {
		t.Fatalf("SaveCategories: %v", err)
	}
	cats, ok = s.LoadCategories()
	if !ok {
		t.Error("expected present after saving an empty list")
	}
	if len(cats) != 0 {
		t.Errorf("expected empty list, got %d", len(cats))
	}
}

func TestStore_CategoriesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, 30, testLogger())

	in := []catalog.AppCategory{
		{
			ID: "ide", Name: "Editors", Color: "#007ACC", Enabled: true,
			Apps: []catalog.AppDefinition{
				{ID: "code", Name: "Code", Patterns: []string{"Code", "Electron"}},
				{ID: "mail", Name: "Mail", Patterns: []string{"^Mail$"}, UseRegex: true},
			},
		},
	}
	if err := s.SaveCategories(in); err != nil {
		t.Fatalf("SaveCategories: %v", err)
	}

	s2 := New(dir, 30, testLogger())
	got, ok := s2.LoadCategories()
	if !ok {
		t.Fatal("expected stored categories after reopen")
	}
	if len(got) != 1 || got[0].ID != "ide" || len(got[0].Apps) != 2 {
		t.Errorf("unexpected round trip: %+v", got)
	}
	if !got[0].Apps[1].UseRegex {
		t.Error("regex flag lost in round trip")
	}
}

func TestStore_CleanupRemovesOldRecords(t *testing.T) {
	s := testStore(t)
	now := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.SaveSnapshot(snapAt("fresh", now.Add(-time.Hour), 1))
	_ = s.SaveSnapshot(snapAt("stale", now.AddDate(0, 0, -10), 2))
	_ = s.SaveEvent(eventAt("fresh-e", now.Add(-time.Hour)))
	_ = s.SaveEvent(eventAt("stale-e", now.AddDate(0, 0, -10)))

	s.Cleanup(7)

	snaps := s.LoadSnapshots(now.AddDate(0, 0, -30), now)
	if len(snaps) != 1 || snaps[0].ID != "fresh" {
		t.Errorf("expected only fresh snapshot, got %d", len(snaps))
	}
	events := s.LoadEvents(30)
	if len(events) != 1 || events[0].ID != "fresh-e" {
		t.Errorf("expected only fresh event, got %d", len(events))
	}

	cutoff := now.AddDate(0, 0, -7)
	for _, snap := range snaps {
		if snap.Timestamp.Before(cutoff) {
			t.Errorf("snapshot %s older than retention", snap.ID)
		}
	}
}

func TestStore_CleanupAtConstruction(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	s := New(dir, 30, testLogger())
	_ = s.SaveSnapshot(snapAt("stale", now.AddDate(0, 0, -40), 1))
	_ = s.SaveSnapshot(snapAt("fresh", now.Add(-time.Hour), 2))

	s2 := New(dir, 7, testLogger())
	snaps := s2.LoadSnapshots(now.AddDate(0, 0, -60), now)
	if len(snaps) != 1 || snaps[0].ID != "fresh" {
		t.Errorf("construction-time cleanup missed: %d records", len(snaps))
	}
}

func TestStore_SurvivesUnwritableDir(t *testing.T) {
	// A store over a broken path must degrade to no-ops, not fail.
	s := New("/proc/definitely/not/writable", 30, testLogger())

	if err := s.SaveSnapshot(snapAt("x", time.Now(), 1)); err != nil {
		t.Errorf("writes must degrade to no-op, got %v", err)
	}
	got := s.LoadSnapshots(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if len(got) != 1 {
		t.Errorf("in-memory state should still serve reads, got %d", len(got))
	}
}

func TestStore_SnapshotsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	ts := time.Now().Add(-time.Hour).UTC()

	s := New(dir, 30, testLogger())
	_ = s.SaveSnapshot(snapAt("s1", ts, 42))

	s2 := New(dir, 30, testLogger())
	got := s2.SnapshotsLastHours(2)
	if len(got) != 1 {
		t.Fatalf("expected 1 snapshot after reopen, got %d", len(got))
	}
	if got[0].TotalCPU != 42 {
		t.Errorf("expected cpu 42, got %f", got[0].TotalCPU)
	}
}

func TestStore_WindowHelpers(t *testing.T) {
	s := testStore(t)
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.SaveSnapshot(snapAt("recent", now.Add(-30*time.Minute), 1))
	_ = s.SaveSnapshot(snapAt("yesterday", now.Add(-20*time.Hour), 2))
	_ = s.SaveSnapshot(snapAt("lastweek", now.AddDate(0, 0, -6), 3))

	if got := s.SnapshotsLastHours(1); len(got) != 1 {
		t.Errorf("last hour: expected 1, got %d", len(got))
	}
	if got := s.SnapshotsLastDays(1); len(got) != 2 {
		t.Errorf("last day: expected 2, got %d", len(got))
	}
	if got := s.SnapshotsLastDays(7); len(got) != 3 {
		t.Errorf("last week: expected 3, got %d", len(got))
	}
}
