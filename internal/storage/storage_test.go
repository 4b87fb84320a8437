package storage

import (
	"testing"
	"time"

	"github.com/moodtracker/moodtracker/internal/core"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)
	if err := db.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func entry(emoji, moodType string, intensity int) *core.MoodEntry {
	return &core.MoodEntry{
		Emoji:     emoji,
		MoodType:  moodType,
		Intensity: intensity,
	}
}

func TestMoodStoreCreate(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	e := entry("😊", "happy", 8)
	e.Note = "went for a run"
	e.Tags = []string{"Exercise"}

	if err := store.Create(e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID == "" {
		t.Error("ID not assigned")
	}
	if e.Timestamp == 0 {
		t.Error("Timestamp not assigned")
	}
	if e.Date != time.Now().Format(DateFormat) {
		t.Errorf("Date = %q, want today", e.Date)
	}
	if e.CreatedAt == 0 || e.UpdatedAt == 0 {
		t.Error("created/updated timestamps not assigned")
	}

	got, err := store.GetByDate(e.Date)
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if got == nil {
		t.Fatal("entry not found after create")
	}
	if got.Note != "went for a run" {
		t.Errorf("Note = %q", got.Note)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "Exercise" {
		t.Errorf("Tags = %v", got.Tags)
	}
}

func TestMoodStoreCreateEmptyNote(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	e := entry("😔", "sad", 3)
	if err := store.Create(e); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetByDate(e.Date)
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if got.Note != "" {
		t.Errorf("Note = %q, want empty", got.Note)
	}
	if got.Tags == nil {
		t.Error("Tags should decode to an empty slice")
	}
}

func TestMoodStoreListOrderAndLimit(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	base := time.Now().UnixMilli()
	for i := 0; i < 5; i++ {
		e := entry("😊", "happy", 5)
		e.Timestamp = base + int64(i)
		if err := store.Create(e); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, err := store.List(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Timestamp < all[i].Timestamp {
			t.Errorf("entries not newest-first at index %d", i)
		}
	}

	limited, err := store.List(2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}
	if limited[0].Timestamp != base+4 {
		t.Errorf("limited[0].Timestamp = %d, want newest", limited[0].Timestamp)
	}
}

func TestMoodStoreGetByDateNewestWins(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	date := "2026-08-30"
	first := entry("😔", "sad", 3)
	first.Date = date
	first.Timestamp = 1000
	if err := store.Create(first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	second := entry("😊", "happy", 8)
	second.Date = date
	second.Timestamp = 2000
	if err := store.Create(second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	got, err := store.GetByDate(date)
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if got.Emoji != "😊" {
		t.Errorf("Emoji = %q, want the later entry", got.Emoji)
	}
}

func TestMoodStoreGetByDateAbsent(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	got, err := store.GetByDate("1999-01-01")
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for a date with no entries", got)
	}
}

func TestMoodStoreCount(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	count, err := store.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	for i := 0; i < 3; i++ {
		if err := store.Create(entry("😊", "happy", 5)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	count, err = store.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestMostCommonMood(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	// Empty store falls back to the default glyph
	mood, err := store.MostCommonMood()
	if err != nil {
		t.Fatalf("most common mood: %v", err)
	}
	if mood != "😊" {
		t.Errorf("mood = %q, want 😊 for empty store", mood)
	}

	for _, glyph := range []string{"😔", "😔", "😊"} {
		if err := store.Create(entry(glyph, "any", 5)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	mood, err = store.MostCommonMood()
	if err != nil {
		t.Fatalf("most common mood: %v", err)
	}
	if mood != "😔" {
		t.Errorf("mood = %q, want 😔", mood)
	}
}

func TestMostCommonMoodTieBreak(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	// Two glyphs with equal counts resolve by code point order
	for _, glyph := range []string{"😡", "😊", "😊", "😡"} {
		if err := store.Create(entry(glyph, "any", 5)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	mood, err := store.MostCommonMood()
	if err != nil {
		t.Fatalf("most common mood: %v", err)
	}
	if mood != "😊" {
		t.Errorf("mood = %q, want 😊 (lower code point)", mood)
	}
}

func TestAverageIntensity(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	avg, err := store.AverageIntensity()
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != 0 {
		t.Errorf("avg = %f, want 0 for empty store", avg)
	}

	for _, intensity := range []int{4, 6, 8} {
		if err := store.Create(entry("😊", "happy", intensity)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	avg, err = store.AverageIntensity()
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != 6 {
		t.Errorf("avg = %f, want 6", avg)
	}
}

func TestListSince(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	old := entry("😔", "sad", 3)
	if err := store.Create(old); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Push the first entry outside the window
	cutoff := time.Now().Add(-8 * 24 * time.Hour).UnixMilli()
	if _, err := db.Conn().Exec(
		"UPDATE mood_entries SET created_at = ? WHERE id = ?", cutoff, old.ID,
	); err != nil {
		t.Fatalf("backdate entry: %v", err)
	}

	recent := entry("😊", "happy", 8)
	if err := store.Create(recent); err != nil {
		t.Fatalf("create: %v", err)
	}

	weekly, err := store.ListWeekly()
	if err != nil {
		t.Fatalf("list weekly: %v", err)
	}
	if len(weekly) != 1 {
		t.Fatalf("len = %d, want 1", len(weekly))
	}
	if weekly[0].ID != recent.ID {
		t.Errorf("weekly entry = %s, want the recent one", weekly[0].ID)
	}
}

func TestStreakCount(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	streak, err := store.StreakCount()
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 0 {
		t.Errorf("streak = %d, want 0 for empty store", streak)
	}

	// Yesterday and the day before, but not today: streak holds at 2
	// because today is still in progress.
	now := time.Now()
	for _, daysAgo := range []int{1, 2} {
		e := entry("😊", "happy", 5)
		e.Date = now.AddDate(0, 0, -daysAgo).Format(DateFormat)
		if err := store.Create(e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	streak, err = store.StreakCount()
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 2 {
		t.Errorf("streak = %d, want 2 with today missing", streak)
	}

	// Logging today extends it
	today := entry("😊", "happy", 5)
	if err := store.Create(today); err != nil {
		t.Fatalf("create: %v", err)
	}

	streak, err = store.StreakCount()
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 3 {
		t.Errorf("streak = %d, want 3", streak)
	}
}

func TestStreakCountGapBreaks(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	now := time.Now()
	for _, daysAgo := range []int{0, 2, 3} {
		e := entry("😊", "happy", 5)
		e.Date = now.AddDate(0, 0, -daysAgo).Format(DateFormat)
		if err := store.Create(e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	streak, err := store.StreakCount()
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 1 {
		t.Errorf("streak = %d, want 1 (gap at yesterday)", streak)
	}
}

func TestCleanupOldEntries(t *testing.T) {
	db := testDB(t)
	store := NewMoodStore(db)

	stale := entry("😔", "sad", 3)
	if err := store.Create(stale); err != nil {
		t.Fatalf("create: %v", err)
	}
	ancient := time.Now().Add(-3 * 365 * 24 * time.Hour).UnixMilli()
	if _, err := db.Conn().Exec(
		"UPDATE mood_entries SET created_at = ? WHERE id = ?", ancient, stale.ID,
	); err != nil {
		t.Fatalf("backdate entry: %v", err)
	}

	fresh := entry("😊", "happy", 8)
	if err := store.Create(fresh); err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := store.CleanupOldEntries()
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestInsightStore(t *testing.T) {
	db := testDB(t)
	store := NewInsightStore(db)

	id, err := store.Create("Your mood has been quite positive this week! 😊", core.InsightCategoryWeekly, "2026-08-24 to 2026-08-31")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("empty insight ID")
	}

	insights, err := store.List(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(insights) != 1 {
		t.Fatalf("len = %d, want 1", len(insights))
	}
	if insights[0].IsRead {
		t.Error("new insight should be unread")
	}
	if insights[0].Category != core.InsightCategoryWeekly {
		t.Errorf("Category = %q", insights[0].Category)
	}

	if err := store.MarkRead(id); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	insights, err = store.List(0)
	if err != nil {
		t.Fatalf("list after mark: %v", err)
	}
	if !insights[0].IsRead {
		t.Error("insight should be read after MarkRead")
	}
}

func TestInsightStoreMarkReadMissing(t *testing.T) {
	db := testDB(t)
	store := NewInsightStore(db)

	err := store.MarkRead("no-such-insight")
	if err != core.ErrInsightNotFound {
		t.Errorf("err = %v, want ErrInsightNotFound", err)
	}
}

func TestInsightStoreListCap(t *testing.T) {
	db := testDB(t)
	store := NewInsightStore(db)

	for i := 0; i < 8; i++ {
		if _, err := store.Create("insight", core.InsightCategoryWeekly, "range"); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	insights, err := store.List(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(insights) != 5 {
		t.Errorf("default cap = %d, want 5", len(insights))
	}

	insights, err = store.List(3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(insights) != 3 {
		t.Errorf("len = %d, want 3", len(insights))
	}
}

func TestPreferenceStore(t *testing.T) {
	db := testDB(t)
	store := NewPreferenceStore(db)

	_, ok, err := store.Get("missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("missing key should report ok=false")
	}

	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := store.Get("theme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != "dark" {
		t.Errorf("got (%q, %v), want (dark, true)", value, ok)
	}

	// Upsert overwrites
	if err := store.Set("theme", "light"); err != nil {
		t.Fatalf("set again: %v", err)
	}
	value, _, err = store.Get("theme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "light" {
		t.Errorf("value = %q, want light", value)
	}

	if err := store.Delete("theme"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, ok, err = store.Get("theme")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if ok {
		t.Error("deleted key should be absent")
	}
}
