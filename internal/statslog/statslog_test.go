package statslog

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestWriteEpisodeAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	w, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	id := w.WriteEpisode(EpisodeRecord{
		Seed:             7,
		TickCount:        1200,
		Births:           4,
		Murders:          1,
		LifeExpectancy:   340.5,
		GeneticDiversity: 1.5,
	})
	if id == "" {
		t.Fatalf("expected a non-empty episode id")
	}

	// Close drains the buffered channel before returning, so the insert
	// above is guaranteed visible once this returns.
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM episodes WHERE episode_id = ?`, id).Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row for episode %s, got %d", id, count)
	}

	var births, murders, lifeExp float64
	if err := db.QueryRow(`SELECT births, murders, life_expectancy FROM episodes WHERE episode_id = ?`, id).
		Scan(&births, &murders, &lifeExp); err != nil {
		t.Fatalf("query row: %v", err)
	}
	if births != 4 || murders != 1 || lifeExp != 340.5 {
		t.Fatalf("unexpected row values: births=%v murders=%v life_expectancy=%v", births, murders, lifeExp)
	}
}

func TestWriteEpisodeAfterCloseIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	w, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if id := w.WriteEpisode(EpisodeRecord{Seed: 1}); id != "" {
		t.Fatalf("expected empty id after Close, got %q", id)
	}
}
