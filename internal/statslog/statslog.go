// Package statslog persists one row per finished episode to SQLite, keyed
// by a generated episode id, the way the teacher's indexdb package indexes
// ticks and audits off the sim's event stream.
package statslog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// EpisodeRecord is one finished episode's worth of world.Log deltas, keyed
// by a fresh UUID at write time.
type EpisodeRecord struct {
	EpisodeID        string
	Seed             int64
	TickCount        int
	Births           float64
	Starvations      float64
	Murders          float64
	StoneMined       float64
	WallsBuilt       float64
	WallDestroyed    float64
	FoodStored       float64
	FoodEaten        float64
	AvgPopulation    float64
	MaxPop           float64
	MinPop           float64
	TotalReward      float64
	LifeExpectancy   float64
	GeneticDiversity float64
}

// Writer buffers episode records on a channel and drains them from a single
// writer goroutine, mirroring indexdb.SQLiteIndex's write pattern so a slow
// disk never stalls the simulation loop.
type Writer struct {
	db *sql.DB

	ch   chan EpisodeRecord
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

// Open creates (or reuses) the SQLite file at path and starts the writer
// goroutine.
func Open(path string) (*Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("statslog: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	w := &Writer{
		db: db,
		ch: make(chan EpisodeRecord, 4096),
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.loop()
	}()
	return w, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS episodes (
		episode_id TEXT PRIMARY KEY,
		recorded_at TEXT NOT NULL,
		seed INTEGER NOT NULL,
		tick_count INTEGER NOT NULL,
		births REAL NOT NULL,
		starvations REAL NOT NULL,
		murders REAL NOT NULL,
		stone_mined REAL NOT NULL,
		walls_built REAL NOT NULL,
		wall_destroyed REAL NOT NULL,
		food_stored REAL NOT NULL,
		food_eaten REAL NOT NULL,
		avg_population REAL NOT NULL,
		max_pop REAL NOT NULL,
		min_pop REAL NOT NULL,
		total_reward REAL NOT NULL,
		life_expectancy REAL NOT NULL,
		genetic_diversity REAL NOT NULL
	);`)
	return err
}

// WriteEpisode assigns rec a fresh episode id and enqueues it for the
// writer goroutine, returning the assigned id. Enqueueing never blocks: a
// full buffer drops the record, since the caller's own Log remains the
// source of truth.
func (w *Writer) WriteEpisode(rec EpisodeRecord) string {
	if w == nil || w.closed.Load() {
		return ""
	}
	rec.EpisodeID = uuid.NewString()
	select {
	case w.ch <- rec:
	default:
	}
	return rec.EpisodeID
}

func (w *Writer) loop() {
	for rec := range w.ch {
		if err := w.insert(rec); err != nil {
			fmt.Fprintf(os.Stderr, "statslog: insert %s: %v\n", rec.EpisodeID, err)
		}
	}
}

func (w *Writer) insert(rec EpisodeRecord) error {
	_, err := w.db.Exec(`INSERT INTO episodes (
		episode_id, recorded_at, seed, tick_count, births, starvations, murders,
		stone_mined, walls_built, wall_destroyed, food_stored, food_eaten,
		avg_population, max_pop, min_pop, total_reward, life_expectancy, genetic_diversity
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.EpisodeID, time.Now().UTC().Format(time.RFC3339Nano), rec.Seed, rec.TickCount,
		rec.Births, rec.Starvations, rec.Murders, rec.StoneMined, rec.WallsBuilt,
		rec.WallDestroyed, rec.FoodStored, rec.FoodEaten, rec.AvgPopulation,
		rec.MaxPop, rec.MinPop, rec.TotalReward, rec.LifeExpectancy, rec.GeneticDiversity)
	return err
}

// Close drains the pending buffer and closes the database.
func (w *Writer) Close() error {
	var err error
	w.once.Do(func() {
		w.closed.Store(true)
		close(w.ch)
		w.wg.Wait()
		err = w.db.Close()
	})
	return err
}
