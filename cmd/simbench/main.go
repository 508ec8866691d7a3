// Command simbench drives the territories engine for a fixed tick budget
// with uniformly random actions and reports running stats, the way a host
// would smoke-test a freshly wired config before pointing real policies at
// it.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/jpiabrantes/territories/internal/config"
	"github.com/jpiabrantes/territories/internal/sim/world"
	"github.com/jpiabrantes/territories/internal/statslog"
)

func main() {
	var (
		configPath = flag.String("config", "configs/example.yaml", "path to an engine_config.yaml")
		schemaPath = flag.String("schema", "schemas/engine_config.schema.json", "path to the config's json schema")
		ticks      = flag.Int("ticks", 10000, "number of ticks to run")
		dbPath     = flag.String("stats_db", "", "optional sqlite path to record one row per finished episode")
		actionSeed = flag.Int64("action_seed", 1, "seed for the random action driver (separate from the engine's own seed)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[simbench] ", log.LstdFlags)

	cfg, grid, err := config.Load(*schemaPath, *configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	buffers := world.Buffers{
		Observations:  make([]byte, cfg.MaxAgents*obsSize(cfg)),
		Actions:       make([]int32, cfg.MaxAgents),
		Rewards:       make([]float64, cfg.MaxAgents),
		Terminals:     make([]byte, cfg.MaxAgents),
		Truncations:   make([]byte, cfg.MaxAgents),
		AliveMask:     make([]byte, cfg.MaxAgents),
		KinshipMatrix: make([]byte, cfg.MaxAgents*cfg.MaxAgents),
		DNAs:          make([]byte, cfg.MaxAgents*cfg.NGenes),
	}

	eng, err := world.New(cfg, buffers, grid)
	if err != nil {
		logger.Fatalf("new engine: %v", err)
	}
	defer eng.Close()

	var stats *statslog.Writer
	if *dbPath != "" {
		stats, err = statslog.Open(*dbPath)
		if err != nil {
			logger.Fatalf("open stats db: %v", err)
		}
		defer stats.Close()
	}

	actionRNG := rand.New(rand.NewSource(*actionSeed))
	eng.Reset()

	isTTY := isatty.IsTerminal(os.Stdout.Fd())
	prevLog := eng.Log

	for i := 0; i < *ticks; i++ {
		for pid := range buffers.Actions {
			if buffers.AliveMask[pid] != 0 {
				buffers.Actions[pid] = int32(actionRNG.Intn(11))
			}
		}
		eng.Step()

		if eng.Log.EpisodeN != prevLog.EpisodeN {
			if stats != nil {
				stats.WriteEpisode(episodeRecord(cfg, deltaLog(prevLog, eng.Log)))
			}
			prevLog = eng.Log
		}

		if isTTY && i%500 == 0 {
			fmt.Printf("\rtick %s/%s  episodes=%s  births=%s  murders=%s",
				humanize.Comma(int64(i)), humanize.Comma(int64(*ticks)),
				humanize.Comma(int64(eng.Log.EpisodeN)), humanize.Comma(int64(eng.Log.Births)),
				humanize.Comma(int64(eng.Log.Murders)))
		}
	}
	if isTTY {
		fmt.Println()
	}

	logger.Printf("done: %s ticks, %s episodes, life_expectancy=%.1f, genetic_diversity=%.3f",
		humanize.Comma(int64(*ticks)), humanize.Comma(int64(eng.Log.EpisodeN)),
		eng.Log.LifeExpectancy, eng.Log.GeneticDiversity)
}

// deltaLog isolates the episode that just finished out of cur, which is
// world.Log's running cross-episode accumulation. Most fields are summed
// across episodes, so the episode's own contribution is cur-prev; LifeExpectancy
// is the odd one out (updateEpisodeLogs assigns it, it does not accumulate),
// so it is taken from cur as-is.
func deltaLog(prev, cur world.Log) world.Log {
	return world.Log{
		EpisodeLength:    cur.EpisodeLength - prev.EpisodeLength,
		EpisodeN:         1,
		Births:           cur.Births - prev.Births,
		Starvations:      cur.Starvations - prev.Starvations,
		Murders:          cur.Murders - prev.Murders,
		StoneMined:       cur.StoneMined - prev.StoneMined,
		WallsBuilt:       cur.WallsBuilt - prev.WallsBuilt,
		WallDestroyed:    cur.WallDestroyed - prev.WallDestroyed,
		FoodStored:       cur.FoodStored - prev.FoodStored,
		FoodEaten:        cur.FoodEaten - prev.FoodEaten,
		AvgPopulation:    cur.AvgPopulation - prev.AvgPopulation,
		MaxPop:           cur.MaxPop - prev.MaxPop,
		MinPop:           cur.MinPop - prev.MinPop,
		TotalReward:      cur.TotalReward - prev.TotalReward,
		LifeExpectancy:   cur.LifeExpectancy,
		GeneticDiversity: cur.GeneticDiversity - prev.GeneticDiversity,
	}
}

func episodeRecord(cfg world.Config, l world.Log) statslog.EpisodeRecord {
	return statslog.EpisodeRecord{
		Seed:             cfg.Seed,
		TickCount:        int(l.EpisodeLength),
		Births:           l.Births,
		Starvations:      l.Starvations,
		Murders:          l.Murders,
		StoneMined:       l.StoneMined,
		WallsBuilt:       l.WallsBuilt,
		WallDestroyed:    l.WallDestroyed,
		FoodStored:       l.FoodStored,
		FoodEaten:        l.FoodEaten,
		AvgPopulation:    l.AvgPopulation,
		MaxPop:           l.MaxPop,
		MinPop:           l.MinPop,
		TotalReward:      l.TotalReward,
		LifeExpectancy:   l.LifeExpectancy,
		GeneticDiversity: l.GeneticDiversity,
	}
}

// obsSize mirrors world.Config.obsSize, which is unexported; simbench is
// outside the world package so it recomputes the same formula from spec.md
// §4.9 here rather than exposing an engine-internal helper.
func obsSize(cfg world.Config) int {
	const visionRadius = 4
	side := 2*visionRadius + 1
	return side*side*(11+cfg.NGenes) + 6 + cfg.NGenes + 5
}
