package world

import "math/rand"

// rng wraps math/rand with the handful of draws the engine needs, all
// seeded from Config.Seed so an episode is fully reproducible (spec.md §7
// "Determinism").
type rng struct {
	r *rand.Rand
}

func newRNG(seed int64) *rng {
	return &rng{r: rand.New(rand.NewSource(seed))}
}

func (g *rng) intn(n int) int { return g.r.Intn(n) }

func (g *rng) direction() Direction { return Direction(g.r.Intn(4)) }

// shuffle implements the Fisher-Yates pass from
// original_source/src/utils/helper.h, run once per tick to randomise
// action-resolution order.
func (g *rng) shuffle(pids []int) {
	for i := len(pids) - 1; i > 0; i-- {
		j := g.r.Intn(i + 1)
		pids[i], pids[j] = pids[j], pids[i]
	}
}

// nextMaxEpLength draws the per-episode truncation budget uniformly from
// [minEpLength, maxEpLength), per spec.md §4.1.
func (g *rng) nextMaxEpLength(minEpLength, maxEpLength int) int {
	return minEpLength + g.r.Intn(maxEpLength-minEpLength)
}
