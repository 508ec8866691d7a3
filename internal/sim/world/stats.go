package world

import "math"

// tickStats accumulates within a single episode, reset on every episode
// boundary (spec.md §6 "Stats" / original_source's Stats struct). Fields
// below min_ep_length are the only ones the original accumulates into —
// spec.md keeps that windowing so long-tail episodes don't dilute the
// early-game metrics the original cared about.
type tickStats struct {
	births, starvations, murders int
	stoneMined, wallsBuilt        int
	wallDestroyed                 int
	foodStored, foodEaten         int
	avgPopulation                 int
	maxPop, minPop                int
	totalReward                   float64
}

func (s *tickStats) reset() {
	*s = tickStats{}
}

// Log is the cross-episode accumulator exposed to the host, mirroring
// original_source/src/territories.h's Log struct. EpisodeN counts how many
// episodes have contributed to the running totals.
type Log struct {
	EpisodeLength    float64
	EpisodeN         float64
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

// updateEpisodeLogs folds the just-finished episode's stats into the
// running Log and resets tickStats for the next episode, per
// original_source/src/territories.h's update_episode_logs.
func (e *Engine) updateEpisodeLogs() {
	s := &e.stats
	l := &e.Log

	l.Births += float64(s.births)
	l.Starvations += float64(s.starvations)
	l.Murders += float64(s.murders)
	l.StoneMined += float64(s.stoneMined)
	l.WallsBuilt += float64(s.wallsBuilt)
	l.WallDestroyed += float64(s.wallDestroyed)
	l.FoodStored += float64(s.foodStored)
	l.FoodEaten += float64(s.foodEaten)
	l.MaxPop += float64(s.maxPop)
	l.MinPop += float64(s.minPop)
	denom := e.tick
	if denom > e.cfg.MinEpLength {
		denom = e.cfg.MinEpLength
	}
	if denom > 0 {
		l.AvgPopulation += float64(s.avgPopulation) / float64(denom)
	}
	l.TotalReward += s.totalReward
	l.EpisodeN++
	l.EpisodeLength += float64(e.tick)

	var lifeExpectancy float64
	var n int
	for _, pid := range e.agents.alivePids {
		lifeExpectancy += float64(e.table.agents[pid].Age)
		n++
	}
	if n > 0 {
		lifeExpectancy /= float64(n)
	}
	l.LifeExpectancy = lifeExpectancy
	l.GeneticDiversity += e.geneticDiversity()

	s.reset()
}

// geneticDiversity computes the Shannon entropy (base 2) of each gene's
// allele distribution over the alive agents and sums it across genes, per
// original_source/src/territories.h's compute_genetic_diversity.
func (e *Engine) geneticDiversity() float64 {
	if e.agents.aliveCount == 0 {
		return 0
	}
	nGenes, nAlleles := e.cfg.NGenes, e.cfg.NAlleles
	counts := make([]int, nGenes*nAlleles)
	for _, pid := range e.agents.alivePids {
		dna := e.table.dnaOf(pid)
		for g := 0; g < nGenes; g++ {
			counts[g*nAlleles+int(dna[g])]++
		}
	}
	var diversity float64
	aliveCount := float64(e.agents.aliveCount)
	for g := 0; g < nGenes; g++ {
		for a := 0; a < nAlleles; a++ {
			c := counts[g*nAlleles+a]
			if c == 0 {
				continue
			}
			p := float64(c) / aliveCount
			diversity += -p * math.Log2(p)
		}
	}
	return diversity
}
