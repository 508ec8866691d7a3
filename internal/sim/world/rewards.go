package world

import "math"

// sweepDeaths implements spec.md §4.3/§4.8's deferred death sweep: satiation
// or HP reaching zero marks the slot dead, terminal, and freed, but
// the kinship matrix is left untouched — it only changes at birth, so a
// dead agent's family size (and the reward computed from it) stays
// meaningful for the tick it died on.
func (e *Engine) sweepDeaths() {
	for _, pid := range e.agents.alivePids {
		a := &e.table.agents[pid]
		if a.Satiation <= 0 || a.HP <= 0 {
			e.tiles.pidAt[e.tiles.index(a.R, a.C)] = noneID
			e.agents.kill(pid)
			e.terminals[pid] = 1
		}
	}
	e.agents.refreshAlivePids()
}

// computeRewards implements spec.md §4.9's two reward modes, selected by
// Config.RewardGrowthRate. It runs over every agent that is either
// currently alive or was just marked terminal this tick, so a death's
// final reward still gets computed.
func (e *Engine) computeRewards() {
	if e.cfg.RewardGrowthRate {
		e.growthRateRewards()
	} else {
		e.deltaRewards()
	}
}

func (e *Engine) forEachRewardable(f func(pid int)) {
	for pid := 0; pid < e.cfg.MaxAgents; pid++ {
		if e.agents.aliveMask[pid] != 0 || e.terminals[pid] != 0 {
			f(pid)
		}
	}
}

func (e *Engine) deltaRewards() {
	trackStats := e.tick < e.cfg.MinEpLength
	e.forEachRewardable(func(pid int) {
		e.familySizes[pid] = e.kinship.familySize(pid, e.agents.alivePids)
		reward := float64(e.familySizes[pid]-e.prevFamilySizes[pid]) / float64(e.cfg.NGenes)
		e.rewards[pid] = reward
		if trackStats {
			e.stats.totalReward += reward
		}
	})
	e.copyFamilySizes()
}

func (e *Engine) growthRateRewards() {
	trackStats := e.tick < e.cfg.MinEpLength
	e.forEachRewardable(func(pid int) {
		e.familySizes[pid] = e.kinship.familySize(pid, e.agents.alivePids)
		var reward float64
		if e.familySizes[pid] == 0 {
			reward = e.cfg.ExtinctionReward
			if e.prevFamilySizes[pid] > 1 {
				// A family collapsing from N>1 to 0 at once scores the same
				// log(1/N) term a one-at-a-time collapse would accumulate,
				// so neither ordering is favoured.
				reward += math.Log(1.0 / float64(e.prevFamilySizes[pid]))
			}
		} else {
			reward = math.Log(float64(e.familySizes[pid]) / float64(e.prevFamilySizes[pid]))
		}
		e.rewards[pid] = reward
		if trackStats {
			e.stats.totalReward += reward
		}
	})
	e.copyFamilySizes()
}

func (e *Engine) copyFamilySizes() {
	copy(e.prevFamilySizes, e.familySizes)
}
