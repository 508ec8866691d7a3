package world

// quantizeByte implements spec.md §4.9's byte quantization:
// round(clamp(x,lo,hi)-lo)/(hi-lo)*255), grounded on
// original_source/src/utils/helper.h's float_to_byte.
func quantizeByte(value, lo, hi float64) byte {
	if value > hi {
		value = hi
	} else if value < lo {
		value = lo
	}
	return byte(roundHalfAway((value - lo) / (hi - lo) * 255.0))
}

func roundHalfAway(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}
	return float64(int64(x - 0.5))
}

// writeObservations implements spec.md §4.9 compute_all_obs: for every
// currently alive agent, fill its fixed-size slice of the host observation
// buffer with the vision field, self block, and cultural block.
//
// Dead slots are left untouched — the host's alive_mask tells the caller
// which slices are meaningful this tick, same as the original.
func (e *Engine) writeObservations() {
	nGenes := e.cfg.NGenes
	vecLen := e.cfg.obsSize()
	cellLen := 11 + nGenes
	day := dayNumber(e.tick)

	for _, pid := range e.agents.alivePids {
		a := &e.table.agents[pid]
		base := pid * vecLen
		adr := base

		for rOff := -visionRadius; rOff <= visionRadius; rOff++ {
			for cOff := -visionRadius; cOff <= visionRadius; cOff++ {
				tr := wrap(a.R+rOff, e.cfg.Height)
				tc := wrap(a.C+cOff, e.cfg.Width)
				i := e.tiles.index(tr, tc)

				if e.tiles.isSoil[i] {
					e.obs[adr] = 1
				} else {
					e.obs[adr] = 0
				}
				e.obs[adr+1] = byte(e.tiles.growthDays(tr, tc, e.isWinter, e.tick))
				e.obs[adr+2] = quantizeByte(float64(e.tiles.storedFood[i]), 0, maxFoodStorageCap)
				e.obs[adr+3] = quantizeByte(float64(e.tiles.stone[i]), 0, stonePerMine)
				e.obs[adr+4] = quantizeByte(float64(e.tiles.wallHP[i]), 0, wallHPMax)

				pid2 := e.tiles.pidAt[i]
				if pid2 != noneID {
					a2 := &e.table.agents[pid2]
					e.obs[adr+5] = quantizeByte(float64(e.kinship.get(pid, pid2)), 0, 1.0)
					e.obs[adr+6] = quantizeByte(float64(a2.HP), 0, maxHP)
					e.obs[adr+7] = quantizeByte(float64(a2.Age), 0, 100)
					e.obs[adr+8] = quantizeByte(float64(a2.Satiation), 0, maxSatiation)
					e.obs[adr+9] = byte(a2.Dir) + 1 // 0 means no agent
					e.obs[adr+10] = byte(a2.Role) + 1
					dna2 := e.table.dnaOf(pid2)
					for g := 0; g < nGenes; g++ {
						e.obs[adr+11+g] = dna2[g] + 1
					}
				} else {
					for k := 0; k < 6; k++ {
						e.obs[adr+5+k] = 0
					}
					for g := 0; g < nGenes; g++ {
						e.obs[adr+11+g] = 0
					}
				}
				adr += cellLen
			}
		}

		// Self block.
		e.obs[adr] = quantizeByte(float64(a.FoodCarried), 0, maxFoodCarryCapacity)
		e.obs[adr+1] = quantizeByte(float64(a.StoneCarried), 0, maxStoneCarryCapacity)
		e.obs[adr+2] = quantizeByte(float64(a.HP), 0, maxHP)
		e.obs[adr+3] = quantizeByte(float64(a.Satiation), 0, maxSatiation)
		e.obs[adr+4] = quantizeByte(float64(a.Age), 0, 100)
		e.obs[adr+5] = byte(a.Role) // raw, unlike the fields around it
		dna := e.table.dnaOf(pid)
		for g := 0; g < nGenes; g++ {
			e.obs[adr+6+g] = dna[g]
		}
		adr += 6 + nGenes

		// Cultural block.
		e.obs[adr] = quantizeByte(float64(a.R), 0, float64(e.cfg.Height))
		e.obs[adr+1] = quantizeByte(float64(a.C), 0, float64(e.cfg.Width))
		e.obs[adr+2] = quantizeByte(float64(day), 0, summerDuration+winterDuration)
		e.obs[adr+3] = quantizeByte(float64(e.familySizes[pid]), 0, float64(e.cfg.MaxAgents))
		e.obs[adr+4] = quantizeByte(float64(e.agents.aliveCount), 0, float64(e.cfg.MaxAgents))
	}
}
