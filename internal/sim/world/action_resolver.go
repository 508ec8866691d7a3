package world

// resolveActions implements spec.md §4.8: after ageing/metabolism/auto-eat,
// every alive agent (in shuffled order) applies its chosen action, skipping
// agents already killed earlier in the same pass (an attack victim may die
// before its own turn comes up). Grounded on
// original_source/src/territories.h's c_step main loop.
func (e *Engine) resolveActions() {
	order := e.agents.alivePids
	e.rng.shuffle(order)

	trackStats := e.tick < e.cfg.MinEpLength

	for _, pid := range order {
		a := &e.table.agents[pid]
		if a.HP <= 0 {
			continue
		}
		a.Age++
		if a.Age == reproductionAge {
			a.HPMax = maxHP
			a.HP = maxHP
		}
		a.Satiation -= metabolismRate

		if a.FoodCarried > 0 {
			appetite := maxSatiation - a.Satiation
			eat := min(appetite, a.FoodCarried)
			a.FoodCarried -= eat
			a.Satiation += eat
			if trackStats {
				e.stats.foodEaten += eat
			}
		}

		e.applyAction(pid, a, e.currentActions[pid], trackStats)

		if a.Satiation <= 0 && trackStats {
			e.stats.starvations++
		}
	}
}

func (e *Engine) applyAction(pid int, a *Agent, action Action, trackStats bool) {
	switch {
	case action >= ActionMoveUp && action <= ActionMoveLeft:
		e.move(pid, a, action)
	case action == ActionPickup:
		e.pickup(a, trackStats)
	case action == ActionMine:
		e.mine(a, trackStats)
	case action == ActionPackage:
		e.packageFood(a, trackStats)
	case action == ActionBuildWall:
		e.buildWall(a, trackStats)
	case action == ActionAttack:
		e.attack(pid, a, trackStats)
	case action == ActionReproduce:
		e.reproduce(pid)
	}
	// ActionNoop: nothing to do.
}

// move implements spec.md §4.8 move/turn semantics: the agent always turns
// to face the requested direction, but only actually steps if it was
// already facing that way (i.e. "move" is "turn, then step on the second
// consecutive tick facing that way").
func (e *Engine) move(pid int, a *Agent, action Action) {
	dir := Direction(action)
	if dir == a.Dir {
		d := deltas[dir]
		newR := wrap(a.R+d[0], e.cfg.Height)
		newC := wrap(a.C+d[1], e.cfg.Width)
		if !e.tiles.isBlocked(newR, newC) {
			e.tiles.pidAt[e.tiles.index(a.R, a.C)] = noneID
			e.tiles.pidAt[e.tiles.index(newR, newC)] = pid
			a.R, a.C = newR, newC
		}
	}
	a.Dir = dir
}

func (e *Engine) pickup(a *Agent, trackStats bool) {
	i := e.tiles.index(a.R, a.C)
	capacity := maxFoodCarryCapacity - a.FoodCarried
	day := dayNumber(e.tick)

	if e.tiles.storedFood[i] > 0 {
		stored := int(e.tiles.storedFood[i])
		take := min(stored, capacity)
		e.tiles.storedFood[i] -= uint16(take)
		a.FoodCarried += take
		if take == stored && !e.isWinter && e.tiles.isSoil[i] {
			e.tiles.lastHarvest[i] = uint16(day)
		}
		return
	}

	growthDays := e.tiles.growthDays(a.R, a.C, e.isWinter, e.tick)
	if growthDays <= 0 {
		return
	}
	available := cropAvailable(growthDays)
	take := min(available, capacity)
	e.tiles.lastHarvest[i] = uint16(day)
	a.FoodCarried += take
	if take < available {
		e.tiles.storedFood[i] = uint16(available - take)
	}
}

func (e *Engine) mine(a *Agent, trackStats bool) {
	if a.StoneCarried >= maxStoneCarryCapacity {
		return
	}
	for dir := Direction(0); dir < 4; dir++ {
		d := deltas[dir]
		rr := wrap(a.R+d[0], e.cfg.Height)
		cc := wrap(a.C+d[1], e.cfg.Width)
		i := e.tiles.index(rr, cc)
		if e.tiles.stone[i] > 0 {
			e.tiles.stone[i]--
			a.StoneCarried++
			a.Dir = dir
			if trackStats {
				e.stats.stoneMined += stoneMinedStatPerTick
			}
			return
		}
	}
}

func (e *Engine) packageFood(a *Agent, trackStats bool) {
	i := e.tiles.index(a.R, a.C)
	day := dayNumber(e.tick)

	growthDays := e.tiles.growthDays(a.R, a.C, e.isWinter, e.tick)
	if growthDays > 0 {
		available := cropAvailable(growthDays)
		e.tiles.lastHarvest[i] = uint16(day)
		e.tiles.storedFood[i] += uint16(available)
		if trackStats {
			e.stats.foodStored += available
		}
	}
	if a.FoodCarried > 0 {
		capacity := maxFoodStorageCap - int(e.tiles.storedFood[i])
		drop := min(a.FoodCarried, capacity)
		e.tiles.storedFood[i] += uint16(drop)
		a.FoodCarried -= drop
		if trackStats {
			e.stats.foodStored += drop
		}
	}
}

func (e *Engine) buildWall(a *Agent, trackStats bool) {
	if a.StoneCarried <= 0 {
		return
	}
	d := deltas[a.Dir]
	r := wrap(a.R+d[0], e.cfg.Height)
	c := wrap(a.C+d[1], e.cfg.Width)
	if e.tiles.isBlocked(r, c) {
		return
	}
	e.tiles.placeWall(r, c)
	a.StoneCarried--
	if trackStats {
		e.stats.wallsBuilt++
	}
}

// attack implements spec.md §4.8 agent_attack: scan the three-cell forward
// arc starting from the current facing, rotating through all four
// directions until something is hit (a wall or an occupied cell).
func (e *Engine) attack(pid int, a *Agent, trackStats bool) {
	var targetR, targetC int
	isWall := false
	hit := false
	dir := a.Dir

	for step := 0; step < 4 && !hit; step++ {
		d := (int(a.Dir) + step) % 4
		for _, delta := range attackSword[d] {
			rr := wrap(a.R+delta[0], e.cfg.Height)
			cc := wrap(a.C+delta[1], e.cfg.Width)
			i := e.tiles.index(rr, cc)
			if e.tiles.wallHP[i] > 0 {
				isWall = true
				hit = true
			} else if e.tiles.pidAt[i] != noneID {
				hit = true
			}
			if hit {
				dir = Direction(d)
				targetR, targetC = rr, cc
				break
			}
		}
	}
	a.Dir = dir
	if !hit {
		return
	}

	i := e.tiles.index(targetR, targetC)
	if isWall {
		e.tiles.wallHP[i]--
		if e.tiles.wallHP[i] == 0 {
			if trackStats {
				e.stats.wallDestroyed++
			}
			e.tiles.destroyWall(targetR, targetC, e.isWinter, dayNumber(e.tick))
		}
		return
	}

	targetPid := e.tiles.pidAt[i]
	target := &e.table.agents[targetPid]
	target.HP--
	if target.HP == 0 {
		if trackStats {
			e.stats.murders++
		}
		a.Satiation = min(maxSatiation, a.Satiation+target.Satiation/2)
		a.StoneCarried = min(maxStoneCarryCapacity, a.StoneCarried+target.StoneCarried)
		a.FoodCarried = min(maxFoodCarryCapacity, a.FoodCarried+target.FoodCarried)
	}
}
