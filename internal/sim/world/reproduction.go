package world

// canReproduce implements spec.md §4.7 _agent_can_reproduce.
func canReproduce(a *Agent) bool {
	return a.Age >= reproductionAge && a.Satiation > maxSatiation/2
}

// findEmptyCell scans the Moore neighbourhood of (r,c) row by row, from the
// up-left neighbour to the down-right one, and returns the first unblocked
// cell with ok == true, or (0,0,false) if none exists. Grounded on
// original_source/src/territories.h's find_empty_cell.
func (ts *tileStore) findEmptyCell(r, c int) (int, int, bool) {
	for rOff := -1; rOff <= 1; rOff++ {
		for cOff := -1; cOff <= 1; cOff++ {
			if rOff == 0 && cOff == 0 {
				continue
			}
			tr := wrap(r+rOff, ts.height)
			tc := wrap(c+cOff, ts.width)
			if !ts.isBlocked(tr, tc) {
				return tr, tc, true
			}
		}
	}
	return 0, 0, false
}

// findMate scans the caller's Moore neighbourhood for an occupied cell
// whose agent also chose Reproduce this tick and can reproduce. Grounded on
// original_source/src/territories.h's _find_mate.
func (e *Engine) findMate(a *Agent) (int, bool) {
	for rOff := -1; rOff <= 1; rOff++ {
		for cOff := -1; cOff <= 1; cOff++ {
			if rOff == 0 && cOff == 0 {
				continue
			}
			tr := wrap(a.R+rOff, e.cfg.Height)
			tc := wrap(a.C+cOff, e.cfg.Width)
			pid := e.tiles.pidAt[e.tiles.index(tr, tc)]
			if pid == noneID || e.currentActions[pid] != ActionReproduce {
				continue
			}
			mate := &e.table.agents[pid]
			if canReproduce(mate) {
				return pid, true
			}
		}
	}
	return 0, false
}

// reproduce implements spec.md §4.7 agent_reproduce. It costs both parents
// half their max satiation, places the child in an empty neighbouring cell,
// inherits each gene from a uniformly random parent, and assigns the child
// a uniformly random role.
//
// Unlike the original, a missing empty cell is a no-op rather than
// undefined behaviour (original_source's find_empty_cell can return -1,
// which the original then uses as a raw array index — fixed here per
// spec.md §9).
func (e *Engine) reproduce(pid int) {
	a := &e.table.agents[pid]
	if !canReproduce(a) || e.agents.aliveCount >= e.cfg.MaxAgents {
		return
	}
	matePid, ok := e.findMate(a)
	if !ok {
		return
	}
	newR, newC, ok := e.tiles.findEmptyCell(a.R, a.C)
	if !ok {
		return
	}
	mate := &e.table.agents[matePid]
	a.Satiation -= maxSatiation / 2
	mate.Satiation -= maxSatiation / 2

	childPid, ok := e.agents.spawn()
	if !ok {
		return
	}
	child := &e.table.agents[childPid]
	*child = newbornAgent(newR, newC, e.rng)
	e.tiles.pidAt[e.tiles.index(newR, newC)] = childPid

	dna := e.table.dnaOf(childPid)
	parentDNA := e.table.dnaOf(pid)
	mateDNA := e.table.dnaOf(matePid)
	for g := 0; g < e.cfg.NGenes; g++ {
		if e.rng.intn(2) == 0 {
			dna[g] = parentDNA[g]
		} else {
			dna[g] = mateDNA[g]
		}
	}
	child.Role = e.rng.intn(e.cfg.NRoles)

	e.prevFamilySizes[childPid] = e.kinship.updateOnBirth(childPid, e.table, e.agents.aliveMask)
	if e.tick < e.cfg.MinEpLength {
		e.stats.births++
	}
}
