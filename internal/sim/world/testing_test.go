package world

import "github.com/jpiabrantes/territories/internal/sim/worldmap"

// newTestEngine builds a small all-soil world with the given overrides
// applied on top of a minimal-but-valid default config, wired to freshly
// allocated buffers. Tests mutate the returned buffers directly to set up
// scenarios before calling Step/Reset.
func newTestEngine(t testingT, override func(*Config)) (*Engine, Buffers) {
	cfg := Config{
		ID:               "test",
		NGenes:           1,
		NAlleles:         2,
		Width:            8,
		Height:           8,
		MaxAgents:        16,
		NRoles:           1,
		MinEpLength:      50,
		MaxEpLength:      51,
		ExtinctionReward: -1,
		Seed:             1,
	}
	if override != nil {
		override(&cfg)
	}

	buffers := Buffers{
		Observations:  make([]byte, cfg.MaxAgents*cfg.obsSize()),
		Actions:       make([]int32, cfg.MaxAgents),
		Rewards:       make([]float64, cfg.MaxAgents),
		Terminals:     make([]byte, cfg.MaxAgents),
		Truncations:   make([]byte, cfg.MaxAgents),
		AliveMask:     make([]byte, cfg.MaxAgents),
		KinshipMatrix: make([]byte, cfg.MaxAgents*cfg.MaxAgents),
		DNAs:          make([]byte, cfg.MaxAgents*cfg.NGenes),
	}
	grid := worldmap.Blank(cfg.Width, cfg.Height)

	e, err := New(cfg, buffers, grid)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, buffers
}

// testingT is the subset of *testing.T this helper needs, so it can be
// called from any _test.go file in the package without importing testing
// at the package (non-test) level.
type testingT interface {
	Fatalf(format string, args ...any)
}

// clearWorldForTest kills every alive agent and clears pid_at and the
// kinship matrix (tile resources are left as they are), leaving the
// engine's episode bookkeeping (tick, season, rng) untouched — useful for
// hand-placing a small, specific agent configuration after New/Reset.
func (e *Engine) clearWorldForTest() {
	for _, pid := range append([]int{}, e.agents.alivePids...) {
		e.agents.kill(pid)
	}
	e.agents.refreshAlivePids()
	e.tiles.clearPids()
	e.kinship.reset()
}

// spawnTestAgent directly allocates a slot and places an adult agent at
// (r,c) with the given DNA (age reproductionAge, full HP and satiation,
// facing Up), bypassing the reproduction/reset spawning paths.
func (e *Engine) spawnTestAgent(r, c int, dna []byte) (int, bool) {
	pid, ok := e.agents.spawn()
	if !ok {
		return 0, false
	}
	e.table.agents[pid] = Agent{
		R: r, C: c,
		Dir:          DirUp,
		HP:           maxHP,
		HPMax:        maxHP,
		Satiation:    maxSatiation,
		MaxSatiation: maxSatiation,
		Age:          reproductionAge,
	}
	e.tiles.pidAt[e.tiles.index(r, c)] = pid
	copy(e.table.dnaOf(pid), dna)
	e.kinship.updateOnBirth(pid, e.table, e.agents.aliveMask)
	return pid, true
}
