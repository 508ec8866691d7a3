package world

import (
	"fmt"

	"github.com/jpiabrantes/territories/internal/sim/worldmap"
)

// Buffers holds the host-owned slices the engine mutates in place for the
// lifetime of an episode, per spec.md §5/§6. The engine never reallocates
// or frees any of these.
type Buffers struct {
	Observations  []byte  // len = MaxAgents * obsSize
	Actions       []int32 // len = MaxAgents, read-only to the engine
	Rewards       []float64
	Terminals     []byte
	Truncations   []byte
	AliveMask     []byte
	KinshipMatrix []byte // len = MaxAgents * MaxAgents
	DNAs          []byte // len = MaxAgents * NGenes
}

func (b Buffers) validate(cfg Config) error {
	obsSize := cfg.obsSize()
	want := cfg.MaxAgents * obsSize
	if len(b.Observations) != want {
		return fmt.Errorf("world: observations buffer has len %d, want %d", len(b.Observations), want)
	}
	if len(b.Actions) != cfg.MaxAgents {
		return fmt.Errorf("world: actions buffer has len %d, want %d", len(b.Actions), cfg.MaxAgents)
	}
	if len(b.Rewards) != cfg.MaxAgents {
		return fmt.Errorf("world: rewards buffer has len %d, want %d", len(b.Rewards), cfg.MaxAgents)
	}
	if len(b.Terminals) != cfg.MaxAgents {
		return fmt.Errorf("world: terminals buffer has len %d, want %d", len(b.Terminals), cfg.MaxAgents)
	}
	if len(b.Truncations) != cfg.MaxAgents {
		return fmt.Errorf("world: truncations buffer has len %d, want %d", len(b.Truncations), cfg.MaxAgents)
	}
	if len(b.AliveMask) != cfg.MaxAgents {
		return fmt.Errorf("world: alive_mask buffer has len %d, want %d", len(b.AliveMask), cfg.MaxAgents)
	}
	if len(b.KinshipMatrix) != cfg.MaxAgents*cfg.MaxAgents {
		return fmt.Errorf("world: kinship_matrix buffer has len %d, want %d", len(b.KinshipMatrix), cfg.MaxAgents*cfg.MaxAgents)
	}
	if len(b.DNAs) != cfg.MaxAgents*cfg.NGenes {
		return fmt.Errorf("world: dnas buffer has len %d, want %d", len(b.DNAs), cfg.MaxAgents*cfg.NGenes)
	}
	return nil
}

// Engine is the tick-driven simulation core, spec.md's C1-C11 wired
// together. One Engine runs one episode lineage at a time; state does not
// survive across a Close/New pair.
type Engine struct {
	cfg  Config
	grid *worldmap.Grid

	table   *agentTable
	tiles   *tileStore
	agents  *agentManager
	kinship *kinshipMatrix
	rng     *rng

	tick            int
	isWinter        bool
	nextMaxEpLength int
	familySizes     []int
	prevFamilySizes []int
	terminals       []byte
	truncations     []byte
	rewards         []float64
	obs             []byte
	rawActions      []int32
	currentActions  []Action

	stats tickStats
	Log   Log
}

// New implements spec.md §9's init entry point: validates the config and
// buffer shapes, checks that the already-loaded soil grid matches the
// configured width and height, and allocates all engine-owned state.
// It does not place any agents — call Reset for that.
func New(cfg Config, buffers Buffers, grid *worldmap.Grid) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := buffers.validate(cfg); err != nil {
		return nil, err
	}
	if grid.Width != cfg.Width || grid.Height != cfg.Height {
		return nil, fmt.Errorf("world: map is %dx%d, config wants %dx%d", grid.Width, grid.Height, cfg.Width, cfg.Height)
	}

	e := &Engine{
		cfg:             cfg,
		grid:            grid,
		table:           newAgentTable(cfg.MaxAgents, cfg.NGenes, buffers.DNAs),
		tiles:           newTileStore(cfg.Width, cfg.Height, grid.IsSoil),
		agents:          newAgentManager(cfg.MaxAgents, buffers.AliveMask),
		kinship:         newKinshipMatrix(buffers.KinshipMatrix, cfg.MaxAgents, cfg.NGenes),
		rng:             newRNG(cfg.Seed),
		familySizes:     make([]int, cfg.MaxAgents),
		prevFamilySizes: make([]int, cfg.MaxAgents),
		terminals:       buffers.Terminals,
		truncations:     buffers.Truncations,
		rewards:         buffers.Rewards,
		obs:             buffers.Observations,
		rawActions:      buffers.Actions,
		currentActions:  make([]Action, cfg.MaxAgents),
	}
	return e, nil
}

// Close releases engine-owned state, per spec.md §9's close entry point.
// Host-owned buffers are left untouched — the engine never owned them.
func (e *Engine) Close() {
	e.table = nil
	e.tiles = nil
	e.agents = nil
	e.kinship = nil
}

// Render is a stub matching the ABI's optional fifth entry point.
// Rendering is out of scope for this package (spec.md §1); a host that
// calls it unconditionally gets a harmless Noop rather than a partial
// graphics implementation.
func (e *Engine) Render() int {
	return int(ActionNoop)
}

// Reset implements spec.md §4.1/§9's reset entry point: clears the episode
// state, seeds the five stone deposits, spawns four breeding pairs of
// agents with shared DNA, and computes tick-0 rewards and observations.
func (e *Engine) Reset() {
	for i := range e.terminals {
		e.terminals[i] = 0
	}
	for i := range e.truncations {
		e.truncations[i] = 0
	}
	for i := range e.prevFamilySizes {
		e.prevFamilySizes[i] = 0
	}
	e.tick = 0
	e.isWinter = false
	e.nextMaxEpLength = e.rng.nextMaxEpLength(e.cfg.MinEpLength, e.cfg.MaxEpLength)
	e.stats.reset()
	e.stats.minPop = e.cfg.MaxAgents

	e.tiles.clearPids()
	e.tiles.clearResources()
	e.tiles.seedStoneDeposits()

	e.kinship.reset()
	e.agents.reset()

	for pair := 0; pair < 4; pair++ {
		if !e.spawnBreedingPair() {
			break
		}
	}
	e.agents.refreshAlivePids()

	e.computeRewards()
	e.writeObservations()
}

// spawnBreedingPair implements original_source/src/territories.h's
// c_reset seeding loop: pick a random unblocked anchor cell, place one
// agent there and its mate in an adjacent empty cell, give them identical
// DNA (one random allele draw per gene, shared by both), and role 0.
func (e *Engine) spawnBreedingPair() bool {
	for {
		adr := e.rng.intn(e.cfg.Width * e.cfg.Height)
		r, c := adr/e.cfg.Width, adr%e.cfg.Width
		if e.tiles.isBlocked(r, c) {
			continue
		}
		r2, c2, ok := e.tiles.findEmptyCell(r, c)
		if !ok {
			continue
		}

		pid, ok := e.agents.spawn()
		if !ok {
			return false
		}
		e.table.agents[pid] = newbornAgent(r, c, e.rng)
		e.tiles.pidAt[e.tiles.index(r, c)] = pid

		pid2, ok := e.agents.spawn()
		if !ok {
			e.agents.kill(pid)
			e.tiles.pidAt[e.tiles.index(r, c)] = noneID
			return false
		}
		e.table.agents[pid2] = newbornAgent(r2, c2, e.rng)
		e.tiles.pidAt[e.tiles.index(r2, c2)] = pid2

		dna1 := e.table.dnaOf(pid)
		dna2 := e.table.dnaOf(pid2)
		for g := 0; g < e.cfg.NGenes; g++ {
			allele := byte(e.rng.intn(e.cfg.NAlleles))
			dna1[g] = allele
			dna2[g] = allele
		}
		e.table.agents[pid].Role = 0
		e.table.agents[pid2].Role = 0

		e.prevFamilySizes[pid] = e.kinship.updateOnBirth(pid, e.table, e.agents.aliveMask)
		e.prevFamilySizes[pid2] = e.kinship.updateOnBirth(pid2, e.table, e.agents.aliveMask)
		return true
	}
}

// Step implements spec.md §4.10/§9's step entry point. If the previous
// tick ended the episode, it resets instead and returns the fresh
// episode's tick-0 state.
func (e *Engine) Step() {
	for i := range e.terminals {
		e.terminals[i] = 0
	}

	if e.agents.aliveCount == 0 || e.tick >= e.nextMaxEpLength {
		e.updateEpisodeLogs()
		e.Reset()
		return
	}

	day := dayNumber(e.tick)
	if !e.isWinter && day >= summerDuration {
		e.isWinter = true
	} else if e.isWinter && day < summerDuration {
		e.isWinter = false
		e.tiles.startCropGrowth()
	}
	e.tick++

	trackStats := e.tick < e.cfg.MinEpLength
	if trackStats {
		e.stats.avgPopulation += e.agents.aliveCount
		if e.agents.aliveCount > e.stats.maxPop {
			e.stats.maxPop = e.agents.aliveCount
		}
		if e.agents.aliveCount < e.stats.minPop {
			e.stats.minPop = e.agents.aliveCount
		}
	}

	e.snapshotActions()

	e.resolveActions()
	e.agents.refreshAlivePids()

	e.sweepDeaths()

	if e.tick >= e.nextMaxEpLength {
		for i := range e.truncations {
			e.truncations[i] = 1
		}
	}

	e.computeRewards()
	e.writeObservations()
}

// snapshotActions normalises the host's raw action codes once per tick, so
// mid-tick mutations to the host buffer (e.g. a host reusing the slice)
// can't change an agent's action after it has already acted.
func (e *Engine) snapshotActions() {
	for pid := 0; pid < e.cfg.MaxAgents; pid++ {
		e.currentActions[pid] = normalizeAction(e.actionCodeOf(pid))
	}
}

func (e *Engine) actionCodeOf(pid int) int32 {
	return e.rawActions[pid]
}
