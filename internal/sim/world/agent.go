package world

// Agent is a slot-indexed record, per spec.md §3. Slots are reused across
// the episode: a pid is only meaningful while alive_mask[pid] holds during
// the current tick (spec.md §9 "Slot reuse vs identity").
type Agent struct {
	R, C         int
	Dir          Direction
	HP, HPMax    int
	Satiation    int
	MaxSatiation int
	Age          int

	FoodCarried  int
	StoneCarried int
	Role         int
}

// agentTable is the fixed-capacity array of agent records (C4). DNA lives
// alongside it, indexed the same way, and survives across a slot's death
// until it is rewritten on the slot's next spawn.
type agentTable struct {
	agents []Agent
	dna    []byte // len = maxAgents * nGenes, row-major per pid
	nGenes int
}

// newAgentTable allocates the agent records. dna is the host-owned DNA
// buffer (Buffers.DNAs) — the table never allocates its own.
func newAgentTable(maxAgents, nGenes int, dna []byte) *agentTable {
	return &agentTable{
		agents: make([]Agent, maxAgents),
		dna:    dna,
		nGenes: nGenes,
	}
}

func (t *agentTable) dnaOf(pid int) []byte {
	return t.dna[pid*t.nGenes : (pid+1)*t.nGenes]
}

// newbornAgent implements original_source/src/territories.h's spawn_agent
// agent-record initialisation: 1 HP, full satiation, age 0, a random
// facing, nothing carried.
func newbornAgent(r, c int, g *rng) Agent {
	return Agent{
		R: r, C: c,
		Dir:          g.direction(),
		HP:           1,
		HPMax:        1,
		Satiation:    maxSatiation,
		MaxSatiation: maxSatiation,
	}
}
