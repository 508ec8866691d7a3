package world

import "github.com/jpiabrantes/territories/internal/sim/bitset"

// agentManager is the fixed-capacity slot allocator from spec.md §4.3: a
// free-stack, an alive bitset, and a cached alive-list rebuilt from the
// bitset after each birth/death batch (spec.md §9 "Cached alive list
// invariant").
type agentManager struct {
	capacity int

	aliveBitset  *bitset.Set
	aliveMask    []byte // host buffer, shared with the caller; 1 = alive
	freeStack    []int
	alivePids    []int // cached, rebuilt by refreshAlivePids; view into alivePidsBuf
	alivePidsBuf []int
	aliveCount   int
	nextPid      int
}

func newAgentManager(capacity int, aliveMask []byte) *agentManager {
	return &agentManager{
		capacity:     capacity,
		aliveBitset:  bitset.New(capacity),
		aliveMask:    aliveMask,
		freeStack:    make([]int, 0, capacity),
		alivePidsBuf: make([]int, capacity),
	}
}

func (am *agentManager) reset() {
	am.aliveBitset.Clear()
	for i := range am.aliveMask {
		am.aliveMask[i] = 0
	}
	am.freeStack = am.freeStack[:0]
	am.alivePids = am.alivePidsBuf[:0]
	am.aliveCount = 0
	am.nextPid = 0
}

// spawn allocates a slot, per spec.md §4.3. Returns (pid, true), or
// (0, false) if the population cap has been reached (capacity saturation
// is a silent no-op per spec.md §7 — the caller decides what "silent"
// means for its operation).
func (am *agentManager) spawn() (int, bool) {
	if am.aliveCount >= am.capacity {
		return 0, false
	}
	var pid int
	if n := len(am.freeStack); n > 0 {
		pid = am.freeStack[n-1]
		am.freeStack = am.freeStack[:n-1]
	} else {
		pid = am.nextPid
		am.nextPid++
	}
	am.aliveBitset.Add(pid)
	am.aliveMask[pid] = 1
	am.aliveCount++
	return pid, true
}

// kill releases a slot, per spec.md §4.3. It does not touch the agent
// record, kinship matrix, or pid_at — callers own those.
func (am *agentManager) kill(pid int) {
	if am.aliveMask[pid] == 0 {
		return
	}
	am.aliveMask[pid] = 0
	am.freeStack = append(am.freeStack, pid)
	am.aliveBitset.Remove(pid)
	am.aliveCount--
}

// refreshAlivePids rebuilds the cached ordered list from the bitset. Must be
// called before any pass that iterates alive slots, per spec.md §4.3/§9.
func (am *agentManager) refreshAlivePids() {
	n := am.aliveBitset.Enumerate(am.alivePidsBuf)
	am.alivePids = am.alivePidsBuf[:n]
}
