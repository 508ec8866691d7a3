package world

import "testing"

func TestWrapToroidal(t *testing.T) {
	cases := []struct{ v, n, want int }{
		{5, 8, 5},
		{8, 8, 0},
		{-1, 8, 7},
		{-9, 8, 7},
		{0, 8, 0},
	}
	for _, c := range cases {
		if got := wrap(c.v, c.n); got != c.want {
			t.Fatalf("wrap(%d,%d) = %d, want %d", c.v, c.n, got, c.want)
		}
	}
}

func TestPlaceAndDestroyWall(t *testing.T) {
	ts := newTileStore(4, 4, make([]bool, 16))
	for i := range ts.isSoil {
		ts.isSoil[i] = true
	}
	ts.storedFood[ts.index(1, 1)] = 10

	ts.placeWall(1, 1)
	if ts.wallHP[ts.index(1, 1)] != wallHPMax {
		t.Fatalf("wall_hp after placeWall = %d, want %d", ts.wallHP[ts.index(1, 1)], wallHPMax)
	}
	if ts.storedFood[ts.index(1, 1)] != 0 {
		t.Fatalf("placeWall should wipe stored_food, got %d", ts.storedFood[ts.index(1, 1)])
	}
	if !ts.isBlocked(1, 1) {
		t.Fatalf("tile with a wall should be blocked")
	}

	ts.destroyWall(1, 1, false, 42)
	if ts.wallHP[ts.index(1, 1)] != 0 {
		t.Fatalf("wall_hp after destroyWall = %d, want 0", ts.wallHP[ts.index(1, 1)])
	}
	if ts.lastHarvest[ts.index(1, 1)] != 42 {
		t.Fatalf("destroyWall in summer on soil should set last_harvest to the day, got %d", ts.lastHarvest[ts.index(1, 1)])
	}
}

func TestDestroyWallInWinterDoesNotResetHarvest(t *testing.T) {
	ts := newTileStore(4, 4, make([]bool, 16))
	for i := range ts.isSoil {
		ts.isSoil[i] = true
	}
	ts.lastHarvest[ts.index(0, 0)] = 5
	ts.wallHP[ts.index(0, 0)] = wallHPMax
	ts.destroyWall(0, 0, true, 99)
	if ts.lastHarvest[ts.index(0, 0)] != 5 {
		t.Fatalf("destroyWall in winter should leave last_harvest alone, got %d", ts.lastHarvest[ts.index(0, 0)])
	}
}

func TestIsBlockedByStoneOrAgent(t *testing.T) {
	ts := newTileStore(4, 4, make([]bool, 16))
	if ts.isBlocked(0, 0) {
		t.Fatalf("empty tile should not be blocked")
	}
	ts.stone[ts.index(0, 0)] = 5
	if !ts.isBlocked(0, 0) {
		t.Fatalf("tile with stone should be blocked")
	}
	ts.stone[ts.index(0, 0)] = 0
	ts.pidAt[ts.index(0, 0)] = 3
	if !ts.isBlocked(0, 0) {
		t.Fatalf("occupied tile should be blocked")
	}
}

func TestGrowthDaysCapsAtMax(t *testing.T) {
	isSoil := make([]bool, 16)
	for i := range isSoil {
		isSoil[i] = true
	}
	ts := newTileStore(4, 4, isSoil)
	// dayNumber(25) = (25+startingDay) % (summer+winter) = 80, well past the
	// 70-day growth cap with last_harvest still at its zero default.
	d := ts.growthDays(0, 0, false, 25)
	if d != maxGrowthDuration {
		t.Fatalf("growthDays should cap at %d, got %d", maxGrowthDuration, d)
	}
}

func TestGrowthDaysZeroInWinterOrOnBlockedTile(t *testing.T) {
	isSoil := make([]bool, 16)
	for i := range isSoil {
		isSoil[i] = true
	}
	ts := newTileStore(4, 4, isSoil)
	if d := ts.growthDays(0, 0, true, 100); d != 0 {
		t.Fatalf("winter growthDays = %d, want 0", d)
	}
	ts.stone[ts.index(1, 1)] = 1
	if d := ts.growthDays(1, 1, false, 100); d != 0 {
		t.Fatalf("stone tile growthDays = %d, want 0", d)
	}
}

func TestCropAvailableGrowthLaw(t *testing.T) {
	if got := cropAvailable(0); got != 0 {
		t.Fatalf("cropAvailable(0) = %d, want 0", got)
	}
	got := cropAvailable(maxGrowthDuration)
	if got <= 0 {
		t.Fatalf("cropAvailable(maxGrowthDuration) should be positive, got %d", got)
	}
}
