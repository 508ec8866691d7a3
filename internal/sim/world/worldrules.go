package world

import "math"

// dayNumber implements spec.md §4.4: day = (tick + STARTING_DAY) mod
// (SUMMER_DURATION + WINTER_DURATION). Summer runs [0, SUMMER_DURATION),
// winter runs [SUMMER_DURATION, SUMMER_DURATION+WINTER_DURATION).
func dayNumber(tick int) int {
	return (tick + startingDay) % (summerDuration + winterDuration)
}

// growthDays implements spec.md §4.4 get_growth_days: a tile that is
// winter-locked, non-soil, already storing food, holding stone, or walled
// grows nothing. Otherwise it is the number of days since last_harvest,
// capped at maxGrowthDuration.
func (ts *tileStore) growthDays(r, c int, isWinter bool, tick int) int {
	i := ts.index(r, c)
	if isWinter || !ts.isSoil[i] || ts.storedFood[i] > 0 || ts.stone[i] > 0 || ts.wallHP[i] > 0 {
		return 0
	}
	d := dayNumber(tick) - int(ts.lastHarvest[i])
	if d > maxGrowthDuration {
		return maxGrowthDuration
	}
	return d
}

// cropAvailable implements spec.md §4.4's crop growth law:
// floor(exp(K*growth_days) - 1).
func cropAvailable(growthDays int) int {
	return int(math.Exp(cropGrowthK*float64(growthDays)) - 1)
}

// startCropGrowth implements spec.md §4.4 start_crop_growth, run once when
// winter ends: every soil tile's last_harvest resets to 0, restarting the
// growth clock.
func (ts *tileStore) startCropGrowth() {
	for i := range ts.isSoil {
		if ts.isSoil[i] {
			ts.lastHarvest[i] = 0
		}
	}
}

// seedStoneDeposits implements spec.md §4.4's five deterministic stone
// anchors: the four quarter-points of the grid plus the exact centre, each
// loaded to stonePerMine. Anchors are computed the same way regardless of
// width/height parity, per original_source/src/territories.h's c_reset.
func (ts *tileStore) seedStoneDeposits() {
	width, height := ts.width, ts.height
	for ri := 0; ri < 2; ri++ {
		for ci := 0; ci < 2; ci++ {
			r := int((0.25 + float64(ri)*0.50) * float64(height))
			c := int((0.25 + float64(ci)*0.50) * float64(width))
			ts.stone[ts.index(r, c)] = stonePerMine
		}
	}
	ts.stone[ts.index(height/2, width/2)] = stonePerMine
}
