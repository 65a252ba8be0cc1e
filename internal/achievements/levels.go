package achievements

import "math"

// LevelFromXP derives the current level from total XP:
// floor(sqrt(xp/100)) + 1. Level 1 starts at 0 XP.
func LevelFromXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return int(math.Sqrt(float64(xp)/100)) + 1
}

// XPForLevel is the total XP at which a level begins: (L-1)² × 100
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return (level - 1) * (level - 1) * 100
}
