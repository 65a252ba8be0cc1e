package achievements

import "testing"

func TestLevelFormulaRoundTrip(t *testing.T) {
	for xp := 0; xp <= 10000; xp++ {
		level := LevelFromXP(xp)
		if level < 1 {
			t.Fatalf("xp %d: level %d < 1", xp, level)
		}
		if XPForLevel(level) > xp {
			t.Fatalf("xp %d: xpForLevel(%d) = %d exceeds xp", xp, level, XPForLevel(level))
		}
		if xp >= XPForLevel(level+1) {
			t.Fatalf("xp %d: should already be level %d", xp, level+1)
		}
	}
}

func TestLevelThresholds(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{900, 4},
	}

	for _, tt := range tests {
		if got := LevelFromXP(tt.xp); got != tt.want {
			t.Fatalf("LevelFromXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestXPForLevelCurve(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 0},
		{2, 100},
		{3, 400},
		{5, 1600},
	}

	for _, tt := range tests {
		if got := XPForLevel(tt.level); got != tt.want {
			t.Fatalf("XPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}
