package game_test

import (
	"testing"

	"hoa-tools/game"
)

func TestAdjustPriorityMax(t *testing.T) {
	// Max objectives just shift: +2 for even, +1 for odd.
	for p := 0; p < 6; p++ {
		if got := game.AdjustPriority(p, true, 0, 6); got != p+2 {
			t.Errorf("max even %d: got %d, want %d", p, got, p+2)
		}
		if got := game.AdjustPriority(p, true, 1, 6); got != p+1 {
			t.Errorf("max odd %d: got %d, want %d", p, got, p+1)
		}
	}
}

func TestAdjustPriorityMin(t *testing.T) {
	cases := []struct {
		p, winRes, numAccSets int
		want                  int
	}{
		// Even numAccSets: the subtraction preserves parity.
		{0, 0, 2, 4}, // 2 - 0 + 2
		{1, 0, 2, 3},
		{2, 0, 2, 2},
		{0, 0, 4, 6},
		{3, 0, 4, 3},
		// Odd numAccSets rounds up before subtracting.
		{0, 0, 3, 6}, // 4 - 0 + 2
		{1, 0, 3, 5},
		{3, 0, 3, 3},
	}
	for _, c := range cases {
		if got := game.AdjustPriority(c.p, false, c.winRes, c.numAccSets); got != c.want {
			t.Errorf("min winRes=%d n=%d p=%d: got %d, want %d",
				c.winRes, c.numAccSets, c.p, got, c.want)
		}
	}
}

func TestAdjustPriorityMinOddConvention(t *testing.T) {
	// min odd with 4 acceptance sets maps priority 0 to 4-0+1 = 5.
	// The result is odd; this is the original tool's convention and is
	// pinned here rather than repaired.
	if got := game.AdjustPriority(0, false, 1, 4); got != 5 {
		t.Errorf("min odd n=4 p=0: got %d, want 5", got)
	}
}

func TestAdjustPriorityAboveZero(t *testing.T) {
	// Priority 0 stays reserved for player-0 choice vertices.
	for p := 0; p < 8; p++ {
		for _, maxParity := range []bool{true, false} {
			for winRes := 0; winRes <= 1; winRes++ {
				got := game.AdjustPriority(p, maxParity, winRes, 8)
				if got <= 0 {
					t.Errorf("p=%d max=%v winRes=%d: got %d, want > 0",
						p, maxParity, winRes, got)
				}
			}
		}
	}
}
