package game

// AdjustPriority remaps one acceptance-set index to the max-even
// convention of the emitted game. maxParity says whether the original
// objective is max; winRes is 0 for even objectives and 1 for odd
// ones; numAccSets is the automaton's acceptance-set count.
//
// A min objective is turned into a max one by subtracting from
// numAccSets rounded up to an even number (the parity of p survives
// the subtraction only when numAccSets is even). The final shift of
// 2-winRes makes odd objectives even and reserves priority 0 for the
// player-0 choice vertices, whose priority must never matter.
func AdjustPriority(p int, maxParity bool, winRes, numAccSets int) int {
	evenMax := numAccSets
	if evenMax%2 != 0 {
		evenMax++
	}
	pForMax := p
	if !maxParity {
		pForMax = evenMax - p
	}
	return pForMax + (2 - winRes)
}
