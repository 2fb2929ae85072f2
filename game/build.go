package game

import (
	"fmt"
	"strconv"

	"hoa-tools/hoa"
)

// Sink receives the vertices of the game as the builder produces them.
// Vertex is called once per vertex, in emission order; succs is never
// empty and must not be retained.
type Sink interface {
	Header(maxID int) error
	Vertex(id, priority, owner int, succs []int, label string) error
}

// UncontrollableAPs returns the AP indices not marked controllable, in
// ascending order. Bit i of a valuation passed to EvalLabel refers to
// the i-th entry of this projection.
func UncontrollableAPs(aut *hoa.Automaton) []int {
	controllable := make(map[int]bool, len(aut.CntAPs))
	for _, c := range aut.CntAPs {
		controllable[c] = true
	}
	ucnt := make([]int, 0, aut.NumAPs-len(aut.CntAPs))
	for i := 0; i < aut.NumAPs; i++ {
		if !controllable[i] {
			ucnt = append(ucnt, i)
		}
	}
	return ucnt
}

// Build walks the automaton and streams the game into sink. Per state
// it emits one player-0 "partial valuation" vertex for every valuation
// of the uncontrollable APs, fanning out to one priority-carrying
// player-0 vertex per compatible transition, and finally the player-1
// vertex for the state itself fanning out over the valuations.
// Automaton states keep their ids; all other ids are allocated
// monotonically from NumStates up.
//
// A transition counts as compatible when its label does not evaluate
// to False under the partial valuation. An Unknown label is offered to
// player 0 unconditionally, without pinning down the controllable
// values that would make it hold; for a deterministic and complete
// automaton this does not change the winner.
func Build(aut *hoa.Automaton, obj Objective, sink Sink) error {
	ucntAPs := UncontrollableAPs(aut)
	numValuations := uint(1) << uint(len(ucntAPs))
	nextIndex := aut.NumStates

	if err := sink.Header(aut.NumStates*(int(numValuations)+1) - 1); err != nil {
		return err
	}

	var compatible []int
	for si := range aut.States {
		state := &aut.States[si]
		firstSucc := nextIndex
		nextIndex += int(numValuations)
		for value := uint(0); value < numValuations; value++ {
			partVal := firstSucc + int(value)
			compatible = compatible[:0]
			for ti := range state.Edges {
				trans := &state.Edges[ti]
				if len(trans.Successors) != 1 {
					return fmt.Errorf("state %d: transition %d has %d successors, the automaton is not deterministic",
						state.ID, ti, len(trans.Successors))
				}
				label := state.Label
				if label == nil {
					label = trans.Label
				}
				if label == nil {
					return fmt.Errorf("state %d: transition %d has no label at either level", state.ID, ti)
				}
				acc := state.AccSig
				if acc == nil {
					acc = trans.AccSig
				}
				if len(acc) != 1 {
					return fmt.Errorf("state %d: transition %d carries %d acceptance sets, the automaton is not colored",
						state.ID, ti, len(acc))
				}
				priority := AdjustPriority(acc[0], obj.MaxParity, obj.WinRes, aut.NumAccSets)
				evald, err := EvalLabel(label, aut.Aliases, ucntAPs, value)
				if err != nil {
					return fmt.Errorf("state %d: transition %d: %w", state.ID, ti, err)
				}
				if evald == False {
					continue
				}
				fullVal := nextIndex
				nextIndex++
				// The full-valuation vertex has a single forced move to
				// the transition's successor state.
				err = sink.Vertex(fullVal, priority, 0,
					[]int{trans.Successors[0]}, strconv.Itoa(fullVal))
				if err != nil {
					return err
				}
				compatible = append(compatible, fullVal)
			}
			if len(compatible) == 0 {
				return fmt.Errorf("state %d: no transition is compatible with valuation %d, the automaton is not complete",
					state.ID, value)
			}
			succs := make([]int, len(compatible))
			for i, id := range compatible {
				succs[len(succs)-1-i] = id
			}
			if err := sink.Vertex(partVal, 0, 0, succs, strconv.Itoa(partVal)); err != nil {
				return err
			}
		}
		succs := make([]int, numValuations)
		for i := range succs {
			succs[i] = firstSucc + i
		}
		label := state.Name
		if label == "" {
			label = strconv.Itoa(state.ID)
		}
		if err := sink.Vertex(state.ID, 0, 1, succs, label); err != nil {
			return err
		}
	}
	return nil
}
