// Package game turns a deterministic, complete, transition-colored
// parity automaton into a two-player parity game: player 1 picks the
// values of the uncontrollable atomic propositions, player 0 answers
// with the controllable ones, and the joint valuation drives the
// automaton. Player 0 wins iff the run satisfies the max-even parity
// condition derived from the automaton's acceptance.
package game

import (
	"fmt"

	"hoa-tools/hoa"
)

// TV is a three-valued truth value.
type TV int8

const (
	False   TV = -1
	Unknown TV = 0
	True    TV = 1
)

func (v TV) String() string {
	switch v {
	case False:
		return "false"
	case True:
		return "true"
	}
	return "unknown"
}

// Negate flips True and False and leaves Unknown alone.
func (v TV) Negate() TV { return -v }

// EvalLabel evaluates a label under a partial valuation. projection is
// an ordered list of AP indices and value is a bitmask over it: bit i
// of value holds the truth of projection[i]. An AP outside the
// projection makes the result Unknown; the connectives follow Kleene
// three-valued logic.
//
// Errors indicate a contract violation by the automaton producer: an
// acceptance-only node kind inside a label, an undefined alias, or a
// cyclic alias chain.
func EvalLabel(label *hoa.LabelNode, aliases []hoa.Alias, projection []int, value uint) (TV, error) {
	return evalLabel(label, aliases, projection, value, len(aliases))
}

func evalLabel(n *hoa.LabelNode, aliases []hoa.Alias, projection []int, value uint, aliasBudget int) (TV, error) {
	if n == nil {
		return Unknown, fmt.Errorf("nil label node")
	}
	switch n.Kind {
	case hoa.NodeBool:
		if n.Value {
			return True, nil
		}
		return False, nil
	case hoa.NodeAnd:
		left, err := evalLabel(n.Left, aliases, projection, value, aliasBudget)
		if err != nil {
			return Unknown, err
		}
		right, err := evalLabel(n.Right, aliases, projection, value, aliasBudget)
		if err != nil {
			return Unknown, err
		}
		if left == False || right == False {
			return False, nil
		}
		if left == Unknown || right == Unknown {
			return Unknown, nil
		}
		return True, nil
	case hoa.NodeOr:
		left, err := evalLabel(n.Left, aliases, projection, value, aliasBudget)
		if err != nil {
			return Unknown, err
		}
		right, err := evalLabel(n.Right, aliases, projection, value, aliasBudget)
		if err != nil {
			return Unknown, err
		}
		if left == True || right == True {
			return True, nil
		}
		if left == Unknown || right == Unknown {
			return Unknown, nil
		}
		return False, nil
	case hoa.NodeNot:
		v, err := evalLabel(n.Left, aliases, projection, value, aliasBudget)
		return v.Negate(), err
	case hoa.NodeAP:
		for i, ap := range projection {
			if ap == n.ID {
				if value&(1<<uint(i)) != 0 {
					return True, nil
				}
				return False, nil
			}
		}
		return Unknown, nil
	case hoa.NodeAlias:
		for i := range aliases {
			if aliases[i].Name == n.Alias {
				// An acyclic alias chain is at most as deep as the
				// number of defined aliases.
				if aliasBudget <= 0 {
					return Unknown, fmt.Errorf("alias chain through @%s is too deep, cyclic aliases?", n.Alias)
				}
				return evalLabel(aliases[i].Expr, aliases, projection, value, aliasBudget-1)
			}
		}
		return Unknown, fmt.Errorf("undefined alias @%s", n.Alias)
	}
	return Unknown, fmt.Errorf("unexpected %s node in a transition label", n.Kind)
}
