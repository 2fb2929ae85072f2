package game

import (
	"fmt"

	"hoa-tools/hoa"
)

// ShapeError reports an automaton that does not have the required
// shape. Code is the process exit status associated with the failure.
type ShapeError struct {
	Code   int
	Reason string
}

func (e *ShapeError) Error() string { return e.Reason }

// Objective is the parity objective extracted from the acc-name
// header: whether the extremal priority is the maximal one, and
// whether player 0 wins on even (WinRes 0) or odd (WinRes 1) parity.
type Objective struct {
	MaxParity bool
	WinRes    int
}

// Validate checks that the automaton is a parity automaton with a max
// or min, even or odd objective, that it declares itself
// deterministic, complete and colored, and that it has a unique start
// state. On success it reports the objective. Each rejection carries a
// distinct exit code in its ShapeError.
func Validate(aut *hoa.Automaton) (Objective, error) {
	var obj Objective
	if aut.AccNameID != "parity" {
		return obj, &ShapeError{100, fmt.Sprintf(
			"expected \"parity...\" automaton, found %q as automaton type", aut.AccNameID)}
	}
	foundOrd := false
	foundRes := false
	for _, param := range aut.AccNameParameters {
		switch param {
		case "max":
			obj.MaxParity = true
			foundOrd = true
		case "min":
			obj.MaxParity = false
			foundOrd = true
		case "even":
			obj.WinRes = 0
			foundRes = true
		case "odd":
			obj.WinRes = 1
			foundRes = true
		}
	}
	if !foundOrd {
		return obj, &ShapeError{101, `expected "max" or "min" in the acceptance name`}
	}
	if !foundRes {
		return obj, &ShapeError{102, `expected "even" or "odd" in the acceptance name`}
	}

	det := false
	complete := false
	colored := false
	for _, prop := range aut.Properties {
		switch prop {
		case "deterministic":
			det = true
		case "complete":
			complete = true
		case "colored":
			colored = true
		}
	}
	if !det {
		return obj, &ShapeError{200, `expected a deterministic automaton, did not find "deterministic" in the properties`}
	}
	if !complete {
		return obj, &ShapeError{201, `expected a complete automaton, did not find "complete" in the properties`}
	}
	if !colored {
		return obj, &ShapeError{202, `expected one acceptance set per transition, did not find "colored" in the properties`}
	}
	if len(aut.Start) != 1 {
		return obj, &ShapeError{300, "expected a unique start state"}
	}
	return obj, nil
}
