// Package hoa parses Extended Hanoi Omega-Automata (EHOA) files into a
// typed automaton structure. The extension over plain HOA is the
// controllable-AP header, which marks the atomic propositions owned by
// the system in a synthesis problem.
package hoa

import (
	"fmt"
	"strconv"
)

// NodeKind discriminates the variants of a LabelNode. Transition and
// state labels only ever use Bool, And, Or, Not, AP and Alias; the
// Fin, Inf and Set kinds appear solely in the Acceptance condition.
type NodeKind int

const (
	NodeBool NodeKind = iota
	NodeAnd
	NodeOr
	NodeFin
	NodeInf
	NodeNot
	NodeSet
	NodeAP
	NodeAlias
)

func (k NodeKind) String() string {
	switch k {
	case NodeBool:
		return "Bool"
	case NodeAnd:
		return "And"
	case NodeOr:
		return "Or"
	case NodeFin:
		return "Fin"
	case NodeInf:
		return "Inf"
	case NodeNot:
		return "Not"
	case NodeSet:
		return "Set"
	case NodeAP:
		return "AP"
	case NodeAlias:
		return "Alias"
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// LabelNode is one node of a label or acceptance expression tree.
// Which fields are meaningful depends on Kind: Value for Bool, ID for
// AP and Set, Alias for Alias, Left for Not/Fin/Inf, Left and Right
// for And/Or.
type LabelNode struct {
	Kind  NodeKind
	Left  *LabelNode
	Right *LabelNode
	Value bool
	ID    int
	Alias string // without the leading '@'
}

func Bool(v bool) *LabelNode         { return &LabelNode{Kind: NodeBool, Value: v} }
func And(l, r *LabelNode) *LabelNode { return &LabelNode{Kind: NodeAnd, Left: l, Right: r} }
func Or(l, r *LabelNode) *LabelNode  { return &LabelNode{Kind: NodeOr, Left: l, Right: r} }
func Not(l *LabelNode) *LabelNode    { return &LabelNode{Kind: NodeNot, Left: l} }
func AP(id int) *LabelNode           { return &LabelNode{Kind: NodeAP, ID: id} }
func AliasRef(name string) *LabelNode {
	return &LabelNode{Kind: NodeAlias, Alias: name}
}

func (n *LabelNode) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case NodeBool:
		if n.Value {
			return "t"
		}
		return "f"
	case NodeAnd:
		return fmt.Sprintf("(%s & %s)", n.Left, n.Right)
	case NodeOr:
		return fmt.Sprintf("(%s | %s)", n.Left, n.Right)
	case NodeFin:
		return fmt.Sprintf("Fin(%s)", n.Left)
	case NodeInf:
		return fmt.Sprintf("Inf(%s)", n.Left)
	case NodeNot:
		return "!" + n.Left.String()
	case NodeSet:
		return strconv.Itoa(n.ID)
	case NodeAP:
		return strconv.Itoa(n.ID)
	case NodeAlias:
		return "@" + n.Alias
	}
	return "?"
}

// Edge is one transition of a state. A deterministic colored automaton
// has exactly one successor and one acceptance set per edge, but the
// parser records whatever the file says; consumers check.
type Edge struct {
	Label      *LabelNode
	Successors []int
	AccSig     []int
}

// State is one automaton state. Name is "" when the file gives none;
// Label and AccSig, when present, override the per-edge ones.
type State struct {
	ID     int
	Name   string
	Label  *LabelNode
	AccSig []int
	Edges  []Edge
}

// Alias is a named label expression, referenced from labels as @Name.
type Alias struct {
	Name string
	Expr *LabelNode
}

// Automaton is the parsed contents of an EHOA file.
type Automaton struct {
	Version           string
	Name              string
	Tool              []string
	NumStates         int
	NumAPs            int
	NumAccSets        int
	APs               []string
	AccNameID         string
	AccNameParameters []string
	Properties        []string
	Start             []int
	CntAPs            []int
	Acceptance        *LabelNode
	Aliases           []Alias
	States            []State
}

// LookupAlias returns the expression bound to name, or nil.
func (a *Automaton) LookupAlias(name string) *LabelNode {
	for i := range a.Aliases {
		if a.Aliases[i].Name == name {
			return a.Aliases[i].Expr
		}
	}
	return nil
}

// StateByID returns the state with the given id, or nil.
func (a *Automaton) StateByID(id int) *State {
	for i := range a.States {
		if a.States[i].ID == id {
			return &a.States[i]
		}
	}
	return nil
}
