package hoa

import (
	"fmt"
	"io"
	"io/ioutil"
	"strings"
)

// Parse reads a complete EHOA document from r.
func Parse(r io.Reader) (*Automaton, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return ParseString("<stdin>", string(data))
}

// ParseString parses a complete EHOA document; name is used in
// diagnostics only.
func ParseString(name, content string) (*Automaton, error) {
	var raw rawFile
	if err := Parser.ParseString(name, content, &raw); err != nil {
		return nil, err
	}
	return fromRaw(&raw)
}

// fromRaw turns the raw grammar tree into a typed Automaton, checking
// the structural rules the grammar itself cannot express.
func fromRaw(raw *rawFile) (*Automaton, error) {
	aut := &Automaton{Version: raw.Version, NumStates: -1}
	sawAPs := false
	sawAcceptance := false
	sawAccName := false
	for i := range raw.Headers {
		h := &raw.Headers[i]
		switch {
		case h.NumStates != nil:
			if aut.NumStates >= 0 {
				return nil, fmt.Errorf("duplicate States: header")
			}
			aut.NumStates = *h.NumStates
		case h.Start != nil:
			aut.Start = append(aut.Start, h.Start...)
		case h.APs != nil:
			if sawAPs {
				return nil, fmt.Errorf("duplicate AP: header")
			}
			sawAPs = true
			if h.APs.Count != len(h.APs.Names) {
				return nil, fmt.Errorf("AP: header announces %d propositions but names %d",
					h.APs.Count, len(h.APs.Names))
			}
			aut.NumAPs = h.APs.Count
			aut.APs = h.APs.Names
		case h.CntAPs != nil:
			aut.CntAPs = append(aut.CntAPs, h.CntAPs.IDs...)
		case h.Alias != nil:
			name := strings.TrimPrefix(h.Alias.Name, "@")
			if aut.LookupAlias(name) != nil {
				return nil, fmt.Errorf("duplicate alias @%s", name)
			}
			aut.Aliases = append(aut.Aliases, Alias{Name: name, Expr: h.Alias.Expr.tree()})
		case h.Acceptance != nil:
			if sawAcceptance {
				return nil, fmt.Errorf("duplicate Acceptance: header")
			}
			sawAcceptance = true
			aut.NumAccSets = h.Acceptance.Count
			aut.Acceptance = h.Acceptance.Cond.tree()
		case h.AccName != nil:
			if sawAccName {
				return nil, fmt.Errorf("duplicate acc-name: header")
			}
			sawAccName = true
			aut.AccNameID = h.AccName.ID
			aut.AccNameParameters = h.AccName.Params
		case h.Properties != nil:
			aut.Properties = append(aut.Properties, h.Properties.Names...)
		case h.Name != nil:
			aut.Name = *h.Name
		case h.Tool != nil:
			aut.Tool = h.Tool
		}
	}

	for i := range raw.States {
		rs := &raw.States[i]
		st := State{ID: rs.ID, AccSig: rs.AccSig}
		if rs.Label != nil {
			st.Label = rs.Label.tree()
		}
		if rs.Name != nil {
			st.Name = *rs.Name
		}
		for j := range rs.Edges {
			re := &rs.Edges[j]
			edge := Edge{Successors: re.Successors, AccSig: re.AccSig}
			if re.Label != nil {
				edge.Label = re.Label.tree()
			}
			st.Edges = append(st.Edges, edge)
		}
		aut.States = append(aut.States, st)
	}
	if aut.NumStates < 0 {
		aut.NumStates = len(aut.States)
	}
	return aut, aut.check()
}

// check validates cross-references: state ids, edge successors, start
// states and controllable APs must be in range, AP references in labels
// must exist, state ids must be unique.
func (a *Automaton) check() error {
	seen := make(map[int]bool, len(a.States))
	for i := range a.States {
		st := &a.States[i]
		if st.ID < 0 || st.ID >= a.NumStates {
			return fmt.Errorf("state id %d out of range [0, %d)", st.ID, a.NumStates)
		}
		if seen[st.ID] {
			return fmt.Errorf("duplicate definition of state %d", st.ID)
		}
		seen[st.ID] = true
		if err := a.checkLabel(st.Label); err != nil {
			return fmt.Errorf("state %d: %w", st.ID, err)
		}
		for j := range st.Edges {
			for _, succ := range st.Edges[j].Successors {
				if succ < 0 || succ >= a.NumStates {
					return fmt.Errorf("state %d: successor %d out of range [0, %d)",
						st.ID, succ, a.NumStates)
				}
			}
			if err := a.checkLabel(st.Edges[j].Label); err != nil {
				return fmt.Errorf("state %d: %w", st.ID, err)
			}
		}
	}
	for _, s := range a.Start {
		if s < 0 || s >= a.NumStates {
			return fmt.Errorf("start state %d out of range [0, %d)", s, a.NumStates)
		}
	}
	for _, c := range a.CntAPs {
		if c < 0 || c >= a.NumAPs {
			return fmt.Errorf("controllable AP %d out of range [0, %d)", c, a.NumAPs)
		}
	}
	for i := range a.Aliases {
		if err := a.checkLabel(a.Aliases[i].Expr); err != nil {
			return fmt.Errorf("alias @%s: %w", a.Aliases[i].Name, err)
		}
	}
	return nil
}

func (a *Automaton) checkLabel(n *LabelNode) error {
	if n == nil {
		return nil
	}
	if n.Kind == NodeAP && (n.ID < 0 || n.ID >= a.NumAPs) {
		return fmt.Errorf("AP reference %d out of range [0, %d)", n.ID, a.NumAPs)
	}
	if err := a.checkLabel(n.Left); err != nil {
		return err
	}
	return a.checkLabel(n.Right)
}

// Flattening of the precedence-layered grammar structs into the shared
// binary tree; connectives associate to the left.

func (e *rawLabelExpr) tree() *LabelNode {
	n := e.First.tree()
	for i := range e.Rest {
		n = Or(n, e.Rest[i].tree())
	}
	return n
}

func (t *rawLabelTerm) tree() *LabelNode {
	n := t.First.tree()
	for i := range t.Rest {
		n = And(n, t.Rest[i].tree())
	}
	return n
}

func (f *rawLabelFactor) tree() *LabelNode {
	switch {
	case f.Not != nil:
		return Not(f.Not.tree())
	case f.Paren != nil:
		return f.Paren.tree()
	case f.Bool != nil:
		return Bool(*f.Bool == "t")
	case f.AP != nil:
		return AP(*f.AP)
	case f.Alias != nil:
		return AliasRef(strings.TrimPrefix(*f.Alias, "@"))
	}
	return nil
}

func (e *rawAccExpr) tree() *LabelNode {
	n := e.First.tree()
	for i := range e.Rest {
		n = Or(n, e.Rest[i].tree())
	}
	return n
}

func (t *rawAccTerm) tree() *LabelNode {
	n := t.First.tree()
	for i := range t.Rest {
		n = And(n, t.Rest[i].tree())
	}
	return n
}

func (a *rawAccAtom) tree() *LabelNode {
	switch {
	case a.Paren != nil:
		return a.Paren.tree()
	case a.Fin != nil:
		return &LabelNode{Kind: NodeFin, Left: a.Fin.tree()}
	case a.Inf != nil:
		return &LabelNode{Kind: NodeInf, Left: a.Inf.tree()}
	case a.Bool != nil:
		return Bool(*a.Bool == "t")
	}
	return nil
}

func (s *rawAccSet) tree() *LabelNode {
	n := &LabelNode{Kind: NodeSet, ID: s.Set}
	if s.Neg {
		return Not(n)
	}
	return n
}
