package game_test

import (
	"bytes"
	"strings"
	"testing"

	"hoa-tools/game"
	"hoa-tools/hoa"
)

type recVertex struct {
	id, priority, owner int
	succs               []int
	label               string
}

// recSink records everything the builder emits, in order.
type recSink struct {
	maxID    int
	vertices []recVertex
}

func (r *recSink) Header(maxID int) error {
	r.maxID = maxID
	return nil
}

func (r *recSink) Vertex(id, priority, owner int, succs []int, label string) error {
	r.vertices = append(r.vertices, recVertex{id, priority, owner, append([]int(nil), succs...), label})
	return nil
}

func build(t *testing.T, aut *hoa.Automaton) *recSink {
	t.Helper()
	obj, err := game.Validate(aut)
	if err != nil {
		t.Fatalf("validation failed: %s", err)
	}
	rec := &recSink{}
	if err := game.Build(aut, obj, rec); err != nil {
		t.Fatalf("build failed: %s", err)
	}
	return rec
}

func checkVertices(t *testing.T, got []recVertex, want []recVertex) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d vertices, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.id != w.id || g.priority != w.priority || g.owner != w.owner || g.label != w.label {
			t.Errorf("vertex %d: got %+v, want %+v", i, g, w)
			continue
		}
		if len(g.succs) != len(w.succs) {
			t.Errorf("vertex %d: got successors %v, want %v", i, g.succs, w.succs)
			continue
		}
		for j := range w.succs {
			if g.succs[j] != w.succs[j] {
				t.Errorf("vertex %d: got successors %v, want %v", i, g.succs, w.succs)
				break
			}
		}
	}
}

// One state, a true self-loop in acceptance set 0, no APs: the whole
// game is the three-vertex gadget chain.
func TestBuildTrivial(t *testing.T) {
	aut := &hoa.Automaton{
		NumStates:         1,
		NumAccSets:        1,
		AccNameID:         "parity",
		AccNameParameters: []string{"max", "even", "1"},
		Properties:        []string{"deterministic", "complete", "colored"},
		Start:             []int{0},
		States: []hoa.State{{
			ID:    0,
			Edges: []hoa.Edge{{Label: hoa.Bool(true), Successors: []int{0}, AccSig: []int{0}}},
		}},
	}
	rec := build(t, aut)
	if rec.maxID != 1 {
		t.Errorf("header: got %d, want 1", rec.maxID)
	}
	checkVertices(t, rec.vertices, []recVertex{
		{2, 2, 0, []int{0}, "2"}, // full valuation, priority 0+2
		{1, 0, 0, []int{2}, "1"}, // partial valuation
		{0, 0, 1, []int{1}, "0"}, // the state itself
	})
}

// Two APs with AP 1 controllable: the uncontrollable projection is
// [0], giving two partial valuations. The a0&a1 transition is pruned
// when a0 is false and stays a live (unknown) choice when a0 is true;
// !a0 is the other way around.
func TestBuildPartialValuations(t *testing.T) {
	aut := &hoa.Automaton{
		NumStates:         1,
		NumAPs:            2,
		NumAccSets:        2,
		APs:               []string{"a0", "a1"},
		CntAPs:            []int{1},
		AccNameID:         "parity",
		AccNameParameters: []string{"max", "even", "2"},
		Properties:        []string{"deterministic", "complete", "colored"},
		Start:             []int{0},
		States: []hoa.State{{
			ID: 0,
			Edges: []hoa.Edge{
				{Label: hoa.And(hoa.AP(0), hoa.AP(1)), Successors: []int{0}, AccSig: []int{0}},
				{Label: hoa.Not(hoa.AP(0)), Successors: []int{0}, AccSig: []int{1}},
			},
		}},
	}
	rec := build(t, aut)
	if rec.maxID != 2 {
		t.Errorf("header: got %d, want 2", rec.maxID)
	}
	checkVertices(t, rec.vertices, []recVertex{
		{3, 3, 0, []int{0}, "3"}, // a0=false: only !a0, priority 1+2
		{1, 0, 0, []int{3}, "1"},
		{4, 2, 0, []int{0}, "4"}, // a0=true: only a0&a1, priority 0+2
		{2, 0, 0, []int{4}, "2"},
		{0, 0, 1, []int{1, 2}, "0"},
	})
}

// An aliased label together with the completing complement: the alias
// transition is taken for the three valuations satisfying a0|a1, the
// complement covers the remaining one.
func TestBuildAlias(t *testing.T) {
	aut := &hoa.Automaton{
		NumStates:         1,
		NumAPs:            2,
		NumAccSets:        2,
		APs:               []string{"a0", "a1"},
		AccNameID:         "parity",
		AccNameParameters: []string{"max", "even", "2"},
		Properties:        []string{"deterministic", "complete", "colored"},
		Start:             []int{0},
		Aliases: []hoa.Alias{
			{Name: "p", Expr: hoa.Or(hoa.AP(0), hoa.AP(1))},
		},
		States: []hoa.State{{
			ID: 0,
			Edges: []hoa.Edge{
				{Label: hoa.AliasRef("p"), Successors: []int{0}, AccSig: []int{0}},
				{Label: hoa.Not(hoa.AliasRef("p")), Successors: []int{0}, AccSig: []int{1}},
			},
		}},
	}
	rec := build(t, aut)
	checkVertices(t, rec.vertices, []recVertex{
		{5, 3, 0, []int{0}, "5"}, // 00: only !@p
		{1, 0, 0, []int{5}, "1"},
		{6, 2, 0, []int{0}, "6"}, // 01, 10, 11: only @p
		{2, 0, 0, []int{6}, "2"},
		{7, 2, 0, []int{0}, "7"},
		{3, 0, 0, []int{7}, "3"},
		{8, 2, 0, []int{0}, "8"},
		{4, 0, 0, []int{8}, "4"},
		{0, 0, 1, []int{1, 2, 3, 4}, "0"},
	})
}

// A state-level label overrides the per-transition ones: both false
// transitions stay alive because the state says true.
func TestBuildStateLabelOverride(t *testing.T) {
	aut := &hoa.Automaton{
		NumStates:         1,
		NumAccSets:        2,
		AccNameID:         "parity",
		AccNameParameters: []string{"max", "even", "2"},
		Properties:        []string{"deterministic", "complete", "colored"},
		Start:             []int{0},
		States: []hoa.State{{
			ID:    0,
			Label: hoa.Bool(true),
			Edges: []hoa.Edge{
				{Label: hoa.Bool(false), Successors: []int{0}, AccSig: []int{0}},
				{Label: hoa.Bool(false), Successors: []int{0}, AccSig: []int{1}},
			},
		}},
	}
	rec := build(t, aut)
	checkVertices(t, rec.vertices, []recVertex{
		{2, 2, 0, []int{0}, "2"},
		{3, 3, 0, []int{0}, "3"},
		{1, 0, 0, []int{3, 2}, "1"}, // latest emitted first
		{0, 0, 1, []int{1}, "0"},
	})
}

// A state-level acceptance signature overrides the per-transition one.
func TestBuildStateAccOverride(t *testing.T) {
	aut := &hoa.Automaton{
		NumStates:         1,
		NumAccSets:        2,
		AccNameID:         "parity",
		AccNameParameters: []string{"max", "even", "2"},
		Properties:        []string{"deterministic", "complete", "colored"},
		Start:             []int{0},
		States: []hoa.State{{
			ID:     0,
			AccSig: []int{1},
			Edges:  []hoa.Edge{{Label: hoa.Bool(true), Successors: []int{0}, AccSig: []int{0}}},
		}},
	}
	rec := build(t, aut)
	if rec.vertices[0].priority != 3 {
		t.Errorf("full vertex priority: got %d, want the state-level 1+2", rec.vertices[0].priority)
	}
}

func TestBuildContractViolations(t *testing.T) {
	cases := map[string]func(*hoa.Automaton){
		"two successors": func(a *hoa.Automaton) {
			a.States[0].Edges[0].Successors = []int{0, 0}
		},
		"no label": func(a *hoa.Automaton) {
			a.States[0].Edges[0].Label = nil
		},
		"no acceptance": func(a *hoa.Automaton) {
			a.States[0].Edges[0].AccSig = nil
		},
		"two acceptance sets": func(a *hoa.Automaton) {
			a.States[0].Edges[0].AccSig = []int{0, 1}
		},
		"incomplete": func(a *hoa.Automaton) {
			a.States[0].Edges[0].Label = hoa.Bool(false)
		},
		"undefined alias": func(a *hoa.Automaton) {
			a.States[0].Edges[0].Label = hoa.AliasRef("nope")
		},
	}
	for name, mutate := range cases {
		aut := validAutomaton()
		mutate(aut)
		obj, err := game.Validate(aut)
		if err != nil {
			t.Fatalf("%s: validation failed: %s", name, err)
		}
		if err := game.Build(aut, obj, &recSink{}); err == nil {
			t.Errorf("%s: expected a build error", name)
		}
	}
}

// Structural invariants over a larger game built from EHOA text: ids
// are unique, the id ranges determine the owner, partial-valuation
// vertices have priority 0 and at least one successor, and transition
// vertices carry a priority of at least 2 with a single forced move.
func TestBuildInvariants(t *testing.T) {
	content := `HOA: v1
States: 2
Start: 0
AP: 3 "req" "cancel" "grant"
controllable-AP: 2
acc-name: parity max even 2
Acceptance: 2 Inf(0) | Fin(1)
properties: deterministic complete colored
--BODY--
State: 0 "idle"
[0 & 2] 1 {0}
[!0 | !2] 0 {1}
State: 1 "busy"
[1] 0 {1}
[!1] 1 {0}
--END--
`
	aut, err := hoa.ParseString("invariants", content)
	if err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	rec := build(t, aut)

	seen := map[int]bool{}
	for _, v := range rec.vertices {
		if seen[v.id] {
			t.Errorf("vertex id %d emitted twice", v.id)
		}
		seen[v.id] = true

		if v.id < aut.NumStates {
			if v.owner != 1 {
				t.Errorf("vertex %d: automaton states belong to player 1", v.id)
			}
			if v.priority != 0 {
				t.Errorf("vertex %d: player-1 vertices have priority 0, got %d", v.id, v.priority)
			}
			continue
		}
		if v.owner != 0 {
			t.Errorf("vertex %d: allocated vertices belong to player 0", v.id)
		}
		if len(v.succs) == 0 {
			t.Errorf("vertex %d: no outgoing edge", v.id)
		}
		// A transition vertex points back at a state; a partial
		// valuation vertex points at transition vertices only.
		if v.succs[0] < aut.NumStates {
			if len(v.succs) != 1 {
				t.Errorf("vertex %d: transition vertices have a single move, got %v", v.id, v.succs)
			}
			if v.priority < 2 {
				t.Errorf("vertex %d: priority %d below the acceptance shift", v.id, v.priority)
			}
		} else {
			if v.priority != 0 {
				t.Errorf("vertex %d: partial valuations carry priority 0, got %d", v.id, v.priority)
			}
		}
	}
	// Both states were emitted under their names.
	names := map[string]bool{}
	for _, v := range rec.vertices {
		if v.owner == 1 {
			names[v.label] = true
		}
	}
	if !names["idle"] || !names["busy"] {
		t.Errorf("player-1 vertices should carry the state names, got %v", names)
	}
}

// End to end: EHOA text in, PGSolver text out.
func TestPGSolverOutput(t *testing.T) {
	content := `HOA: v1
States: 1
Start: 0
AP: 0
acc-name: parity max even 1
Acceptance: 1 Inf(0)
properties: deterministic complete colored
--BODY--
State: 0
[t] 0 {0}
--END--
`
	aut, err := hoa.ParseString("trivial", content)
	if err != nil {
		t.Fatalf("failed to parse: %s", err)
	}
	obj, err := game.Validate(aut)
	if err != nil {
		t.Fatalf("validation failed: %s", err)
	}
	var buf bytes.Buffer
	if err := game.Build(aut, obj, game.NewPGWriter(&buf)); err != nil {
		t.Fatalf("build failed: %s", err)
	}
	want := strings.Join([]string{
		`parity 1;`,
		`2 2 0 0 "2"`,
		`1 0 0 2 "1"`,
		`0 0 1 1 "0"`,
	}, "\n") + "\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestUncontrollableAPs(t *testing.T) {
	aut := &hoa.Automaton{NumAPs: 5, CntAPs: []int{1, 3}}
	got := game.UncontrollableAPs(aut)
	want := []int{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
