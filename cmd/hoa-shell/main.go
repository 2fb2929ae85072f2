// hoa-shell is an interactive prompt over a parsed EHOA automaton. It
// exists to answer one question quickly: which transitions of a state
// survive a given valuation of the uncontrollable inputs, and which
// stay open as player-0 choices.
package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"hoa-tools/game"
	"hoa-tools/hoa"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: hoa-shell <automaton.ehoa>")
	}
	data, err := ioutil.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("could not read %s: %s", os.Args[1], err)
	}
	aut, err := hoa.ParseString(os.Args[1], string(data))
	if err != nil {
		log.Fatalf("could not parse %s: %s", os.Args[1], err)
	}
	ucnt := game.UncontrollableAPs(aut)

	rl, err := readline.New("hoa> ")
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	fmt.Printf("Loaded %d states over %d atomic propositions (%d uncontrollable). Type \"help\" for commands.\n",
		aut.NumStates, aut.NumAPs, len(ucnt))

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			println("aps                 list atomic propositions")
			println("states              list states")
			println("state <id>          show the transitions of a state")
			println("eval <id> <bits>    evaluate the transition labels of a state against")
			println("                    an uncontrollable valuation, given as binary with")
			println("                    bit i holding the i-th uncontrollable AP")
			println("quit                leave")
		case "aps":
			for i, name := range aut.APs {
				kind := "uncontrollable"
				for _, c := range aut.CntAPs {
					if c == i {
						kind = "controllable"
						break
					}
				}
				fmt.Printf("%d %q (%s)\n", i, name, kind)
			}
		case "states":
			for i := range aut.States {
				st := &aut.States[i]
				name := st.Name
				if name == "" {
					name = "-"
				}
				fmt.Printf("%d %s (%d transitions)\n", st.ID, name, len(st.Edges))
			}
		case "state":
			st := lookupState(aut, fields)
			if st == nil {
				continue
			}
			for ti := range st.Edges {
				e := &st.Edges[ti]
				fmt.Printf("[%s] -> %v %v\n", effectiveLabel(st, e), e.Successors, effectiveAcc(st, e))
			}
		case "eval":
			st := lookupState(aut, fields)
			if st == nil {
				continue
			}
			if len(fields) < 3 {
				println("I need a valuation too, e.g. 'eval 0 10'.")
				continue
			}
			value, err := strconv.ParseUint(fields[2], 2, 32)
			if err != nil {
				println("That valuation is not a binary number: " + err.Error())
				continue
			}
			for ti := range st.Edges {
				e := &st.Edges[ti]
				v, err := game.EvalLabel(effectiveLabel(st, e), aut.Aliases, ucnt, uint(value))
				if err != nil {
					println("could not evaluate: " + err.Error())
					continue
				}
				fmt.Printf("[%s] -> %v: %s\n", effectiveLabel(st, e), e.Successors, v)
			}
		case "quit", "exit":
			return
		default:
			println("I don't know that command; try 'help'.")
		}
	}
}

func lookupState(aut *hoa.Automaton, fields []string) *hoa.State {
	if len(fields) < 2 {
		println("Which state? Give me an id, e.g. 'state 0'.")
		return nil
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		println("That state id is not a number: " + err.Error())
		return nil
	}
	st := aut.StateByID(id)
	if st == nil {
		fmt.Printf("There is no state %d.\n", id)
	}
	return st
}

func effectiveLabel(st *hoa.State, e *hoa.Edge) *hoa.LabelNode {
	if st.Label != nil {
		return st.Label
	}
	return e.Label
}

func effectiveAcc(st *hoa.State, e *hoa.Edge) []int {
	if st.AccSig != nil {
		return st.AccSig
	}
	return e.AccSig
}
