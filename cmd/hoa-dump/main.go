// hoa-dump parses an EHOA file and pretty-prints the resulting
// automaton structure, for debugging automata producers.
package main

import (
	"io/ioutil"
	"log"
	"os"

	"hoa-tools/hoa"
)

func main() {
	var data []byte
	var err error
	name := "<stdin>"
	if len(os.Args) >= 2 {
		name = os.Args[1]
		data, err = ioutil.ReadFile(name)
	} else {
		data, err = ioutil.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("could not read %s: %s", name, err)
	}

	aut, err := hoa.ParseString(name, string(data))
	if err != nil {
		log.Fatalf("could not parse %s: %s", name, err)
	}
	hoa.Dump(os.Stdout, aut)
}
