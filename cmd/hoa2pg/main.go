// hoa2pg reads an extended HOA parity automaton on standard input and
// writes the corresponding synthesis parity game in PGSolver format on
// standard output. It takes no flags; failures are reported on
// standard error with an exit status identifying the rejection.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"hoa-tools/game"
	"hoa-tools/hoa"
)

func main() {
	aut, err := hoa.Parse(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	obj, err := game.Validate(aut)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		var shape *game.ShapeError
		if errors.As(err, &shape) {
			os.Exit(shape.Code)
		}
		os.Exit(1)
	}

	// Buffered so that nothing reaches stdout if the build aborts
	// partway through.
	out := bufio.NewWriter(os.Stdout)
	if err := game.Build(aut, obj, game.NewPGWriter(out)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
