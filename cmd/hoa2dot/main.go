// hoa2dot renders the parity game derived from an EHOA automaton with
// graphviz, for eyeballing small games before handing them to a
// solver. Environment vertices are boxes, system vertices diamonds.
package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/urfave/cli/v2"

	"hoa-tools/game"
	"hoa-tools/hoa"
)

type vertex struct {
	id, priority, owner int
	succs               []int
	label               string
}

// gameGraph is a Sink keeping the whole game in memory; the graphviz
// renderer needs every vertex before it can lay out edges.
type gameGraph struct {
	vertices []vertex
}

func (g *gameGraph) Header(maxID int) error { return nil }

func (g *gameGraph) Vertex(id, priority, owner int, succs []int, label string) error {
	g.vertices = append(g.vertices, vertex{id, priority, owner, append([]int(nil), succs...), label})
	return nil
}

func render(ctx *cli.Context) error {
	var data []byte
	var err error
	name := "<stdin>"
	if ctx.Args().Len() > 0 {
		name = ctx.Args().Get(0)
		data, err = ioutil.ReadFile(name)
	} else {
		data, err = ioutil.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	aut, err := hoa.ParseString(name, string(data))
	if err != nil {
		return err
	}
	obj, err := game.Validate(aut)
	if err != nil {
		return err
	}
	gg := &gameGraph{}
	if err := game.Build(aut, obj, gg); err != nil {
		return err
	}
	return graphToDot(gg, ctx.String("format"), ctx.String("output"))
}

func graphToDot(gg *gameGraph, format, toWhere string) error {
	g := graphviz.New()
	graph, err := g.Graph()
	if err != nil {
		return err
	}

	defer func() {
		if err := graph.Close(); err != nil {
			panic(err)
		}
		g.Close()
	}()

	nodes := map[int]*cgraph.Node{}

	for _, v := range gg.vertices {
		n, err := graph.CreateNode(strconv.Itoa(v.id))
		if err != nil {
			return err
		}
		n.SetLabel(fmt.Sprintf("%s:%d", v.label, v.priority))
		if v.owner == 1 {
			n.SetShape(cgraph.BoxShape)
		} else {
			n.SetShape(cgraph.DiamondShape)
		}
		nodes[v.id] = n
	}
	for _, v := range gg.vertices {
		for i, succ := range v.succs {
			name := fmt.Sprintf("%d-%d", v.id, i)
			if _, err := graph.CreateEdge(name, nodes[v.id], nodes[succ]); err != nil {
				return err
			}
		}
	}

	var fm graphviz.Format
	switch format {
	case "dot":
		fm = graphviz.XDOT
	case "png":
		fm = graphviz.PNG
	case "svg":
		fm = graphviz.SVG
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return g.RenderFilename(graph, fm, toWhere)
}

func main() {
	app := &cli.App{
		Name:      "hoa2dot",
		Usage:     "render the synthesis parity game of an EHOA automaton",
		ArgsUsage: "[automaton.ehoa]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "game.dot",
				Usage:   "file to write the rendering to",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"T"},
				Value:   "dot",
				Usage:   "output format: dot, png or svg",
			},
		},
		Action: render,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var shape *game.ShapeError
		if errors.As(err, &shape) {
			os.Exit(shape.Code)
		}
		os.Exit(1)
	}
}
