// Command swptrace loads a schematic project, rebuilds the wire topology,
// and prints the straight wire paths and detected junctions.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"wire-topology/internal/project"
	"wire-topology/internal/topology"
	"wire-topology/internal/version"
	"wire-topology/pkg/geometry"
)

func main() {
	projectPath := flag.String("project", "", "Path to schematic project (.wtproj)")
	tolerance := flag.Float64("tolerance", 0, "Coincidence tolerance (0 = project setting)")
	showNodes := flag.Bool("nodes", false, "Dump the topology node degrees")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("swptrace", version.String())
		return
	}
	if *projectPath == "" {
		fmt.Println("Usage: swptrace -project <path> [-tolerance 0.5] [-nodes]")
		os.Exit(1)
	}

	proj, err := project.Load(*projectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load project: %v\n", err)
		os.Exit(1)
	}
	doc := proj.Document()

	opts := topology.DefaultOptions()
	if *tolerance > 0 {
		opts.Tolerance = *tolerance
	} else if proj.Settings.Tolerance > 0 {
		opts.Tolerance = proj.Settings.Tolerance
	}

	result := topology.Rebuild(doc.Wires, doc.Components, doc.Junctions, opts)

	fmt.Printf("Project: %s\n", proj.Name)
	fmt.Printf("Nodes: %d  Edges: %d\n\n", len(result.Nodes), len(result.Edges))

	fmt.Printf("Straight wire paths: %d\n", len(result.SWPs))
	for _, swp := range result.SWPs {
		fmt.Printf("  %s %s (%g,%g) -> (%g,%g) color=%s wires=[%s]\n",
			swp.ID, axisLabel(swp.Axis),
			swp.Start.X, swp.Start.Y, swp.End.X, swp.End.Y,
			swp.Color, strings.Join(swp.EdgeWireIDs, " "))
	}

	if len(result.CompToSWP) > 0 {
		fmt.Printf("\nEmbedded components:\n")
		comps := make([]string, 0, len(result.CompToSWP))
		for id := range result.CompToSWP {
			comps = append(comps, id)
		}
		sort.Strings(comps)
		for _, id := range comps {
			fmt.Printf("  %s on %s\n", id, result.CompToSWP[id])
		}
	}

	fmt.Printf("\nJunctions: %d\n", len(result.Junctions))
	for _, j := range result.Junctions {
		kind := "auto"
		if j.Manual {
			kind = "manual"
		}
		if j.Suppressed {
			kind += " (suppressed)"
		}
		fmt.Printf("  %s %s at (%g,%g)\n", j.ID, kind, j.At.X, j.At.Y)
	}

	if *showNodes {
		fmt.Printf("\nNodes:\n")
		for _, key := range sortedKeys(result) {
			n := result.Nodes[key]
			fmt.Printf("  (%d,%d) degree X=%d Y=%d edges=%d\n",
				key.X, key.Y, n.Degree.X, n.Degree.Y, len(n.EdgeIDs))
		}
	}
}

func axisLabel(a geometry.Axis) string {
	if a == geometry.AxisY {
		return "V"
	}
	return "H"
}

func sortedKeys(result *topology.Result) []geometry.PointInt {
	keys := make([]geometry.PointInt, 0, len(result.Nodes))
	for k := range result.Nodes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	return keys
}
