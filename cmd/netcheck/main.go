// Command netcheck loads a schematic project, derives electrical
// connectivity, and prints the resulting nets.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"wire-topology/internal/netlist"
	"wire-topology/internal/project"
	"wire-topology/internal/version"
)

func main() {
	projectPath := flag.String("project", "", "Path to schematic project (.wtproj)")
	tolerance := flag.Float64("tolerance", 0, "Connection tolerance (0 = project setting)")
	showMembers := flag.Bool("members", false, "List every member of each net")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("netcheck", version.String())
		return
	}
	if *projectPath == "" {
		fmt.Println("Usage: netcheck -project <path> [-tolerance 0.5] [-members]")
		os.Exit(1)
	}

	proj, err := project.Load(*projectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load project: %v\n", err)
		os.Exit(1)
	}
	doc := proj.Document()

	tol := *tolerance
	if tol <= 0 {
		tol = proj.Settings.Tolerance
	}

	var wireLen float64
	for _, w := range doc.Wires {
		wireLen += w.Length()
	}

	fmt.Printf("Project: %s\n", proj.Name)
	fmt.Printf("Wires: %d (total length %.1f)  Components: %d  Junctions: %d\n",
		len(doc.Wires), wireLen, len(doc.Components), len(doc.Junctions))
	fmt.Printf("Tolerance: %g\n\n", tol)

	result := netlist.Derive(netlist.Input{
		Wires:     doc.Wires,
		Pins:      doc.Pins(),
		Junctions: doc.Junctions,
		Tolerance: tol,
	})

	fmt.Printf("Derived %d nets\n", len(result.Nets))
	for _, net := range result.Nets {
		fmt.Printf("  %s (%s): %d members\n", net.ID, net.Name, len(net.Members))
		if *showMembers {
			lines := make([]string, 0, len(net.Members))
			for _, m := range net.Members {
				lines = append(lines, m.String())
			}
			sort.Strings(lines)
			for _, l := range lines {
				fmt.Printf("    %s\n", l)
			}
		}
	}

	if len(result.ImplicitJunctions) > 0 {
		fmt.Printf("\nImplicit junctions (endpoint on segment): %d\n", len(result.ImplicitJunctions))
		for _, p := range result.ImplicitJunctions {
			fmt.Printf("  (%g, %g)\n", p.X, p.Y)
		}
	}
}
