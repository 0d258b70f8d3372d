// Command graphgen prints a random weighted graph as a plain text edge
// list: one "u v weight" line per edge, preceded by a "n" line giving the
// vertex count.
//
// Out of scope per spec (the random generator's statistical quality is a
// collaborator concern, not part of the service); this is a thin CLI for
// exercising the servers manually, grounded on spec §6's flag description
// and §7's duplicate_edge retry rule.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"graphsuite/internal/graph"
	"graphsuite/pkg/apperror"
)

func main() {
	os.Exit(run())
}

func run() int {
	vertices := flag.Int("v", 5, "number of vertices")
	edges := flag.Int("e", 5, "number of edges")
	seed := flag.Int64("r", 1, "random seed")
	maxWeight := flag.Int("w", 10, "maximum edge weight (inclusive)")
	flag.Parse()

	n := *vertices
	e := *edges
	if n <= 0 {
		fmt.Fprintln(os.Stderr, "graphgen: -v must be positive")
		return 1
	}
	maxEdges := n * (n + 1) / 2
	if e > maxEdges {
		fmt.Fprintf(os.Stderr, "graphgen: -e %d exceeds the maximum of %d edges for %d vertices\n", e, maxEdges, n)
		return 1
	}

	g, err := graph.New(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "graphgen: failed to allocate graph: %v\n", err)
		return 1
	}

	rng := rand.New(rand.NewPCG(uint64(*seed), uint64(*seed)>>1|1))

	added := 0
	// duplicate_edge is retried (§7); a self-loop-heavy or exhausted
	// request could in principle spin, so cap attempts generously rather
	// than loop forever.
	for attempts := 0; added < e && attempts < e*100+1000; attempts++ {
		u := rng.IntN(n)
		v := rng.IntN(n)
		weight := rng.IntN(*maxWeight) + 1

		addErr := g.AddWeightedEdge(u, v, weight)
		if addErr == nil {
			added++
			continue
		}
		if apperror.Is(addErr, apperror.CodeDuplicateEdge) {
			continue
		}
		fmt.Fprintf(os.Stderr, "graphgen: failed to add edge (%d,%d,%d): %v\n", u, v, weight, addErr)
		return 1
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	fmt.Fprintln(w, n)
	for u := 0; u < n; u++ {
		printedLoop := false
		for _, nb := range g.Neighbors(u) {
			if nb.To < u {
				continue
			}
			if nb.To == u {
				// A self-loop is stored as two adjacency entries; print it once.
				if printedLoop {
					continue
				}
				printedLoop = true
			}
			fmt.Fprintf(w, "%d %d %d\n", u, nb.To, nb.Weight)
		}
	}
	return 0
}
