// Package strategy dispatches an algorithm id to one of the five graph
// kernels and renders its result as a human-readable string, the way
// original_source/FinalProject/part7/algorithm_strategy.c's strategy table
// and factory.h's AlgorithmType enum did over a function-pointer table. In
// Go the Strategy/Context split collapses into a map of function values, per
// design note §9: there is no mutable context object between "set strategy"
// and "execute" because nothing in this package holds state across calls.
package strategy

import (
	"fmt"
	"strings"

	"graphsuite/internal/clique"
	"graphsuite/internal/euler"
	"graphsuite/internal/graph"
	"graphsuite/internal/maxflow"
	"graphsuite/internal/mst"
	"graphsuite/pkg/logger"
	"graphsuite/pkg/metrics"
)

// Algorithm ids, matching factory.h's AlgorithmType enum (ALGO_EULER=1 ..
// ALGO_CLIQUE_COUNT=5) and the wire protocol's id field (§6).
const (
	IDEuler        = 1
	IDMaxFlow      = 2
	IDMST          = 3
	IDMaxClique    = 4
	IDCliqueCount  = 5
)

// Strategy is one registered algorithm: an id, short name, description, and
// the function that runs it over a graph and renders a result string.
type Strategy struct {
	ID          int
	Name        string
	Description string
	Execute     func(g *graph.Graph) string
}

// registry maps algorithm id to its Strategy, populated at package init the
// way algorithm_strategy.c's static `strategies[]` table was populated at
// load time.
var registry = map[int]*Strategy{}

// byName maps short name to Strategy, backing GetByName (the counterpart
// of algorithm_get_strategy_by_name).
var byName = map[string]*Strategy{}

func register(s *Strategy) {
	registry[s.ID] = s
	byName[s.Name] = s
}

func init() {
	register(&Strategy{
		ID:          IDEuler,
		Name:        "euler",
		Description: "Find Euler Circuit",
		Execute:     executeEuler,
	})
	register(&Strategy{
		ID:          IDMaxFlow,
		Name:        "maxflow",
		Description: "Maximum Flow (Edmonds-Karp)",
		Execute:     executeMaxFlow,
	})
	register(&Strategy{
		ID:          IDMST,
		Name:        "mst",
		Description: "Minimum Spanning Tree (Prim's)",
		Execute:     executeMST,
	})
	register(&Strategy{
		ID:          IDMaxClique,
		Name:        "maxclique",
		Description: "Maximum Clique",
		Execute:     executeMaxClique,
	})
	register(&Strategy{
		ID:          IDCliqueCount,
		Name:        "cliquecount",
		Description: "Count All Cliques",
		Execute:     executeCliqueCount,
	})
}

func executeEuler(g *graph.Graph) string {
	timer := metrics.NewTimer(metrics.Get().AlgorithmDuration, "euler")
	defer timer.ObserveDuration()

	if !euler.HasCircuit(g) {
		return "No Euler circuit exists"
	}
	cycle, ok := euler.FindCircuit(g)
	if !ok {
		return "Euler circuit exists but extraction failed"
	}
	return fmt.Sprintf("Euler circuit found (length: %d)", len(cycle))
}

func executeMaxFlow(g *graph.Graph) string {
	timer := metrics.NewTimer(metrics.Get().AlgorithmDuration, "maxflow")
	defer timer.ObserveDuration()

	result, err := maxflow.ComputeDefault(g)
	if err != nil {
		logger.Debug("maxflow strategy failed", "error", err)
		return "Max flow calculation failed"
	}
	return fmt.Sprintf("Max flow is: %d", result.Value)
}

func executeMST(g *graph.Graph) string {
	timer := metrics.NewTimer(metrics.Get().AlgorithmDuration, "mst")
	defer timer.ObserveDuration()

	result := mst.Compute(g)
	if !result.Connected {
		return "MST calculation failed (graph not connected)"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "MST weight: %d, Edges: ", result.TotalWeight)
	for i, e := range result.Edges {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d-%d(%d)", e.U, e.V, e.Weight)
	}
	return sb.String()
}

func executeMaxClique(g *graph.Graph) string {
	timer := metrics.NewTimer(metrics.Get().AlgorithmDuration, "maxclique")
	defer timer.ObserveDuration()

	result := clique.MaxClique(g)
	return fmt.Sprintf("Max clique size is: %d", result.Size)
}

func executeCliqueCount(g *graph.Graph) string {
	timer := metrics.NewTimer(metrics.Get().AlgorithmDuration, "cliquecount")
	defer timer.ObserveDuration()

	result := clique.CountAll(g)
	return fmt.Sprintf("Total cliques count is: %d", result.Total)
}

// Get returns the strategy registered under id, or nil if none is.
func Get(id int) *Strategy {
	return registry[id]
}

// GetByName returns the strategy registered under name, or nil if none is.
func GetByName(name string) *Strategy {
	return byName[name]
}

// All returns every registered strategy, ordered by id.
func All() []*Strategy {
	out := make([]*Strategy, 0, len(registry))
	for id := IDEuler; id <= IDCliqueCount; id++ {
		if s, ok := registry[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Factory dispatches graph algorithms by id. It exists as a thin wrapper
// over the registry, matching algorithm_factory_execute's name and
// responsibility split from the strategy table itself (factory.h kept the
// AlgorithmType enum and supported-type check separate from the strategy
// table, even though both live in the same process).
type Factory struct{}

// NewFactory returns a Factory. graphsuite's factory carries no state of its
// own; it exists so callers have a stable type to depend on even though
// today it only forwards to the package-level registry.
func NewFactory() *Factory {
	return &Factory{}
}

// IsSupported reports whether algoType names a registered algorithm id.
func (f *Factory) IsSupported(algoType int) bool {
	_, ok := registry[algoType]
	return ok
}

// Execute looks up the strategy for id and runs it over g. On an unknown id
// it returns a human-readable error string, matching
// algorithm_execute_by_id's "Unknown algorithm ID: %d" behavior rather than
// a Go error — the wire-level caller decides how to report failure.
func (f *Factory) Execute(g *graph.Graph, id int) string {
	s := Get(id)
	if s == nil {
		return fmt.Sprintf("Unknown algorithm ID: %d", id)
	}
	return s.Execute(g)
}
