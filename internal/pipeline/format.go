package pipeline

import (
	"fmt"
	"strings"

	"graphsuite/internal/clique"
	"graphsuite/internal/maxflow"
	"graphsuite/internal/mst"
)

// formatMST renders an MST result the same way
// internal/strategy's mst_strategy_execute does, since both trace back to
// algorithm_strategy.c's mst_strategy_execute template.
func formatMST(r mst.Result) string {
	if !r.Connected {
		return "MST calculation failed (graph not connected)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "MST weight: %d, Edges: ", r.TotalWeight)
	for i, e := range r.Edges {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d-%d(%d)", e.U, e.V, e.Weight)
	}
	return sb.String()
}

func formatMaxFlow(r maxflow.Result, err error) string {
	if err != nil {
		return "Max flow calculation failed"
	}
	return fmt.Sprintf("Max flow is: %d", r.Value)
}

func formatMaxClique(r clique.MaxCliqueResult) string {
	return fmt.Sprintf("Max clique size is: %d", r.Size)
}

func formatCliqueCount(r clique.CountResult) string {
	return fmt.Sprintf("Total cliques count is: %d", r.Total)
}
