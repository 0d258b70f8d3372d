package pipeline

import (
	"net"
	"time"

	"graphsuite/internal/graph"
)

// Job is a single client request as it flows through the pipeline's four
// stages (§3). Ownership moves with each queue hand-off: whichever stage
// currently holds the job is the only goroutine that may touch it. The
// final stage owns teardown — closing the connection and letting the graph
// and the job itself be garbage collected.
type Job struct {
	ID        int
	Graph     *graph.Graph
	Conn      net.Conn
	ConnID    string
	StartTime time.Time

	MSTStr     string
	MaxFlowStr string
	CliqueStr  string
	CountStr   string
}
