// Package pipeline implements the staged pipeline server (§4.7): one
// acceptor goroutine and four stage goroutines wired in series by bounded
// internal/queue.Queue instances, computing MST, MaxFlow, MaxClique, and
// CliqueCount for every accepted graph before composing and sending the
// final text response. No complete C body for this server survived in
// original_source/ (part11/server_pipeline.c kept only its port/queue-size
// constants), so the goroutine wiring follows the spec's textual
// description directly; the constants (PORT=3490, MAX_QUEUE=32,
// MAX_EDGES=1000) are carried over as pkg/config defaults.
package pipeline

import (
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"graphsuite/internal/clique"
	"graphsuite/internal/graph"
	"graphsuite/internal/maxflow"
	"graphsuite/internal/mst"
	"graphsuite/internal/queue"
	"graphsuite/internal/wire"
	"graphsuite/pkg/apperror"
	"graphsuite/pkg/config"
	"graphsuite/pkg/logger"
	"graphsuite/pkg/metrics"
)

// Server is the staged pipeline server. The zero value is not usable; build
// one with New.
type Server struct {
	cfg config.PipelineConfig

	listener net.Listener

	q1 *queue.Queue[*Job] // parse -> MST
	q2 *queue.Queue[*Job] // MST -> MaxFlow
	q3 *queue.Queue[*Job] // MaxFlow -> MaxClique
	q4 *queue.Queue[*Job] // MaxClique -> CliqueCount -> respond

	idMu   sync.Mutex
	nextID int

	shutdown atomic.Bool
	wg       sync.WaitGroup
}

// New constructs a Server from its configuration. Call ListenAndServe to
// start accepting connections.
func New(cfg config.PipelineConfig) *Server {
	s := &Server{cfg: cfg}

	s.q1 = queue.New[*Job](cfg.QueueCapacity)
	s.q2 = queue.New[*Job](cfg.QueueCapacity)
	s.q3 = queue.New[*Job](cfg.QueueCapacity)
	s.q4 = queue.New[*Job](cfg.QueueCapacity)

	m := metrics.Get()
	s.q1.OnDepthChange(func(d int) { m.SetQueueDepth("Q1", d) })
	s.q2.OnDepthChange(func(d int) { m.SetQueueDepth("Q2", d) })
	s.q3.OnDepthChange(func(d int) { m.SetQueueDepth("Q3", d) })
	s.q4.OnDepthChange(func(d int) { m.SetQueueDepth("Q4", d) })

	return s
}

// nextJobID draws the next job id from a mutex-protected counter, so log
// ordering corresponds to acceptor order even though stages run
// concurrently (§4.7).
func (s *Server) nextJobID() int {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	s.nextID++
	return s.nextID
}

// Listen binds the listening socket and starts the four stage goroutines.
// Separated from Serve so tests and callers that need the bound address
// (e.g. when Port is 0) can retrieve it before the blocking accept loop
// starts.
func (s *Server) Listen() (net.Addr, error) {
	lis, err := net.Listen("tcp", ":"+strconv.Itoa(s.cfg.Port))
	if err != nil {
		return nil, err
	}
	s.listener = lis

	s.wg.Add(4)
	go s.runStage("mst", s.q1, s.q2, s.stageMST)
	go s.runStage("maxflow", s.q2, s.q3, s.stageMaxFlow)
	go s.runStage("maxclique", s.q3, s.q4, s.stageMaxClique)
	go s.runFinalStage()

	return lis.Addr(), nil
}

// Serve runs the accept loop until Shutdown is called; any other Accept
// error is logged and the loop keeps accepting. Listen must have been
// called first.
func (s *Server) Serve() error {
	logger.Info("pipeline server listening", "addr", s.listener.Addr(), "queue_capacity", s.cfg.QueueCapacity)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.shutdown.Load() {
				return nil
			}
			logger.Warn("pipeline accept failed", "error", err)
			continue
		}
		go s.accept(conn)
	}
}

// ListenAndServe binds the listening socket and runs the server until
// Shutdown is called.
func (s *Server) ListenAndServe() error {
	if _, err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown sets the cooperative shutdown flag, closes the listener, and
// broadcasts close on every stage queue so blocked workers wake and exit
// (§4.7, §5). It does not wait for in-flight jobs to finish; a job
// mid-stage at the moment of shutdown is permitted to complete its current
// stage but its push to the next queue becomes a no-op.
func (s *Server) Shutdown() {
	if !s.shutdown.CompareAndSwap(false, true) {
		return
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.q1.Close()
	s.q2.Close()
	s.q3.Close()
	s.q4.Close()
}

// Wait blocks until all four stage goroutines have exited (post-Shutdown).
func (s *Server) Wait() {
	s.wg.Wait()
}

func (s *Server) accept(conn net.Conn) {
	connID := uuid.NewString()
	log := logger.WithConnID(connID)
	metrics.Get().ActiveConnections.Inc()

	req, err := wire.ReadPipelineRequest(conn, s.cfg.MaxVertices, s.cfg.MaxEdges)
	if err != nil {
		log.Warn("failed to parse pipeline request", "error", err)
		metrics.Get().ActiveConnections.Dec()
		metrics.Get().RecordJob("pipeline", "error")
		_ = conn.Close()
		return
	}

	g, err := graph.New(req.Vertices)
	if err != nil {
		log.Error("failed to create graph", "error", err)
		metrics.Get().ActiveConnections.Dec()
		metrics.Get().RecordJob("pipeline", "error")
		_ = conn.Close()
		return
	}

	for _, e := range req.Edges {
		w := e.Weight
		if w <= 0 {
			w = 1
		}
		if addErr := g.AddWeightedEdge(e.U, e.V, w); addErr != nil {
			// Out-of-bounds is a connection-level failure (§7); duplicates
			// and other rejections are ignored silently, matching the
			// original servers.
			if apperror.Is(addErr, apperror.CodeOutOfBounds) {
				log.Warn("pipeline request referenced an out-of-range vertex", "u", e.U, "v", e.V)
				metrics.Get().ActiveConnections.Dec()
				metrics.Get().RecordJob("pipeline", "error")
				_ = conn.Close()
				return
			}
		}
	}

	metrics.Get().RecordGraphSize("pipeline", req.Vertices)

	job := &Job{
		ID:        s.nextJobID(),
		Graph:     g,
		Conn:      conn,
		ConnID:    connID,
		StartTime: time.Now(),
	}
	log.Debug("job accepted", "job_id", job.ID, "vertices", req.Vertices, "edges", len(req.Edges))

	if !s.q1.Push(job) {
		log.Warn("job dropped at Q1 during shutdown", "job_id", job.ID)
		metrics.Get().ActiveConnections.Dec()
		_ = conn.Close()
	}
}

// runStage loops popping a job from in, running fn over it, and pushing to
// out, until in is closed and drained.
func (s *Server) runStage(name string, in, out *queue.Queue[*Job], fn func(*Job)) {
	defer s.wg.Done()
	for {
		job, ok := in.Pop()
		if !ok {
			return
		}
		fn(job)
		logger.WithConnID(job.ConnID).Debug("stage complete", "stage", name, "job_id", job.ID)
		if !out.Push(job) {
			logger.WithConnID(job.ConnID).Warn("job dropped during shutdown", "stage", name, "job_id", job.ID)
			metrics.Get().ActiveConnections.Dec()
			_ = job.Conn.Close()
		}
	}
}

func (s *Server) stageMST(job *Job) {
	job.MSTStr = formatMST(mst.Compute(job.Graph))
}

func (s *Server) stageMaxFlow(job *Job) {
	result, err := maxflow.ComputeDefault(job.Graph)
	job.MaxFlowStr = formatMaxFlow(result, err)
}

func (s *Server) stageMaxClique(job *Job) {
	job.CliqueStr = formatMaxClique(clique.MaxClique(job.Graph))
}

// runFinalStage is stage 4: it counts cliques, composes and sends the final
// response, then tears the job down (close connection, let the graph and
// job be reclaimed by the garbage collector).
func (s *Server) runFinalStage() {
	defer s.wg.Done()
	for {
		job, ok := s.q4.Pop()
		if !ok {
			return
		}

		job.CountStr = formatCliqueCount(clique.CountAll(job.Graph))
		elapsed := time.Since(job.StartTime)

		log := logger.WithConnID(job.ConnID)
		if err := wire.WritePipelineResponse(job.Conn, job.ID, job.Graph.N(), elapsed, job.MSTStr, job.MaxFlowStr, job.CliqueStr, job.CountStr); err != nil {
			log.Warn("failed to write pipeline response", "job_id", job.ID, "error", err)
			metrics.Get().RecordJob("pipeline", "error")
		} else {
			log.Info("job completed", "job_id", job.ID, "duration", elapsed)
			metrics.Get().RecordJob("pipeline", "success")
		}

		_ = job.Conn.Close()
		metrics.Get().ActiveConnections.Dec()
	}
}
