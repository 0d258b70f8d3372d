// Package leaderfollower implements the leader/follower thread-pool server
// (§4.8): a fixed pool of workers shares one listening endpoint; a single
// mutex-and-condition-variable pair elects exactly one leader at a time,
// and the leader promotes its successor immediately after accept returns,
// before it starts processing the connection itself as an ordinary worker.
//
// Grounded directly on original_source/FinalProject/part8/server.c, the one
// file in the kept source that survived with a complete function body
// matching the spec 1:1: worker_thread's leader-election loop,
// process_weighted_request/process_unweighted_request's request-shape
// dispatch, and process_client's parse-dispatch-reply-close sequence.
package leaderfollower

import (
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"graphsuite/internal/graph"
	"graphsuite/internal/strategy"
	"graphsuite/internal/wire"
	"graphsuite/pkg/config"
	"graphsuite/pkg/logger"
	"graphsuite/pkg/metrics"
)

// Server is the leader/follower server. The zero value is not usable;
// build one with New.
type Server struct {
	cfg     config.LeaderFollowerConfig
	factory *strategy.Factory

	listener net.Listener

	mu            sync.Mutex
	cond          *sync.Cond
	currentLeader int

	shutdown atomic.Bool
	wg       sync.WaitGroup

	totalRequests atomic.Int64
}

// New constructs a Server from its configuration.
func New(cfg config.LeaderFollowerConfig) *Server {
	s := &Server{cfg: cfg, factory: strategy.NewFactory()}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Listen binds the shared listening socket.
func (s *Server) Listen() (net.Addr, error) {
	lis, err := net.Listen("tcp", ":"+strconv.Itoa(s.cfg.Port))
	if err != nil {
		return nil, err
	}
	s.listener = lis
	return lis.Addr(), nil
}

// Serve starts the worker pool and blocks until every worker has exited
// (which happens only after Shutdown is called). Listen must have been
// called first. Worker 0 is the initial leader, matching the original's
// "Thread 0 is initial Leader" startup message.
func (s *Server) Serve() error {
	logger.Info("leader/follower server listening", "addr", s.listener.Addr(), "pool_size", s.cfg.PoolSize)

	s.wg.Add(s.cfg.PoolSize)
	for id := 0; id < s.cfg.PoolSize; id++ {
		go s.worker(id)
	}
	s.wg.Wait()

	logger.Info("leader/follower server stopped", "total_requests", s.totalRequests.Load())
	return nil
}

// ListenAndServe binds the listening socket and runs the server until
// Shutdown is called.
func (s *Server) ListenAndServe() error {
	if _, err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown sets the cooperative shutdown flag, wakes every worker blocked
// waiting for the leader role, and closes the shared listener so a worker
// currently in accept also unblocks.
func (s *Server) Shutdown() {
	if !s.shutdown.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

// Wait blocks until the worker pool has fully exited.
func (s *Server) Wait() {
	s.wg.Wait()
}

func (s *Server) worker(id int) {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		for s.currentLeader != id && !s.shutdown.Load() {
			s.cond.Wait()
		}
		if s.shutdown.Load() {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		logger.Debug("worker accepting as leader", "worker_id", id)
		conn, err := s.listener.Accept()
		if err != nil {
			if s.shutdown.Load() {
				return
			}
			logger.Warn("leader/follower accept failed", "worker_id", id, "error", err)
			continue
		}

		s.mu.Lock()
		s.currentLeader = (s.currentLeader + 1) % s.cfg.PoolSize
		metrics.Get().ActiveLeader.Set(float64(s.currentLeader))
		s.cond.Broadcast()
		s.mu.Unlock()

		s.processClient(id, conn)
	}
}

// processClient parses exactly one request from conn, dispatches it through
// the strategy factory, writes exactly one response, and closes the
// connection (§4.8: single-request-then-close, no keep-alive).
func (s *Server) processClient(workerID int, conn net.Conn) {
	defer conn.Close()
	defer func() { s.totalRequests.Add(1) }()

	connID := uuid.NewString()
	log := logger.WithConnID(connID)
	metrics.Get().ActiveConnections.Inc()
	defer metrics.Get().ActiveConnections.Dec()

	req, err := wire.ReadLFRequest(conn, s.cfg.MaxVertices)
	if err != nil {
		log.Warn("failed to parse request", "worker_id", workerID, "error", err)
		metrics.Get().RecordJob("leaderfollower", "error")
		_ = wire.WriteLFFailure(conn)
		return
	}

	g, err := graph.New(req.N)
	if err != nil {
		log.Error("failed to create graph", "worker_id", workerID, "error", err)
		metrics.Get().RecordJob("leaderfollower", "error")
		_ = wire.WriteLFFailure(conn)
		return
	}

	if wire.IsWeighted(req.AlgorithmID) {
		s.applyWeightedEdges(g, req)
	} else {
		s.applyAdjacencyMatrix(g, req)
	}

	metrics.Get().RecordGraphSize("leaderfollower", req.N)

	result := s.factory.Execute(g, req.AlgorithmID)
	log.Debug("request processed", "worker_id", workerID, "algorithm_id", req.AlgorithmID, "result", result)
	metrics.Get().RecordJob("leaderfollower", "success")
	if err := wire.WriteLFSuccess(conn, result); err != nil {
		log.Warn("failed to write response", "worker_id", workerID, "error", err)
	}
}

// applyWeightedEdges adds each edge with AddWeightedEdge directly. This
// reproduces process_weighted_request's "add then rescan both endpoints to
// overwrite weight" behavior in one call: AddWeightedEdge rejects a
// duplicate pair outright, so a second triplet naming an already-added pair
// silently fails to update its weight, exactly as in the original (§9 open
// question: asymmetric weight update, preserved).
func (s *Server) applyWeightedEdges(g *graph.Graph, req *wire.LFRequest) {
	for _, e := range req.Edges {
		if e.U < 0 || e.U >= req.N || e.V < 0 || e.V >= req.N || e.Weight <= 0 {
			continue
		}
		_ = g.AddWeightedEdge(e.U, e.V, e.Weight)
	}
}

// applyAdjacencyMatrix builds an edge for every set cell in the upper
// triangle (including the diagonal for self-loops), matching
// process_unweighted_request's `for j := i; j < n; j++` scan that avoids
// adding the same undirected pair twice from a symmetric matrix.
func (s *Server) applyAdjacencyMatrix(g *graph.Graph, req *wire.LFRequest) {
	n := req.N
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if req.Matrix[i*n+j] {
				_ = g.AddEdge(i, j)
			}
		}
	}
}
