// Package eulerserver implements the standalone Euler-circuit text server:
// a plain accept loop in which each connection is served by its own
// goroutine that parses and answers requests in a loop until the client
// disconnects, unlike the leader/follower and pipeline servers'
// single-request-then-close connections.
//
// Grounded on original_source/FinalProject/part6/euler_server.c:
// handle_client's `while (1) { recv; process_request }` loop (broken only
// by a zero or negative read, i.e. client disconnect) and
// process_request's [n, adjacency_matrix] request shape answered with
// [status, cycle_length, cycle...].
package eulerserver

import (
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"graphsuite/internal/euler"
	"graphsuite/internal/graph"
	"graphsuite/internal/wire"
	"graphsuite/pkg/config"
	"graphsuite/pkg/logger"
	"graphsuite/pkg/metrics"
)

// Server is the standalone Euler-circuit text server. The zero value is not
// usable; build one with New.
type Server struct {
	cfg config.EulerConfig

	listener net.Listener
	shutdown atomic.Bool
	wg       sync.WaitGroup
}

// New constructs a Server from its configuration.
func New(cfg config.EulerConfig) *Server {
	return &Server{cfg: cfg}
}

// Listen binds the listening socket. The original's listen() backlog
// (cfg.Backlog) has no equivalent in net.Listen; Go's runtime picks the
// kernel default (typically net.core.somaxconn), so the value is carried
// in config for documentation parity only.
func (s *Server) Listen() (net.Addr, error) {
	lis, err := net.Listen("tcp", ":"+strconv.Itoa(s.cfg.Port))
	if err != nil {
		return nil, err
	}
	s.listener = lis
	return lis.Addr(), nil
}

// Serve runs the accept loop, spawning one goroutine per connection, until
// Shutdown closes the listener.
func (s *Server) Serve() error {
	logger.Info("euler server listening", "addr", s.listener.Addr())

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.shutdown.Load() {
				s.wg.Wait()
				return nil
			}
			logger.Warn("euler accept failed", "error", err)
			continue
		}
		s.wg.Add(1)
		go s.handleClient(conn)
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

// Shutdown sets the cooperative shutdown flag and closes the listener so
// the accept loop unblocks. In-flight client loops run to completion (they
// exit on their own once the peer disconnects).
func (s *Server) Shutdown() {
	if !s.shutdown.CompareAndSwap(false, true) {
		return
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

// Wait blocks until every in-flight client connection has been served.
func (s *Server) Wait() {
	s.wg.Wait()
}

// handleClient answers requests on conn in a loop, matching
// handle_client's per-connection `while (1)`: it keeps parsing and
// answering requests until a read fails (client disconnect or malformed
// framing), then closes the connection.
func (s *Server) handleClient(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	connID := uuid.NewString()
	log := logger.WithConnID(connID)
	metrics.Get().ActiveConnections.Inc()
	defer metrics.Get().ActiveConnections.Dec()

	for {
		req, err := wire.ReadEulerRequest(conn, s.cfg.MaxVertices)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Debug("euler connection closed", "error", err)
			}
			return
		}

		metrics.Get().RecordGraphSize("euler", req.N)

		g, err := graph.New(req.N)
		if err != nil {
			log.Warn("failed to build graph for euler request", "error", err)
			if werr := wire.WriteEulerFailure(conn); werr != nil {
				return
			}
			continue
		}
		for i := 0; i < req.N; i++ {
			for j := i; j < req.N; j++ {
				if req.Matrix[i*req.N+j] {
					_ = g.AddEdge(i, j)
				}
			}
		}

		cycle, ok := euler.FindCircuit(g)
		if !ok {
			metrics.Get().RecordJob("euler", "no_circuit")
			if werr := wire.WriteEulerFailure(conn); werr != nil {
				return
			}
			continue
		}

		metrics.Get().RecordJob("euler", "success")
		if werr := wire.WriteEulerSuccess(conn, cycle); werr != nil {
			log.Warn("failed to write euler response", "error", werr)
			return
		}
	}
}
