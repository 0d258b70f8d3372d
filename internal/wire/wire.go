// Package wire implements the raw binary framing consumed by every
// graphsuite server (§6): the pipeline server's header-plus-edge-block
// request and text response, the leader/follower server's weighted and
// unweighted requests and its [status,length,bytes,NUL] response, and the
// standalone Euler server's matrix request and [status,length,cycle...]
// response.
//
// All integers are the platform's native int width. graphsuite assumes the
// common case of an 8-byte little-endian int (amd64/arm64) and encodes with
// binary.NativeEndian, preserving the original C servers' host-byte-order
// behavior rather than silently switching to a portable wire format (design
// note §9: this is a known compatibility hazard, kept intentionally so a Go
// client built with this package still interoperates with the original C
// clients on the same architecture family).
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"graphsuite/pkg/apperror"
)

// IntSize is the on-wire width of one native int, in bytes.
const IntSize = 8

// ReadInt reads one native-endian int from r.
func ReadInt(r io.Reader) (int, error) {
	var buf [IntSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int(int64(binary.NativeEndian.Uint64(buf[:]))), nil
}

// WriteInt writes one native-endian int to w.
func WriteInt(w io.Writer, v int) error {
	var buf [IntSize]byte
	binary.NativeEndian.PutUint64(buf[:], uint64(int64(v)))
	_, err := w.Write(buf[:])
	return err
}

// ReadInts reads n consecutive native-endian ints from r.
func ReadInts(r io.Reader, n int) ([]int, error) {
	buf := make([]byte, n*IntSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i := range out {
		out[i] = int(int64(binary.NativeEndian.Uint64(buf[i*IntSize:])))
	}
	return out, nil
}

// WeightedEdge is one (u, v, weight) triplet as it appears on the wire for
// both the pipeline request's edge block and the leader/follower server's
// weighted request.
type WeightedEdge struct {
	U, V, Weight int
}

// PipelineRequest is a parsed pipeline-server request (§6): a header
// followed by a variable-length block of weighted edge triplets.
type PipelineRequest struct {
	Seed      int
	MaxWeight int
	Vertices  int
	Edges     []WeightedEdge
}

// ReadPipelineRequest parses the pipeline wire format. The client
// (original_source/OS_project/part11/client.c) issues one send() for the
// 3-int header and a second for the edge block without ever declaring an
// edge count, so the original C server interprets whatever a single recv()
// call returned as "header plus however many whole triplets fit". This
// function reproduces that one-shot-buffer interpretation: the header is
// read with a blocking full read (a client that does not deliver all three
// header ints is malformed), then the edge block is read with a single
// Read call into a maxEdges-sized buffer, and any bytes left over after the
// last complete triplet are discarded rather than treated as an error.
func ReadPipelineRequest(r io.Reader, maxVertices, maxEdges int) (*PipelineRequest, error) {
	header, err := ReadInts(r, 3)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeTransportError, "short read on pipeline header")
	}

	req := &PipelineRequest{Seed: header[0], MaxWeight: header[1], Vertices: header[2]}
	if req.Vertices < 1 || req.Vertices > maxVertices {
		return nil, apperror.New(apperror.CodeInvalidRequest, "vertex count out of range").
			WithDetails("vertices", req.Vertices).WithDetails("max", maxVertices)
	}

	buf := make([]byte, maxEdges*3*IntSize)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return nil, apperror.Wrap(err, apperror.CodeTransportError, "short read on pipeline edge block")
	}

	numTriplets := (n / IntSize) / 3
	req.Edges = make([]WeightedEdge, numTriplets)
	br := bytes.NewReader(buf[:numTriplets*3*IntSize])
	for i := 0; i < numTriplets; i++ {
		vals, err := ReadInts(br, 3)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeTransportError, "truncated edge triplet")
		}
		req.Edges[i] = WeightedEdge{U: vals[0], V: vals[1], Weight: vals[2]}
	}
	return req, nil
}

// WritePipelineResponse writes the pipeline server's UTF-8 text response
// (§6): job id, vertex count, wall-clock processing time to two decimals,
// then one line per algorithm result, in MST/MaxFlow/MaxClique/CliqueCount
// order (§8 scenario S6). The caller closes the connection after this call
// returns; the response is terminated by connection close, not a length
// prefix.
func WritePipelineResponse(w io.Writer, jobID, vertices int, elapsed time.Duration, mstLine, maxFlowLine, cliqueLine, countLine string) error {
	_, err := fmt.Fprintf(w,
		"Job ID: %d\nGraph: %d vertices\nProcessing time: %.2fs\nMST: %s\nMaxFlow: %s\nMaxClique: %s\nCliqueCount: %s\n",
		jobID, vertices, elapsed.Seconds(), mstLine, maxFlowLine, cliqueLine, countLine,
	)
	return err
}

// LFRequest is a parsed leader/follower request (§6), either weighted
// (algorithm ids 2-3: MaxFlow, MST) with an explicit edge list, or
// unweighted (ids 1, 4, 5: Euler, MaxClique, CliqueCount) with a dense
// adjacency matrix.
type LFRequest struct {
	AlgorithmID int
	N           int
	Edges       []WeightedEdge // weighted requests only
	Matrix      []bool         // unweighted requests only, row-major N×N
}

// IsWeighted reports whether id names MaxFlow or MST, the two algorithms
// that take an explicit edge list rather than a dense adjacency matrix.
func IsWeighted(algorithmID int) bool {
	return algorithmID == 2 || algorithmID == 3
}

// ReadLFRequest parses a leader/follower request from r. Unlike the
// pipeline protocol, every field here is explicitly length-prefixed (an
// edge count for weighted requests, a fixed N×N for unweighted ones), so
// this reads deterministically with io.ReadFull rather than a single
// best-effort Read.
func ReadLFRequest(r io.Reader, maxVertices int) (*LFRequest, error) {
	id, err := ReadInt(r)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeTransportError, "short read on algorithm id")
	}
	if id < 1 || id > 5 {
		return nil, apperror.New(apperror.CodeInvalidRequest, "unknown algorithm id").WithDetails("id", id)
	}

	n, err := ReadInt(r)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeTransportError, "short read on vertex count")
	}
	if n < 1 || n > maxVertices {
		return nil, apperror.New(apperror.CodeInvalidRequest, "vertex count out of range").
			WithDetails("n", n).WithDetails("max", maxVertices)
	}

	req := &LFRequest{AlgorithmID: id, N: n}

	if IsWeighted(id) {
		numEdges, err := ReadInt(r)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeTransportError, "short read on edge count")
		}
		if numEdges < 0 {
			return nil, apperror.New(apperror.CodeInvalidRequest, "negative edge count").WithDetails("num_edges", numEdges)
		}
		vals, err := ReadInts(r, numEdges*3)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeTransportError, "short read on edge list")
		}
		req.Edges = make([]WeightedEdge, numEdges)
		for i := 0; i < numEdges; i++ {
			req.Edges[i] = WeightedEdge{U: vals[i*3], V: vals[i*3+1], Weight: vals[i*3+2]}
		}
		return req, nil
	}

	vals, err := ReadInts(r, n*n)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeTransportError, "short read on adjacency matrix")
	}
	req.Matrix = make([]bool, n*n)
	for i, v := range vals {
		req.Matrix[i] = v == 1
	}
	return req, nil
}

// WriteLFSuccess writes a successful leader/follower response:
// [status=1, length, result bytes, NUL] (§6).
func WriteLFSuccess(w io.Writer, result string) error {
	if err := WriteInt(w, 1); err != nil {
		return err
	}
	if err := WriteInt(w, len(result)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, result); err != nil {
		return err
	}
	_, err := w.Write([]byte{0})
	return err
}

// WriteLFFailure writes a failed leader/follower response: [status=0,
// length=0] with no trailing bytes, matching send_response(fd, NULL) in
// original_source/FinalProject/part8/server.c.
func WriteLFFailure(w io.Writer) error {
	if err := WriteInt(w, 0); err != nil {
		return err
	}
	return WriteInt(w, 0)
}

// EulerRequest is a parsed request for the standalone Euler text server
// (§6 supplement): a vertex count and a dense adjacency matrix.
type EulerRequest struct {
	N      int
	Matrix []bool // row-major N×N
}

// ReadEulerRequest parses an Euler-server request from r.
func ReadEulerRequest(r io.Reader, maxVertices int) (*EulerRequest, error) {
	n, err := ReadInt(r)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeTransportError, "short read on vertex count")
	}
	if n < 1 || n > maxVertices {
		return nil, apperror.New(apperror.CodeInvalidRequest, "vertex count out of range").
			WithDetails("n", n).WithDetails("max", maxVertices)
	}

	vals, err := ReadInts(r, n*n)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeTransportError, "short read on adjacency matrix")
	}
	matrix := make([]bool, n*n)
	for i, v := range vals {
		matrix[i] = v == 1
	}
	return &EulerRequest{N: n, Matrix: matrix}, nil
}

// WriteEulerSuccess writes [status=1, cycle_length, cycle_vertices...].
func WriteEulerSuccess(w io.Writer, cycle []int) error {
	if err := WriteInt(w, 1); err != nil {
		return err
	}
	if err := WriteInt(w, len(cycle)); err != nil {
		return err
	}
	for _, v := range cycle {
		if err := WriteInt(w, v); err != nil {
			return err
		}
	}
	return nil
}

// WriteEulerFailure writes [status=0, cycle_length=0].
func WriteEulerFailure(w io.Writer) error {
	if err := WriteInt(w, 0); err != nil {
		return err
	}
	return WriteInt(w, 0)
}
