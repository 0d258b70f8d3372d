package eulerserver

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"graphsuite/internal/wire"
	"graphsuite/pkg/config"
	"graphsuite/pkg/logger"
)

func init() {
	logger.Init("error")
}

func startTestServer(t *testing.T) net.Addr {
	t.Helper()
	s := New(config.EulerConfig{Port: 0, MaxVertices: 50, Backlog: 10})
	addr, err := s.Listen()
	require.NoError(t, err)
	go func() { _ = s.Serve() }()
	t.Cleanup(func() {
		s.Shutdown()
		s.Wait()
	})
	return addr
}

func sendMatrix(t *testing.T, conn net.Conn, matrix []int) {
	t.Helper()
	n := 0
	for n*n != len(matrix) {
		n++
	}
	require.NoError(t, wire.WriteInt(conn, n))
	for _, v := range matrix {
		require.NoError(t, wire.WriteInt(conn, v))
	}
}

func readCycleResponse(t *testing.T, conn net.Conn) (int, []int) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	status, err := wire.ReadInt(conn)
	require.NoError(t, err)
	length, err := wire.ReadInt(conn)
	require.NoError(t, err)
	if length == 0 {
		return status, nil
	}
	cycle, err := wire.ReadInts(conn, length)
	require.NoError(t, err)
	return status, cycle
}

func TestEulerServer_TriangleCircuit(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	defer conn.Close()

	sendMatrix(t, conn, []int{
		0, 1, 1,
		1, 0, 1,
		1, 1, 0,
	})

	status, cycle := readCycleResponse(t, conn)
	require.Equal(t, 1, status)
	require.Len(t, cycle, 4)
}

func TestEulerServer_NoCircuitReportsFailure(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	defer conn.Close()

	// A single edge has two odd-degree vertices: no Euler circuit.
	sendMatrix(t, conn, []int{
		0, 1,
		1, 0,
	})

	status, cycle := readCycleResponse(t, conn)
	require.Equal(t, 0, status)
	require.Empty(t, cycle)
}

func TestEulerServer_MultipleRequestsPerConnection(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	defer conn.Close()

	for i := 0; i < 3; i++ {
		sendMatrix(t, conn, []int{
			0, 1, 1,
			1, 0, 1,
			1, 1, 0,
		})
		status, cycle := readCycleResponse(t, conn)
		require.Equal(t, 1, status)
		require.Len(t, cycle, 4)
	}
}
