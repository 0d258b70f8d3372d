package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueue_FIFOOrder(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 4; i++ {
		require.True(t, q.Push(i))
	}
	for i := 0; i < 4; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestQueue_PushBlocksWhenFull(t *testing.T) {
	q := New[int](1)
	require.True(t, q.Push(1))

	pushed := make(chan bool, 1)
	go func() {
		pushed <- q.Push(2)
	}()

	select {
	case <-pushed:
		t.Fatal("Push on a full queue returned before a Pop made room")
	case <-time.After(50 * time.Millisecond):
	}

	v, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, 1, v)

	select {
	case ok := <-pushed:
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Push never unblocked after Pop freed a slot")
	}
}

func TestQueue_PopBlocksWhenEmpty(t *testing.T) {
	q := New[int](4)

	popped := make(chan int, 1)
	go func() {
		v, ok := q.Pop()
		require.True(t, ok)
		popped <- v
	}()

	select {
	case <-popped:
		t.Fatal("Pop on an empty queue returned before a Push arrived")
	case <-time.After(50 * time.Millisecond):
	}

	require.True(t, q.Push(7))

	select {
	case v := <-popped:
		require.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("Pop never unblocked after Push")
	}
}

func TestQueue_CloseWakesBlockedPop(t *testing.T) {
	q := New[int](4)

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Pop never woke on Close")
	}
}

func TestQueue_CloseWakesBlockedPush(t *testing.T) {
	q := New[int](1)
	require.True(t, q.Push(1))

	done := make(chan bool, 1)
	go func() {
		done <- q.Push(2)
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Push never woke on Close")
	}
}

func TestQueue_PopDrainsBufferedAfterClose(t *testing.T) {
	q := New[int](4)
	require.True(t, q.Push(1))
	require.True(t, q.Push(2))
	q.Close()

	v, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = q.Pop()
	require.True(t, ok)
	require.Equal(t, 2, v)

	_, ok = q.Pop()
	require.False(t, ok)
}

func TestQueue_DepthCallback(t *testing.T) {
	q := New[int](4)

	var mu sync.Mutex
	var depths []int
	q.OnDepthChange(func(depth int) {
		mu.Lock()
		depths = append(depths, depth)
		mu.Unlock()
	})

	require.True(t, q.Push(1))
	require.True(t, q.Push(2))
	_, _ = q.Pop()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{1, 2, 1}, depths)
}

func TestQueue_Concurrent(t *testing.T) {
	q := New[int](8)
	const n = 200

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			require.True(t, q.Push(i))
		}
	}()

	sum := 0
	for i := 0; i < n; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		sum += v
	}
	wg.Wait()
	require.Equal(t, n*(n-1)/2, sum)
}
