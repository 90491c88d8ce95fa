package broadcast

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatest_NoValueNoDelivery(t *testing.T) {
	var l Latest[string]
	var got []string

	cancel := l.Subscribe(func(v string) { got = append(got, v) })
	defer cancel()

	assert.Empty(t, got, "subscriber must not receive anything before a publish")
	_, ok := l.Last()
	assert.False(t, ok)
}

func TestLatest_ReplaysLastToLateSubscriber(t *testing.T) {
	var l Latest[int]
	l.Publish(1)
	l.Publish(2)

	var got []int
	cancel := l.Subscribe(func(v int) { got = append(got, v) })
	defer cancel()

	require.Equal(t, []int{2}, got, "late subscriber should see only the latest value")

	l.Publish(3)
	assert.Equal(t, []int{2, 3}, got)
}

func TestLatest_FanOutInOrder(t *testing.T) {
	var l Latest[int]
	var a, b []int
	cancelA := l.Subscribe(func(v int) { a = append(a, v) })
	cancelB := l.Subscribe(func(v int) { b = append(b, v) })
	defer cancelB()

	for i := 0; i < 5; i++ {
		l.Publish(i)
	}
	cancelA()
	l.Publish(99)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, a)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 99}, b)
	assert.Equal(t, 1, l.Subscribers())
}

func TestLatest_CancelIsIdempotent(t *testing.T) {
	var l Latest[int]
	cancel := l.Subscribe(func(int) {})
	cancel()
	cancel()
	assert.Equal(t, 0, l.Subscribers())
}

func TestLatest_ConcurrentPublish(t *testing.T) {
	var l Latest[int]
	var mu sync.Mutex
	count := 0
	cancel := l.Subscribe(func(int) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			l.Publish(v)
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 50, count)
}

func TestLatest_ChanKeepsNewest(t *testing.T) {
	var l Latest[string]
	l.Publish("a")

	ch, cancel := l.Chan()
	defer cancel()

	l.Publish("b")
	l.Publish("c")

	assert.Equal(t, "c", <-ch)
	select {
	case v := <-ch:
		t.Fatalf("expected no pending value, got %q", v)
	default:
	}
}
