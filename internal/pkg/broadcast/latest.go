// Package broadcast provides an in-process publish/subscribe channel that
// remembers its most recent value and replays it to new subscribers.
package broadcast

import "sync"

// Latest is a replay-of-one broadcast channel. The zero value is ready to use.
//
// Handlers run on the publishing goroutine, in publish order. A handler must
// not call Publish on the same channel.
type Latest[T any] struct {
	deliver sync.Mutex // serializes Publish and the replay in Subscribe

	mu      sync.Mutex
	last    T
	hasLast bool
	nextID  uint64
	subs    map[uint64]func(T)
}

// Publish stores v as the latest value and delivers it to every subscriber.
func (l *Latest[T]) Publish(v T) {
	l.deliver.Lock()
	defer l.deliver.Unlock()

	l.mu.Lock()
	l.last = v
	l.hasLast = true
	handlers := make([]func(T), 0, len(l.subs))
	for _, fn := range l.subs {
		handlers = append(handlers, fn)
	}
	l.mu.Unlock()

	for _, fn := range handlers {
		fn(v)
	}
}

// Subscribe registers fn. If a value was already published, fn receives it
// before Subscribe returns. The returned cancel func is idempotent.
func (l *Latest[T]) Subscribe(fn func(T)) (cancel func()) {
	l.deliver.Lock()
	defer l.deliver.Unlock()

	l.mu.Lock()
	if l.subs == nil {
		l.subs = make(map[uint64]func(T))
	}
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	last, ok := l.last, l.hasLast
	l.mu.Unlock()

	if ok {
		fn(last)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
		})
	}
}

// Last returns the most recently published value.
func (l *Latest[T]) Last() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last, l.hasLast
}

// Subscribers returns the number of active subscriptions.
func (l *Latest[T]) Subscribers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

// Chan adapts a subscription to a channel holding at most one pending value.
// A slow reader only ever sees the newest value. Call cancel to stop delivery;
// the channel is not closed.
func (l *Latest[T]) Chan() (<-chan T, func()) {
	ch := make(chan T, 1)
	cancel := l.Subscribe(func(v T) {
		for {
			select {
			case ch <- v:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
	return ch, cancel
}
