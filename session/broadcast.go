package session

import "sync"

// broadcast is a replay-latest multicast channel of "is a valid session
// currently active" booleans. Subscribers are invoked in registration order
// on every transition, and a late subscriber immediately receives the latest
// value, so there is no missed-initial-value race.
type broadcast struct {
	mu     sync.Mutex
	latest bool
	nextID uint64
	order  []uint64
	subs   map[uint64]func(bool)
}

func newBroadcast() *broadcast {
	return &broadcast{subs: map[uint64]func(bool){}}
}

// subscribe registers fn, replays the latest value to it synchronously, and
// returns a cancel func. Transition callbacks run with the owning store's
// lock held and must not call back into the store; the registration-time
// replay carries no such restriction.
func (b *broadcast) subscribe(fn func(bool)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.order = append(b.order, id)
	latest := b.latest
	b.mu.Unlock()

	fn(latest)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; !ok {
			return
		}
		delete(b.subs, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// publish records v as the latest value and invokes every subscriber in
// registration order. Duplicate suppression is the caller's concern: the
// store only publishes on actual state transitions.
func (b *broadcast) publish(v bool) {
	b.mu.Lock()
	b.latest = v
	fns := make([]func(bool), 0, len(b.order))
	for _, id := range b.order {
		if fn, ok := b.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (b *broadcast) current() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest
}
