// Package run wires the control domain together: the ticker that paces
// the simulation, the world task that folds events into state, and the
// control task that maps snapshots into the audio thread's shared cell.
// All of it runs at tens of Hz and may block freely; nothing here is
// ever held by the audio thread.
package run

import (
	"sync"

	"github.com/veiltone/ambientd/synth"
	"github.com/veiltone/ambientd/world"
)

// Update pairs a world snapshot with the audio parameters derived
// from it, as the API surface presents them to clients.
type Update struct {
	World world.Snapshot `json:"world"`
	Audio synth.Params   `json:"audio"`
}

// Hub retains the latest update and fans new ones out to subscribers.
// Subscribers get latest-value semantics: a slow consumer skips
// intermediate updates rather than backing up the publisher.
type Hub struct {
	mu     sync.RWMutex
	latest Update
	subs   map[chan Update]struct{}
}

func NewHub(initial Update) *Hub {
	return &Hub{
		latest: initial,
		subs:   make(map[chan Update]struct{}),
	}
}

// Publish records the update and offers it to every subscriber,
// dropping the stale value for any that have not caught up.
func (h *Hub) Publish(u Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = u
	for ch := range h.subs {
		select {
		case ch <- u:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- u:
			default:
			}
		}
	}
}

// Latest returns the most recently published update.
func (h *Hub) Latest() Update {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Subscribe registers a latest-value channel. The returned cancel
// function removes the subscription; the channel is not closed, so a
// racing Publish cannot panic.
func (h *Hub) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, 1)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}
