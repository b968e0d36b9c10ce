package queue

import "container/heap"

// Action is a deferred piece of work. now is the clock value Advance was called with.
type Action func(now float64)

// Guard reports whether the entity owning a deferred action still exists.
// A nil Guard is always alive.
type Guard func() bool

type delayed struct {
	at    float64
	seq   uint64
	alive Guard
	run   Action
}

type delayHeap []*delayed

func (h delayHeap) Len() int { return len(h) }

func (h delayHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h delayHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *delayHeap) Push(x any) { *h = append(*h, x.(*delayed)) }

func (h *delayHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Delay is a min-heap of actions keyed by fire time on a caller-supplied clock.
// It is not safe for concurrent use; the simulation drains it from the tick.
type Delay struct {
	h   delayHeap
	seq uint64
}

func NewDelay() *Delay {
	return &Delay{}
}

// Schedule queues run to fire once the clock reaches at. Entries with equal
// fire times run in scheduling order.
func (d *Delay) Schedule(at float64, alive Guard, run Action) {
	d.seq++
	heap.Push(&d.h, &delayed{at: at, seq: d.seq, alive: alive, run: run})
}

// After queues run to fire delay units after now.
func (d *Delay) After(now, delay float64, alive Guard, run Action) {
	d.Schedule(now+delay, alive, run)
}

// Advance runs every entry due at now whose guard still holds and discards the
// ones whose owner is gone. Entries scheduled while advancing wait for the next call.
func (d *Delay) Advance(now float64) (ran, dropped int) {
	limit := d.seq
	var deferred []*delayed

	for d.h.Len() > 0 && d.h[0].at <= now {
		e := heap.Pop(&d.h).(*delayed)
		if e.seq > limit {
			deferred = append(deferred, e)
			continue
		}
		if e.alive != nil && !e.alive() {
			dropped++
			continue
		}
		e.run(now)
		ran++
	}

	for _, e := range deferred {
		heap.Push(&d.h, e)
	}
	return ran, dropped
}

// Len returns the number of pending entries.
func (d *Delay) Len() int {
	return d.h.Len()
}

// NextAt returns the earliest pending fire time.
func (d *Delay) NextAt() (float64, bool) {
	if d.h.Len() == 0 {
		return 0, false
	}
	return d.h[0].at, true
}

// Clear drops every pending entry without running it.
func (d *Delay) Clear() {
	d.h = nil
}
