package engine

import (
	"container/heap"

	"spaceship-server/internal/domain"
)

// schedItem is one queued future effect.
type schedItem struct {
	dueMs int64
	seq   int64 // insertion order breaks due-time ties deterministically
	eff   domain.Effect
	index int
}

// schedHeap implements heap.Interface ordered by due time.
type schedHeap []*schedItem

func (h schedHeap) Len() int { return len(h) }

func (h schedHeap) Less(i, j int) bool {
	if h[i].dueMs != h[j].dueMs {
		return h[i].dueMs < h[j].dueMs
	}
	return h[i].seq < h[j].seq
}

func (h schedHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *schedHeap) Push(x interface{}) {
	n := len(*h)
	item := x.(*schedItem)
	item.index = n
	*h = append(*h, item)
}

func (h *schedHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // avoid a memory leak
	item.index = -1
	*h = old[0 : n-1]
	return item
}

// Scheduler is the per-session queue of (due-tick, owner, effect)
// entries, consumed inside the session's own tick. It replaces
// fire-and-forget timers: cancelling an owner removes every pending
// entry it scheduled, deterministically.
//
// Not safe for concurrent use; the owning session serializes access.
type Scheduler struct {
	queue schedHeap
	seq   int64
	now   func() int64
}

// NewScheduler creates a scheduler reading the session tick clock
// through now.
func NewScheduler(now func() int64) *Scheduler {
	s := &Scheduler{now: now}
	heap.Init(&s.queue)
	return s
}

// Schedule queues an effect delayMs after the current session tick.
func (s *Scheduler) Schedule(delayMs int64, eff domain.Effect) {
	s.seq++
	heap.Push(&s.queue, &schedItem{
		dueMs: s.now() + delayMs,
		seq:   s.seq,
		eff:   eff,
	})
}

// PopDue removes and returns every effect due at or before nowMs, in
// due order.
func (s *Scheduler) PopDue(nowMs int64) []domain.Effect {
	var due []domain.Effect
	for s.queue.Len() > 0 && s.queue[0].dueMs <= nowMs {
		item := heap.Pop(&s.queue).(*schedItem)
		due = append(due, item.eff)
	}
	return due
}

// CancelOwner drops every pending entry scheduled by the given owner.
func (s *Scheduler) CancelOwner(ownerID string) {
	kept := s.queue[:0]
	for _, item := range s.queue {
		if item.eff.OwnerID != ownerID {
			kept = append(kept, item)
		}
	}
	s.queue = kept
	heap.Init(&s.queue)
}

// CancelAll drops everything; used on session teardown.
func (s *Scheduler) CancelAll() {
	s.queue = s.queue[:0]
}

// HasOwner reports whether any pending entry belongs to the owner.
func (s *Scheduler) HasOwner(ownerID string) bool {
	for _, item := range s.queue {
		if item.eff.OwnerID == ownerID {
			return true
		}
	}
	return false
}

// Len returns the number of pending entries.
func (s *Scheduler) Len() int {
	return s.queue.Len()
}
