package engine

import (
	"cmp"
	"slices"

	"github.com/samdwyer/rogue1980/internal/entity"
)

// QueueEntry is one monster's place in the round's turn order.
type QueueEntry struct {
	ID       entity.ID
	Priority int
}

// Priority converts speed into a turn-order key. Lower acts first.
func Priority(speed int) int {
	return 100 / max(1, speed)
}

// buildQueue orders the living monsters for this round: ascending priority,
// then ascending ID. Priorities are recomputed every round.
func buildQueue(store *entity.Store) []QueueEntry {
	var q []QueueEntry
	for _, id := range store.AllLiving() {
		e, _ := store.Get(id)
		if e.IsPlayer() {
			continue
		}
		q = append(q, QueueEntry{ID: id, Priority: Priority(e.Stats.Speed)})
	}
	slices.SortFunc(q, func(a, b QueueEntry) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return q
}
