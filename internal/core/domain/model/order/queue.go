package order

import "slices"

// Queue is the ordered collection of table destinations waiting to be served.
// Insertion order is service order (FIFO) and a destination appears at most once.
//
// Queue is not safe for concurrent use on its own: robot.Session owns the only
// instance and guards every access with its lock.
//
// Example:
//
//	q := order.NewQueue()
//	q.Add("table1", "table2", "table1") // returns [table1 table2]
//	next, ok := q.Pop()                 // next = "table1", ok = true
type Queue struct {
	items []string
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add appends destinations to the tail in the given order, suppressing ones
// already queued (including repeats within names).
//
// Returns:
//   - []string: the destinations actually appended, in order
func (q *Queue) Add(names ...string) []string {
	added := make([]string, 0, len(names))
	for _, name := range names {
		if q.Contains(name) {
			continue
		}
		q.items = append(q.items, name)
		added = append(added, name)
	}
	return added
}

// Remove deletes the given destinations if queued.
//
// Returns:
//   - []string: the destinations actually removed, in the order requested
func (q *Queue) Remove(names ...string) []string {
	removed := make([]string, 0, len(names))
	for _, name := range names {
		idx := slices.Index(q.items, name)
		if idx < 0 {
			continue
		}
		q.items = slices.Delete(q.items, idx, idx+1)
		removed = append(removed, name)
	}
	return removed
}

// Pop removes and returns the head of the queue.
// It reports false when the queue is empty.
func (q *Queue) Pop() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	head := q.items[0]
	q.items = slices.Delete(q.items, 0, 1)
	return head, true
}

// Contains reports whether name is queued.
func (q *Queue) Contains(name string) bool {
	return slices.Contains(q.items, name)
}

// Len returns the number of queued destinations.
func (q *Queue) Len() int {
	return len(q.items)
}

// IsEmpty reports whether nothing is queued.
func (q *Queue) IsEmpty() bool {
	return len(q.items) == 0
}

// Items returns a copy of the queued destinations in service order.
func (q *Queue) Items() []string {
	return slices.Clone(q.items)
}
