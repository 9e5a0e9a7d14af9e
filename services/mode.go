package services

import "sort"

// Counted is a value with its number of occurrences.
type Counted[T comparable] struct {
	Value T
	Count int
}

// tally counts values. entries stays in first-seen order; mode and sorted
// depend on it for tie-breaks.
type tally[T comparable] struct {
	index   map[T]int
	entries []Counted[T]
}

func newTally[T comparable]() *tally[T] {
	return &tally[T]{index: make(map[T]int)}
}

func (t *tally[T]) add(v T) {
	if i, ok := t.index[v]; ok {
		t.entries[i].Count++
		return
	}
	t.index[v] = len(t.entries)
	t.entries = append(t.entries, Counted[T]{Value: v, Count: 1})
}

// mode returns the most frequent value; among equal counts the value seen
// first wins.
func (t *tally[T]) mode() (Counted[T], bool) {
	var best Counted[T]
	found := false
	for _, e := range t.entries {
		if !found || e.Count > best.Count {
			best = e
			found = true
		}
	}
	return best, found
}

// sorted returns all values by descending count, ties in first-seen order.
func (t *tally[T]) sorted() []Counted[T] {
	out := make([]Counted[T], len(t.entries))
	copy(out, t.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Mode returns the most frequent element of values and how often it occurs.
// Ties go to the element that appears first. ok is false for empty input.
func Mode[T comparable](values []T) (mode T, count int, ok bool) {
	t := newTally[T]()
	for _, v := range values {
		t.add(v)
	}
	best, ok := t.mode()
	return best.Value, best.Count, ok
}

// Frequencies returns every distinct element with its count, most frequent
// first, ties in order of first appearance.
func Frequencies[T comparable](values []T) []Counted[T] {
	t := newTally[T]()
	for _, v := range values {
		t.add(v)
	}
	return t.sorted()
}
