// Package setutil holds small id collections.
package setutil

import "sort"

// UintSet is a set of ids that remembers the order ids were first added.
type UintSet struct {
	items map[uint]struct{}
	order []uint
}

func NewUintSet() *UintSet {
	return NewUintSetWithCap(0)
}

func NewUintSetWithCap(cap int) *UintSet {
	return &UintSet{
		items: make(map[uint]struct{}, cap),
		order: make([]uint, 0, cap),
	}
}

// FromSlice builds a set from ids, dropping repeats.
func FromSlice(ids []uint) *UintSet {
	s := NewUintSetWithCap(len(ids))
	s.AddAll(ids)
	return s
}

// Add reports whether id was new.
func (s *UintSet) Add(id uint) bool {
	if _, ok := s.items[id]; ok {
		return false
	}
	s.items[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *UintSet) AddAll(ids []uint) {
	for _, id := range ids {
		s.Add(id)
	}
}

func (s *UintSet) Has(id uint) bool {
	_, ok := s.items[id]
	return ok
}

// Missing returns the ids of want that are not in the set, in want's order.
func (s *UintSet) Missing(want []uint) []uint {
	var out []uint
	for _, id := range want {
		if !s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// ToSlice returns the ids in insertion order.
func (s *UintSet) ToSlice() []uint {
	out := make([]uint, len(s.order))
	copy(out, s.order)
	return out
}

// Sorted returns the ids ascending.
func (s *UintSet) Sorted() []uint {
	out := s.ToSlice()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *UintSet) Len() int {
	return len(s.order)
}

// Dedupe drops repeated ids, keeping the first occurrence of each.
func Dedupe(ids []uint) []uint {
	return FromSlice(ids).ToSlice()
}
