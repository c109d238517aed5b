package setutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUintSet_KeepsInsertionOrder(t *testing.T) {
	s := NewUintSet()

	assert.True(t, s.Add(7))
	assert.True(t, s.Add(3))
	assert.False(t, s.Add(7))
	s.AddAll([]uint{9, 3, 1})

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []uint{7, 3, 9, 1}, s.ToSlice())
	assert.Equal(t, []uint{1, 3, 7, 9}, s.Sorted())
	assert.True(t, s.Has(9))
	assert.False(t, s.Has(2))
}

func TestUintSet_ToSliceIsACopy(t *testing.T) {
	s := FromSlice([]uint{1, 2})
	out := s.ToSlice()
	out[0] = 99

	assert.Equal(t, []uint{1, 2}, s.ToSlice())
}

func TestUintSet_Missing(t *testing.T) {
	tests := []struct {
		name string
		have []uint
		want []uint
		out  []uint
	}{
		{"all present", []uint{1, 2, 3}, []uint{3, 1}, nil},
		{"some absent", []uint{1, 2}, []uint{5, 1, 4}, []uint{5, 4}},
		{"empty set", nil, []uint{8}, []uint{8}},
		{"nothing wanted", []uint{1}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, FromSlice(tt.have).Missing(tt.want))
		})
	}
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []uint{4, 2, 8}, Dedupe([]uint{4, 2, 4, 8, 2}))
	assert.Empty(t, Dedupe(nil))
}
