package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func p(v int64) *int64 { return &v }

// 1
// ├── 2
// │   ├── 4
// │   └── 5
// └── 3
//
//	└── 6
func sample() *Tree {
	return New(map[int64]*int64{
		1: nil,
		2: p(1),
		3: p(1),
		4: p(2),
		5: p(2),
		6: p(3),
		7: nil,
	})
}

func TestDescendants(t *testing.T) {
	tr := sample()
	assert.Equal(t, []int64{2, 3, 4, 5, 6}, tr.Descendants(1))
	assert.Equal(t, []int64{4, 5}, tr.Descendants(2))
	assert.Empty(t, tr.Descendants(7))
	assert.Empty(t, tr.Descendants(99))
}

func TestIsDescendant(t *testing.T) {
	tr := sample()
	assert.True(t, tr.IsDescendant(1, 5))
	assert.True(t, tr.IsDescendant(3, 6))
	assert.False(t, tr.IsDescendant(2, 6))
	assert.False(t, tr.IsDescendant(5, 1))
}

func TestCanAttach(t *testing.T) {
	tr := sample()
	assert.NoError(t, tr.CanAttach(6, 2))
	assert.NoError(t, tr.CanAttach(7, 4))
	assert.ErrorIs(t, tr.CanAttach(1, 1), ErrCycle)
	assert.ErrorIs(t, tr.CanAttach(1, 5), ErrCycle)
	assert.ErrorIs(t, tr.CanAttach(2, 4), ErrCycle)
}

func TestExistingCycleTerminates(t *testing.T) {
	tr := New(map[int64]*int64{1: p(2), 2: p(1)})
	assert.Equal(t, []int64{2}, tr.Descendants(1))
	assert.True(t, tr.IsDescendant(1, 2))
	assert.False(t, tr.IsDescendant(3, 2))
}

func TestChildren(t *testing.T) {
	tr := sample()
	assert.Equal(t, []int64{2, 3}, tr.Children(1))
	parent, ok := tr.Parent(4)
	assert.True(t, ok)
	assert.Equal(t, int64(2), parent)
	_, ok = tr.Parent(1)
	assert.False(t, ok)
}
