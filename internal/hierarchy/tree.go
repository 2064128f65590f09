// Package hierarchy models parent/child trees keyed by id, such as leaders
// and their reports or teams and their sub-teams.
package hierarchy

import (
	"errors"
	"sort"
)

var ErrCycle = errors.New("hierarchy: parent would create a cycle")

// Tree is an immutable snapshot of parent links.
type Tree struct {
	parent   map[int64]int64
	children map[int64][]int64
}

// New builds a tree from id -> parent links. A nil parent marks a root.
func New(links map[int64]*int64) *Tree {
	t := &Tree{parent: map[int64]int64{}, children: map[int64][]int64{}}
	for id, p := range links {
		if p == nil {
			continue
		}
		t.parent[id] = *p
		t.children[*p] = append(t.children[*p], id)
	}
	for k := range t.children {
		sort.Slice(t.children[k], func(i, j int) bool { return t.children[k][i] < t.children[k][j] })
	}
	return t
}

func (t *Tree) Parent(id int64) (int64, bool) {
	p, ok := t.parent[id]
	return p, ok
}

func (t *Tree) Children(id int64) []int64 {
	return append([]int64(nil), t.children[id]...)
}

// Descendants returns every node below id in breadth-first order. Cycles
// already present in the data are walked once.
func (t *Tree) Descendants(id int64) []int64 {
	seen := map[int64]bool{id: true}
	var out []int64
	queue := []int64{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range t.children[cur] {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out
}

// IsDescendant reports whether id sits somewhere below ancestor.
func (t *Tree) IsDescendant(ancestor, id int64) bool {
	seen := map[int64]bool{}
	for cur, ok := t.parent[id]; ok; cur, ok = t.parent[cur] {
		if cur == ancestor {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
	}
	return false
}

// CanAttach checks that making parent the parent of child keeps the tree
// acyclic.
func (t *Tree) CanAttach(child, parent int64) error {
	if child == parent || t.IsDescendant(child, parent) {
		return ErrCycle
	}
	return nil
}
