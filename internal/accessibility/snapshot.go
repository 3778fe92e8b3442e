package accessibility

import (
	"strings"

	"github.com/Veraticus/paysnap/internal/model"
)

// Traversal bounds used when the caller does not configure its own.
const (
	DefaultMaxDepth = 64
	DefaultMaxNodes = 2048
)

// Fragment is one node of a snapshot. Parent is the index of the parent
// fragment, or -1 for the root.
type Fragment struct {
	Text   string
	Parent int
	Depth  int
}

// Snapshot is the depth-first, pre-order flattening of a UI tree: a node's own
// text always precedes the text of its descendants.
type Snapshot struct {
	Fragments []Fragment
	Truncated bool
}

// Limits bounds a single traversal.
type Limits struct {
	MaxDepth int
	MaxNodes int
}

func (l Limits) normalized() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxNodes <= 0 {
		l.MaxNodes = DefaultMaxNodes
	}
	return l
}

// TakeSnapshot walks the tree once. Nil children are skipped together with
// their subtree, and the walk stops descending or collecting once a limit is
// reached.
func TakeSnapshot(root *model.UINode, limits Limits) Snapshot {
	var snap Snapshot
	if root == nil {
		return snap
	}
	limits = limits.normalized()

	type frame struct {
		node   *model.UINode
		parent int
		depth  int
	}

	// Explicit stack instead of recursion; children are pushed in reverse so
	// they pop in document order.
	stack := []frame{{node: root, parent: -1, depth: 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(snap.Fragments) >= limits.MaxNodes {
			snap.Truncated = true
			break
		}

		idx := len(snap.Fragments)
		snap.Fragments = append(snap.Fragments, Fragment{
			Text:   top.node.Text,
			Parent: top.parent,
			Depth:  top.depth,
		})

		if len(top.node.Children) == 0 {
			continue
		}
		if top.depth+1 >= limits.MaxDepth {
			snap.Truncated = true
			continue
		}
		for i := len(top.node.Children) - 1; i >= 0; i-- {
			child := top.node.Children[i]
			if child == nil {
				continue
			}
			stack = append(stack, frame{node: child, parent: idx, depth: top.depth + 1})
		}
	}

	return snap
}

// Text concatenates every fragment in traversal order.
func (s Snapshot) Text() string {
	var b strings.Builder
	for _, f := range s.Fragments {
		b.WriteString(f.Text)
	}
	return b.String()
}

// Siblings returns the indexes of the fragments sharing idx's parent, in
// traversal order, excluding idx itself.
func (s Snapshot) Siblings(idx int) []int {
	if idx < 0 || idx >= len(s.Fragments) {
		return nil
	}
	parent := s.Fragments[idx].Parent
	if parent < 0 {
		return nil
	}

	var out []int
	for i := parent + 1; i < len(s.Fragments); i++ {
		f := s.Fragments[i]
		if f.Depth <= s.Fragments[parent].Depth {
			break
		}
		if f.Parent == parent && i != idx {
			out = append(out, i)
		}
	}
	return out
}
