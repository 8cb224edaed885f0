// Package layout implements the binary-tree pane layout engine (spec.md
// §4.5, C5): splits, focus navigation, zoom, rect calculation, and
// divider hit-testing/drag. No teacher file implements a tree-shaped
// multiplexer layout (the teacher is always-on-kanban, single pane;
// elvisnm-wt's internal/terminal/panes.go swaps tmux windows rather than
// recursing a tree), so this package follows the spec's tree directly
// using the pack's general idiom: small structs, pointer-based trees,
// plain recursive methods, no locking (mutated only from the single
// main-loop goroutine per spec.md §5).
package layout

import "errors"

// PaneId is an opaque, process-lifetime-stable pane identifier.
type PaneId uint64

// SplitDir is the axis a Split divides along.
type SplitDir int

const (
	// Vertical divides width: children sit side by side.
	Vertical SplitDir = iota
	// Horizontal divides height: children stack top/bottom.
	Horizontal
)

// Default minimum pane size, in cells, per spec.md §4.5.
const (
	DefaultMinCols = 4
	DefaultMinRows = 2
)

// ErrPaneTooSmall is returned when a split would leave a child smaller
// than the minimum pane size.
var ErrPaneTooSmall = errors.New("layout: pane too small to split")

// Node is the PaneNode tagged variant: either a Leaf or a Split with
// two children.
type Node struct {
	// Leaf fields.
	IsLeaf bool
	Leaf   PaneId

	// Split fields.
	Dir    SplitDir
	Ratio  float64
	First  *Node
	Second *Node
}

func newLeaf(id PaneId) *Node {
	return &Node{IsLeaf: true, Leaf: id}
}

// PaneTree is a binary-tree workspace of panes (spec.md §3 PaneTree).
type PaneTree struct {
	Root    *Node
	Focused PaneId
	Zoomed  *PaneId

	nextID *PaneId
}

// New creates a PaneTree with a single leaf, focused.
func New(idCounter *PaneId) *PaneTree {
	id := nextID(idCounter)
	return &PaneTree{
		Root:    newLeaf(id),
		Focused: id,
		nextID:  idCounter,
	}
}

func nextID(counter *PaneId) PaneId {
	*counter++
	return *counter
}

// Leaves returns every leaf PaneId in depth-first (first-then-second)
// order.
func (t *PaneTree) Leaves() []PaneId {
	var out []PaneId
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.IsLeaf {
			out = append(out, n.Leaf)
			return
		}
		walk(n.First)
		walk(n.Second)
	}
	walk(t.Root)
	return out
}

// VisiblePanes returns [zoomed] when a pane is zoomed, else every leaf.
func (t *PaneTree) VisiblePanes() []PaneId {
	if t.Zoomed != nil {
		return []PaneId{*t.Zoomed}
	}
	return t.Leaves()
}

// findLeaf locates the Node containing id and its immediate parent (nil
// if id is the root leaf), along with whether it occupies the parent's
// First slot.
func findLeaf(n, parent *Node, id PaneId) (target, foundParent *Node, isFirst bool) {
	if n == nil {
		return nil, nil, false
	}
	if n.IsLeaf {
		if n.Leaf != id {
			return nil, nil, false
		}
		if parent == nil {
			return n, nil, false
		}
		return n, parent, parent.First == n
	}
	if t, p, f := findLeaf(n.First, n, id); t != nil {
		return t, p, f
	}
	return findLeaf(n.Second, n, id)
}

// SplitFocused replaces the focused leaf with a Split holding the old
// leaf and a fresh one, focus moving to the new leaf. leafRect is the
// focused leaf's current on-screen rect (from CalculateLayout), used to
// enforce the minimum-size failure mode.
func (t *PaneTree) SplitFocused(dir SplitDir, leafRectW, leafRectH, cellW, cellH float32) (PaneId, error) {
	minW := float32(DefaultMinCols) * cellW
	minH := float32(DefaultMinRows) * cellH

	if dir == Vertical && leafRectW < 2*minW {
		return 0, ErrPaneTooSmall
	}
	if dir == Horizontal && leafRectH < 2*minH {
		return 0, ErrPaneTooSmall
	}

	target, _, _ := findLeaf(t.Root, nil, t.Focused)
	if target == nil {
		return 0, errors.New("layout: focused pane not found in tree")
	}

	newID := nextID(t.nextID)
	oldLeaf := newLeaf(target.Leaf)
	newLeafNode := newLeaf(newID)

	target.IsLeaf = false
	target.Leaf = 0
	target.Dir = dir
	target.Ratio = 0.5
	target.First = oldLeaf
	target.Second = newLeafNode

	t.Focused = newID
	t.Zoomed = nil
	return newID, nil
}

// CloseFocused removes the focused leaf, collapsing its parent Split by
// promoting the sibling into the parent's slot. Returns the closed
// PaneId and ok=true, or ok=false when the tree has only one leaf (the
// caller must not call this — it signals zero panes would remain).
func (t *PaneTree) CloseFocused() (closed PaneId, ok bool) {
	target, parent, isFirst := findLeaf(t.Root, nil, t.Focused)
	if target == nil {
		return 0, false
	}
	closed = target.Leaf

	if parent == nil {
		// Focused leaf is the root: nothing to collapse into.
		return closed, false
	}

	var sibling *Node
	if isFirst {
		sibling = parent.Second
	} else {
		sibling = parent.First
	}
	*parent = *sibling

	if parent.IsLeaf {
		t.Focused = parent.Leaf
	} else {
		t.Focused = firstLeaf(parent)
	}
	t.Zoomed = nil
	return closed, true
}

func firstLeaf(n *Node) PaneId {
	for !n.IsLeaf {
		n = n.First
	}
	return n.Leaf
}

// ZoomToggle sets Zoomed to the focused pane if unset, clears it
// otherwise.
func (t *PaneTree) ZoomToggle() {
	if t.Zoomed != nil {
		t.Zoomed = nil
		return
	}
	id := t.Focused
	t.Zoomed = &id
}

// Focus sets the focused leaf directly, if id exists in the tree.
func (t *PaneTree) Focus(id PaneId) bool {
	for _, l := range t.Leaves() {
		if l == id {
			t.Focused = id
			return true
		}
	}
	return false
}
