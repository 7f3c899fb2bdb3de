package gesture

import "slices"

// nodeIDCounter is a plain counter (no atomic, gesture is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an element of the scene document. Gestures are bound to nodes and
// delegate selectors are matched against them.
type Node struct {
	// Identity
	ID      uint32
	Name    string // matched by #name
	Tag     string // matched by a type selector
	Classes []string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Local offset from the parent, in pixels.
	X, Y float64

	// Hit testing
	Visible      bool
	Interactable bool
	HitShape     HitShape

	// Metadata
	UserData any
	EntityID uint32

	listeners listenerRegistry
	disposed  bool
}

// NewNode creates a node with the given tag, name and optional classes.
// Nodes are visible and interactable by default but are only hit when a
// HitShape is set.
func NewNode(tag, name string, classes ...string) *Node {
	return &Node{
		ID:           nextNodeID(),
		Name:         name,
		Tag:          tag,
		Classes:      classes,
		Visible:      true,
		Interactable: true,
	}
}

// NewContainer creates a grouping node with the "container" tag.
func NewContainer(name string) *Node {
	return NewNode("container", name)
}

// NewBox creates a node with a rectangular hit area of the given size at
// local offset (x, y).
func NewBox(tag, name string, x, y, width, height float64, classes ...string) *Node {
	n := NewNode(tag, name, classes...)
	n.X = x
	n.Y = y
	n.HitShape = HitRect{Width: width, Height: height}
	return n
}

// --- Classes ---

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// AddClass adds class if not already present.
func (n *Node) AddClass(class string) {
	if !n.HasClass(class) {
		n.Classes = append(n.Classes, class)
	}
}

// RemoveClass removes class. No-op if absent.
func (n *Node) RemoveClass(class string) {
	if i := slices.Index(n.Classes, class); i >= 0 {
		n.Classes = slices.Delete(n.Classes, i, i+1)
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("gesture: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("gesture: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("gesture: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Document returns the topmost ancestor of n (n itself when detached).
// Delegate selectors are evaluated against this node's subtree.
func (n *Node) Document() *Node {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	return other != nil && isAncestor(n, other)
}

// walk visits descendants of n in document order. fn returns false to stop.
func (n *Node) walk(fn func(*Node) bool) bool {
	for _, child := range n.children {
		if !fn(child) || !child.walk(fn) {
			return false
		}
	}
	return true
}

// --- Coordinates ---

// WorldPosition returns the node's origin in scene coordinates.
func (n *Node) WorldPosition() (x, y float64) {
	for p := n; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// WorldToLocal converts a scene-space point to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	ox, oy := n.WorldPosition()
	return wx - ox, wy - oy
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, drops
// its listeners and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.listeners = listenerRegistry{}
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
