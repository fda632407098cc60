package model

import (
	"fmt"
	"slices"
)

// rootKey is the adjacency key holding the order of top-level nodes.
const rootKey = ""

// Tree is the bookmark forest, stored as an arena of nodes plus ordered child
// lists keyed by parent id. The zero value is an empty tree.
type Tree struct {
	nodes    map[string]Node
	children map[string][]string
}

// NewTree creates an empty Tree.
func NewTree() *Tree {
	return &Tree{
		nodes:    map[string]Node{},
		children: map[string][]string{},
	}
}

func (t *Tree) init() {
	if t.nodes == nil {
		t.nodes = map[string]Node{}
	}
	if t.children == nil {
		t.children = map[string][]string{}
	}
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Find returns the node with the given id.
func (t *Tree) Find(id string) (Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Children returns the ordered children of parentID. Pass "" for top-level nodes.
func (t *Tree) Children(parentID string) []Node {
	ids := t.children[parentID]
	result := make([]Node, 0, len(ids))
	for _, id := range ids {
		result = append(result, t.nodes[id])
	}
	return result
}

// Roots returns the ordered top-level nodes.
func (t *Tree) Roots() []Node {
	return t.Children(rootKey)
}

// TopLevelFolders returns the top-level folders in order.
func (t *Tree) TopLevelFolders() []Node {
	var result []Node
	for _, n := range t.Roots() {
		if n.IsFolder() {
			result = append(result, n)
		}
	}
	return result
}

// FirstFolderID returns the id of the first top-level folder.
func (t *Tree) FirstFolderID() (string, bool) {
	for _, id := range t.children[rootKey] {
		if t.nodes[id].IsFolder() {
			return id, true
		}
	}
	return "", false
}

// IsTopLevelFolder reports whether id names a folder without a parent.
func (t *Tree) IsTopLevelFolder(id string) bool {
	n, ok := t.nodes[id]
	return ok && n.IsFolder() && n.ParentID == nil
}

// Position returns the parent id and sibling index of a node.
func (t *Tree) Position(id string) (parentID string, index int, ok bool) {
	n, ok := t.nodes[id]
	if !ok {
		return "", -1, false
	}
	parentID = n.Parent()
	return parentID, slices.Index(t.children[parentID], id), true
}

// Update replaces the node with the result of fn. Identity, kind and parent
// cannot be changed this way. Returns false without calling fn if id is absent.
func (t *Tree) Update(id string, fn func(Node) Node) bool {
	old, ok := t.nodes[id]
	if !ok {
		return false
	}
	n := fn(old)
	n.ID = old.ID
	n.Kind = old.Kind
	n.ParentID = old.ParentID
	t.nodes[id] = n
	return true
}

// Remove deletes a node and its whole subtree, returning the removed ids in
// document order. Removing an absent id is a no-op.
func (t *Tree) Remove(id string) []string {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}

	removed := t.subtree(id)
	for _, rid := range removed {
		delete(t.nodes, rid)
		delete(t.children, rid)
	}
	parentID := n.Parent()
	t.children[parentID] = removeID(t.children[parentID], id)
	return removed
}

// InsertChild appends node as the last child of parentID ("" for top level).
// The node's ParentID is set from parentID.
func (t *Tree) InsertChild(parentID string, node Node) error {
	t.init()
	if node.ID == "" {
		return NewValidationError("id", "is required")
	}
	if !node.Kind.Valid() {
		return NewValidationError("type", fmt.Sprintf("unknown node type %q", node.Kind))
	}
	if _, exists := t.nodes[node.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, node.ID)
	}
	if parentID != rootKey {
		parent, ok := t.nodes[parentID]
		if !ok || !parent.IsFolder() {
			return fmt.Errorf("%w: %s", ErrParentNotFound, parentID)
		}
	}

	node.ParentID = StringPtr(parentID)
	t.nodes[node.ID] = node
	t.children[parentID] = append(t.children[parentID], node.ID)
	return nil
}

// Move re-parents a node, appending it to the target's children.
func (t *Tree) Move(nodeID, newParentID string) error {
	return t.MoveTo(nodeID, newParentID, -1)
}

// MoveTo re-parents a node and places it at index among the target's
// children. An out-of-range index appends.
func (t *Tree) MoveTo(nodeID, newParentID string, index int) error {
	n, ok := t.nodes[nodeID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	if newParentID != rootKey {
		parent, ok := t.nodes[newParentID]
		if !ok || !parent.IsFolder() {
			return fmt.Errorf("%w: %s", ErrParentNotFound, newParentID)
		}
		if newParentID == nodeID || t.IsAncestor(nodeID, newParentID) {
			return fmt.Errorf("%w: %s into %s", ErrCycle, nodeID, newParentID)
		}
	}

	oldParentID := n.Parent()
	t.children[oldParentID] = removeID(t.children[oldParentID], nodeID)
	n.ParentID = StringPtr(newParentID)
	t.nodes[nodeID] = n
	t.children[newParentID] = insertAt(t.children[newParentID], index, nodeID)
	return nil
}

// IsAncestor reports whether ancestorID lies on the parent chain of id.
func (t *Tree) IsAncestor(ancestorID, id string) bool {
	cur, ok := t.nodes[id]
	// The walk is bounded so a corrupted parent chain cannot loop forever.
	for steps := 0; ok && cur.ParentID != nil && steps <= len(t.nodes); steps++ {
		if *cur.ParentID == ancestorID {
			return true
		}
		cur, ok = t.nodes[*cur.ParentID]
	}
	return false
}

// Path returns the chain of nodes from the top level down to id.
func (t *Tree) Path(id string) []Node {
	var path []Node
	cur, ok := t.nodes[id]
	for ok && len(path) <= len(t.nodes) {
		path = append(path, cur)
		if cur.ParentID == nil {
			break
		}
		cur, ok = t.nodes[*cur.ParentID]
	}
	slices.Reverse(path)
	return path
}

// Walk visits every node in document order. Returning false from fn stops
// the walk.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	t.walk(rootKey, 0, fn)
}

func (t *Tree) walk(parentID string, depth int, fn func(Node, int) bool) bool {
	for _, id := range t.children[parentID] {
		if !fn(t.nodes[id], depth) {
			return false
		}
		if !t.walk(id, depth+1, fn) {
			return false
		}
	}
	return true
}

// Links returns every link node in document order.
func (t *Tree) Links() []Node {
	var links []Node
	t.Walk(func(n Node, _ int) bool {
		if n.Kind == KindLink {
			links = append(links, n)
		}
		return true
	})
	return links
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		nodes:    make(map[string]Node, len(t.nodes)),
		children: make(map[string][]string, len(t.children)),
	}
	for id, n := range t.nodes {
		if n.ParentID != nil {
			parent := *n.ParentID
			n.ParentID = &parent
		}
		c.nodes[id] = n
	}
	for id, ids := range t.children {
		if len(ids) > 0 {
			c.children[id] = slices.Clone(ids)
		}
	}
	return c
}

// Equal reports whether both trees hold the same nodes in the same order.
func (t *Tree) Equal(other *Tree) bool {
	if t.Len() != other.Len() {
		return false
	}
	for id, n := range t.nodes {
		o, ok := other.nodes[id]
		if !ok || !nodeEqual(n, o) {
			return false
		}
	}
	for id, ids := range t.children {
		if !slices.Equal(ids, other.children[id]) {
			return false
		}
	}
	for id, ids := range other.children {
		if !slices.Equal(ids, t.children[id]) {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants: unique ids, parent links that
// match containment, children only under folders, and no cycles.
func (t *Tree) Validate() error {
	seen := make(map[string]int, len(t.nodes))
	for parentID, ids := range t.children {
		if parentID != rootKey {
			parent, ok := t.nodes[parentID]
			if !ok && len(ids) > 0 {
				return fmt.Errorf("%w: %s", ErrParentNotFound, parentID)
			}
			if ok && !parent.IsFolder() && len(ids) > 0 {
				return fmt.Errorf("%w: %s is a %s", ErrParentNotFound, parentID, parent.Kind)
			}
		}
		for _, id := range ids {
			n, ok := t.nodes[id]
			if !ok {
				return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
			}
			if n.Parent() != parentID {
				return fmt.Errorf("node %s: parentId %q does not match container %q", id, n.Parent(), parentID)
			}
			seen[id]++
			if seen[id] > 1 {
				return fmt.Errorf("%w: %s", ErrDuplicateID, id)
			}
		}
	}

	reachable := 0
	t.Walk(func(Node, int) bool {
		reachable++
		return reachable <= len(t.nodes)
	})
	if reachable != len(t.nodes) {
		return fmt.Errorf("%w: %d of %d nodes unreachable", ErrCycle, len(t.nodes)-reachable, len(t.nodes))
	}
	return nil
}

// subtree returns id and all of its descendants in document order.
func (t *Tree) subtree(id string) []string {
	var result []string
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, cur)
		kids := t.children[cur]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return result
}

func removeID(ids []string, id string) []string {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids
	}
	return slices.Delete(ids, i, i+1)
}

func insertAt(ids []string, index int, id string) []string {
	if index < 0 || index > len(ids) {
		return append(ids, id)
	}
	return slices.Insert(ids, index, id)
}

func nodeEqual(a, b Node) bool {
	return a.ID == b.ID &&
		a.Kind == b.Kind &&
		a.Title == b.Title &&
		ptrEqual(a.ParentID, b.ParentID) &&
		a.URL == b.URL &&
		a.WidgetType == b.WidgetType &&
		a.CreatedAt.Equal(b.CreatedAt)
}
