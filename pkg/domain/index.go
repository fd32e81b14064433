package domain

import "fmt"

// Index is an id-addressed arena over a document. Nodes are stored in
// pre-order; relations are kept as slot numbers so graph algorithms can work
// on plain integers instead of following pointers.
type Index struct {
	nodes  []*SchemaNode
	parent []int // -1 for the root
	slots  map[string]int
}

// NewIndex builds the arena for root. It fails on empty or duplicated ids.
func NewIndex(root *SchemaNode) (*Index, error) {
	idx := &Index{slots: make(map[string]int)}
	if root == nil {
		return idx, nil
	}
	if err := idx.add(root, -1); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *Index) add(n *SchemaNode, parent int) error {
	if n.ID == "" {
		return &DuplicateIDError{ID: "", Reason: "node has an empty id"}
	}
	if _, dup := idx.slots[n.ID]; dup {
		return &DuplicateIDError{ID: n.ID, Reason: "id is used more than once"}
	}
	slot := len(idx.nodes)
	idx.nodes = append(idx.nodes, n)
	idx.parent = append(idx.parent, parent)
	idx.slots[n.ID] = slot
	for _, c := range n.Children {
		if err := idx.add(c, slot); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of nodes.
func (idx *Index) Len() int { return len(idx.nodes) }

// Root returns the document root, or nil for an empty index.
func (idx *Index) Root() *SchemaNode {
	if len(idx.nodes) == 0 {
		return nil
	}
	return idx.nodes[0]
}

// Lookup returns the node with the given id.
func (idx *Index) Lookup(id string) (*SchemaNode, error) {
	slot, ok := idx.slots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return idx.nodes[slot], nil
}

// Has reports whether id exists in the document.
func (idx *Index) Has(id string) bool {
	_, ok := idx.slots[id]
	return ok
}

// Slot returns the arena position of id.
func (idx *Index) Slot(id string) (int, bool) {
	slot, ok := idx.slots[id]
	return slot, ok
}

// At returns the node stored in slot i.
func (idx *Index) At(i int) *SchemaNode { return idx.nodes[i] }

// ParentSlot returns the slot of the parent of slot i, or -1 for the root.
func (idx *Index) ParentSlot(i int) int { return idx.parent[i] }

// Parent returns the parent of id, or nil when id is the root.
func (idx *Index) Parent(id string) (*SchemaNode, error) {
	slot, ok := idx.slots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if p := idx.parent[slot]; p >= 0 {
		return idx.nodes[p], nil
	}
	return nil, nil
}

// Path returns the ids from the root down to id, inclusive.
func (idx *Index) Path(id string) ([]string, error) {
	slot, ok := idx.slots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	var rev []string
	for s := slot; s >= 0; s = idx.parent[s] {
		rev = append(rev, idx.nodes[s].ID)
	}
	path := make([]string, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path, nil
}
