package relation

// ---------------------------------------------------------------------------
// Node arena: pool-backed parent nodes with index references
// ---------------------------------------------------------------------------

// nodeRef is an index into an arena's node slab. Index-based references
// stay valid across slab growth, unlike pointers into the backing array.
type nodeRef int32

// nilRef marks the absence of a node.
const nilRef nodeRef = -1

// parentNode is one pending parent obligation in an entry's ordered list.
type parentNode struct {
	name string
	next nodeRef
}

// arena pools parentNode storage for one relationship store. Released
// nodes are chained into a free list and reused before the slab grows.
type arena struct {
	nodes []parentNode
	free  nodeRef
}

// newArena creates an arena with capacity for at least min nodes.
func newArena(min int) *arena {
	return &arena{
		nodes: make([]parentNode, 0, min),
		free:  nilRef,
	}
}

// alloc takes a node from the free list, or extends the slab, and
// initializes it with the given name and no successor.
func (a *arena) alloc(name string) nodeRef {
	if a.free != nilRef {
		ref := a.free
		a.free = a.nodes[ref].next
		a.nodes[ref] = parentNode{name: name, next: nilRef}
		return ref
	}
	a.nodes = append(a.nodes, parentNode{name: name, next: nilRef})
	return nodeRef(len(a.nodes) - 1)
}

// release returns a node to the free list. The node must not be linked
// into any entry's list afterwards.
func (a *arena) release(ref nodeRef) {
	a.nodes[ref] = parentNode{next: a.free}
	a.free = ref
}

// at returns the node for a reference.
func (a *arena) at(ref nodeRef) *parentNode {
	return &a.nodes[ref]
}

// live returns the number of nodes currently allocated (not on the free list).
func (a *arena) live() int {
	n := len(a.nodes)
	for ref := a.free; ref != nilRef; ref = a.nodes[ref].next {
		n--
	}
	return n
}
