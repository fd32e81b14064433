package runtime

import (
	"container/heap"
	"slices"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/pkg/domain"
)

// Graph is the rule dependency graph of a program, over arena slots.
// deps[u] holds the slots u must be evaluated after.
type Graph struct {
	prog *compiler.Program
	deps [][]int
}

// NewGraph derives the dependency graph: every node depends on the nodes its
// rules reference and on its parent, since visibility is inherited.
// finishRule references are left out; the finish rule runs after the pass.
// References to unknown ids are skipped.
func NewGraph(prog *compiler.Program) *Graph {
	g := &Graph{prog: prog, deps: make([][]int, len(prog.Nodes))}
	for u, n := range prog.Nodes {
		seen := make(map[int]bool)
		add := func(v int) {
			if v >= 0 && v != u && !seen[v] {
				seen[v] = true
				g.deps[u] = append(g.deps[u], v)
			}
		}
		add(n.Parent)
		for _, ref := range n.Refs {
			if ref.Field == domain.FieldFinishRule {
				continue
			}
			if v, ok := prog.Index.Slot(ref.ID); ok {
				add(v)
			}
		}
	}
	return g
}

// Order returns the slots in evaluation order: a topological order of the
// dependencies where ties go to the node that comes first in the document.
// A cycle yields a *domain.CyclicRuleDependencyError.
func (g *Graph) Order() ([]int, error) {
	n := len(g.deps)
	pending := make([]int, n)
	dependents := make([][]int, n)
	for u, deps := range g.deps {
		pending[u] = len(deps)
		for _, v := range deps {
			dependents[v] = append(dependents[v], u)
		}
	}

	ready := &slotHeap{}
	for u := range n {
		if pending[u] == 0 {
			heap.Push(ready, u)
		}
	}

	order := make([]int, 0, n)
	for ready.Len() > 0 {
		u := heap.Pop(ready).(int)
		order = append(order, u)
		for _, w := range dependents[u] {
			pending[w]--
			if pending[w] == 0 {
				heap.Push(ready, w)
			}
		}
	}

	if len(order) < n {
		return nil, &domain.CyclicRuleDependencyError{NodeIDs: g.cycleIDs()}
	}
	return order, nil
}

// cycleIDs returns the sorted ids of every node that sits on a cycle, that
// is every strongly connected component with more than one node.
func (g *Graph) cycleIDs() []string {
	n := len(g.deps)
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}
	var (
		stack []int
		next  int
		ids   []string
	)

	var connect func(u int)
	connect = func(u int) {
		index[u], low[u] = next, next
		next++
		stack = append(stack, u)
		onStack[u] = true

		for _, v := range g.deps[u] {
			if index[v] < 0 {
				connect(v)
				low[u] = min(low[u], low[v])
			} else if onStack[v] {
				low[u] = min(low[u], index[v])
			}
		}

		if low[u] != index[u] {
			return
		}
		var component []int
		for {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[v] = false
			component = append(component, v)
			if v == u {
				break
			}
		}
		if len(component) > 1 {
			for _, v := range component {
				ids = append(ids, g.prog.Nodes[v].ID())
			}
		}
	}

	for u := range n {
		if index[u] < 0 {
			connect(u)
		}
	}
	slices.Sort(ids)
	return ids
}

// slotHeap is a min-heap of arena slots. Slots follow document pre-order.
type slotHeap []int

func (h slotHeap) Len() int           { return len(h) }
func (h slotHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h slotHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *slotHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *slotHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}
