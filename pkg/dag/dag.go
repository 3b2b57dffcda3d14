// Package dag implements beta reduction in place over a mutable shared-
// subterm graph with parent back-pointers, keyed by stable integer ids.
package dag

import (
	"sort"

	"github.com/lam/reducto/pkg/term"
)

// Kind distinguishes the three node shapes.
type Kind int

const (
	KindVar Kind = iota
	KindAbs
	KindApp
)

// Node is one arena-resident graph node. Variables carry only parents;
// abstractions carry Left=variable-node-id (0 if the binder is unused),
// Right=body-id; applications carry Left/Right child ids.
type Node struct {
	Kind    Kind
	Parents []uint64
	Left    uint64
	Right   uint64
}

// Dag is the arena: a map from stable integer id to node.
type Dag struct {
	nextID uint64
	Nodes  map[uint64]*Node
	Root   uint64
}

func newDag() *Dag {
	return &Dag{nextID: 1, Nodes: make(map[uint64]*Node)}
}

func (d *Dag) reserve() uint64 {
	id := d.nextID
	d.nextID++
	return id
}

func (d *Dag) insert(id uint64, n *Node) { d.Nodes[id] = n }

func (d *Dag) addParent(id, parent uint64) {
	if n, ok := d.Nodes[id]; ok {
		n.Parents = append(n.Parents, parent)
	}
}

// removeItem removes the first occurrence of item from list, preserving
// order and all other duplicates.
func removeItem(list []uint64, item uint64) []uint64 {
	for i, v := range list {
		if v == item {
			out := make([]uint64, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out
		}
	}
	return list
}

// From builds a Dag from a term, using a per-binder-id memo so that all
// references to the same bound variable share a single Var node; the
// Var's parents include every App/Abs above it.
func From(t term.Term) *Dag {
	d := newDag()
	memo := map[int]uint64{}
	pendingAbs := map[uint64]int{} // abs node id -> source binder id
	root := fromHelper(d, t, memo, pendingAbs)
	d.Root = root
	for absID, binderID := range pendingAbs {
		if varID, ok := memo[binderID]; ok {
			d.Nodes[absID].Left = varID
		} else {
			d.Nodes[absID].Left = 0
		}
	}
	return d
}

func fromHelper(d *Dag, t term.Term, memo map[int]uint64, pendingAbs map[uint64]int) uint64 {
	switch n := t.(type) {
	case term.Var:
		if id, ok := memo[n.ID]; ok {
			return id
		}
		id := d.reserve()
		d.insert(id, &Node{Kind: KindVar})
		memo[n.ID] = id
		return id
	case term.Abs:
		id := d.reserve()
		d.insert(id, &Node{Kind: KindAbs})
		pendingAbs[id] = n.ID
		bodyID := fromHelper(d, n.Body, memo, pendingAbs)
		d.Nodes[id].Right = bodyID
		d.addParent(bodyID, id)
		return id
	case term.App:
		id := d.reserve()
		funID := fromHelper(d, n.Fun, memo, pendingAbs)
		argID := fromHelper(d, n.Arg, memo, pendingAbs)
		d.insert(id, &Node{Kind: KindApp, Left: funID, Right: argID})
		d.addParent(funID, id)
		d.addParent(argID, id)
		return id
	default:
		panic("dag: unknown term type")
	}
}

// FindRedex returns the id of the first node found (sorted by id for
// determinism) that is an Application whose Left child is an Abstraction,
// or false if none exists.
func (d *Dag) FindRedex() (uint64, bool) {
	ids := sortedIDs(d.Nodes)
	for _, id := range ids {
		n := d.Nodes[id]
		if n.Kind != KindApp {
			continue
		}
		left, ok := d.Nodes[n.Left]
		if ok && left.Kind == KindAbs {
			return id, true
		}
	}
	return 0, false
}

func sortedIDs(nodes map[uint64]*Node) []uint64 {
	ids := make([]uint64, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Step contracts the redex at appID: the App node and its Left Abs node
// are removed; if the binder was used (varid != 0), every remaining
// parent of its Var node is rewritten to point at the argument instead,
// and the argument inherits the Var's former parents; if unused, the
// argument subgraph is deleted transitively. Every parent of the App is
// then rewritten to point at the abstraction's body instead.
func (d *Dag) Step(appID uint64) {
	app := d.Nodes[appID]
	appParents := append([]uint64(nil), app.Parents...)
	absID := app.Left
	lam := d.Nodes[absID]
	varid := lam.Left
	argid := app.Right
	bodyid := lam.Right

	delete(d.Nodes, appID)
	delete(d.Nodes, absID)

	if varid != 0 {
		v, ok := d.Nodes[varid]
		if ok {
			parents := v.Parents
			parents = removeItem(parents, appID)
			parents = removeItem(parents, absID)
			delete(d.Nodes, varid)
			for _, p := range parents {
				rewriteChild(d.Nodes[p], varid, argid)
			}
			if arg, ok := d.Nodes[argid]; ok {
				arg.Parents = removeItem(arg.Parents, appID)
				arg.Parents = append(arg.Parents, parents...)
			}
		}
	} else {
		deleteSubgraph(d, argid)
	}

	for p := range d.Nodes {
		rewriteChild(d.Nodes[p], appID, bodyid)
	}
	if body, ok := d.Nodes[bodyid]; ok {
		body.Parents = removeItem(body.Parents, absID)
		body.Parents = append(body.Parents, appParents...)
	}
	if d.Root == appID {
		d.Root = bodyid
	}
}

func rewriteChild(n *Node, from, to uint64) {
	if n == nil {
		return
	}
	if n.Left == from {
		n.Left = to
	}
	if n.Right == from {
		n.Right = to
	}
}

func deleteSubgraph(d *Dag, id uint64) {
	stack := []uint64{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := d.Nodes[cur]
		if !ok {
			continue
		}
		delete(d.Nodes, cur)
		if n.Kind != KindVar {
			stack = append(stack, n.Left, n.Right)
		}
	}
}

// Reduce repeats FindRedex/Step until no redex remains.
func (d *Dag) Reduce() {
	for {
		id, ok := d.FindRedex()
		if !ok {
			return
		}
		d.Step(id)
	}
}

// Reducer is a strategy.Strategy wrapping a Dag. Its readout always
// returns (0, true): this engine checks structural graph contraction,
// not observable results.
type Reducer struct {
	d *Dag
}

// New returns an unbuilt Reducer.
func New() *Reducer { return &Reducer{} }

// Name identifies the engine.
func (r *Reducer) Name() string { return "dag" }

// Build constructs the shared-subterm graph from t.
func (r *Reducer) Build(t term.Term) {
	r.d = From(t)
}

// Reduce runs the graph to normal form and always reports (0, true).
func (r *Reducer) Reduce() (uint64, bool) {
	r.d.Reduce()
	return 0, true
}
