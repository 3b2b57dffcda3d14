// Package inet implements the level-indexed optimal-reduction
// interaction net (Lamping/Levy style): a graph of typed agents connected
// by undirected wires, with Croissant/Bracket control agents preserving
// sharing across binding depths.
package inet

import (
	"fmt"
	"sort"

	"github.com/lam/reducto/internal/errs"
	"github.com/lam/reducto/pkg/term"
)

// Kind enumerates the seven agent kinds.
type Kind int

const (
	KindRoot Kind = iota
	KindLambda
	KindCroissant
	KindBracket
	KindApplication
	KindDuplicator
	KindEraser
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindLambda:
		return "Lambda"
	case KindCroissant:
		return "Croissant"
	case KindBracket:
		return "Bracket"
	case KindApplication:
		return "Application"
	case KindDuplicator:
		return "Duplicator"
	case KindEraser:
		return "Eraser"
	default:
		return "?"
	}
}

// arity returns the port count for a kind: Root/Eraser 1; Croissant/
// Bracket 2; Application/Lambda/Duplicator 3.
func (k Kind) arity() int {
	switch k {
	case KindRoot, KindEraser:
		return 1
	case KindCroissant, KindBracket:
		return 2
	default:
		return 3
	}
}

// Agent is one arena-resident interaction-net node.
type Agent struct {
	ID    uint64
	Kind  Kind
	Level int
	Wires [3]uint64 // wire id attached to each port; 0 = none
}

// Wire is an unordered pair of (agent id, port) endpoints. Equality
// ignores orientation.
type Wire struct {
	ID uint64
	A  Endpoint
	B  Endpoint
}

// Endpoint names one side of a wire.
type Endpoint struct {
	Agent uint64
	Port  int
}

// Net is the arena: agents and wires keyed by stable integer id.
type Net struct {
	nextAgentID uint64
	nextWireID  uint64
	Agents      map[uint64]*Agent
	Wires       map[uint64]*Wire
	Root        uint64
}

func newNet() *Net {
	return &Net{nextAgentID: 1, nextWireID: 1, Agents: map[uint64]*Agent{}, Wires: map[uint64]*Wire{}}
}

func (n *Net) addAgent(kind Kind, level int) *Agent {
	a := &Agent{ID: n.nextAgentID, Kind: kind, Level: level}
	n.nextAgentID++
	n.Agents[a.ID] = a
	return a
}

// connect creates a wire joining (a,pa) and (b,pb), recording it on both
// agents' port arrays.
func (n *Net) connect(a uint64, pa int, b uint64, pb int) *Wire {
	w := &Wire{ID: n.nextWireID, A: Endpoint{a, pa}, B: Endpoint{b, pb}}
	n.nextWireID++
	n.Wires[w.ID] = w
	n.Agents[a].Wires[pa] = w.ID
	n.Agents[b].Wires[pb] = w.ID
	return w
}

// other returns the endpoint on the far side of wire id from (agent,port).
func (n *Net) other(wireID uint64, agent uint64, port int) (Endpoint, bool) {
	w, ok := n.Wires[wireID]
	if !ok {
		return Endpoint{}, false
	}
	if w.A.Agent == agent && w.A.Port == port {
		return w.B, true
	}
	if w.B.Agent == agent && w.B.Port == port {
		return w.A, true
	}
	// Orientation-agnostic fallback for self-loops recorded once.
	return w.A, true
}

func (n *Net) removeWire(id uint64)  { delete(n.Wires, id) }
func (n *Net) removeAgent(id uint64) { delete(n.Agents, id) }

// Build constructs a net from a closed term: a Root agent wired to the
// term's root; at Var(id), look up the Lambda for that id and introduce a
// Croissant plus chained Brackets; at Abs(id, body), create a Lambda and
// recurse into body at the same level; at App(l, r), create an
// Application and recurse into l at the same level, into r at level+1.
// Lambdas whose binder port was never wired acquire a fresh Eraser on
// port 2.
func Build(t term.Term) *Net {
	n := newNet()
	root := n.addAgent(KindRoot, 0)
	n.Root = root.ID

	ctx := &buildCtx{net: n, lambdaOf: map[int]uint64{}, used: map[int]bool{}}
	rootWireAgent, rootWirePort := ctx.walk(t, 0)
	n.connect(root.ID, 0, rootWireAgent, rootWirePort)

	binders := make([]int, 0, len(ctx.lambdaOf))
	for id := range ctx.lambdaOf {
		binders = append(binders, id)
	}
	sort.Ints(binders)
	for _, id := range binders {
		if !ctx.used[id] {
			lamID := ctx.lambdaOf[id]
			lam := n.Agents[lamID]
			if lam.Wires[2] == 0 {
				eraser := n.addAgent(KindEraser, lam.Level)
				n.connect(eraser.ID, 0, lamID, 2)
			}
		}
	}
	return n
}

type buildCtx struct {
	net      *Net
	lambdaOf map[int]uint64
	used     map[int]bool
}

// walk builds the subgraph for t at level, returning the (agent,port)
// endpoint that the caller should wire to its own dangling port.
func (c *buildCtx) walk(t term.Term, level int) (uint64, int) {
	switch n := t.(type) {
	case term.Var:
		return c.walkVar(n.ID, level)
	case term.Abs:
		lam := c.net.addAgent(KindLambda, level)
		c.lambdaOf[n.ID] = lam.ID
		bodyAgent, bodyPort := c.walk(n.Body, level)
		c.net.connect(lam.ID, 1, bodyAgent, bodyPort)
		return lam.ID, 0
	case term.App:
		// Port 0 (principal) is the function side; port 1 is the result
		// side a caller wires upward; port 2 is the argument.
		app := c.net.addAgent(KindApplication, level)
		funAgent, funPort := c.walk(n.Fun, level)
		c.net.connect(app.ID, 0, funAgent, funPort)
		argAgent, argPort := c.walk(n.Arg, level+1)
		c.net.connect(app.ID, 2, argAgent, argPort)
		return app.ID, 1
	default:
		panic("inet: unknown term type")
	}
}

// walkVar wires a variable occurrence to its binder's Lambda, introducing
// a Croissant plus one nested Bracket per level crossed between binder
// and occurrence, and splicing a Duplicator when the binder already has a
// prior use. A context commuting inward gains one level at the Croissant
// and loses one per Bracket, arriving at the binder port at the binder's
// level plus one, which is the level its argument graphs are built at.
func (c *buildCtx) walkVar(id int, level int) (uint64, int) {
	lamID, ok := c.lambdaOf[id]
	if !ok {
		panic(fmt.Errorf("inet: %w (var %d)", errs.ErrUnsupportedTerm, id))
	}
	lam := c.net.Agents[lamID]

	wrap := func(agent uint64, port int) (uint64, int) {
		cur := agent
		curPort := port
		for i := 0; i < level-lam.Level; i++ {
			br := c.net.addAgent(KindBracket, lam.Level)
			c.net.connect(br.ID, 1, cur, curPort)
			cur, curPort = br.ID, 0
		}
		cro := c.net.addAgent(KindCroissant, lam.Level)
		c.net.connect(cro.ID, 1, cur, curPort)
		return cro.ID, 0
	}

	if !c.used[id] {
		c.used[id] = true
		return wrap(lamID, 2)
	}

	// Lambda already has a use: splice a Duplicator between the existing
	// use and the new one.
	existingWireID := lam.Wires[2]
	dup := c.net.addAgent(KindDuplicator, lam.Level)
	if existingWireID != 0 {
		ew := c.net.Wires[existingWireID]
		var other Endpoint
		if ew.A.Agent == lamID && ew.A.Port == 2 {
			other = ew.B
		} else {
			other = ew.A
		}
		c.net.removeWire(existingWireID)
		c.net.connect(dup.ID, 1, other.Agent, other.Port)
	}
	c.net.connect(dup.ID, 0, lamID, 2)
	return wrap(dup.ID, 2)
}
