package inet

import (
	"fmt"

	"github.com/lam/reducto/pkg/term"
)

const readbackGas = 1000

// ToTree walks from Root following principal ports, reconstructing a
// term.Term: Croissants and Brackets are skipped; an Application yields a
// term.App; a Lambda yields a term.Abs on first entry (through port 0)
// and a term.Var on re-entry (through another port); a Duplicator entered
// through an auxiliary port records that port in an oracle map and passes
// through to its principal side, and when entered through its principal
// port exits through the auxiliary port the oracle did not record; an
// Eraser yields no value. The walk is bounded by a gas counter;
// exhausting it reports ok=false. FixIndices renormalizes the resulting
// binders.
func (n *Net) ToTree() (t term.Term, ok bool) {
	root, exists := n.Agents[n.Root]
	if !exists {
		return nil, false
	}
	wireID := root.Wires[0]
	if wireID == 0 {
		return nil, false
	}
	endpoint, ok := n.other(wireID, n.Root, 0)
	if !ok {
		return nil, false
	}
	w := &walker{
		net:       n,
		gas:       readbackGas,
		lambdaVar: map[uint64]int{},
		oracle:    map[uint64]int{},
	}
	result, ok := w.read(endpoint.Agent, endpoint.Port)
	if !ok {
		return nil, false
	}
	return term.FixIndices(result), true
}

// walker carries the readback state: the remaining gas, the binder ids
// assigned to Lambdas on first entry, and the Duplicator oracle.
type walker struct {
	net       *Net
	gas       int
	lambdaVar map[uint64]int
	oracle    map[uint64]int
	nextVarID int
}

func (w *walker) read(agentID uint64, entryPort int) (term.Term, bool) {
	w.gas--
	if w.gas <= 0 {
		return nil, false
	}
	n := w.net
	a, exists := n.Agents[agentID]
	if !exists {
		return nil, false
	}

	switch a.Kind {
	case KindEraser:
		return nil, false

	case KindCroissant, KindBracket:
		other := 1
		if entryPort == 1 {
			other = 0
		}
		wireID := a.Wires[other]
		ep, ok := n.other(wireID, agentID, other)
		if !ok {
			return nil, false
		}
		return w.read(ep.Agent, ep.Port)

	case KindDuplicator:
		exit := 0
		if entryPort == 0 {
			exit = 1
			if w.oracle[agentID] == 1 {
				exit = 2
			}
		} else {
			w.oracle[agentID] = entryPort
		}
		wireID := a.Wires[exit]
		ep, ok := n.other(wireID, agentID, exit)
		if !ok {
			return nil, false
		}
		return w.read(ep.Agent, ep.Port)

	case KindLambda:
		if entryPort == 0 {
			id, known := w.lambdaVar[agentID]
			if !known {
				id = w.nextVarID
				w.nextVarID++
				w.lambdaVar[agentID] = id
			}
			wireID := a.Wires[1]
			ep, ok := n.other(wireID, agentID, 1)
			if !ok {
				return nil, false
			}
			body, ok := w.read(ep.Agent, ep.Port)
			if !ok {
				return nil, false
			}
			return term.Abs{ID: id, Body: body}, true
		}
		id, known := w.lambdaVar[agentID]
		if !known {
			return nil, false
		}
		return term.Var{ID: id}, true

	case KindApplication:
		if entryPort != 1 {
			return nil, false
		}
		funWire := a.Wires[0]
		funEp, ok := n.other(funWire, agentID, 0)
		if !ok {
			return nil, false
		}
		funTerm, ok := w.read(funEp.Agent, funEp.Port)
		if !ok {
			return nil, false
		}
		argWire := a.Wires[2]
		argEp, ok := n.other(argWire, agentID, 2)
		if !ok {
			return nil, false
		}
		argTerm, ok := w.read(argEp.Agent, argEp.Port)
		if !ok {
			return nil, false
		}
		return term.App{Fun: funTerm, Arg: argTerm}, true

	case KindRoot:
		// A walk that arrives back at the root is not a readable term.
		return nil, false

	default:
		panic(fmt.Sprintf("inet: unknown agent kind %v during readback", a.Kind))
	}
}
