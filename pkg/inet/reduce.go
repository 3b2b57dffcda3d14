package inet

import "sort"

// isControl reports whether kind participates as the "control" side of a
// commutation (Duplicator, Bracket, Croissant).
func isControl(k Kind) bool {
	return k == KindDuplicator || k == KindBracket || k == KindCroissant
}

// isOther reports whether kind participates as the non-control side of a
// commutation (Lambda, Application, Duplicator).
func isOther(k Kind) bool {
	return k == KindLambda || k == KindApplication || k == KindDuplicator
}

// activePair returns the agent on the far side of a's principal wire, and
// the wire id, when that wire really is principal-to-principal.
func (n *Net) activePair(aID uint64) (partner uint64, wireID uint64, ok bool) {
	a, exists := n.Agents[aID]
	if !exists {
		return 0, 0, false
	}
	wireID = a.Wires[0]
	if wireID == 0 {
		return 0, 0, false
	}
	w, exists := n.Wires[wireID]
	if !exists {
		return 0, 0, false
	}
	var other Endpoint
	if w.A.Agent == aID && w.A.Port == 0 {
		other = w.B
	} else if w.B.Agent == aID && w.B.Port == 0 {
		other = w.A
	} else {
		return 0, 0, false
	}
	if other.Port != 0 {
		return 0, 0, false
	}
	return other.Agent, wireID, true
}

// Reduce drives the net to normal form: a FIFO queue of candidate agents
// is processed; whenever a step succeeds, the partners reachable through
// the newly rewired ports of the surviving agents are enqueued. A step
// that references a missing wire or agent, or whose rewiring would
// attach a wire to an agent the step deletes, is a no-op: it is dropped
// and the queue continues with other candidates.
func (n *Net) Reduce() {
	queue := n.seedQueue()
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		partner, wireID, ok := n.activePair(id)
		if !ok {
			continue
		}
		if _, exists := n.Agents[partner]; !exists {
			continue
		}
		newlyTouched, fired := n.reducePair(id, partner, wireID)
		if fired {
			queue = append(queue, newlyTouched...)
		}
	}
}

func (n *Net) seedQueue() []uint64 {
	var q []uint64
	ids := make([]uint64, 0, len(n.Agents))
	for id := range n.Agents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if _, _, ok := n.activePair(id); ok {
			q = append(q, id)
		}
	}
	return q
}

// reducePair dispatches the rewrite rule for the active pair (a,b) joined
// by wireID, and returns the ids of agents whose principal wires should
// be re-examined afterward.
func (n *Net) reducePair(aID, bID, wireID uint64) (touched []uint64, fired bool) {
	a, b := n.Agents[aID], n.Agents[bID]

	switch {
	case a.Kind == KindEraser || b.Kind == KindEraser:
		eraser, other := aID, bID
		if b.Kind == KindEraser {
			eraser, other = bID, aID
		}
		return n.erase(eraser, other, wireID)

	case a.Kind == KindApplication && b.Kind == KindLambda && a.Level == b.Level:
		return n.betaOrAnnihilate(aID, bID, wireID)
	case a.Kind == KindLambda && b.Kind == KindApplication && a.Level == b.Level:
		return n.betaOrAnnihilate(bID, aID, wireID)

	case a.Kind == KindDuplicator && b.Kind == KindDuplicator && a.Level == b.Level:
		return n.betaOrAnnihilate(aID, bID, wireID)

	case a.Kind == KindCroissant && b.Kind == KindCroissant && a.Level == b.Level:
		return n.annihilatePair1(aID, bID, wireID)
	case a.Kind == KindBracket && b.Kind == KindBracket && a.Level == b.Level:
		return n.annihilatePair1(aID, bID, wireID)

	default:
		var control, other uint64
		switch {
		case isControl(a.Kind) && isOther(b.Kind):
			control, other = aID, bID
		case isControl(b.Kind) && isOther(a.Kind):
			control, other = bID, aID
		default:
			return nil, false
		}
		return n.commute(control, other, wireID)
	}
}

// erase implements the "Any vs Eraser" rule: if the non-eraser agent has
// arity > 1, its non-principal ports each get a fresh Eraser; otherwise
// both agents are simply deleted. A wire looping the victim's two
// auxiliary ports together disappears without spawning erasers.
func (n *Net) erase(eraserID, otherID, wireID uint64) ([]uint64, bool) {
	other, ok := n.Agents[otherID]
	if !ok {
		return nil, false
	}
	arity := other.Kind.arity()
	var touched []uint64
	if arity == 3 && other.Wires[1] == other.Wires[2] {
		n.removeWire(other.Wires[1])
	} else if arity > 1 {
		for port := 1; port < arity; port++ {
			wID := other.Wires[port]
			if wID == 0 {
				continue
			}
			endpoint, ok := n.other(wID, otherID, port)
			if !ok || endpoint.Agent == otherID || endpoint.Agent == eraserID {
				continue
			}
			n.removeWire(wID)
			newEraser := n.addAgent(KindEraser, other.Level)
			n.connect(newEraser.ID, 0, endpoint.Agent, endpoint.Port)
			touched = append(touched, newEraser.ID, endpoint.Agent)
		}
	}
	n.removeWire(wireID)
	n.removeAgent(eraserID)
	n.removeAgent(otherID)
	return touched, true
}

// betaOrAnnihilate implements the direct (non-crossed) reconnection used
// by beta (Application/Lambda) and Duplicator-Duplicator annihilation:
// a's ports 1 and 2 connect to b's ports 1 and 2 respectively. Auxiliary
// wires already shared between the pair collapse into shorted links
// rather than fresh connections; a rewiring that would land on one of
// the two deleted agents aborts the whole step as a no-op.
func (n *Net) betaOrAnnihilate(aID, bID, wireID uint64) ([]uint64, bool) {
	a, aok := n.Agents[aID]
	b, bok := n.Agents[bID]
	if !aok || !bok {
		return nil, false
	}
	wa1, wa2 := a.Wires[1], a.Wires[2]
	wb1, wb2 := b.Wires[1], b.Wires[2]
	ea1, ok1 := n.other(wa1, aID, 1)
	ea2, ok2 := n.other(wa2, aID, 2)
	eb1, ok3 := n.other(wb1, bID, 1)
	eb2, ok4 := n.other(wb2, bID, 2)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, false
	}

	var links [][2]Endpoint
	switch {
	case wa1 == wa2 && wb1 == wb2:
		// Both pairs of auxiliary ports are self-looped; everything
		// vanishes.
	case wa1 == wb1 && wa2 == wb2, wa1 == wb2 && wa2 == wb1:
		// The pair is fully interconnected; everything vanishes.
	case wa1 == wa2:
		links = append(links, [2]Endpoint{eb1, eb2})
	case wb1 == wb2:
		links = append(links, [2]Endpoint{ea1, ea2})
	case wa1 == wb1:
		links = append(links, [2]Endpoint{ea2, eb2})
	case wa2 == wb2:
		links = append(links, [2]Endpoint{ea1, eb1})
	case wa1 == wb2:
		links = append(links, [2]Endpoint{eb1, ea2})
	case wa2 == wb1:
		links = append(links, [2]Endpoint{ea1, eb2})
	default:
		links = append(links, [2]Endpoint{ea1, eb1}, [2]Endpoint{ea2, eb2})
	}
	for _, l := range links {
		for _, e := range l {
			if e.Agent == aID || e.Agent == bID {
				return nil, false
			}
		}
	}

	n.removeWire(wireID)
	for _, w := range []uint64{wa1, wa2, wb1, wb2} {
		if w != wireID {
			n.removeWire(w)
		}
	}
	n.removeAgent(aID)
	n.removeAgent(bID)

	var touched []uint64
	for _, l := range links {
		n.connect(l[0].Agent, l[0].Port, l[1].Agent, l[1].Port)
		touched = append(touched, l[0].Agent, l[1].Agent)
	}
	return touched, true
}

// annihilatePair1 implements Croissant-Croissant / Bracket-Bracket
// annihilation: both arity-2 agents vanish, and their single auxiliary
// ports are wired directly to each other.
func (n *Net) annihilatePair1(aID, bID, wireID uint64) ([]uint64, bool) {
	a, aok := n.Agents[aID]
	b, bok := n.Agents[bID]
	if !aok || !bok {
		return nil, false
	}
	wa, wb := a.Wires[1], b.Wires[1]
	ea, ok1 := n.other(wa, aID, 1)
	eb, ok2 := n.other(wb, bID, 1)
	if !ok1 || !ok2 {
		return nil, false
	}
	n.removeWire(wireID)
	if wa != wireID {
		n.removeWire(wa)
	}
	if wb != wireID {
		n.removeWire(wb)
	}
	n.removeAgent(aID)
	n.removeAgent(bID)
	if ea.Agent == bID || ea.Agent == aID || eb.Agent == aID || eb.Agent == bID {
		// The auxiliary ports were wired to each other; the ring
		// disappears with the agents.
		return nil, true
	}
	n.connect(ea.Agent, ea.Port, eb.Agent, eb.Port)
	return []uint64{ea.Agent, eb.Agent}, true
}

// commute implements the general commutation rule: the control agent
// (Duplicator/Bracket/Croissant) is duplicated once per auxiliary port of
// other; other is duplicated once per auxiliary port of control. The new
// copies are cross-wired in a full bipartite grid over their auxiliary
// ports, and the original external wires are reattached to the matching
// new copy. The level delta is applied to the copies of other, the
// non-control side, and only when other sits at or above the control's
// level: a Croissant raises the partner's level by one, a Bracket lowers
// it by one, a Duplicator leaves it unchanged. An agent below the
// control's level is outside the region the control delimits and passes
// through unshifted.
func (n *Net) commute(controlID, otherID, wireID uint64) ([]uint64, bool) {
	control, cok := n.Agents[controlID]
	other, ook := n.Agents[otherID]
	if !cok || !ook {
		return nil, false
	}
	auxControl := control.Kind.arity() - 1
	auxOther := other.Kind.arity() - 1

	controlExt := make([]Endpoint, auxControl)
	for i := 0; i < auxControl; i++ {
		port := i + 1
		e, ok := n.other(control.Wires[port], controlID, port)
		if !ok {
			return nil, false
		}
		if e.Agent == controlID || e.Agent == otherID {
			return nil, false
		}
		controlExt[i] = e
	}
	otherExt := make([]Endpoint, auxOther)
	for j := 0; j < auxOther; j++ {
		port := j + 1
		e, ok := n.other(other.Wires[port], otherID, port)
		if !ok {
			return nil, false
		}
		if e.Agent == controlID || e.Agent == otherID {
			return nil, false
		}
		otherExt[j] = e
	}

	delta := 0
	if other.Level >= control.Level {
		switch control.Kind {
		case KindCroissant:
			delta = 1
		case KindBracket:
			delta = -1
		}
	}

	controlCopies := make([]*Agent, auxOther)
	for j := 0; j < auxOther; j++ {
		controlCopies[j] = n.addAgent(control.Kind, control.Level)
	}
	otherCopies := make([]*Agent, auxControl)
	for i := 0; i < auxControl; i++ {
		otherCopies[i] = n.addAgent(other.Kind, other.Level+delta)
	}

	n.removeWire(wireID)
	for i := 0; i < auxControl; i++ {
		if control.Wires[i+1] != wireID {
			n.removeWire(control.Wires[i+1])
		}
	}
	for j := 0; j < auxOther; j++ {
		if other.Wires[j+1] != wireID {
			n.removeWire(other.Wires[j+1])
		}
	}
	n.removeAgent(controlID)
	n.removeAgent(otherID)

	var touched []uint64
	for j := 0; j < auxOther; j++ {
		n.connect(controlCopies[j].ID, 0, otherExt[j].Agent, otherExt[j].Port)
		touched = append(touched, otherExt[j].Agent)
	}
	for i := 0; i < auxControl; i++ {
		n.connect(otherCopies[i].ID, 0, controlExt[i].Agent, controlExt[i].Port)
		touched = append(touched, controlExt[i].Agent)
	}
	for i := 0; i < auxControl; i++ {
		for j := 0; j < auxOther; j++ {
			n.connect(controlCopies[j].ID, i+1, otherCopies[i].ID, j+1)
		}
	}
	for _, c := range controlCopies {
		touched = append(touched, c.ID)
	}
	for _, o := range otherCopies {
		touched = append(touched, o.ID)
	}
	return touched, true
}
