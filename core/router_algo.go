package core

import (
	"slices"

	"github.com/encodeous/loom/state"
	"github.com/google/uuid"
)

type RouterEvent int

// trace events

const (
	RouteAdded RouterEvent = iota
	RouteImproved
	LinkInstalled
	SyncStarted
	SyncConverged
)

// warn events

const (
	BadNeighbour RouterEvent = iota + 1000
	DuplicateLink
	UnknownStop
	RemovalIgnored
)

func (e RouterEvent) String() string {
	switch e {
	case RouteAdded:
		return "ROUTE_ADDED"
	case RouteImproved:
		return "ROUTE_IMPROVED"
	case LinkInstalled:
		return "LINK_INSTALLED"
	case SyncStarted:
		return "SYNC_STARTED"
	case SyncConverged:
		return "SYNC_CONVERGED"
	case BadNeighbour:
		return "BAD_NEIGHBOUR"
	case DuplicateLink:
		return "DUPLICATE_LINK"
	case UnknownStop:
		return "UNKNOWN_STOP"
	case RemovalIgnored:
		return "REMOVAL_IGNORED"
	}
	return "UNKNOWN_EVENT"
}

func (e RouterEvent) IsWarning() bool {
	return e >= 1000
}

// Router is the seam between the routing algorithms and their surroundings.
type Router interface {
	Log(event RouterEvent, desc string, args ...any)
}

// AddNeighbour links neighbour into at's adjacency and gossips the change
// outward. The direct link is installed into at's table unconditionally, even
// when an equal-cost route was already known, and the network is then
// re-synchronised from at. The link is one-directional here; config
// application installs both directions.
func AddNeighbour(r Router, at *state.Stop, neighbour *state.Stop) {
	if at == nil || neighbour == nil || at == neighbour {
		r.Log(BadNeighbour, "ignoring link to nil or self", "at", at, "neighbour", neighbour)
		return
	}
	if at.HasNeighbour(neighbour) {
		r.Log(DuplicateLink, "link already exists", "at", at, "neighbour", neighbour)
	} else {
		at.AddNeighbouringStop(neighbour)
	}
	d := at.DistanceTo(neighbour)
	at.GetRoutingTable().InsertDirect(neighbour, d)
	r.Log(LinkInstalled, "direct link installed", "at", at, "neighbour", neighbour, "cost", d)
	Synchronise(r, at)
}

// TransferEntries offers every destination from knows to to's table, priced
// through from's stop. An offer only lands when it strictly improves on what
// to already has, so gossip can never make a table worse. Reports whether
// to's table changed.
func TransferEntries(r Router, from, to *state.RoutingTable) bool {
	if from == nil || to == nil || from == to {
		return false
	}
	base := from.CostTo(to.GetStop())
	changed := false
	for _, dest := range from.Destinations() {
		offered := AddCost(base, from.CostTo(dest))
		prev := to.CostTo(dest)
		if to.AddOrUpdateEntry(dest, offered, from.GetStop()) {
			if prev == state.INF {
				r.Log(RouteAdded, "route added", "at", to.GetStop(), "dest", dest, "via", from.GetStop(), "cost", offered)
			} else {
				r.Log(RouteImproved, "route improved", "at", to.GetStop(), "dest", dest, "via", from.GetStop(), "cost", offered, "prev", prev)
			}
			changed = true
		}
	}
	return changed
}

// TraverseNetwork walks the link graph outward from origin and returns every
// stop reachable through it, origin included. The walk is iterative so deep
// networks cannot blow the stack.
func TraverseNetwork(origin *state.Stop) []*state.Stop {
	if origin == nil {
		return nil
	}
	seen := make(map[*state.Stop]struct{})
	order := make([]*state.Stop, 0)
	stack := []*state.Stop{origin}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		order = append(order, cur)
		for _, n := range cur.GetNeighbours() {
			if _, ok := seen[n]; !ok {
				stack = append(stack, n)
			}
		}
	}
	return order
}

// Synchronise gossips routing tables across everything reachable from origin
// until no table changes any more. A worklist tracks which stops still have
// news to share: a stop is requeued only when its own table changed, since
// only then can it offer its neighbours anything new. Entries only ever
// strictly improve and costs are well founded, so the loop terminates.
func Synchronise(r Router, origin *state.Stop) {
	if origin == nil {
		return
	}
	run := uuid.NewString()
	r.Log(SyncStarted, "synchronising network", "origin", origin, "run", run)
	passes := 0
	for {
		passes++
		reachable := TraverseNetwork(origin)

		queue := slices.Clone(reachable)
		queued := make(map[*state.Stop]struct{}, len(queue))
		for _, st := range queue {
			queued[st] = struct{}{}
		}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			delete(queued, cur)
			for _, n := range cur.GetNeighbours() {
				if TransferEntries(r, cur.GetRoutingTable(), n.GetRoutingTable()) {
					if _, ok := queued[n]; !ok {
						queue = append(queue, n)
						queued[n] = struct{}{}
					}
				}
			}
		}

		// Pull knowledge back into the origin. When links are one-directional
		// the push above cannot reach us, so collect from every table we can
		// see. If that taught the origin anything, its neighbours may now be
		// stale, and the whole pass runs again.
		changed := false
		for _, st := range reachable {
			if st == origin {
				continue
			}
			if TransferEntries(r, st.GetRoutingTable(), origin.GetRoutingTable()) {
				changed = true
			}
		}
		if !changed {
			r.Log(SyncConverged, "network converged", "origin", origin, "run", run, "passes", passes)
			return
		}
	}
}
