package state

// RoutingEntry is one hop of routing knowledge: the neighbouring stop traffic
// should leave through, and the total cost of the path it stands for. The
// zero value is the no-route sentinel. An entry either has both a next stop
// and a finite cost, or neither.
type RoutingEntry struct {
	next *Stop
	cost Cost
}

// NewRoutingEntry builds an entry from raw parts. Every malformed combination
// (missing next hop, negative or unrepresentable cost) collapses into the
// sentinel rather than erroring, so callers never observe a half-formed
// route.
func NewRoutingEntry(next *Stop, cost int) RoutingEntry {
	if next == nil || cost < 0 || uint64(cost) >= uint64(INF) {
		return RoutingEntry{}
	}
	return RoutingEntry{next: next, cost: Cost(cost)}
}

func (e RoutingEntry) GetNext() *Stop {
	return e.next
}

// GetCost returns INF for the sentinel.
func (e RoutingEntry) GetCost() Cost {
	if e.next == nil {
		return INF
	}
	return e.cost
}

// Exists reports whether the entry describes a real route.
func (e RoutingEntry) Exists() bool {
	return e.next != nil
}

// RoutingTable holds everything a stop knows about reaching the rest of the
// network. A table always contains a zero-cost entry for its own stop, and
// never stores sentinel rows; unknown destinations simply have no entry.
type RoutingTable struct {
	stop    *Stop
	entries map[*Stop]RoutingEntry
}

func NewRoutingTable(stop *Stop) *RoutingTable {
	t := &RoutingTable{
		stop:    stop,
		entries: make(map[*Stop]RoutingEntry),
	}
	t.entries[stop] = RoutingEntry{next: stop, cost: 0}
	return t
}

// GetStop returns the stop this table belongs to.
func (t *RoutingTable) GetStop() *Stop {
	return t.stop
}

// CostTo returns INF when dest is nil or unknown.
func (t *RoutingTable) CostTo(dest *Stop) Cost {
	if dest == nil {
		return INF
	}
	e, ok := t.entries[dest]
	if !ok {
		return INF
	}
	return e.GetCost()
}

// NextStop returns nil when there is no route to dest.
func (t *RoutingTable) NextStop(dest *Stop) *Stop {
	if dest == nil {
		return nil
	}
	return t.entries[dest].GetNext()
}

func (t *RoutingTable) GetEntry(dest *Stop) RoutingEntry {
	if dest == nil {
		return RoutingEntry{}
	}
	return t.entries[dest]
}

// GetCosts returns a snapshot of every known destination and its cost.
// Mutating the returned map does not affect the table.
func (t *RoutingTable) GetCosts() map[*Stop]Cost {
	costs := make(map[*Stop]Cost, len(t.entries))
	for dest, e := range t.entries {
		costs[dest] = e.GetCost()
	}
	return costs
}

// Destinations returns the stops this table has a route for, in no
// particular order.
func (t *RoutingTable) Destinations() []*Stop {
	dests := make([]*Stop, 0, len(t.entries))
	for d := range t.entries {
		dests = append(dests, d)
	}
	return dests
}

// AddOrUpdateEntry offers the table a route to dest costing newCost through
// via. The offer is taken when dest is unknown, or when it strictly beats the
// current route; ties never overwrite, so the network settles instead of
// flapping between equal paths. Offers that carry no usable route (nil via,
// infinite cost) are dropped. Reports whether the table changed.
func (t *RoutingTable) AddOrUpdateEntry(dest *Stop, newCost Cost, via *Stop) bool {
	if dest == nil {
		return false
	}
	if cur, ok := t.entries[dest]; ok && newCost >= cur.GetCost() {
		return false
	}
	if via == nil || newCost == INF {
		return false
	}
	t.entries[dest] = RoutingEntry{next: via, cost: newCost}
	return true
}

// InsertDirect installs the direct link to a neighbour, replacing whatever
// was known before. Unlike AddOrUpdateEntry this is not a relaxation; an
// equal-cost direct link still takes effect.
func (t *RoutingTable) InsertDirect(neighbour *Stop, cost Cost) {
	if neighbour == nil || neighbour == t.stop || cost == INF {
		return
	}
	t.entries[neighbour] = RoutingEntry{next: neighbour, cost: cost}
}
