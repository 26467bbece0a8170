package state

import "slices"

// StopName identifies a stop within a network config. Note that names are
// only a config-level handle; at runtime, identity is always the *Stop
// pointer, and two distinct stops may well carry the same name and position.
type StopName string

// Point is a stop's location on the city grid.
type Point struct {
	X int
	Y int
}

// Stop is a single vertex of the transit network. A stop owns its adjacency
// list and its routing table. Stops must only be accessed on the main
// goroutine, see Env.Dispatch.
type Stop struct {
	Name     StopName
	Position Point

	neighbours []*Stop
	table      *RoutingTable
}

func NewStop(name StopName, pos Point) *Stop {
	s := &Stop{
		Name:     name,
		Position: pos,
	}
	s.table = NewRoutingTable(s)
	return s
}

// GetNeighbours returns a copy of the adjacency list. Order carries no
// meaning.
func (s *Stop) GetNeighbours() []*Stop {
	return slices.Clone(s.neighbours)
}

// AddNeighbouringStop records n as directly reachable from s. It only touches
// the adjacency list; core.AddNeighbour is the full link operation.
func (s *Stop) AddNeighbouringStop(n *Stop) {
	s.neighbours = append(s.neighbours, n)
}

func (s *Stop) HasNeighbour(n *Stop) bool {
	return slices.Contains(s.neighbours, n)
}

// DistanceTo is the direct travel cost between two stops, whether or not a
// link exists between them. Streets are grid shaped, so this is the Manhattan
// distance.
func (s *Stop) DistanceTo(o *Stop) Cost {
	if o == nil {
		return INF
	}
	// clamp per axis, abs(MinInt) stays negative and a raw sum can wrap
	dx := min(uint64(INFM), uint64(abs(s.Position.X-o.Position.X)))
	dy := min(uint64(INFM), uint64(abs(s.Position.Y-o.Position.Y)))
	return Cost(min(uint64(INFM), dx+dy))
}

func (s *Stop) GetRoutingTable() *RoutingTable {
	return s.table
}

func (s *Stop) String() string {
	if s == nil {
		return "<nil>"
	}
	return string(s.Name)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
