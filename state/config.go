package state

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// StopCfg declares one stop of the transit network.
type StopCfg struct {
	Name     StopName
	Position Point
}

// NetworkCfg is the declarative topology: the stops that exist, and a link
// graph over their names. Reapplying a grown config to a running network is
// additive, see core.Topology.
type NetworkCfg struct {
	Stops []StopCfg
	Graph []string
}

// LocalCfg carries per-process settings that are not part of the shared
// topology.
type LocalCfg struct {
	LogPath   string `yaml:"log_path,omitempty"`   // if not empty, also write logs to this file
	DebugBind string `yaml:"debug_bind,omitempty"` // if not empty, serve pprof/expvar/metrics here
	Watch     bool   `yaml:"watch,omitempty"`      // re-read the topology file while running
}

func (c *NetworkCfg) StopNames() []string {
	names := make([]string, 0, len(c.Stops))
	for _, sc := range c.Stops {
		names = append(names, string(sc.Name))
	}
	return names
}

func (c *NetworkCfg) TryGetStop(name StopName) *StopCfg {
	idx := slices.IndexFunc(c.Stops, func(cfg StopCfg) bool {
		return cfg.Name == name
	})
	if idx == -1 {
		return nil
	}
	return &c.Stops[idx]
}

// Links evaluates the graph down to concrete stop pairs.
func (c *NetworkCfg) Links() ([]Pair[StopName, StopName], error) {
	return ParseGraph(c.Graph, c.StopNames())
}

func parseSymbolList(s string, validSymbols []string) ([]string, error) {
	spl := strings.Split(strings.TrimSpace(s), ",")
	line := make([]string, 0)
	for _, s := range spl {
		x := strings.TrimSpace(s)
		if x == "" {
			continue
		}
		if !slices.Contains(validSymbols, x) {
			return nil, fmt.Errorf(`%s is not a valid stop/group`, x)
		}
		line = append(line, x)
	}
	if len(line) == 0 {
		return nil, fmt.Errorf(`stop/group list must not be empty`)
	}
	slices.Sort(line)
	return line, nil
}

/*
ParseGraph Graph syntax is something like this:

Group1 = stop1, stop2, stop3

Group2 = stop4, stop5

Group1, Group2, OtherStop // Group1, Group2, OtherStop will all be interconnected, but not within Group1 or Group2

Group1, Group1 // every stop is connected to every other stop

stop8, stop9 // stop8 and stop9 will be connected

graph represents the above graph
stops represents a set of unique terminal stops that the graph will evaluate down to
*/
func ParseGraph(graph []string, stops []string) ([]Pair[StopName, StopName], error) {
	parsedPairings := make([]Pair[string, string], 0)

	groups := make(map[string][]string)

	symbols := slices.Clone(stops)

	// pass 0, collect all symbols

	for _, line := range graph {
		line = strings.ToLower(strings.TrimSpace(line))
		if strings.Contains(line, "=") {
			// group definition
			spl := strings.Split(line, "=")
			if len(spl) != 2 {
				return nil, fmt.Errorf("invalid graph: %s. group definition must contain one '='", line)
			}
			grp := strings.TrimSpace(spl[0])
			if slices.Contains(stops, grp) {
				return nil, fmt.Errorf("group name must not be a stop name: %s", grp)
			}
			symbols = append(symbols, grp)
		}
	}
	slices.Sort(symbols)
	symbols = slices.Compact(symbols)

	// used for topological sorting
	// map: group -> []<groups that the group depends on>
	topo := make(map[string][]string)
	expansion := make(map[string][]string)

	// pass 1, parse graph
	for _, line := range graph {
		line = strings.ToLower(strings.TrimSpace(line))
		if strings.Contains(line, "=") {
			spl := strings.Split(line, "=")
			grp := strings.TrimSpace(spl[0])
			if _, ok := groups[grp]; ok {
				return nil, fmt.Errorf("duplicate group name: %s", grp)
			}
			lst, err := parseSymbolList(spl[1], symbols)
			if err != nil {
				return nil, err
			}
			// track dependencies
			deps := make([]string, 0)
			for _, l := range lst {
				if !slices.Contains(stops, l) {
					// depends on a group
					deps = append(deps, l)
				} else {
					expansion[grp] = append(expansion[grp], l)
				}
			}
			slices.Sort(deps)
			deps = slices.Compact(deps)

			topo[grp] = deps
			groups[grp] = lst
		} else {
			names, err := parseSymbolList(line, symbols)
			if err != nil {
				return nil, err
			}
			if len(names) < 2 {
				return nil, fmt.Errorf("invalid pairing, %v", names)
			}
			interconnect := make([]StopName, 0)
			for _, name := range names {
				for _, stop := range interconnect {
					parsedPairings = append(parsedPairings, MakeSortedPair(string(stop), name))
				}
				interconnect = append(interconnect, StopName(name))
			}
			SortPairs(parsedPairings)
			parsedPairings = slices.Compact(parsedPairings)
		}
	}

	// pass 2, expand group names
	// just topological sorting
	for len(topo) > 0 {
		// find free group
		var group string
		for k, v := range topo {
			if len(v) == 0 {
				group = k
				break
			}
		}
		if group == "" {
			cycleNodes := make([]string, 0)
			for node := range topo {
				cycleNodes = append(cycleNodes, node)
			}
			slices.Sort(cycleNodes)
			return nil, fmt.Errorf("cycle detected in graph: %v", cycleNodes)
		}
		delete(topo, group)

		// remove and expand the group for every dependent
		for k, deps := range topo {
			if slices.Contains(deps, group) {
				// remove it from the group and copy the value to the expansion
				expansion[k] = append(expansion[k], expansion[group]...)
				slices.Sort(expansion[k])
				expansion[k] = slices.Compact(expansion[k])

				// remove group from deps
				x := 0
				for _, dep := range deps {
					if dep == group {
						// remove
					} else {
						deps[x] = dep
						x++
					}
				}
				deps = deps[:x]
				topo[k] = deps
			}
		}
	}

	// pass 3, rewrite pairings
	pairings := make([]Pair[StopName, StopName], 0)
	for _, pair := range parsedPairings {
		x := make([]StopName, 0)
		if slices.Contains(stops, pair.V1) {
			x = append(x, StopName(pair.V1))
		} else {
			for _, exp := range expansion[pair.V1] {
				x = append(x, StopName(exp))
			}
		}
		y := make([]StopName, 0)
		if slices.Contains(stops, pair.V2) {
			y = append(y, StopName(pair.V2))
		} else {
			for _, exp := range expansion[pair.V2] {
				y = append(y, StopName(exp))
			}
		}
		for _, x1 := range x {
			for _, y1 := range y {
				if x1 != y1 {
					pairings = append(pairings, MakeSortedPair(x1, y1))
				}
			}
		}
		SortPairs(pairings)
		pairings = slices.Compact(pairings)
	}
	return pairings, nil
}

func MakeSortedPair[T cmp.Ordered](a, b T) Pair[T, T] {
	if a < b {
		return Pair[T, T]{a, b}
	} else {
		return Pair[T, T]{b, a}
	}
}
