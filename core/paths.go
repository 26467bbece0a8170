package core

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/encodeous/loom/perf"
	"github.com/encodeous/loom/state"
	"github.com/panjf2000/ants/v2"
)

var ErrNoRoute = errors.New("no route")

// Path is a fully resolved journey between two stops, hop by hop.
type Path struct {
	Stops []*state.Stop // origin first, destination last
	Cost  state.Cost
}

func (p Path) String() string {
	names := make([]string, 0, len(p.Stops))
	for _, st := range p.Stops {
		names = append(names, string(st.Name))
	}
	return fmt.Sprintf("%s (cost: %d)", strings.Join(names, " -> "), p.Cost)
}

// FollowRoute resolves the journey from -> to by walking next stops. The
// accumulated cost is the sum of direct link costs along the way, which
// equals from's advertised cost once the network has converged. A table that
// points hops in a circle is reported as an error rather than looping.
func FollowRoute(from, to *state.Stop) (Path, error) {
	if from == nil || to == nil {
		return Path{}, ErrNoRoute
	}
	p := Path{Stops: []*state.Stop{from}}
	seen := map[*state.Stop]struct{}{from: {}}
	cur := from
	for cur != to {
		next := cur.GetRoutingTable().NextStop(to)
		if next == nil {
			return Path{}, fmt.Errorf("%w from %s to %s", ErrNoRoute, from, to)
		}
		if _, ok := seen[next]; ok {
			return Path{}, fmt.Errorf("routing loop through %s going from %s to %s", next, from, to)
		}
		seen[next] = struct{}{}
		p.Cost = AddCost(p.Cost, cur.DistanceTo(next))
		p.Stops = append(p.Stops, next)
		cur = next
	}
	return p, nil
}

// AllPaths resolves every ordered pair of stops over a worker pool.
// Unreachable pairs are skipped. Tables are only read, which is safe while
// the network is quiescent.
func AllPaths(stops []*state.Stop) ([]Path, error) {
	pool, err := ants.NewPool(state.PathWorkers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var mu sync.Mutex
	var wg sync.WaitGroup
	paths := make([]Path, 0, len(stops)*(len(stops)-1))
	for _, from := range stops {
		for _, to := range stops {
			if from == to {
				continue
			}
			wg.Add(1)
			f, t := from, to
			err := pool.Submit(func() {
				defer wg.Done()
				perf.PathQueries.Add(1)
				path, ferr := FollowRoute(f, t)
				if ferr != nil {
					return
				}
				mu.Lock()
				paths = append(paths, path)
				mu.Unlock()
			})
			if err != nil {
				wg.Done()
				return nil, err
			}
		}
	}
	wg.Wait()

	slices.SortFunc(paths, func(a, b Path) int {
		if c := cmp.Compare(a.Stops[0].Name, b.Stops[0].Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Stops[len(a.Stops)-1].Name, b.Stops[len(b.Stops)-1].Name)
	})
	return paths, nil
}
