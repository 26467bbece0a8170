package core

import (
	"reflect"

	"github.com/encodeous/loom/state"
)

// AddCost sums two costs, saturating at INFM so a finite path can never
// overflow into looking unreachable.
func AddCost(a, b state.Cost) state.Cost {
	if a == state.INF || b == state.INF {
		return state.INF
	} else {
		return state.Cost(min(uint64(state.INFM), uint64(a)+uint64(b)))
	}
}

func Get[T state.LmModule](s *state.State) T {
	t := reflect.TypeFor[T]()
	return s.Modules[t.String()].(T)
}
