package core

import (
	"fmt"

	"github.com/encodeous/loom/perf"
	"github.com/encodeous/loom/state"
)

// LoomRouter fans router events out to logging and metrics. It is the only
// Router implementation outside of tests.
type LoomRouter struct {
	*state.State

	// running totals for inspect, only touched on the main goroutine
	Syncs       uint64
	Relaxations uint64
}

func (r *LoomRouter) Init(s *state.State) error {
	s.Log.Debug("init router")
	r.State = s
	return nil
}

func (r *LoomRouter) Cleanup(s *state.State) error {
	r.State = nil
	return nil
}

func (r *LoomRouter) Log(event RouterEvent, desc string, args ...any) {
	switch event {
	case RouteAdded, RouteImproved:
		r.Relaxations++
		perf.Relaxations.Add(1)
	case SyncStarted:
		r.Syncs++
		perf.SyncRuns.Add(1)
	}
	if event.IsWarning() {
		r.Env.Log.Warn(fmt.Sprintf("%s %s", event.String(), desc), args...)
		return
	}
	r.Env.Log.Debug(fmt.Sprintf("%s %s", event.String(), desc), args...)
}
