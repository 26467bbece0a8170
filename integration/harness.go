// Package integration spins up whole in-process networks and drives them the
// way an operator would, through config application and route queries.
package integration

import (
	"log/slog"
	"time"

	"github.com/encodeous/loom/core"
	"github.com/encodeous/loom/state"
)

// Harness runs a single loom instance on a background goroutine and probes it
// through the dispatch channel, never touching state directly.
type Harness struct {
	State      *state.State
	ConfigPath string
	Local      state.LocalCfg
	Done       chan error
}

// Start boots the network and blocks until the main loop is running. The
// returned channel carries the main loop's exit error.
func (h *Harness) Start(cfg state.NetworkCfg) chan error {
	h.Done = make(chan error, 1)
	go func() {
		h.Done <- core.Start(cfg, h.Local, slog.LevelDebug, h.ConfigPath, &h.State)
	}()
	// wait for the main loop to come up
	for h.State == nil || !h.State.Started.Load() {
		select {
		case err := <-h.Done:
			h.Done <- err
			return h.Done
		case <-time.After(50 * time.Millisecond):
		}
	}
	return h.Done
}

func (h *Harness) Stop() {
	core.Stop(h.State)
	select {
	case err := <-h.Done:
		if err != nil {
			panic(err)
		}
	case <-time.After(5 * time.Second):
		panic("timed out waiting for the main loop to exit")
	}
}

// Apply reconciles cfg into the running network, the same way the config
// watcher does.
func (h *Harness) Apply(cfg state.NetworkCfg) error {
	_, err := h.State.DispatchWait(func(s *state.State) (any, error) {
		return nil, core.Get[*core.Topology](s).ApplyNetwork(s, cfg)
	})
	return err
}

// CostBetween reads from's advertised cost towards to. Unknown stops read as
// INF, the same as any other unreachable destination.
func (h *Harness) CostBetween(from, to state.StopName) state.Cost {
	res, err := h.State.DispatchWait(func(s *state.State) (any, error) {
		a, b := s.GetStop(from), s.GetStop(to)
		if a == nil || b == nil {
			return state.INF, nil
		}
		return a.GetRoutingTable().CostTo(b), nil
	})
	if err != nil {
		panic(err)
	}
	return res.(state.Cost)
}

// NextBetween reads the stop from would hand a traveller to on the way
// towards to, or "" when there is no route.
func (h *Harness) NextBetween(from, to state.StopName) state.StopName {
	res, err := h.State.DispatchWait(func(s *state.State) (any, error) {
		a, b := s.GetStop(from), s.GetStop(to)
		if a == nil || b == nil {
			return state.StopName(""), nil
		}
		next := a.GetRoutingTable().NextStop(b)
		if next == nil {
			return state.StopName(""), nil
		}
		return next.Name, nil
	})
	if err != nil {
		panic(err)
	}
	return res.(state.StopName)
}
