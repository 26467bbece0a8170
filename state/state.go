package state

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
)

type LmModule interface {
	Init(s *State) error
	Cleanup(s *State) error
}

// State access must be done only on a single Goroutine
type State struct {
	*Env
	Modules map[string]LmModule
	Stops   []*Stop

	Started  atomic.Bool
	Stopping atomic.Bool
}

// GetStop resolves a config-level name to the live stop, or nil if no stop
// carries the name. When names collide, the earliest created stop wins.
func (s *State) GetStop(name StopName) *Stop {
	idx := slices.IndexFunc(s.Stops, func(stop *Stop) bool {
		return stop.Name == name
	})
	if idx == -1 {
		return nil
	}
	return s.Stops[idx]
}

// Env can be read from any Goroutine
type Env struct {
	DispatchChannel chan<- func(s *State) error
	NetworkCfg
	LocalCfg
	Context    context.Context
	Cancel     context.CancelCauseFunc
	Log        *slog.Logger
	ConfigPath string
}
