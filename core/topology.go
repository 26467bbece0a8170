package core

import (
	"fmt"
	"slices"

	"github.com/encodeous/loom/perf"
	"github.com/encodeous/loom/state"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

// Topology turns the declarative network config into live stops and links,
// and keeps doing so while the config file grows. Stops and links are only
// ever added; removals cannot be honoured, because routing tables never
// forget, so they are warned about and skipped.
type Topology struct {
	warnDedup *ttlcache.Cache[string, struct{}]
}

func (tp *Topology) Init(s *state.State) error {
	s.Log.Debug("init topology")
	tp.warnDedup = ttlcache.New[string, struct{}](
		ttlcache.WithTTL[string, struct{}](state.WarnDedupTTL),
		ttlcache.WithDisableTouchOnHit[string, struct{}](),
	)
	go tp.warnDedup.Start()
	if s.Watch && s.ConfigPath != "" {
		s.RepeatTask(tp.watchConfig, state.WatchDelay)
	}
	return nil
}

func (tp *Topology) Cleanup(s *state.State) error {
	tp.warnDedup.Stop()
	return nil
}

// warnOnce suppresses repeats of the same warning for WarnDedupTTL, so a
// watched config with a removed stop does not flood the log on every tick.
func (tp *Topology) warnOnce(r Router, key string, event RouterEvent, desc string, args ...any) {
	if tp.warnDedup.Get(key) != nil {
		return
	}
	tp.warnDedup.Set(key, struct{}{}, ttlcache.DefaultTTL)
	r.Log(event, desc, args...)
}

// ApplyNetwork reconciles the live network with cfg. New stops are created,
// new links are installed in both directions, and each installation gossips
// immediately, so the network is converged when this returns.
func (tp *Topology) ApplyNetwork(s *state.State, cfg state.NetworkCfg) error {
	r := Get[*LoomRouter](s)
	batch := uuid.NewString()
	perf.TopologyApplies.Add(1)
	s.Log.Debug("applying network config", "batch", batch, "stops", len(cfg.Stops))

	for _, sc := range cfg.Stops {
		cur := s.GetStop(sc.Name)
		if cur == nil {
			st := state.NewStop(sc.Name, sc.Position)
			s.Stops = append(s.Stops, st)
			s.Log.Debug("stop created", "stop", st, "position", sc.Position, "batch", batch)
			continue
		}
		if cur.Position != sc.Position {
			tp.warnOnce(r, "move:"+string(sc.Name), RemovalIgnored,
				"stop moved in config, keeping original position", "stop", cur, "old", cur.Position, "new", sc.Position)
		}
	}

	links, err := cfg.Links()
	if err != nil {
		return err
	}
	for _, l := range links {
		a, b := s.GetStop(l.V1), s.GetStop(l.V2)
		if a == nil || b == nil {
			tp.warnOnce(r, "link:"+string(l.V1)+","+string(l.V2), UnknownStop,
				"link references unknown stop", "a", l.V1, "b", l.V2)
			continue
		}
		// both directions, so costs come out symmetric
		if !a.HasNeighbour(b) {
			AddNeighbour(r, a, b)
		}
		if !b.HasNeighbour(a) {
			AddNeighbour(r, b, a)
		}
	}

	// scan for removals, which we cannot honour
	for _, st := range s.Stops {
		if cfg.TryGetStop(st.Name) == nil {
			tp.warnOnce(r, "gone:"+string(st.Name), RemovalIgnored,
				"stop removed from config, still routing", "stop", st)
		}
	}
	for _, st := range s.Stops {
		for _, n := range st.GetNeighbours() {
			link := state.MakeSortedPair(st.Name, n.Name)
			if !slices.Contains(links, link) {
				// key on the sorted pair, one warning per link rather than per direction
				tp.warnOnce(r, "unlink:"+string(link.V1)+","+string(link.V2), RemovalIgnored,
					"link removed from config, still routing", "a", st, "b", n)
			}
		}
	}

	if state.DBG_log_sync {
		fmt.Println(RenderState(s))
	}
	return nil
}

func (tp *Topology) watchConfig(s *state.State) error {
	cfg, err := ReadNetworkConfig(s.ConfigPath)
	if err != nil {
		s.Log.Warn("failed to re-read network config", "path", s.ConfigPath, "err", err)
		return nil // keep running on the old topology
	}
	if err := state.NetworkConfigValidator(cfg); err != nil {
		s.Log.Warn("ignoring invalid network config", "path", s.ConfigPath, "err", err)
		return nil
	}
	return tp.ApplyNetwork(s, *cfg)
}
