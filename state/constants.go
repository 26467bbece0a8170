package state

import "time"

// Cost is the routing metric. Costs are summed along a path and saturate at
// INFM instead of wrapping.
type Cost uint32

const (
	INF = ^(Cost)(0)
	// INFM is the maximum cost of a route that is still considered reachable.
	INFM = INF - 1
)

var (
	// WatchDelay is how often the topology file is re-read for new stops/links.
	WatchDelay = time.Second * 5
	// WarnDedupTTL suppresses repeated warnings about the same topology line.
	WarnDedupTTL = time.Second * 30
	// PathWorkers is the pool size used when querying many paths at once.
	PathWorkers = 8

	// default config path, can be overridden by the root command
	NetworkConfigPath = "loom.yaml"
)

// debug flags, bound by cmd
var (
	DBG_trace    bool
	DBG_debug    bool
	DBG_log_sync bool
)
