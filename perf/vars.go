package perf

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	DispatchLatency = metric.NewHistogram("1m1s")
	Relaxations     = metric.NewCounter("10s1s")
	SyncRuns        = metric.NewCounter("10s1s")
	PathQueries     = metric.NewCounter("10s1s")
	TopologyApplies = metric.NewCounter("10s1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("loom:Relaxations/s", Relaxations)
	expvar.Publish("loom:SyncRuns/s", SyncRuns)
	expvar.Publish("loom:PathQueries/s", PathQueries)
	expvar.Publish("loom:TopologyApplies/s", TopologyApplies)
	expvar.Publish("loom:DispatchLatency (µs)", DispatchLatency)
}
