package integration

import (
	"os"
	"testing"

	"github.com/panjf2000/ants/v2"
)

// TestMain releases the ants default pool before any test runs. The pool is
// spawned as an import side effect of core's ants dependency and is never
// used by loom (AllPaths builds its own pool), but its two background
// goroutines would otherwise trip every goleak.VerifyNone in this package.
func TestMain(m *testing.M) {
	ants.Release()
	os.Exit(m.Run())
}
