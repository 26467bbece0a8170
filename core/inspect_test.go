package core

import (
	"testing"

	"github.com/encodeous/loom/state"
	"github.com/stretchr/testify/assert"
)

func TestRenderState(t *testing.T) {
	cfg := state.NetworkCfg{
		Stops: []state.StopCfg{
			{Name: "bob", Position: state.Point{X: 0, Y: 0}},
			{Name: "jeb", Position: state.Point{X: 2, Y: -1}},
		},
		Graph: []string{"bob, jeb"},
	}
	s, err := BuildOffline(cfg, discardLogger())
	assert.NoError(t, err)
	defer Stop(s)

	want := `Network: 2 stops, 2 syncs, 1 relaxations

Stops:
 - bob at 0,0
   Links:
    - jeb (cost: 3)
   Routes:
    - bob via (nh: bob, cost: 0)
    - jeb via (nh: jeb, cost: 3)
 - jeb at 2,-1
   Links:
    - bob (cost: 3)
   Routes:
    - bob via (nh: bob, cost: 3)
    - jeb via (nh: jeb, cost: 0)
`
	assert.Equal(t, want, RenderState(s))
}

func TestRenderStateIsolated(t *testing.T) {
	cfg := state.NetworkCfg{
		Stops: []state.StopCfg{
			{Name: "bob", Position: state.Point{X: 0, Y: 0}},
		},
	}
	s, err := BuildOffline(cfg, discardLogger())
	assert.NoError(t, err)
	defer Stop(s)

	want := `Network: 1 stops, 0 syncs, 0 relaxations

Stops:
 - bob at 0,0
   Links:
    (none)
   Routes:
    - bob via (nh: bob, cost: 0)
`
	assert.Equal(t, want, RenderState(s))
}
