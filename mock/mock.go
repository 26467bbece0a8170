package mock

import (
	"github.com/encodeous/loom/state"
)

// MockNetwork returns a five stop network used across tests. The positions
// are picked so that every shortest path is unique, which keeps next-hop
// assertions stable.
//
// Link costs implied by the positions:
//
//	bob-jeb 3, bob-kat 7, bob-eve 9, jeb-kat 6,
//	kat-eve 4, kat-ada 7, eve-ada 7
func MockNetwork() state.NetworkCfg {
	return state.NetworkCfg{
		Stops: []state.StopCfg{
			{Name: "bob", Position: state.Point{X: 0, Y: 0}},
			{Name: "jeb", Position: state.Point{X: 2, Y: -1}},
			{Name: "kat", Position: state.Point{X: 5, Y: 2}},
			{Name: "eve", Position: state.Point{X: 4, Y: 5}},
			{Name: "ada", Position: state.Point{X: 10, Y: 4}},
		},
		Graph: []string{
			"hub = kat, eve, ada",
			"bob, jeb, kat",
			"hub, hub",
			"bob, eve",
		},
	}
}
