package core

import (
	"testing"

	"github.com/encodeous/loom/mock"
	"github.com/encodeous/loom/state"
	"github.com/stretchr/testify/assert"
)

func TestApplyNetworkMock(t *testing.T) {
	s, err := BuildOffline(mock.MockNetwork(), discardLogger())
	assert.NoError(t, err)
	defer Stop(s)

	assert.Len(t, s.Stops, 5)
	bob := s.GetStop("bob")
	jeb := s.GetStop("jeb")
	kat := s.GetStop("kat")
	eve := s.GetStop("eve")
	ada := s.GetStop("ada")

	// links come out of the graph in both directions
	assert.True(t, bob.HasNeighbour(kat))
	assert.True(t, kat.HasNeighbour(bob))
	assert.True(t, kat.HasNeighbour(ada))
	assert.False(t, bob.HasNeighbour(ada))

	// converged as soon as apply returns
	assert.Equal(t, state.Cost(14), bob.GetRoutingTable().CostTo(ada))
	assert.Equal(t, kat, bob.GetRoutingTable().NextStop(ada))
	assert.Equal(t, state.Cost(10), eve.GetRoutingTable().CostTo(jeb))
	assert.Equal(t, kat, eve.GetRoutingTable().NextStop(jeb))

	tp := Get[*Topology](s)
	assert.Equal(t, 0, tp.warnDedup.Len())
}

func TestApplyNetworkGrow(t *testing.T) {
	small := state.NetworkCfg{
		Stops: []state.StopCfg{
			{Name: "bob", Position: state.Point{X: 0, Y: 0}},
			{Name: "jeb", Position: state.Point{X: 2, Y: -1}},
		},
		Graph: []string{"bob, jeb"},
	}
	s, err := BuildOffline(small, discardLogger())
	assert.NoError(t, err)
	defer Stop(s)

	bob := s.GetStop("bob")
	assert.Len(t, s.Stops, 2)
	assert.Equal(t, state.Cost(3), bob.GetRoutingTable().CostTo(s.GetStop("jeb")))

	tp := Get[*Topology](s)
	assert.NoError(t, tp.ApplyNetwork(s, mock.MockNetwork()))

	assert.Len(t, s.Stops, 5)
	// existing stops are kept, not recreated
	assert.Same(t, bob, s.GetStop("bob"))
	ada := s.GetStop("ada")
	assert.Equal(t, state.Cost(14), bob.GetRoutingTable().CostTo(ada))
	assert.Equal(t, 0, tp.warnDedup.Len())
}

func TestApplyNetworkIdempotent(t *testing.T) {
	s, err := BuildOffline(mock.MockNetwork(), discardLogger())
	assert.NoError(t, err)
	defer Stop(s)

	r := Get[*LoomRouter](s)
	syncs := r.Syncs

	tp := Get[*Topology](s)
	assert.NoError(t, tp.ApplyNetwork(s, mock.MockNetwork()))

	// links already exist, so nothing is reinstalled or re-gossiped
	assert.Equal(t, syncs, r.Syncs)
	assert.Len(t, s.Stops, 5)
	assert.Equal(t, 0, tp.warnDedup.Len())
}

func TestApplyNetworkShrinkWarns(t *testing.T) {
	s, err := BuildOffline(mock.MockNetwork(), discardLogger())
	assert.NoError(t, err)
	defer Stop(s)

	shrunk := state.NetworkCfg{
		Stops: []state.StopCfg{
			{Name: "bob", Position: state.Point{X: 0, Y: 0}},
			{Name: "jeb", Position: state.Point{X: 2, Y: -1}},
		},
		Graph: []string{"bob, jeb"},
	}
	tp := Get[*Topology](s)
	assert.NoError(t, tp.ApplyNetwork(s, shrunk))

	// removals are warned about but never honoured
	assert.Len(t, s.Stops, 5)
	bob := s.GetStop("bob")
	ada := s.GetStop("ada")
	assert.Equal(t, state.Cost(14), bob.GetRoutingTable().CostTo(ada))

	assert.NotNil(t, tp.warnDedup.Get("gone:ada"))
	assert.NotNil(t, tp.warnDedup.Get("gone:kat"))
	assert.NotNil(t, tp.warnDedup.Get("gone:eve"))
	assert.Nil(t, tp.warnDedup.Get("gone:bob"))
	assert.NotNil(t, tp.warnDedup.Get("unlink:eve,kat"))
	assert.NotNil(t, tp.warnDedup.Get("unlink:bob,kat"))
	assert.Nil(t, tp.warnDedup.Get("unlink:bob,jeb"))

	// unlink keys are sorted pairs, so a removed link warns once, not once
	// per direction
	assert.Nil(t, tp.warnDedup.Get("unlink:kat,eve"))
	assert.Nil(t, tp.warnDedup.Get("unlink:kat,bob"))
	// 3 removed stops + 6 removed links
	assert.Equal(t, 9, tp.warnDedup.Len())
}

func TestApplyNetworkMoveWarns(t *testing.T) {
	s, err := BuildOffline(mock.MockNetwork(), discardLogger())
	assert.NoError(t, err)
	defer Stop(s)

	moved := mock.MockNetwork()
	moved.Stops[0].Position = state.Point{X: 50, Y: 50}
	tp := Get[*Topology](s)
	assert.NoError(t, tp.ApplyNetwork(s, moved))

	bob := s.GetStop("bob")
	assert.Equal(t, state.Point{X: 0, Y: 0}, bob.Position)
	assert.NotNil(t, tp.warnDedup.Get("move:bob"))
	assert.Nil(t, tp.warnDedup.Get("move:jeb"))
}

func TestApplyNetworkBadGraph(t *testing.T) {
	s, err := BuildOffline(mock.MockNetwork(), discardLogger())
	assert.NoError(t, err)
	defer Stop(s)

	bad := mock.MockNetwork()
	bad.Graph = append(bad.Graph, "bob, ghost")
	tp := Get[*Topology](s)
	assert.Error(t, tp.ApplyNetwork(s, bad))
}
