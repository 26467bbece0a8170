package core

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/encodeous/loom/state"
)

// RenderState prints every stop with its links and routing table, in a stable
// order so output can be diffed between runs.
func RenderState(s *state.State) string {
	sb := strings.Builder{}

	r := Get[*LoomRouter](s)
	sb.WriteString(fmt.Sprintf("Network: %d stops, %d syncs, %d relaxations\n\n", len(s.Stops), r.Syncs, r.Relaxations))

	stops := slices.Clone(s.Stops)
	slices.SortFunc(stops, func(a, b *state.Stop) int {
		return cmp.Compare(a.Name, b.Name)
	})

	sb.WriteString("Stops:\n")
	for _, st := range stops {
		sb.WriteString(fmt.Sprintf(" - %s at %d,%d\n", st.Name, st.Position.X, st.Position.Y))

		sb.WriteString("   Links:\n")
		links := make([]string, 0)
		for _, n := range st.GetNeighbours() {
			links = append(links, fmt.Sprintf("    - %s (cost: %d)", n.Name, st.DistanceTo(n)))
		}
		if len(links) == 0 {
			links = append(links, "    (none)")
		}
		slices.Sort(links)
		sb.WriteString(strings.Join(links, "\n") + "\n")

		sb.WriteString("   Routes:\n")
		rt := make([]string, 0)
		table := st.GetRoutingTable()
		for _, dest := range table.Destinations() {
			rt = append(rt, fmt.Sprintf("    - %s via %s", dest.Name, table.GetEntry(dest)))
		}
		slices.Sort(rt)
		sb.WriteString(strings.Join(rt, "\n") + "\n")
	}
	return sb.String()
}
