package state

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Point is written as "x,y" in configs.
func (p Point) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d,%d", p.X, p.Y)), nil
}

func (p *Point) UnmarshalText(text []byte) error {
	spl := strings.Split(string(text), ",")
	if len(spl) != 2 {
		return fmt.Errorf("invalid point %q, must be x,y", string(text))
	}
	x, err := strconv.Atoi(strings.TrimSpace(spl[0]))
	if err != nil {
		return fmt.Errorf("invalid point %q: %w", string(text), err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(spl[1]))
	if err != nil {
		return fmt.Errorf("invalid point %q: %w", string(text), err)
	}
	p.X = x
	p.Y = y
	return nil
}

func (e RoutingEntry) String() string {
	if !e.Exists() {
		return "(no route)"
	}
	return fmt.Sprintf("(nh: %s, cost: %d)", e.next.Name, e.cost)
}

// StringRoutes renders the table as sorted destination lines.
func (t *RoutingTable) StringRoutes() string {
	lines := make([]string, 0, len(t.entries))
	for dest, e := range t.entries {
		lines = append(lines, fmt.Sprintf("%s via %s", dest.Name, e))
	}
	slices.Sort(lines)
	return strings.Join(lines, "\n")
}
