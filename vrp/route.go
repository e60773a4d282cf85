package vrp

import (
	"fmt"
	"math"
	"sort"

	"github.com/hubrouter/hubrouter/common"
	log "github.com/sirupsen/logrus"
)

// route-tail placement strategy
type Strategy int

const (
	// StrategyExhaustive tries every insertion position for both waypoints,
	// in both relative orders. Correctness baseline and the default.
	StrategyExhaustive Strategy = iota
	// StrategyAppendNearer appends the waypoint nearer to the last visited
	// node, then the other. Cheaper, but not globally optimal when a
	// waypoint lies close to an early-visited node. Opt-in.
	StrategyAppendNearer
)

func (s Strategy) String() string {
	switch s {
	case StrategyExhaustive:
		return "exhaustive"
	case StrategyAppendNearer:
		return "append"
	}
	return fmt.Sprintf("strategy-%d", int(s))
}

func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "exhaustive":
		return StrategyExhaustive, nil
	case "append":
		return StrategyAppendNearer, nil
	}
	return 0, fmt.Errorf("strategy %q not supported", name)
}

// schema for the optimal tour over one trip's assigned nodes
type Route struct {
	Order    []int   `json:"order"`
	Path     []int   `json:"path"`
	Distance float64 `json:"distance"`
}

// BestRoute finds the minimum-distance visiting order for the given delivery
// nodes on one trip: start at the depot, visit every node, pass both
// waypoints, return to the depot. Exact search over every permutation;
// per-trip node counts are small by problem design.
func BestRoute(in *common.Instance, nodes []int, strategy Strategy) (Route, error) {
	// fixed enumeration order regardless of the caller's set order
	sorted := append([]int(nil), nodes...)
	sort.Ints(sorted)

	if len(sorted) == 0 {
		return empty_route(in)
	}

	best := Route{Distance: math.Inf(1)}
	err := permute(sorted, func(perm []int) error {
		var r Route
		var err error
		switch strategy {
		case StrategyAppendNearer:
			r, err = append_tail(in, perm)
		default:
			r, err = insert_tail(in, perm)
		}
		if err != nil {
			return err
		}
		if r.Distance < best.Distance {
			best = r
		}
		return nil
	})
	if err != nil {
		return Route{}, err
	}

	log.Debugf(
		"[vrp] best route for nodes %v (%v): path %v, distance %v",
		sorted, strategy, best.Path, best.Distance,
	)
	return best, nil
}

// no deliveries: depot, both waypoints in whichever order is cheaper, depot
func empty_route(in *common.Instance) (Route, error) {
	w1, w2 := in.Waypoints[0], in.Waypoints[1]
	best := Route{Order: []int{}, Distance: math.Inf(1)}
	for _, tail := range [][]int{{w1, w2}, {w2, w1}} {
		path := append([]int{in.Depot}, tail...)
		path = append(path, in.Depot)
		d, err := PathDistance(in, path)
		if err != nil {
			return Route{}, err
		}
		if d < best.Distance {
			best.Path = path
			best.Distance = d
		}
	}
	return best, nil
}

// place both waypoints by trying every insertion position, always
// terminating at the depot
func insert_tail(in *common.Instance, perm []int) (Route, error) {
	w1, w2 := in.Waypoints[0], in.Waypoints[1]
	best := Route{Distance: math.Inf(1)}
	for i := 0; i <= len(perm); i++ {
		with_w1 := insert(perm, i, w1)
		for j := 0; j <= len(with_w1); j++ {
			seq := insert(with_w1, j, w2)
			path := make([]int, 0, len(seq)+2)
			path = append(path, in.Depot)
			path = append(path, seq...)
			path = append(path, in.Depot)

			d, err := PathDistance(in, path)
			if err != nil {
				return Route{}, err
			}
			if d < best.Distance {
				best = Route{
					Order:    append([]int(nil), perm...),
					Path:     path,
					Distance: d,
				}
			}
		}
	}
	return best, nil
}

// append the waypoint nearer to the last visited node, then the other,
// then return to the depot
func append_tail(in *common.Instance, perm []int) (Route, error) {
	w1, w2 := in.Waypoints[0], in.Waypoints[1]
	last := in.Depot
	if len(perm) > 0 {
		last = perm[len(perm)-1]
	}

	d1, err := in.Distance(last, w1)
	if err != nil {
		return Route{}, err
	}
	d2, err := in.Distance(last, w2)
	if err != nil {
		return Route{}, err
	}
	tail := []int{w1, w2}
	if d2 < d1 {
		tail = []int{w2, w1}
	}

	path := make([]int, 0, len(perm)+4)
	path = append(path, in.Depot)
	path = append(path, perm...)
	path = append(path, tail...)
	path = append(path, in.Depot)

	d, err := PathDistance(in, path)
	if err != nil {
		return Route{}, err
	}
	return Route{
		Order:    append([]int(nil), perm...),
		Path:     path,
		Distance: d,
	}, nil
}

// visit every permutation of nodes in a fixed order
func permute(nodes []int, visit func([]int) error) error {
	perm := make([]int, 0, len(nodes))
	used := make([]bool, len(nodes))
	var rec func() error
	rec = func() error {
		if len(perm) == len(nodes) {
			return visit(perm)
		}
		for i, n := range nodes {
			if used[i] {
				continue
			}
			used[i] = true
			perm = append(perm, n)
			if err := rec(); err != nil {
				return err
			}
			perm = perm[:len(perm)-1]
			used[i] = false
		}
		return nil
	}
	return rec()
}

// copy of s with x inserted at position i
func insert(s []int, i int, x int) []int {
	out := make([]int, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, x)
	out = append(out, s[i:]...)
	return out
}
