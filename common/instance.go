package common

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrUnknownNode marks a node id not covered by the problem tables.
	ErrUnknownNode = errors.New("unknown node")
	// ErrBadInstance marks malformed problem tables.
	ErrBadInstance = errors.New("bad instance")
)

// demand vector attached to a delivery node
type Demand struct {
	H int `json:"h"`
	K int `json:"k"`
}

// square matrix of inter-node distances, indexed by node id;
// not required to be symmetric or metric
type Matrix [][]float64

// schema for one problem instance: the static tables the search consumes
// read-only for its entire lifetime
type Instance struct {
	Matrix    Matrix         `json:"matrix"`
	Demands   map[int]Demand `json:"demands"`
	Vehicles  []Vehicle      `json:"vehicles"`
	Depot     int            `json:"depot"`
	Waypoints [2]int         `json:"waypoints"`
	Names     map[int]string `json:"names,omitempty"`
}

// distance from node i to node j; unknown ids are a configuration error,
// never a default distance
func (in *Instance) Distance(i, j int) (float64, error) {
	n := len(in.Matrix)
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: node %d not in distance table", ErrUnknownNode, i)
	}
	if j < 0 || j >= len(in.Matrix[i]) {
		return 0, fmt.Errorf("%w: node %d not in distance table", ErrUnknownNode, j)
	}
	return in.Matrix[i][j], nil
}

// smallest distance between distinct nodes; the per-leg floor any
// admissible lower-bound estimate must respect
func (in *Instance) MinLegDistance() float64 {
	min := math.Inf(1)
	for i, row := range in.Matrix {
		for j, d := range row {
			if i != j && d < min {
				min = d
			}
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return min
}

// delivery node ids in ascending order
func (in *Instance) DeliveryNodes() []int {
	nodes := make([]int, 0, len(in.Demands))
	for n := range in.Demands {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	return nodes
}

// human-readable node name
func (in *Instance) NodeName(id int) string {
	if name, ok := in.Names[id]; ok {
		return name
	}
	return fmt.Sprintf("node-%d", id)
}

// check the static tables before any solve
func (in *Instance) Validate() error {
	n := len(in.Matrix)
	if n == 0 {
		return fmt.Errorf("%w: empty distance matrix", ErrBadInstance)
	}
	for i, row := range in.Matrix {
		if len(row) != n {
			return fmt.Errorf("%w: matrix row %d has %d entries, want %d", ErrBadInstance, i, len(row), n)
		}
		if row[i] != 0 {
			return fmt.Errorf("%w: self-distance of node %d is %v, want 0", ErrBadInstance, i, row[i])
		}
		for j, d := range row {
			if d < 0 {
				return fmt.Errorf("%w: negative distance %v from %d to %d", ErrBadInstance, d, i, j)
			}
		}
	}

	if in.Depot < 0 || in.Depot >= n {
		return fmt.Errorf("%w: depot %d not in distance table", ErrBadInstance, in.Depot)
	}
	if in.Waypoints[0] == in.Waypoints[1] {
		return fmt.Errorf("%w: waypoints must be two distinct nodes", ErrBadInstance)
	}
	for _, w := range in.Waypoints {
		if w < 0 || w >= n {
			return fmt.Errorf("%w: waypoint %d not in distance table", ErrBadInstance, w)
		}
		if w == in.Depot {
			return fmt.Errorf("%w: waypoint %d is the depot", ErrBadInstance, w)
		}
		if _, ok := in.Demands[w]; ok {
			return fmt.Errorf("%w: waypoint %d carries a demand", ErrBadInstance, w)
		}
	}

	for id, d := range in.Demands {
		if id < 0 || id >= n {
			return fmt.Errorf("%w: delivery node %d not in distance table", ErrBadInstance, id)
		}
		if id == in.Depot {
			return fmt.Errorf("%w: depot %d carries a demand", ErrBadInstance, id)
		}
		if d.H < 0 || d.K < 0 {
			return fmt.Errorf("%w: negative demand %+v on node %d", ErrBadInstance, d, id)
		}
	}

	names := make(map[string]bool)
	for _, v := range in.Vehicles {
		if names[v.Name] {
			return fmt.Errorf("%w: duplicate vehicle name %q", ErrBadInstance, v.Name)
		}
		names[v.Name] = true
		if v.FixedCost < 0 || v.FuelCost < 0 {
			return fmt.Errorf("%w: negative cost on vehicle %q", ErrBadInstance, v.Name)
		}
		if v.CapacityH < 0 || v.CapacityK < 0 {
			return fmt.Errorf("%w: negative capacity on vehicle %q", ErrBadInstance, v.Name)
		}
	}

	return nil
}
