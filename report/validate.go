package report

import (
	"fmt"
	"math"

	"github.com/hubrouter/hubrouter/common"
	"github.com/hubrouter/hubrouter/vrp"
)

const cost_tolerance = 0.001

// Validate independently recomputes distances, costs, and capacity usage
// from a solution and returns every mismatch found; an empty list means the
// solution is internally consistent with the problem tables.
func Validate(in *common.Instance, s vrp.Solution) []string {
	var errs []string
	if !s.Completed {
		return append(errs, "solution is not complete")
	}

	// node coverage
	counts := make(map[int]int)
	for _, t := range s.Trips {
		for _, n := range t.Nodes {
			counts[n]++
		}
	}
	for _, n := range in.DeliveryNodes() {
		switch counts[n] {
		case 0:
			errs = append(errs, fmt.Sprintf("node %d missing from every trip", n))
		case 1:
		default:
			errs = append(errs, fmt.Sprintf("node %d assigned to %d trips", n, counts[n]))
		}
	}
	for n := range counts {
		if _, ok := in.Demands[n]; !ok {
			errs = append(errs, fmt.Sprintf("node %d assigned but has no demand", n))
		}
	}

	// vehicle reuse
	used := make(map[string]int)
	for _, t := range s.Trips {
		used[t.Vehicle.Name]++
	}
	for name, c := range used {
		if c > 1 {
			errs = append(errs, fmt.Sprintf("vehicle %s used in %d trips", name, c))
		}
	}

	var fixed, fuel, dist float64
	for i, t := range s.Trips {
		// capacity
		var h, k int
		for _, n := range t.Nodes {
			d := in.Demands[n]
			h += d.H
			k += d.K
		}
		if h > t.Vehicle.CapacityH || k > t.Vehicle.CapacityK {
			errs = append(errs, fmt.Sprintf(
				"trip %d: demand (%d, %d) exceeds vehicle %s capacity (%d, %d)",
				i, h, k, t.Vehicle.Name, t.Vehicle.CapacityH, t.Vehicle.CapacityK,
			))
		}

		// path shape
		if len(t.Path) < 2 || t.Path[0] != in.Depot || t.Path[len(t.Path)-1] != in.Depot {
			errs = append(errs, fmt.Sprintf("trip %d: path does not start and end at the depot", i))
		}
		for _, w := range in.Waypoints {
			n := 0
			for _, p := range t.Path {
				if p == w {
					n++
				}
			}
			if n != 1 {
				errs = append(errs, fmt.Sprintf("trip %d: waypoint %d appears %d times", i, w, n))
			}
		}

		// distance
		recomputed, err := vrp.PathDistance(in, t.Path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("trip %d: %v", i, err))
		} else if math.Abs(recomputed-t.Distance) > cost_tolerance {
			errs = append(errs, fmt.Sprintf(
				"trip %d: reported distance %v, recomputed %v", i, t.Distance, recomputed,
			))
		}

		fixed += t.Vehicle.FixedCost
		fuel += t.Distance * t.Vehicle.FuelCost
		dist += t.Distance
	}

	// aggregates
	if math.Abs(fixed-s.FixedCost) > cost_tolerance {
		errs = append(errs, fmt.Sprintf("fixed cost %v, recomputed %v", s.FixedCost, fixed))
	}
	if math.Abs(fuel-s.FuelCost) > cost_tolerance {
		errs = append(errs, fmt.Sprintf("fuel cost %v, recomputed %v", s.FuelCost, fuel))
	}
	if math.Abs(fixed+fuel-s.Cost) > cost_tolerance {
		errs = append(errs, fmt.Sprintf("total cost %v, recomputed %v", s.Cost, fixed+fuel))
	}
	if math.Abs(dist-s.TotalDistance) > cost_tolerance {
		errs = append(errs, fmt.Sprintf("total distance %v, recomputed %v", s.TotalDistance, dist))
	}
	if s.VehiclesUsed != len(s.Trips) {
		errs = append(errs, fmt.Sprintf("vehicle count %d, but %d trips", s.VehiclesUsed, len(s.Trips)))
	}

	return errs
}
