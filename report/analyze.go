package report

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/hubrouter/hubrouter/common"
	"github.com/hubrouter/hubrouter/vrp"
)

// per-trip quality figures
type TripStats struct {
	Vehicle    string  `json:"vehicle"`
	UtilH      float64 `json:"util_h"`
	UtilK      float64 `json:"util_k"`
	Util       float64 `json:"util"`
	Distance   float64 `json:"distance"`
	LowerBound float64 `json:"lower_bound"`
	Efficiency float64 `json:"efficiency"`
}

// solution-quality summary
type Analysis struct {
	Trips              []TripStats `json:"trips"`
	MeanUtilization    float64     `json:"mean_utilization"`
	FixedShare         float64     `json:"fixed_share"`
	FuelShare          float64     `json:"fuel_share"`
	DistanceEfficiency float64     `json:"distance_efficiency"`
}

// Analyze measures a completed solution against simple ideals: capacity
// utilization per trip and actual distance against a greedy nearest-neighbor
// lower bound. Purely informational; does not affect the solve.
func Analyze(in *common.Instance, s vrp.Solution) (Analysis, error) {
	var a Analysis
	if !s.Completed {
		return a, fmt.Errorf("cannot analyze an incomplete solution")
	}

	utils := make([]float64, 0, len(s.Trips))
	bounds := make([]float64, 0, len(s.Trips))
	dists := make([]float64, 0, len(s.Trips))
	for _, t := range s.Trips {
		var h, k int
		for _, n := range t.Nodes {
			d := in.Demands[n]
			h += d.H
			k += d.K
		}
		ts := TripStats{Vehicle: t.Vehicle.Name, Distance: t.Distance}
		if t.Vehicle.CapacityH > 0 {
			ts.UtilH = 100 * float64(h) / float64(t.Vehicle.CapacityH)
		}
		if t.Vehicle.CapacityK > 0 {
			ts.UtilK = 100 * float64(k) / float64(t.Vehicle.CapacityK)
		}
		ts.Util = (ts.UtilH + ts.UtilK) / 2

		bound, err := nearest_neighbor_bound(in, t.Nodes)
		if err != nil {
			return a, err
		}
		ts.LowerBound = bound
		if t.Distance > 0 {
			ts.Efficiency = bound / t.Distance
		}

		a.Trips = append(a.Trips, ts)
		utils = append(utils, ts.Util)
		bounds = append(bounds, bound)
		dists = append(dists, t.Distance)
	}

	if len(utils) > 0 {
		a.MeanUtilization = stat.Mean(utils, nil)
	}
	if s.Cost > 0 {
		a.FixedShare = s.FixedCost / s.Cost
		a.FuelShare = s.FuelCost / s.Cost
	}
	if total := floats.Sum(dists); total > 0 {
		a.DistanceEfficiency = floats.Sum(bounds) / total
	}
	return a, nil
}

// greedy tour estimate: depot to nearest remaining node repeatedly, then
// the nearer waypoint, the other, and back to the depot
func nearest_neighbor_bound(in *common.Instance, nodes []int) (float64, error) {
	remaining := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		remaining[n] = true
	}

	var total float64
	current := in.Depot
	for len(remaining) > 0 {
		nearest := -1
		var nearest_d float64
		for _, n := range sorted_keys(remaining) {
			d, err := in.Distance(current, n)
			if err != nil {
				return 0, err
			}
			if nearest < 0 || d < nearest_d {
				nearest = n
				nearest_d = d
			}
		}
		total += nearest_d
		current = nearest
		delete(remaining, nearest)
	}

	w1, w2 := in.Waypoints[0], in.Waypoints[1]
	d1, err := in.Distance(current, w1)
	if err != nil {
		return 0, err
	}
	d2, err := in.Distance(current, w2)
	if err != nil {
		return 0, err
	}
	first, second := w1, w2
	if d2 < d1 {
		first, second = w2, w1
	}
	for _, leg := range [][2]int{{current, first}, {first, second}, {second, in.Depot}} {
		d, err := in.Distance(leg[0], leg[1])
		if err != nil {
			return 0, err
		}
		total += d
	}
	return total, nil
}

// deterministic scan order
func sorted_keys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// write per-trip stats as CSV
func (a Analysis) WriteCSV(path string) error {
	w, err := common.CreateCSVWriter(path)
	if err != nil {
		return err
	}
	defer w.Flush()

	if err := w.Write([]string{"vehicle", "util_h", "util_k", "util", "distance", "lower_bound", "efficiency"}); err != nil {
		return err
	}
	for _, t := range a.Trips {
		row := []string{
			t.Vehicle,
			fmt.Sprintf("%0.1f", t.UtilH),
			fmt.Sprintf("%0.1f", t.UtilK),
			fmt.Sprintf("%0.1f", t.Util),
			fmt.Sprintf("%v", t.Distance),
			fmt.Sprintf("%v", t.LowerBound),
			fmt.Sprintf("%0.3f", t.Efficiency),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
