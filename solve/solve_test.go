package solve

import (
	"errors"
	"math"
	"testing"

	"github.com/hubrouter/hubrouter/common"
)

// 0 = depot, 1-3 = deliveries, 4/5 = mandatory waypoints
func test_instance() *common.Instance {
	return &common.Instance{
		Matrix: common.Matrix{
			{0, 10, 12, 8, 4, 5},
			{10, 0, 6, 14, 9, 11},
			{12, 6, 0, 7, 8, 10},
			{8, 14, 7, 0, 5, 6},
			{4, 9, 8, 5, 0, 3},
			{5, 11, 10, 6, 3, 0},
		},
		Demands: map[int]common.Demand{
			1: {H: 1, K: 0},
			2: {H: 1, K: 2},
			3: {H: 0, K: 2},
		},
		Vehicles: []common.Vehicle{
			{Name: "V", FixedCost: 150, CapacityH: 2, CapacityK: 2, FuelCost: 1},
			{Name: "W", FixedCost: 200, CapacityH: 3, CapacityK: 3, FuelCost: 1},
		},
		Depot:     0,
		Waypoints: [2]int{4, 5},
	}
}

// No single vehicle can carry all three demand vectors, so both vehicles
// must run. Best split is {1,2} (route 0-1-2-4-5-0, distance 32) plus {3}
// (route 0-4-3-5-0, distance 20): 150+200 fixed + 52 fuel = 402.
func TestSearchScenario(t *testing.T) {
	s := Search{Instance: test_instance(), Config: DefaultConfig()}
	sol, err := s.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sol.Completed {
		t.Fatal("expected a complete solution")
	}
	if sol.Cost != 402 {
		t.Fatalf("cost = %v, want 402", sol.Cost)
	}
	if sol.FixedCost != 350 {
		t.Fatalf("fixed cost = %v, want 350", sol.FixedCost)
	}
	if sol.FuelCost != 52 {
		t.Fatalf("fuel cost = %v, want 52", sol.FuelCost)
	}
	if sol.VehiclesUsed != 2 {
		t.Fatalf("vehicles = %d, want 2", sol.VehiclesUsed)
	}
	if sol.TotalDistance != 52 {
		t.Fatalf("distance = %v, want 52", sol.TotalDistance)
	}

	// every delivery node in exactly one trip
	counts := make(map[int]int)
	vehicles := make(map[string]int)
	for _, trip := range sol.Trips {
		vehicles[trip.Vehicle.Name]++
		var h, k int
		for _, n := range trip.Nodes {
			counts[n]++
			dem := s.Instance.Demands[n]
			h += dem.H
			k += dem.K
		}
		if h > trip.Vehicle.CapacityH || k > trip.Vehicle.CapacityK {
			t.Fatalf("trip %v exceeds capacity of %s", trip.Nodes, trip.Vehicle.Name)
		}
	}
	for n := 1; n <= 3; n++ {
		if counts[n] != 1 {
			t.Fatalf("node %d covered %d times", n, counts[n])
		}
	}
	for name, c := range vehicles {
		if c > 1 {
			t.Fatalf("vehicle %s used %d times", name, c)
		}
	}
}

func TestSearchZeroToleranceNotWorse(t *testing.T) {
	exact_cfg := DefaultConfig()
	exact_cfg.Tolerance = 0
	exact := Search{Instance: test_instance(), Config: exact_cfg}
	exact_sol, err := exact.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slack := Search{Instance: test_instance(), Config: DefaultConfig()}
	slack_sol, err := slack.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !exact_sol.Completed || !slack_sol.Completed {
		t.Fatal("expected complete solutions from both searches")
	}
	if exact_sol.Cost > slack_sol.Cost {
		t.Fatalf("zero tolerance found %v, worse than slack %v", exact_sol.Cost, slack_sol.Cost)
	}
	if exact_sol.Cost != 402 {
		t.Fatalf("zero tolerance cost = %v, want 402", exact_sol.Cost)
	}
}

// Every leg here is far shorter than the default per-node estimate. The
// bound must be capped at the matrix's shortest leg, or the two-truck
// optimum (20.8) gets pruned in favor of the single big truck (21.5) even
// at zero tolerance.
func TestSearchZeroToleranceShortLegs(t *testing.T) {
	short_instance := func() *common.Instance {
		m := make(common.Matrix, 5)
		for i := range m {
			m[i] = make([]float64, 5)
			for j := range m[i] {
				if i != j {
					m[i][j] = 0.1
				}
			}
		}
		return &common.Instance{
			Matrix: m,
			Demands: map[int]common.Demand{
				1: {H: 1, K: 0},
				2: {H: 0, K: 1},
			},
			Vehicles: []common.Vehicle{
				{Name: "A", FixedCost: 10, CapacityH: 1, CapacityK: 0, FuelCost: 1},
				{Name: "B", FixedCost: 10, CapacityH: 0, CapacityK: 1, FuelCost: 1},
				{Name: "C", FixedCost: 21, CapacityH: 1, CapacityK: 1, FuelCost: 1},
			},
			Depot:     0,
			Waypoints: [2]int{3, 4},
		}
	}

	cfg := DefaultConfig()
	cfg.Tolerance = 0
	s := Search{Instance: short_instance(), Config: cfg}
	sol, err := s.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// reference run with the bound's fuel estimate disabled entirely
	brute_cfg := cfg
	brute_cfg.MinNodeDistance = 0
	brute := Search{Instance: short_instance(), Config: brute_cfg}
	brute_sol, err := brute.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sol.Completed || !brute_sol.Completed {
		t.Fatal("expected complete solutions from both searches")
	}
	if math.Abs(sol.Cost-brute_sol.Cost) > 1e-9 {
		t.Fatalf("zero tolerance not exact: found %v, brute force found %v", sol.Cost, brute_sol.Cost)
	}
	if math.Abs(sol.Cost-20.8) > 1e-9 {
		t.Fatalf("cost = %v, want 20.8", sol.Cost)
	}
	if sol.VehiclesUsed != 2 {
		t.Fatalf("vehicles = %d, want 2", sol.VehiclesUsed)
	}
}

func TestSearchAppendStrategyNeverDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrategyName = "append"
	s := Search{Instance: test_instance(), Config: cfg}
	sol, err := s.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the fast path misplaces the waypoints around node 3 and pays for it
	if sol.Cost != 403 {
		t.Fatalf("append strategy cost = %v, want 403", sol.Cost)
	}
}

func TestSearchEmptyDeliverySet(t *testing.T) {
	in := test_instance()
	in.Demands = map[int]common.Demand{}
	s := Search{Instance: in, Config: DefaultConfig()}
	sol, err := s.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sol.Completed {
		t.Fatal("expected complete solution for empty delivery set")
	}
	if len(sol.Trips) != 0 || sol.Cost != 0 || sol.VehiclesUsed != 0 {
		t.Fatalf("expected empty zero-cost solution, got %v", sol)
	}
}

func TestSearchInfeasible(t *testing.T) {
	in := test_instance()
	in.Demands[1] = common.Demand{H: 10, K: 10}
	s := Search{Instance: in, Config: DefaultConfig()}
	sol, err := s.Run()
	if err != nil {
		t.Fatalf("infeasibility must not be an error, got: %v", err)
	}
	if sol.Completed {
		t.Fatal("expected incomplete solution for oversized demand")
	}
}

func TestSearchUnknownNode(t *testing.T) {
	s := Search{Instance: test_instance(), Config: DefaultConfig(), Nodes: []int{1, 99}}
	_, err := s.Run()
	if !errors.Is(err, common.ErrUnknownNode) {
		t.Fatalf("err = %v, want ErrUnknownNode", err)
	}
}

func TestSearchDuplicateVehicleName(t *testing.T) {
	in := test_instance()
	in.Vehicles = append(in.Vehicles, in.Vehicles[0])
	s := Search{Instance: in, Config: DefaultConfig()}
	_, err := s.Run()
	if !errors.Is(err, ErrVehicleReuse) {
		t.Fatalf("err = %v, want ErrVehicleReuse", err)
	}
}

func TestSearchVisitBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxVisits = 1
	s := Search{Instance: test_instance(), Config: cfg}
	sol, err := s.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.Completed {
		t.Fatal("one visit cannot reach a complete solution")
	}
}
