package vrp

import (
	"fmt"

	"github.com/hubrouter/hubrouter/common"
)

// schema for one vehicle's trip in a solution
type Trip struct {
	Vehicle  common.Vehicle `json:"vehicle"`
	Nodes    []int          `json:"nodes"`
	Order    []int          `json:"order"`
	Path     []int          `json:"path"`
	Distance float64        `json:"distance"`
}

func (t Trip) FuelCost() float64 {
	return t.Distance * t.Vehicle.FuelCost
}

// schema for a complete (or infeasible) assignment of vehicles to nodes
type Solution struct {
	Trips         []Trip  `json:"trips"`
	FixedCost     float64 `json:"fixed_cost"`
	FuelCost      float64 `json:"fuel_cost"`
	Cost          float64 `json:"cost"`
	VehiclesUsed  int     `json:"vehicles_used"`
	TotalDistance float64 `json:"total_distance"`
	Completed     bool    `json:"completed"`
}

// assemble a complete solution record from an accumulated trip list
func NewSolution(trips []Trip) Solution {
	s := Solution{
		Trips:        append([]Trip(nil), trips...),
		VehiclesUsed: len(trips),
		Completed:    true,
	}
	for _, t := range trips {
		s.FixedCost += t.Vehicle.FixedCost
		s.FuelCost += t.FuelCost()
		s.TotalDistance += t.Distance
	}
	s.Cost = s.FixedCost + s.FuelCost
	return s
}

// lexicographic total order: any incomplete solution is worse than any
// complete one; then cost, then vehicle count, then distance
func (s Solution) BetterThan(other Solution) bool {
	if !other.Completed {
		return s.Completed
	}
	if !s.Completed {
		return false
	}
	if s.Cost != other.Cost {
		return s.Cost < other.Cost
	}
	if s.VehiclesUsed != other.VehiclesUsed {
		return s.VehiclesUsed < other.VehiclesUsed
	}
	return s.TotalDistance < other.TotalDistance
}

func (s Solution) String() string {
	if !s.Completed {
		return "incomplete solution"
	}
	return fmt.Sprintf(
		"cost %v (fixed %v + fuel %v), %d vehicles, distance %v",
		s.Cost, s.FixedCost, s.FuelCost, s.VehiclesUsed, s.TotalDistance,
	)
}

// schema for the output of the external MIP verifier
type Verification struct {
	TotalCost float64 `json:"total_cost"`
	Routes    []Trip  `json:"routes"`
}
