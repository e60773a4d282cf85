package solve

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hubrouter/hubrouter/common"
	"github.com/hubrouter/hubrouter/vrp"
	log "github.com/sirupsen/logrus"
)

// ErrVehicleReuse marks the invariant that no vehicle may appear in more
// than one trip.
var ErrVehicleReuse = errors.New("vehicle assigned twice")

// Search partitions the unassigned delivery nodes across the available
// vehicles with a depth-first branch and bound, routing each candidate trip
// exactly. Single-threaded; the partial assignment is owned by the active
// call chain and undone on backtrack.
type Search struct {
	Instance *common.Instance
	Config   Config
	// Nodes restricts the solve to a subset of delivery nodes; nil means
	// every node in the demand table.
	Nodes []int

	strategy  vrp.Strategy
	node_dist float64
	used      map[string]bool
	trips     []vrp.Trip
	cost      float64
	best      vrp.Solution
	visits    int
}

// Run explores the partition space and returns the best solution found.
// Completed=false on the result means no feasible covering assignment
// exists (or the visit budget ran out); that is a normal outcome, not an
// error. Errors are reserved for configuration and invariant violations.
func (s *Search) Run() (vrp.Solution, error) {
	nodes := s.Nodes
	if nodes == nil {
		nodes = s.Instance.DeliveryNodes()
	} else {
		for _, n := range nodes {
			if _, ok := s.Instance.Demands[n]; !ok {
				return vrp.Solution{}, fmt.Errorf(
					"%w: node %d not in demand table", common.ErrUnknownNode, n,
				)
			}
		}
	}

	names := make(map[string]bool, len(s.Instance.Vehicles))
	for _, v := range s.Instance.Vehicles {
		if names[v.Name] {
			return vrp.Solution{}, fmt.Errorf("%w: %q listed twice", ErrVehicleReuse, v.Name)
		}
		names[v.Name] = true
	}

	s.strategy = s.Config.Strategy()
	// the per-node fuel estimate in the bound must never exceed the shortest
	// real leg, or a zero-tolerance search could prune the optimum
	s.node_dist = s.Config.MinNodeDistance
	if floor := s.Instance.MinLegDistance(); floor < s.node_dist {
		s.node_dist = floor
	}
	s.used = make(map[string]bool)
	s.trips = s.trips[:0]
	s.cost = 0
	s.best = vrp.Solution{}
	s.visits = 0

	if err := s.recurse(nodes, 0); err != nil {
		return vrp.Solution{}, err
	}
	log.Debugf("[solve] explored %d states, best: %v", s.visits, s.best)
	return s.best, nil
}

func (s *Search) recurse(remaining []int, depth int) error {
	s.visits++
	if s.Config.MaxVisits > 0 && s.visits > s.Config.MaxVisits {
		return nil
	}

	// all nodes assigned: evaluate the accumulated trips as a candidate
	if len(remaining) == 0 {
		cand := vrp.NewSolution(s.trips)
		if cand.BetterThan(s.best) {
			s.best = cand
			log.Debugf("[solve] depth %d: new best: %v", depth, cand)
		}
		return nil
	}

	if s.best.Completed && s.prune(remaining) {
		return nil
	}

	for _, v := range s.available() {
		v := v
		err := for_each_subset(remaining, func(subset []int) error {
			if !vrp.ValidAssignment(s.Instance, subset, v.CapacityH, v.CapacityK) {
				return nil
			}
			route, err := vrp.BestRoute(s.Instance, subset, s.strategy)
			if err != nil {
				return err
			}
			if s.used[v.Name] {
				return fmt.Errorf("%w: %s", ErrVehicleReuse, v.Name)
			}

			trip := vrp.Trip{
				Vehicle:  v,
				Nodes:    append([]int(nil), subset...),
				Order:    route.Order,
				Path:     route.Path,
				Distance: route.Distance,
			}
			s.trips = append(s.trips, trip)
			s.used[v.Name] = true
			s.cost += v.FixedCost + trip.FuelCost()

			err = s.recurse(complement(remaining, subset), depth+1)

			// backtrack
			s.cost -= v.FixedCost + trip.FuelCost()
			delete(s.used, v.Name)
			s.trips = s.trips[:len(s.trips)-1]
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// heuristic lower bound: accumulated cost, plus the cheapest remaining
// vehicle, plus one shortest leg per remaining node at the cheapest
// remaining fuel rate. Admissible at Tolerance 0 because node_dist is
// capped at the matrix's shortest leg; above 0 a branch holding a
// marginally better optimum can be discarded.
func (s *Search) prune(remaining []int) bool {
	min_fixed := math.Inf(1)
	min_fuel := math.Inf(1)
	for _, v := range s.Instance.Vehicles {
		if s.used[v.Name] {
			continue
		}
		if v.FixedCost < min_fixed {
			min_fixed = v.FixedCost
		}
		if v.FuelCost < min_fuel {
			min_fuel = v.FuelCost
		}
	}
	if math.IsInf(min_fixed, 1) {
		// no vehicle left for the remaining nodes
		return true
	}

	bound := s.cost + min_fixed + s.node_dist*float64(len(remaining))*min_fuel
	if bound > s.best.Cost*(1+s.Config.Tolerance) {
		log.Debugf(
			"[solve] pruning: bound %v exceeds best %v (tolerance %v)",
			bound, s.best.Cost, s.Config.Tolerance,
		)
		return true
	}
	return false
}

// unused vehicles, most efficient first; ties preserve vehicle list order
func (s *Search) available() []common.Vehicle {
	var avail []common.Vehicle
	for _, v := range s.Instance.Vehicles {
		if !s.used[v.Name] {
			avail = append(avail, v)
		}
	}
	sort.SliceStable(avail, func(i, j int) bool {
		return avail[i].Efficiency() > avail[j].Efficiency()
	})
	return avail
}
