package report

import (
	"fmt"
	"strings"

	"github.com/hubrouter/hubrouter/common"
	"github.com/hubrouter/hubrouter/vrp"
)

// render human-readable trip summaries
func Display(in *common.Instance, s vrp.Solution) string {
	if !s.Completed {
		return "no complete solution: deliveries cannot be covered with the available vehicles\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v\n", s)
	for i, t := range s.Trips {
		fmt.Fprintf(
			&b, "trip #%d, vehicle %s (fixed %v, fuel/dist %v)\n",
			i+1, t.Vehicle.Name, t.Vehicle.FixedCost, t.Vehicle.FuelCost,
		)

		var deliveries []string
		for _, n := range t.Nodes {
			d, ok := in.Demands[n]
			if !ok {
				continue
			}
			deliveries = append(
				deliveries,
				fmt.Sprintf("%s (H=%d, K=%d)", in.NodeName(n), d.H, d.K),
			)
		}
		fmt.Fprintf(&b, "  deliveries: %s\n", strings.Join(deliveries, ", "))

		stops := make([]string, len(t.Path))
		for j, n := range t.Path {
			stops[j] = in.NodeName(n)
		}
		fmt.Fprintf(&b, "  route: %s\n", strings.Join(stops, " -> "))
		fmt.Fprintf(&b, "  distance: %v, trip cost: %v\n", t.Distance, t.Vehicle.FixedCost+t.FuelCost())
	}
	return b.String()
}
