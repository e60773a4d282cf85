package vrp

import "github.com/hubrouter/hubrouter/common"

// report whether a vehicle with the given capacity vector can serve the
// node set; non-delivery nodes contribute nothing
func ValidAssignment(in *common.Instance, nodes []int, capH, capK int) bool {
	var h, k int
	for _, n := range nodes {
		d, ok := in.Demands[n]
		if !ok {
			continue
		}
		h += d.H
		k += d.K
	}
	return h <= capH && k <= capK
}
