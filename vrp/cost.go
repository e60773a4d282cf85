package vrp

import "github.com/hubrouter/hubrouter/common"

// total distance along a path of node ids
func PathDistance(in *common.Instance, path []int) (float64, error) {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		d, err := in.Distance(path[i], path[i+1])
		if err != nil {
			return 0, err
		}
		total += d
	}
	return total, nil
}
