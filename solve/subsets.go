package solve

// visit every non-empty subset of nodes, largest cardinality first;
// larger subsets fill vehicles earlier and strengthen pruning
func for_each_subset(nodes []int, visit func([]int) error) error {
	for size := len(nodes); size >= 1; size-- {
		if err := combinations(nodes, size, visit); err != nil {
			return err
		}
	}
	return nil
}

// visit every size-k combination of nodes in a fixed order
func combinations(nodes []int, k int, visit func([]int) error) error {
	subset := make([]int, 0, k)
	var rec func(start int) error
	rec = func(start int) error {
		if len(subset) == k {
			return visit(subset)
		}
		for i := start; i <= len(nodes)-(k-len(subset)); i++ {
			subset = append(subset, nodes[i])
			if err := rec(i + 1); err != nil {
				return err
			}
			subset = subset[:len(subset)-1]
		}
		return nil
	}
	return rec(0)
}

// nodes minus subset, preserving order
func complement(nodes, subset []int) []int {
	drop := make(map[int]bool, len(subset))
	for _, n := range subset {
		drop[n] = true
	}
	out := make([]int, 0, len(nodes)-len(subset))
	for _, n := range nodes {
		if !drop[n] {
			out = append(out, n)
		}
	}
	return out
}
