package common

// schema for vehicle option; each vehicle is usable at most once per solve
type Vehicle struct {
	Name      string  `json:"name"`
	FixedCost float64 `json:"fixed_cost"`
	CapacityH int     `json:"capacity_h"`
	CapacityK int     `json:"capacity_k"`
	FuelCost  float64 `json:"fuel_cost"`
}

// capacity-to-cost ratio used to order branching (most efficient first)
func (v Vehicle) Efficiency() float64 {
	return float64(v.CapacityH+v.CapacityK) / (v.FixedCost + 10*v.FuelCost)
}
