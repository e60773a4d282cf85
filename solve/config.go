package solve

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hubrouter/hubrouter/vrp"
)

// search tunables; every magic number of the search lives here, not in
// the source
type Config struct {
	// Tolerance is the pruning slack fraction: a branch is abandoned when
	// its lower bound exceeds the incumbent cost by more than this
	// fraction. Non-admissible above zero; zero means provably exact.
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`
	// MinNodeDistance is the per-remaining-node distance used in the fuel
	// estimate of the lower bound. The search caps it at the matrix's
	// shortest leg, so raising it past that has no effect; lowering it
	// loosens the bound.
	MinNodeDistance float64 `yaml:"min_node_distance" json:"min_node_distance"`
	// StrategyName selects the route-tail placement rule
	// ("exhaustive" or "append").
	StrategyName string `yaml:"strategy" json:"strategy"`
	// MaxVisits caps the number of recursive calls; 0 means unbounded.
	// When the cap is hit the search returns the best solution so far.
	MaxVisits int `yaml:"max_visits" json:"max_visits"`
}

func DefaultConfig() Config {
	return Config{
		Tolerance:       0.10,
		MinNodeDistance: 5,
		StrategyName:    vrp.StrategyExhaustive.String(),
		MaxVisits:       0,
	}
}

// read tunables from a YAML file, on top of defaults
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	bytes, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(bytes, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config %s: %w", path, err)
	}
	if _, err := vrp.ParseStrategy(cfg.StrategyName); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Tolerance < 0 {
		return cfg, fmt.Errorf("config %s: tolerance %v must be >= 0", path, cfg.Tolerance)
	}
	return cfg, nil
}

func (c Config) Strategy() vrp.Strategy {
	s, err := vrp.ParseStrategy(c.StrategyName)
	if err != nil {
		return vrp.StrategyExhaustive
	}
	return s
}
