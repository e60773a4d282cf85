package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/hubrouter/hubrouter/common"
	"github.com/hubrouter/hubrouter/report"
	"github.com/hubrouter/hubrouter/solve"
	"github.com/hubrouter/hubrouter/vrp"
)

// create directory to save solver outputs
func create_dir(path string) {
	if err := os.MkdirAll(path, 0755); err != nil {
		log.Fatalf("[main] error creating directory %s", path)
	}
}

func main() {
	var instance_path = flag.String(
		"cfg_instance",
		"instance.json",
		"path to problem instance (.json) file",
	)
	var solver_path = flag.String(
		"cfg_solver",
		"",
		"path to solver tunables (.yaml) file",
	)
	var mode = flag.String(
		"mode",
		"solve",
		"run mode (i.e., solve, verify, analyze)",
	)
	var tolerance = flag.Float64(
		"tolerance",
		-1,
		"pruning slack fraction (0 = provably exact; <0 = config default)",
	)
	var strategy = flag.String(
		"strategy",
		"",
		"route-tail strategy (exhaustive, append)",
	)
	var budget = flag.Int(
		"budget",
		-1,
		"recursion visit budget (0 = unbounded; <0 = config default)",
	)
	var mip_cmd = flag.String(
		"mip",
		"",
		"external MIP verifier command (required for verify mode)",
	)
	var dir = flag.String(
		"dir",
		"",
		"directory to save outputs",
	)
	var verbose = flag.Bool(
		"verbose",
		false,
		"enable verbose logging",
	)
	flag.Parse()

	// set logging level
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	run_id := uuid.NewString()[:8]
	log.Printf("[main] run %s: loading instance %s", run_id, *instance_path)

	// load and check problem tables
	var instance common.Instance
	if err := common.FromFile(*instance_path, &instance); err != nil {
		log.Fatalf("[main] %v", err)
	}
	if err := instance.Validate(); err != nil {
		log.Fatalf("[main] %v", err)
	}

	// assemble search config: file first, then flag overrides
	cfg := solve.DefaultConfig()
	if *solver_path != "" {
		var err error
		if cfg, err = solve.LoadConfig(*solver_path); err != nil {
			log.Fatalf("[main] %v", err)
		}
	}
	if *tolerance >= 0 {
		cfg.Tolerance = *tolerance
	}
	if *strategy != "" {
		if _, err := vrp.ParseStrategy(*strategy); err != nil {
			log.Fatalf("[main] %v", err)
		}
		cfg.StrategyName = *strategy
	}
	if *budget >= 0 {
		cfg.MaxVisits = *budget
	}

	log.Printf(
		"[main] %d deliveries, %d vehicles, tolerance %v, strategy %s",
		len(instance.Demands), len(instance.Vehicles), cfg.Tolerance, cfg.StrategyName,
	)

	if *dir != "" {
		create_dir(*dir)
	}

	// solve
	search := solve.Search{Instance: &instance, Config: cfg}
	solution, err := search.Run()
	if err != nil {
		log.Fatalf("[main] %v", err)
	}
	fmt.Print(report.Display(&instance, solution))

	if *dir != "" {
		out := fmt.Sprintf("%s/solution_%s.json", *dir, run_id)
		if err := common.ToFile(out, solution); err != nil {
			log.Fatalf("[main] %v", err)
		}
		log.Printf("[main] wrote %s", out)
	}

	switch *mode {
	case "solve":

	case "verify":
		if *mip_cmd == "" {
			log.Fatalf("[main] verify mode requires -mip")
		}
		verifier := vrp.MIPVerifier{Command: strings.Fields(*mip_cmd)}
		verification, err := verifier.Verify(&instance)
		if err != nil {
			log.Fatalf("[main] %v", err)
		}
		mismatches := vrp.CompareSolutions(solution, verification, 0.001)
		if len(mismatches) == 0 {
			log.Printf("[main] verifier agrees: total cost %v", verification.TotalCost)
		} else {
			for _, m := range mismatches {
				log.Warnf("[main] verifier mismatch: %s", m)
			}
		}

	case "analyze":
		if errs := report.Validate(&instance, solution); len(errs) > 0 {
			for _, e := range errs {
				log.Warnf("[main] invalid solution: %s", e)
			}
			log.Fatalf("[main] cannot analyze an invalid solution")
		}
		analysis, err := report.Analyze(&instance, solution)
		if err != nil {
			log.Fatalf("[main] %v", err)
		}
		log.Printf(
			"[main] mean utilization %0.1f%%, fixed share %0.2f, fuel share %0.2f, distance efficiency %0.3f",
			analysis.MeanUtilization, analysis.FixedShare, analysis.FuelShare, analysis.DistanceEfficiency,
		)
		if *dir != "" {
			out := fmt.Sprintf("%s/analysis_%s.csv", *dir, run_id)
			if err := analysis.WriteCSV(out); err != nil {
				log.Fatalf("[main] %v", err)
			}
			log.Printf("[main] wrote %s", out)
		}

	default:
		log.Fatalf("[main] mode %s not supported", *mode)
	}
}
