package vrp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"time"

	"github.com/hubrouter/hubrouter/common"
	log "github.com/sirupsen/logrus"
)

// wrapper for the external MIP verifier: an independent solver that consumes
// the same tables over JSON stdin/stdout and returns (total_cost, route_list)
type MIPVerifier struct {
	Command []string
	Dir     string
}

type verifier_input struct {
	Matrix    common.Matrix         `json:"matrix"`
	Demands   map[int]common.Demand `json:"demands"`
	Vehicles  []common.Vehicle      `json:"vehicles"`
	Depot     int                   `json:"depot"`
	Waypoints [2]int                `json:"waypoints"`
}

func (m *MIPVerifier) Verify(in *common.Instance) (Verification, error) {
	if len(m.Command) == 0 {
		return Verification{}, errors.New("no verifier command configured")
	}

	inp := verifier_input{
		Matrix:    in.Matrix,
		Demands:   in.Demands,
		Vehicles:  in.Vehicles,
		Depot:     in.Depot,
		Waypoints: in.Waypoints,
	}

	payload, err := common.ToJSON(inp)
	if err != nil {
		return Verification{}, err
	}

	cmd := exec.Command(m.Command[0], m.Command[1:]...)
	cmd.Dir = m.Dir
	var inpbuf, outbuf bytes.Buffer
	inpbuf.Write(payload)
	cmd.Stdin = &inpbuf
	cmd.Stdout = &outbuf
	cmd.Stderr = os.Stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return Verification{}, fmt.Errorf("running verifier %v: %w", m.Command, err)
	}
	log.Debugf("[vrp] verifier took %v seconds", time.Since(start).Seconds())

	var v Verification
	if err := json.Unmarshal(outbuf.Bytes(), &v); err != nil {
		return Verification{}, fmt.Errorf("unmarshaling verifier output: %w", err)
	}
	return v, nil
}

// CompareSolutions reports the disagreements between a solution and the
// verifier's independent result; an empty list means the solvers agree
func CompareSolutions(s Solution, v Verification, tol float64) []string {
	var mismatches []string
	if !s.Completed {
		return append(mismatches, "solution is incomplete")
	}

	if math.Abs(s.Cost-v.TotalCost) > tol {
		mismatches = append(
			mismatches,
			fmt.Sprintf("total cost %v, verifier found %v", s.Cost, v.TotalCost),
		)
	}
	if len(s.Trips) != len(v.Routes) {
		mismatches = append(
			mismatches,
			fmt.Sprintf("%d trips, verifier used %d routes", len(s.Trips), len(v.Routes)),
		)
	}

	ours := node_counts(s.Trips)
	theirs := node_counts(v.Routes)
	for n, c := range theirs {
		if ours[n] != c {
			mismatches = append(
				mismatches,
				fmt.Sprintf("node %d covered %d times, verifier covered it %d times", n, ours[n], c),
			)
		}
	}
	for n := range ours {
		if _, ok := theirs[n]; !ok {
			mismatches = append(
				mismatches,
				fmt.Sprintf("node %d not covered by verifier", n),
			)
		}
	}
	return mismatches
}

func node_counts(trips []Trip) map[int]int {
	counts := make(map[int]int)
	for _, t := range trips {
		for _, n := range t.Nodes {
			counts[n]++
		}
	}
	return counts
}
