package app

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/relabs-tech/pointer_computer/internal/config"
	"github.com/relabs-tech/pointer_computer/internal/quat"
	"github.com/relabs-tech/pointer_computer/internal/sample"
	"github.com/relabs-tech/pointer_computer/internal/tracker"
)

// referenceCases are the canonical orientations used to sanity-check the
// projection strategies against each other.
var referenceCases = []struct {
	s    sample.Sample
	desc string
}{
	{sample.Sample{W: 1}, "No rotation (identity)"},
	{sample.Sample{W: 0.966, X: 0.259}, "Roll right 30°"},
	{sample.Sample{W: 0.966, X: -0.259}, "Roll left 30°"},
	{sample.Sample{W: 0.966, Y: 0.259}, "Pitch forward 30°"},
	{sample.Sample{W: 0.966, Y: -0.259}, "Pitch backward 30°"},
	{sample.Sample{W: 0.933, X: 0.183, Y: 0.183, Z: 0.183}, "Combined rotation"},
}

// RunCompare prints every projection strategy's output for the reference
// orientations and, if a replay file is configured, for each recorded
// sample. Smoothing is disabled throughout so strategies stay comparable.
func RunCompare() error {
	cfg := config.Get()
	tcfg := cfg.Tracker()

	fmt.Println("Strategy comparison (smoothing disabled)")
	fmt.Println("========================================")

	for _, tc := range referenceCases {
		q := quat.Normalize(tc.s.Quaternion())
		e := quat.ToEuler(q)

		fmt.Printf("\n%s\n", tc.desc)
		fmt.Printf("  quaternion: w=%.3f x=%.3f y=%.3f z=%.3f\n", tc.s.W, tc.s.X, tc.s.Y, tc.s.Z)
		fmt.Printf("  euler: roll=%6.1f° pitch=%6.1f° yaw=%6.1f°\n",
			e.Roll*180/math.Pi, e.Pitch*180/math.Pi, e.Yaw*180/math.Pi)

		results := tracker.CompareAll(tc.s.Quaternion(), tcfg)
		for _, s := range tracker.Strategies {
			p := results[s]
			fmt.Printf("  %-10s X=%7.1f Y=%7.1f\n", s, p.X, p.Y)
		}
	}

	if cfg.ReplayFile != "" {
		if err := compareReplay(cfg.ReplayFile, tcfg); err != nil {
			return err
		}
	}

	benchmarkStrategies(tcfg)
	return nil
}

// compareReplay summarizes per-strategy spread over a recorded log: how far
// each strategy's output drifts from the Euler baseline on real data.
func compareReplay(path string, tcfg tracker.Config) error {
	samples, err := sample.Load(path)
	if err != nil {
		return err
	}
	log.Printf("compare: loaded %d samples from %s", len(samples), path)

	if len(samples) == 0 {
		return nil
	}

	maxDiff := make(map[tracker.Strategy]float64, len(tracker.Strategies))
	for _, s := range samples {
		results := tracker.CompareAll(s.Quaternion(), tcfg)
		base := results[tracker.StrategyEuler]
		for strat, p := range results {
			dx := p.X - base.X
			dy := p.Y - base.Y
			if d := math.Sqrt(dx*dx + dy*dy); d > maxDiff[strat] {
				maxDiff[strat] = d
			}
		}
	}

	fmt.Printf("\nMax deviation from euler over %d samples:\n", len(samples))
	for _, s := range tracker.Strategies {
		fmt.Printf("  %-10s %7.1f px\n", s, maxDiff[s])
	}
	return nil
}

// benchmarkStrategies times each projection over the reference cases. The
// numbers are rough but enough to rank the strategies by cost.
func benchmarkStrategies(tcfg tracker.Config) {
	const iterations = 1000

	fmt.Printf("\nPerformance (%d iterations over %d orientations):\n",
		iterations, len(referenceCases))

	for _, s := range tracker.Strategies {
		start := time.Now()
		for i := 0; i < iterations; i++ {
			for _, tc := range referenceCases {
				q := quat.Normalize(tc.s.Quaternion())
				tracker.Project(s, q, tcfg)
			}
		}
		fmt.Printf("  %-10s %8.2f ms\n", s, float64(time.Since(start).Microseconds())/1000)
	}
}
