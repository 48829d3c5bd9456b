package tracker

import (
	"github.com/relabs-tech/pointer_computer/internal/quat"
)

// CompareAll runs every projection strategy on the same sample with
// smoothing disabled, each through a fresh post-processor so no state
// leaks between strategies. Meant for offline evaluation, not the live
// tracking path.
func CompareAll(q quat.Quaternion, cfg Config) map[Strategy]Point {
	n := quat.Normalize(q)
	results := make(map[Strategy]Point, len(Strategies))
	for _, s := range Strategies {
		x, y := Project(s, n, cfg)
		results[s] = NewPostProcessor(cfg).Apply(x, y, false)
	}
	return results
}
