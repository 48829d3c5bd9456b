// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"time"

	"github.com/relabs-tech/pointer_computer/internal/sample"
	"github.com/relabs-tech/pointer_computer/internal/tracker"
)

// RunMockConsole drives the relative tracker from the mock source and
// prints positions, no broker needed.
func RunMockConsole() error {
	src := sample.NewMockSource()
	trk := tracker.NewDeltaTracker(tracker.DefaultConfig())

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		s, err := src.Next()
		if err != nil {
			return err
		}

		pos := trk.Update(s.Quaternion())

		fmt.Printf(
			"X=%7.1f  Y=%7.1f\n",
			pos.X,
			pos.Y,
		)
	}
	return nil
}
