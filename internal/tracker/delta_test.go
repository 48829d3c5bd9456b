package tracker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/pointer_computer/internal/quat"
)

func TestDeltaTrackerFirstSample(t *testing.T) {
	t.Parallel()

	trk := NewDeltaTracker(testConfig())
	pos := trk.Update(quat.FromEuler(0.2, -0.1, 0.3))

	// The first sample only establishes the reference orientation.
	assert.Equal(t, 400.0, pos.X)
	assert.Equal(t, 300.0, pos.Y)
}

func TestDeltaTrackerNoRotationNoMovement(t *testing.T) {
	t.Parallel()

	t.Run("same sample twice", func(t *testing.T) {
		t.Parallel()
		trk := NewDeltaTracker(testConfig())
		q := quat.FromEuler(0.2, -0.1, 0.3)
		first := trk.Update(q)
		second := trk.Update(q)
		assert.Equal(t, first, second)
	})

	t.Run("fifty identical samples", func(t *testing.T) {
		t.Parallel()
		trk := NewDeltaTracker(testConfig())
		q := quat.Quaternion{W: 0.933, X: 0.183, Y: 0.183, Z: 0.183}
		first := trk.Update(q)
		for i := 0; i < 49; i++ {
			pos := trk.Update(q)
			require.Equal(t, first, pos)
		}
	})
}

func TestDeltaTrackerYawMovesX(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	trk := NewDeltaTracker(cfg)

	trk.Update(quat.Identity)
	pos := trk.Update(quat.FromEuler(0, 0, 0.1))

	// One buffered delta: average is the delta itself, 0.1 rad * 500 px/rad.
	assert.InDelta(t, 450.0, pos.X, 1e-6)
	assert.InDelta(t, 300.0, pos.Y, 1e-6)

	// Steady yaw rate keeps moving the pointer at the same speed while the
	// window fills.
	pos = trk.Update(quat.FromEuler(0, 0, 0.2))
	assert.InDelta(t, 500.0, pos.X, 1e-6)
}

func TestDeltaTrackerPitchMovesYInverted(t *testing.T) {
	t.Parallel()

	trk := NewDeltaTracker(testConfig())

	trk.Update(quat.Identity)
	pos := trk.Update(quat.FromEuler(0, 0.1, 0))

	// Tilting up moves the pointer up (smaller Y).
	assert.InDelta(t, 250.0, pos.Y, 1e-6)
	assert.InDelta(t, 400.0, pos.X, 1e-6)
}

func TestDeltaTrackerDeadzone(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.DeadzoneAngle = 0.01

	trk := NewDeltaTracker(cfg)
	trk.Update(quat.Identity)

	// Rotation below the angular deadzone is suppressed entirely.
	pos := trk.Update(quat.FromEuler(0, 0.005, 0.005))
	assert.Equal(t, 400.0, pos.X)
	assert.Equal(t, 300.0, pos.Y)
}

func TestDeltaTrackerClampsToBounds(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.SmoothingWindow = 1

	trk := NewDeltaTracker(cfg)
	trk.Update(quat.Identity)

	// Walk the pointer far right; it must stick to the edge.
	yaw := 0.0
	for i := 0; i < 20; i++ {
		yaw += 0.2
		trk.Update(quat.FromEuler(0, 0, yaw))
	}
	assert.Equal(t, 800.0, trk.Position().X)
}

func TestDeltaTrackerSensitivity(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	trk := NewDeltaTracker(cfg)
	assert.Equal(t, 500.0, trk.Sensitivity())

	trk.Update(quat.Identity)
	trk.SetSensitivity(100)

	// Only future samples see the new scale.
	pos := trk.Update(quat.FromEuler(0, 0, 0.1))
	assert.InDelta(t, 410.0, pos.X, 1e-6)
}

func TestDeltaTrackerReset(t *testing.T) {
	t.Parallel()

	trk := NewDeltaTracker(testConfig())
	trk.Update(quat.Identity)
	trk.Update(quat.FromEuler(0, 0.2, 0.3))
	require.NotEqual(t, Point{X: 400, Y: 300}, trk.Position())

	trk.Reset()
	assert.Equal(t, Point{X: 400, Y: 300}, trk.Position())

	// Reset is idempotent.
	trk.Reset()
	assert.Equal(t, Point{X: 400, Y: 300}, trk.Position())

	// The next sample behaves like the very first: reference only, no
	// movement even for a large orientation jump.
	pos := trk.Update(quat.FromEuler(1, 0.5, -1))
	assert.Equal(t, Point{X: 400, Y: 300}, pos)
}

func TestDeltaTrackerZeroSampleDoesNotCrash(t *testing.T) {
	t.Parallel()

	trk := NewDeltaTracker(testConfig())
	trk.Update(quat.Quaternion{}) // zero-norm reading normalizes to identity
	pos := trk.Update(quat.Quaternion{})
	assert.Equal(t, Point{X: 400, Y: 300}, pos)
	assert.False(t, math.IsNaN(pos.X))
}

func TestDeltaRing(t *testing.T) {
	t.Parallel()

	t.Run("average over partial fill", func(t *testing.T) {
		t.Parallel()
		r := newDeltaRing(4)
		r.push(2, 4)
		r.push(4, 8)
		ax, ay := r.average()
		assert.Equal(t, 3.0, ax)
		assert.Equal(t, 6.0, ay)
	})

	t.Run("evicts oldest past capacity", func(t *testing.T) {
		t.Parallel()
		r := newDeltaRing(2)
		r.push(100, 0)
		r.push(2, 0)
		r.push(4, 0)
		ax, _ := r.average()
		assert.Equal(t, 3.0, ax)
	})

	t.Run("empty ring averages to zero", func(t *testing.T) {
		t.Parallel()
		r := newDeltaRing(3)
		ax, ay := r.average()
		assert.Zero(t, ax)
		assert.Zero(t, ay)
	})

	t.Run("clear resets contents", func(t *testing.T) {
		t.Parallel()
		r := newDeltaRing(3)
		r.push(5, 5)
		r.clear()
		ax, ay := r.average()
		assert.Zero(t, ax)
		assert.Zero(t, ay)
	})
}
