package quat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func norm(q Quaternion) float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("produces unit length", func(t *testing.T) {
		t.Parallel()
		q := Normalize(Quaternion{W: 3, X: -2, Y: 0.5, Z: 7})
		assert.InDelta(t, 1.0, norm(q), tol)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()
		q := Normalize(Quaternion{W: 0.2, X: 0.4, Y: -0.1, Z: 0.9})
		again := Normalize(q)
		assert.InDelta(t, q.W, again.W, tol)
		assert.InDelta(t, q.X, again.X, tol)
		assert.InDelta(t, q.Y, again.Y, tol)
		assert.InDelta(t, q.Z, again.Z, tol)
	})

	t.Run("zero quaternion becomes identity", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Identity, Normalize(Quaternion{}))
	})

	t.Run("already-unit input unchanged", func(t *testing.T) {
		t.Parallel()
		q := Normalize(Quaternion{W: 1})
		assert.Equal(t, Identity, q)
	})
}

func TestConjugate(t *testing.T) {
	t.Parallel()

	q := Quaternion{W: 0.5, X: 0.1, Y: -0.2, Z: 0.3}
	c := Conjugate(q)
	assert.Equal(t, q.W, c.W)
	assert.Equal(t, -q.X, c.X)
	assert.Equal(t, -q.Y, c.Y)
	assert.Equal(t, -q.Z, c.Z)
}

func TestMultiply(t *testing.T) {
	t.Parallel()

	t.Run("q times conjugate is identity", func(t *testing.T) {
		t.Parallel()
		q := Normalize(Quaternion{W: 0.7, X: 0.3, Y: -0.5, Z: 0.2})
		p := Multiply(q, Conjugate(q))
		assert.InDelta(t, 1, p.W, tol)
		assert.InDelta(t, 0, p.X, tol)
		assert.InDelta(t, 0, p.Y, tol)
		assert.InDelta(t, 0, p.Z, tol)
	})

	t.Run("identity is neutral", func(t *testing.T) {
		t.Parallel()
		q := Normalize(Quaternion{W: 0.7, X: 0.3, Y: -0.5, Z: 0.2})
		p := Multiply(Identity, q)
		assert.InDelta(t, q.W, p.W, tol)
		assert.InDelta(t, q.X, p.X, tol)
		assert.InDelta(t, q.Y, p.Y, tol)
		assert.InDelta(t, q.Z, p.Z, tol)
	})

	t.Run("is non-commutative", func(t *testing.T) {
		t.Parallel()
		a := FromEuler(0.5, 0, 0)
		b := FromEuler(0, 0.5, 0)
		ab := Multiply(a, b)
		ba := Multiply(b, a)
		assert.NotEqual(t, ab, ba)
	})
}

func TestToEuler(t *testing.T) {
	t.Parallel()

	t.Run("identity has zero angles", func(t *testing.T) {
		t.Parallel()
		e := ToEuler(Identity)
		assert.InDelta(t, 0, e.Roll, tol)
		assert.InDelta(t, 0, e.Pitch, tol)
		assert.InDelta(t, 0, e.Yaw, tol)
	})

	t.Run("30 degree roll", func(t *testing.T) {
		t.Parallel()
		e := ToEuler(Normalize(Quaternion{W: 0.966, X: 0.259}))
		assert.InDelta(t, 30*math.Pi/180, e.Roll, 1e-3)
		assert.InDelta(t, 0, e.Pitch, tol)
		assert.InDelta(t, 0, e.Yaw, tol)
	})

	t.Run("pitch clamps at gimbal lock", func(t *testing.T) {
		t.Parallel()
		// 90 degree pitch: sin(pitch) argument reaches 1 exactly.
		q := FromEuler(0, math.Pi/2, 0)
		e := ToEuler(q)
		assert.InDelta(t, math.Pi/2, e.Pitch, 1e-6)

		q = FromEuler(0, -math.Pi/2, 0)
		e = ToEuler(q)
		assert.InDelta(t, -math.Pi/2, e.Pitch, 1e-6)
	})

	t.Run("round trip through FromEuler", func(t *testing.T) {
		t.Parallel()
		e := ToEuler(FromEuler(0.3, -0.2, 0.8))
		assert.InDelta(t, 0.3, e.Roll, 1e-9)
		assert.InDelta(t, -0.2, e.Pitch, 1e-9)
		assert.InDelta(t, 0.8, e.Yaw, 1e-9)
	})
}

func TestToRotationMatrix(t *testing.T) {
	t.Parallel()

	t.Run("identity gives identity matrix", func(t *testing.T) {
		t.Parallel()
		m := ToRotationMatrix(Identity)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				assert.InDelta(t, want, m[i][j], tol)
			}
		}
	})

	t.Run("third column matches forward vector", func(t *testing.T) {
		t.Parallel()
		q := Normalize(Quaternion{W: 0.9, X: 0.2, Y: -0.3, Z: 0.25})
		m := ToRotationMatrix(q)
		f := ToForwardVector(q)
		require.InDelta(t, f[0], m[0][2], tol)
		require.InDelta(t, f[1], m[1][2], tol)
		require.InDelta(t, f[2], m[2][2], tol)
	})
}

func TestToForwardVector(t *testing.T) {
	t.Parallel()

	f := ToForwardVector(Identity)
	assert.InDelta(t, 0, f[0], tol)
	assert.InDelta(t, 0, f[1], tol)
	assert.InDelta(t, 1, f[2], tol)
}
