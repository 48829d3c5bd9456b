package sample

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	t.Run("valid line", func(t *testing.T) {
		t.Parallel()
		s, err := ParseLine("w: 0.966, x: 0.259, y: -0.100, z: 0.050")
		require.NoError(t, err)
		assert.Equal(t, Sample{W: 0.966, X: 0.259, Y: -0.1, Z: 0.05}, s)
	})

	t.Run("compact form without spaces", func(t *testing.T) {
		t.Parallel()
		s, err := ParseLine("w:1,x:0,y:0,z:0")
		require.NoError(t, err)
		assert.Equal(t, Sample{W: 1}, s)
	})

	t.Run("wrong field count", func(t *testing.T) {
		t.Parallel()
		_, err := ParseLine("w: 1, x: 0, y: 0")
		assert.Error(t, err)
	})

	t.Run("wrong label order", func(t *testing.T) {
		t.Parallel()
		_, err := ParseLine("x: 1, w: 0, y: 0, z: 0")
		assert.Error(t, err)
	})

	t.Run("missing label", func(t *testing.T) {
		t.Parallel()
		_, err := ParseLine("1, 0, 0, 0")
		assert.Error(t, err)
	})

	t.Run("non-numeric value", func(t *testing.T) {
		t.Parallel()
		_, err := ParseLine("w: one, x: 0, y: 0, z: 0")
		assert.Error(t, err)
	})
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	log := strings.Join([]string{
		"w: 1, x: 0, y: 0, z: 0",
		"",
		"this line is garbage",
		"w: 0.966, x: 0.259, y: 0, z: 0",
		"w: 0.5, x: bad, y: 0, z: 0",
	}, "\n")

	samples, err := ReadAll(strings.NewReader(log))
	require.NoError(t, err)

	// Two good lines survive; blank and malformed ones are skipped.
	require.Len(t, samples, 2)
	assert.Equal(t, 1.0, samples[0].W)
	assert.Equal(t, 0.259, samples[1].X)
}

func TestReplaySource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "quaternion.txt")
	content := "w: 1, x: 0, y: 0, z: 0\nw: 0.966, x: 0.259, y: 0, z: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := NewReplaySource(path)
	require.NoError(t, err)

	first, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, 1.0, first.W)

	second, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, 0.259, second.X)

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestMockSource(t *testing.T) {
	t.Parallel()

	src := NewMockSource()
	s, err := src.Next()
	require.NoError(t, err)

	// The mock emits unit quaternions by construction.
	norm := s.W*s.W + s.X*s.X + s.Y*s.Y + s.Z*s.Z
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestSampleQuaternionRoundTrip(t *testing.T) {
	t.Parallel()

	s := Sample{W: 0.5, X: 0.1, Y: -0.2, Z: 0.3}
	assert.Equal(t, s, FromQuaternion(s.Quaternion()))
}
