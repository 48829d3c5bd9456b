package sample

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// The recorded orientation-log format is one sample per line, four labeled
// comma-separated fields:
//
//	w: 0.966, x: 0.259, y: 0.000, z: 0.000
//
// Lines that fail to parse are skipped with a diagnostic; a bad line never
// kills the stream.

var labels = [4]string{"w", "x", "y", "z"}

// ParseLine parses one orientation-log line into a Sample.
func ParseLine(line string) (Sample, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return Sample{}, fmt.Errorf("expected 4 fields, got %d", len(parts))
	}

	var vals [4]float64
	for i, part := range parts {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return Sample{}, fmt.Errorf("field %d: missing label", i+1)
		}
		if got := strings.TrimSpace(kv[0]); got != labels[i] {
			return Sample{}, fmt.Errorf("field %d: expected label %q, got %q", i+1, labels[i], got)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return Sample{}, fmt.Errorf("field %q: %w", labels[i], err)
		}
		vals[i] = v
	}

	return Sample{W: vals[0], X: vals[1], Y: vals[2], Z: vals[3]}, nil
}

// Load reads all samples from an orientation log, skipping blank and
// malformed lines.
func Load(path string) ([]Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open orientation log: %w", err)
	}
	defer file.Close()

	samples, err := ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("error reading orientation log: %w", err)
	}
	return samples, nil
}

// ReadAll parses every well-formed line from r.
func ReadAll(r io.Reader) ([]Sample, error) {
	var samples []Sample
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		s, err := ParseLine(line)
		if err != nil {
			log.Printf("replay: skipping malformed line %d: %v", lineNum, err)
			continue
		}
		samples = append(samples, s)
	}

	return samples, scanner.Err()
}

type replaySource struct {
	samples []Sample
	next    int
}

// NewReplaySource replays a recorded orientation log. Next returns io.EOF
// once the log is exhausted.
func NewReplaySource(path string) (Source, error) {
	samples, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &replaySource{samples: samples}, nil
}

func (r *replaySource) Next() (Sample, error) {
	if r.next >= len(r.samples) {
		return Sample{}, io.EOF
	}
	s := r.samples[r.next]
	r.next++
	return s, nil
}
