// Package monitor reads the magnetometer firmware's console stream on the
// host and turns it back into samples.
package monitor

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"magreader/core"
)

// ErrNotSample is returned by ParseLine for console lines that are not
// readings.
var ErrNotSample = errors.New("not a sample line")

// ParseLine parses "x: X, y: Y, z: Z" into a sample. Surrounding line
// break characters are ignored.
func ParseLine(line string) (core.Sample, error) {
	var s core.Sample

	fields := strings.Split(strings.Trim(line, "\r\n "), ", ")
	if len(fields) != 3 {
		return s, ErrNotSample
	}
	axes := [3]*int16{&s.X, &s.Y, &s.Z}
	for i, name := range [3]string{"x", "y", "z"} {
		val, ok := strings.CutPrefix(fields[i], name+": ")
		if !ok {
			return s, ErrNotSample
		}
		v, err := strconv.ParseInt(val, 10, 16)
		if err != nil {
			return s, fmt.Errorf("axis %s: %w", name, err)
		}
		*axes[i] = int16(v)
	}
	return s, nil
}

// Magnitude returns the length of the field vector in raw counts.
func Magnitude(s core.Sample) float64 {
	x, y, z := float64(s.X), float64(s.Y), float64(s.Z)
	return math.Sqrt(x*x + y*y + z*z)
}

// Summary accumulates what the monitor has seen.
type Summary struct {
	Samples  int
	Resets   int // welcome lines, one per board start
	Other    int // lines that were neither
	Min, Max core.Sample
	Last     core.Sample
}

// Add folds one sample into the summary.
func (s *Summary) Add(x core.Sample) {
	if s.Samples == 0 {
		s.Min, s.Max = x, x
	} else {
		s.Min = core.Sample{X: min(s.Min.X, x.X), Y: min(s.Min.Y, x.Y), Z: min(s.Min.Z, x.Z)}
		s.Max = core.Sample{X: max(s.Max.X, x.X), Y: max(s.Max.Y, x.Y), Z: max(s.Max.Z, x.Z)}
	}
	s.Last = x
	s.Samples++
}

func (s Summary) String() string {
	if s.Samples == 0 {
		return fmt.Sprintf("no samples (resets=%d other=%d)", s.Resets, s.Other)
	}
	return fmt.Sprintf("samples=%d resets=%d other=%d min=(%d,%d,%d) max=(%d,%d,%d)",
		s.Samples, s.Resets, s.Other,
		s.Min.X, s.Min.Y, s.Min.Z, s.Max.X, s.Max.Y, s.Max.Z)
}

// Monitor echoes decoded samples to Out.
type Monitor struct {
	Out     io.Writer
	Welcome string
	Summary Summary
}

// New returns a monitor printing to out.
func New(out io.Writer) *Monitor {
	return &Monitor{Out: out, Welcome: core.DefaultWelcome}
}

// Run reads console text from r until EOF, ctx is done, or limit samples
// have been seen (limit <= 0 means no limit).
func (m *Monitor) Run(ctx context.Context, r io.Reader, limit int) error {
	sc := bufio.NewScanner(&ctxReader{ctx: ctx, r: r})
	sc.Split(splitLines)

	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		m.handle(line)
		if limit > 0 && m.Summary.Samples >= limit {
			return nil
		}
	}
	if ctx.Err() != nil {
		return nil
	}
	return sc.Err()
}

func (m *Monitor) handle(line string) {
	s, err := ParseLine(line)
	switch {
	case err == nil:
		m.Summary.Add(s)
		fmt.Fprintf(m.Out, "%6d  x=%6d y=%6d z=%6d  |B|=%8.1f\n",
			m.Summary.Samples, s.X, s.Y, s.Z, Magnitude(s))
	case strings.TrimSpace(line) == m.Welcome:
		m.Summary.Resets++
		fmt.Fprintln(m.Out, "-- board started --")
	default:
		m.Summary.Other++
	}
}

// splitLines is a bufio.SplitFunc that breaks on either '\n' or '\r', so
// the firmware's "\n\r" terminator yields an empty token that Run skips.
func splitLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// ctxReader turns serial read timeouts, which arrive as empty reads, into
// a chance to notice cancellation.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	for {
		if err := c.ctx.Err(); err != nil {
			return 0, err
		}
		n, err := c.r.Read(p)
		if n > 0 || err != nil {
			return n, err
		}
	}
}
