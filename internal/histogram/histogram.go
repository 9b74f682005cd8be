// Package histogram accumulates 256-bin frequency tables from pixel buffers.
//
// Two modes are available:
//   - PerChannel: one table per channel (R, G, B for RGB buffers, one gray
//     table for Grayscale buffers)
//   - Luminance: a single "detailed" table of per-pixel luminance, computed
//     with the same formula as imaging.ToGrayscale whatever the source mode
//
// Every table produced from a buffer sums to width*height.
//
// Accumulation is a parallel reduction: each row band fills a private table
// and the partial tables are merged with Table.Add.
package histogram

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	bildhist "github.com/anthonynsimon/bild/histogram"

	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/parallel"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// Bins is the number of bins in a Table, one per 8-bit value.
const Bins = 256

// ErrUnknownMode is returned for histogram modes other than PerChannel and
// Luminance.
var ErrUnknownMode = errors.New("unknown histogram mode")

// Table holds one count per 8-bit value, indexed 0..255.
type Table [Bins]uint64

// Sum returns the total number of samples counted.
func (t *Table) Sum() uint64 {
	var sum uint64
	for _, c := range t {
		sum += c
	}
	return sum
}

// Max returns the highest bin count.
func (t *Table) Max() uint64 {
	var m uint64
	for _, c := range t {
		m = max(m, c)
	}
	return m
}

// Mean returns the average sample value, or 0 for an empty table.
func (t *Table) Mean() float64 {
	var sum, weighted float64
	for v, c := range t {
		sum += float64(c)
		weighted += float64(v) * float64(c)
	}
	if sum == 0 {
		return 0
	}
	return weighted / sum
}

// Add merges other into t by element-wise summation.
func (t *Table) Add(other *Table) {
	for i := range t {
		t[i] += other[i]
	}
}

// Cumulative returns a table where bin i holds the count of samples <= i.
func (t *Table) Cumulative() Table {
	var out Table
	var running uint64
	for i, c := range t {
		running += c
		out[i] = running
	}
	return out
}

// Histogram returns the table as a bild histogram, for use with bild's
// histogram helpers and renderers.
func (t *Table) Histogram() *bildhist.Histogram {
	bins := make([]int, Bins)
	for i, c := range t {
		bins[i] = int(c)
	}
	return &bildhist.Histogram{Bins: bins}
}

// Channel identifies what a table measures.
type Channel int

const (
	// Red is the red channel of an RGB buffer.
	Red Channel = iota
	// Green is the green channel of an RGB buffer.
	Green
	// Blue is the blue channel of an RGB buffer.
	Blue
	// Gray is the single channel of a Grayscale buffer.
	Gray
	// Luma is per-pixel luminance, whatever the buffer mode.
	Luma
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Gray:
		return "gray"
	case Luma:
		return "luminance"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// Series is a labeled table, the unit a renderer draws.
type Series struct {
	Channel Channel `json:"channel"`
	Label   string  `json:"label"`
	Table   Table   `json:"table"`
}

// Mode selects how Accumulate measures a buffer.
type Mode int

const (
	// PerChannel produces one table per channel of the buffer.
	PerChannel Mode = iota

	// Luminance produces a single table of per-pixel luminance.
	Luminance
)

func (m Mode) String() string {
	switch m {
	case PerChannel:
		return "per-channel"
	case Luminance:
		return "luminance"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "per-channel" or "luminance" (case-insensitive). The
// aliases "channel", "rgb", "detailed" and "luma" are accepted too.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "per-channel", "channel", "rgb", "":
		return PerChannel, nil
	case "luminance", "detailed", "luma":
		return Luminance, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Accumulate computes the histogram series for buf in the given mode.
func Accumulate(buf *pixel.Buffer, mode Mode, opts ...parallel.Option) ([]Series, error) {
	switch mode {
	case PerChannel:
		return ForChannels(buf, opts...)
	case Luminance:
		s, err := ForLuminance(buf, opts...)
		if err != nil {
			return nil, err
		}
		return []Series{s}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
}

// ForChannels counts every channel of every pixel.
//
// RGB buffers yield three series (red, green, blue), Grayscale buffers one
// gray series. The raw sample value is the bin index.
func ForChannels(buf *pixel.Buffer, opts ...parallel.Option) ([]Series, error) {
	channels := buf.Mode().Channels()

	tables, err := reduce(buf, channels, func(s pixel.Sample, partial []Table) {
		for c := 0; c < channels; c++ {
			partial[c][binIndex(int(s[c]))]++
		}
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to accumulate channel histogram: %w", err)
	}

	if buf.Mode() == pixel.Grayscale {
		return []Series{{Channel: Gray, Label: "Gray", Table: tables[0]}}, nil
	}
	return []Series{
		{Channel: Red, Label: "Red", Table: tables[0]},
		{Channel: Green, Label: "Green", Table: tables[1]},
		{Channel: Blue, Label: "Blue", Table: tables[2]},
	}, nil
}

// ForLuminance counts the luminance of every pixel without building an
// intermediate grayscale buffer. Grayscale pixels are counted as-is.
func ForLuminance(buf *pixel.Buffer, opts ...parallel.Option) (Series, error) {
	mode := buf.Mode()

	tables, err := reduce(buf, 1, func(s pixel.Sample, partial []Table) {
		partial[0][binIndex(int(imaging.SampleLuminance(s, mode)))]++
	}, opts...)
	if err != nil {
		return Series{}, fmt.Errorf("failed to accumulate luminance histogram: %w", err)
	}

	return Series{Channel: Luma, Label: "Luminance", Table: tables[0]}, nil
}

// reduce visits every pixel once. Each row band counts into private tables
// which are merged into the result under a mutex once the band is done.
func reduce(buf *pixel.Buffer, n int, count func(s pixel.Sample, partial []Table), opts ...parallel.Option) ([]Table, error) {
	var mu sync.Mutex
	result := make([]Table, n)

	err := parallel.Rows(buf.Height(), func(start, end int) error {
		partial := make([]Table, n)
		for y := start; y < end; y++ {
			for x := 0; x < buf.Width(); x++ {
				s, err := buf.Get(x, y)
				if err != nil {
					return err
				}
				count(s, partial)
			}
		}

		mu.Lock()
		for i := range result {
			result[i].Add(&partial[i])
		}
		mu.Unlock()
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// binIndex clamps a sample value into the table range. Valid samples are
// already in range; the clamp keeps a corrupt value from indexing outside.
func binIndex(v int) int {
	return min(max(v, 0), Bins-1)
}
