package terminal

import (
	"fmt"

	"golang.org/x/term"
)

// Geometry is a terminal size in character cells.
type Geometry struct {
	Width  uint16 // columns
	Height uint16 // rows
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// Sampler reads the current local terminal geometry.
type Sampler interface {
	Sample() (Geometry, error)
}

// SamplerFunc adapts a plain function to the Sampler interface.
type SamplerFunc func() (Geometry, error)

// Sample calls f.
func (f SamplerFunc) Sample() (Geometry, error) { return f() }

// FDSampler samples the terminal attached to a file descriptor,
// usually stdout.
type FDSampler struct {
	FD int
}

// getSize is swapped in tests.
var getSize = term.GetSize

// Sample implements Sampler.
func (s FDSampler) Sample() (Geometry, error) {
	width, height, err := getSize(s.FD)
	if err != nil {
		return Geometry{}, &GeometryError{Err: err}
	}
	if width <= 0 || height <= 0 {
		return Geometry{}, &GeometryError{Err: fmt.Errorf("terminal reported size %dx%d", width, height)}
	}
	return Geometry{Width: clamp(width), Height: clamp(height)}, nil
}

func clamp(v int) uint16 {
	if v > 0xffff {
		return 0xffff
	}
	return uint16(v)
}
