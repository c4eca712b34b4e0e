// Package particles simulates the drifting dust drawn behind the page.
//
// A Field owns its buffers until Close is called. The page takes a
// projected snapshot of the field after a number of simulated frames.
package particles

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Field bounds and motion.
const (
	// HalfExtent bounds x and y to [-HalfExtent, HalfExtent].
	HalfExtent = 10.0
	// HalfDepth bounds z to [-HalfDepth, HalfDepth].
	HalfDepth = 5.0

	// MinSpeed and MaxSpeed bound the upward drift per frame.
	MinSpeed = 0.001
	MaxSpeed = 0.003

	// RotationRate is the spin around the vertical axis in radians per second.
	RotationRate = 0.02
	// FrameRate converts frames to elapsed seconds.
	FrameRate = 60.0

	// PointSize is the world-space size of one particle.
	PointSize = 0.03
	// Opacity of every particle.
	Opacity = 0.6

	cameraZ = 5.0
	fovDeg  = 75.0
	nearZ   = 0.1
)

// DefaultColor is the tint used before any accent is applied.
const DefaultColor = "#ff4400"

// Field is a set of particles drifting upward and wrapping around.
type Field struct {
	mu        sync.Mutex
	positions []float64 // x, y, z triplets
	speeds    []float64
	color     colorful.Color
	frames    int
	closed    bool
}

// NewField seeds count particles deterministically from seed.
func NewField(count int, seed uint64) *Field {
	count = max(count, 0)
	rng := rand.New(rand.NewPCG(seed, seed))
	f := &Field{
		positions: make([]float64, count*3),
		speeds:    make([]float64, count),
	}
	for i := range count {
		f.positions[i*3] = (rng.Float64() - 0.5) * 2 * HalfExtent
		f.positions[i*3+1] = (rng.Float64() - 0.5) * 2 * HalfExtent
		f.positions[i*3+2] = (rng.Float64() - 0.5) * 2 * HalfDepth
		f.speeds[i] = MinSpeed + rng.Float64()*(MaxSpeed-MinSpeed)
	}
	f.color, _ = colorful.Hex(DefaultColor)
	return f
}

// Len is the number of particles; 0 after Close.
func (f *Field) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.speeds)
}

// Step advances the simulation by n frames. Particles leaving the top
// re-enter at the bottom.
func (f *Field) Step(n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	for range max(n, 0) {
		for i, s := range f.speeds {
			y := f.positions[i*3+1] + s
			if y > HalfExtent {
				y = -HalfExtent
			}
			f.positions[i*3+1] = y
		}
		f.frames++
	}
	return nil
}

// SetAccent recolors every particle. Unparsable colors leave the current
// color in place and return ErrInvalidColor.
func (f *Field) SetAccent(hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return ErrInvalidColor
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.color = c
	return nil
}

// Color is the current particle color as #rrggbb.
func (f *Field) Color() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.color.Hex()
}

// SpinPeriod is how long the field takes to turn once around its vertical
// axis.
func SpinPeriod() time.Duration {
	return seconds(2 * math.Pi / RotationRate)
}

// LoopPeriod is how long a particle moving at the mean speed takes to
// cross the visible height at the origin's depth. Snapshots scrolled
// upward by one viewport height over this period loop without a seam.
func LoopPeriod() time.Duration {
	visible := 2 * cameraZ * math.Tan(fovDeg*math.Pi/360)
	perSecond := (MinSpeed + MaxSpeed) / 2 * FrameRate
	return seconds(visible / perSecond)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Point is a particle projected onto the screen.
type Point struct {
	X, Y   float64
	Radius float64
}

// Project renders the field through a perspective camera looking at the
// origin from +z onto a width x height viewport. Particles behind the
// camera or off screen are skipped.
func (f *Field) Project(width, height int) ([]Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}
	if width <= 0 || height <= 0 {
		return nil, nil
	}

	w, h := float64(width), float64(height)
	aspect := w / h
	focal := 1 / math.Tan(fovDeg*math.Pi/360)
	angle := float64(f.frames) / FrameRate * RotationRate
	sin, cos := math.Sincos(angle)

	points := make([]Point, 0, len(f.speeds))
	for i := range f.speeds {
		x, y, z := f.positions[i*3], f.positions[i*3+1], f.positions[i*3+2]
		rx := x*cos + z*sin
		rz := -x*sin + z*cos

		depth := cameraZ - rz
		if depth < nearZ {
			continue
		}
		ndcX := rx * focal / (depth * aspect)
		ndcY := y * focal / depth
		if ndcX < -1 || ndcX > 1 || ndcY < -1 || ndcY > 1 {
			continue
		}
		points = append(points, Point{
			X:      (ndcX + 1) / 2 * w,
			Y:      (1 - ndcY) / 2 * h,
			Radius: max(PointSize*focal/depth*h/4, 0.5),
		})
	}
	return points, nil
}

// Close releases the particle buffers. It is safe to call more than once.
func (f *Field) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.positions = nil
	f.speeds = nil
	return nil
}
