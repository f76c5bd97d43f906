package gesture

import (
	"fmt"
	"log"
	"math"

	"github.com/golang/geo/r2"

	"github.com/ayusman/gestr/internal/touch"
)

// Extractor derives a numeric feature vector from a single frame.
// An empty result means the frame could not provide the feature.
type Extractor interface {
	// Evaluate computes the feature for the given frame.
	Evaluate(f touch.Frame) []float64

	// Fingers returns the finger indices the extractor was configured with.
	Fingers() []int
}

// validFingers checks that every finger index is non-negative.
func validFingers(fingers ...int) error {
	for _, i := range fingers {
		if i < 0 {
			return fmt.Errorf("%w: negative finger index %d", ErrInvalidSpec, i)
		}
	}
	return nil
}

// FingerX yields the x coordinate of the contact at a fixed slot in the frame.
type FingerX struct {
	finger int
}

// NewFingerX creates a FingerX extractor for the given finger index.
func NewFingerX(finger int) (*FingerX, error) {
	if err := validFingers(finger); err != nil {
		return nil, err
	}
	return &FingerX{finger: finger}, nil
}

// Evaluate returns the x coordinate, or nil if the frame has too few contacts.
func (p *FingerX) Evaluate(f touch.Frame) []float64 {
	if f.Len() <= p.finger {
		log.Printf("warning: invalid frame for fing_x with index %d (%d contacts)", p.finger, f.Len())
		return nil
	}
	return []float64{f.Contacts[p.finger].X}
}

// Fingers implements Extractor.
func (p *FingerX) Fingers() []int { return []int{p.finger} }

// FingerY yields the y coordinate of the contact at a fixed slot in the frame.
type FingerY struct {
	finger int
}

// NewFingerY creates a FingerY extractor for the given finger index.
func NewFingerY(finger int) (*FingerY, error) {
	if err := validFingers(finger); err != nil {
		return nil, err
	}
	return &FingerY{finger: finger}, nil
}

// Evaluate returns the y coordinate, or nil if the frame has too few contacts.
func (p *FingerY) Evaluate(f touch.Frame) []float64 {
	if f.Len() <= p.finger {
		log.Printf("warning: invalid frame for fing_y with index %d (%d contacts)", p.finger, f.Len())
		return nil
	}
	return []float64{f.Contacts[p.finger].Y}
}

// Fingers implements Extractor.
func (p *FingerY) Fingers() []int { return []int{p.finger} }

// FingerDist yields the distance between two contacts.
type FingerDist struct {
	a, b int
}

// NewFingerDist creates a FingerDist extractor between fingers a and b.
func NewFingerDist(a, b int) (*FingerDist, error) {
	if err := validFingers(a, b); err != nil {
		return nil, err
	}
	return &FingerDist{a: a, b: b}, nil
}

// Evaluate returns the Euclidean distance between the two configured fingers.
func (p *FingerDist) Evaluate(f touch.Frame) []float64 {
	if f.Len() <= p.a || f.Len() <= p.b {
		log.Printf("warning: invalid frame for fing_dist with indices %d %d (%d contacts)", p.a, p.b, f.Len())
		return nil
	}
	return []float64{f.Contacts[p.b].Point().Sub(f.Contacts[p.a].Point()).Norm()}
}

// Fingers implements Extractor.
func (p *FingerDist) Fingers() []int { return []int{p.a, p.b} }

// FingerAngle yields the angle in radians of the line from finger a to finger b,
// measured from the positive x axis.
type FingerAngle struct {
	a, b int
}

// NewFingerAngle creates a FingerAngle extractor from finger a to finger b.
func NewFingerAngle(a, b int) (*FingerAngle, error) {
	if err := validFingers(a, b); err != nil {
		return nil, err
	}
	return &FingerAngle{a: a, b: b}, nil
}

// Evaluate returns the angle in (-pi, pi].
func (p *FingerAngle) Evaluate(f touch.Frame) []float64 {
	if f.Len() <= p.a || f.Len() <= p.b {
		log.Printf("warning: invalid frame for fing_angle with indices %d %d (%d contacts)", p.a, p.b, f.Len())
		return nil
	}
	v := f.Contacts[p.b].Point().Sub(f.Contacts[p.a].Point())
	return []float64{math.Atan2(v.Y, v.X)}
}

// Fingers implements Extractor.
func (p *FingerAngle) Fingers() []int { return []int{p.a, p.b} }

// AllMean yields the mean x and mean y of every contact in the frame.
type AllMean struct{}

// Evaluate returns [meanX, meanY], or nil for a frame without contacts.
func (AllMean) Evaluate(f touch.Frame) []float64 {
	if f.Len() == 0 {
		log.Printf("warning: invalid frame for all_mean: no contacts")
		return nil
	}

	var sum r2.Point
	for _, c := range f.Contacts {
		sum = sum.Add(c.Point())
	}
	mean := sum.Mul(1 / float64(f.Len()))
	return []float64{mean.X, mean.Y}
}

// Fingers implements Extractor.
func (AllMean) Fingers() []int { return nil }
