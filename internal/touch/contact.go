// Package touch provides the multi-touch contact, frame and sample types
// along with static-segment detection over recorded samples.
package touch

import (
	"math"

	"github.com/golang/geo/r2"
)

// Contact is one tracked touch point at one sensor tick.
type Contact struct {
	ID     int32   `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point returns the contact position as a planar vector.
func (c Contact) Point() r2.Point {
	return r2.Point{X: c.X, Y: c.Y}
}

// Finite reports whether every coordinate of the contact is a finite number.
func (c Contact) Finite() bool {
	for _, v := range [...]float64{c.X, c.Y, c.DX, c.DY, c.Width, c.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// distance2D calculates the Euclidean distance between the positions of two contacts.
func distance2D(a, b Contact) float64 {
	return b.Point().Sub(a.Point()).Norm()
}

// Frame is the ordered set of contacts observed at one sensor tick.
// Contacts keep their arrival order and are not sorted by ID.
// A Frame with no contacts is valid and means every touch was lifted.
type Frame struct {
	Seq      int64     `json:"seq,omitempty"`
	Contacts []Contact `json:"contacts"`
}

// NewFrame creates a frame from the given contacts. The slice is copied.
func NewFrame(seq int64, contacts ...Contact) Frame {
	c := make([]Contact, len(contacts))
	copy(c, contacts)
	return Frame{Seq: seq, Contacts: c}
}

// Len returns the number of contacts in the frame.
func (f Frame) Len() int {
	return len(f.Contacts)
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	return NewFrame(f.Seq, f.Contacts...)
}

// Finite reports whether every contact in the frame is finite.
func (f Frame) Finite() bool {
	for _, c := range f.Contacts {
		if !c.Finite() {
			return false
		}
	}
	return true
}

// identityIndex maps contact IDs to their slot in the frame.
// Returns nil if any ID is repeated, since identities are then unusable.
func (f Frame) identityIndex() map[int32]int {
	idx := make(map[int32]int, len(f.Contacts))
	for i, c := range f.Contacts {
		if _, dup := idx[c.ID]; dup {
			return nil
		}
		idx[c.ID] = i
	}
	return idx
}

// Displacement returns the largest positional movement of any contact between
// frames a and b. Contacts are matched by ID when both frames carry the same
// set of unique IDs, otherwise by their order within the frame.
//
// ok is false when the frames have a different number of contacts: a change
// in finger count is a change in gesture shape and has no displacement.
// ok is also false when either frame holds a non-finite coordinate.
func Displacement(a, b Frame) (maxDist float64, ok bool) {
	if a.Len() != b.Len() || !a.Finite() || !b.Finite() {
		return 0, false
	}

	pairs := matchContacts(a, b)
	for _, p := range pairs {
		if d := distance2D(a.Contacts[p[0]], b.Contacts[p[1]]); d > maxDist {
			maxDist = d
		}
	}
	return maxDist, true
}

// matchContacts pairs up contact slots of two equally sized frames.
func matchContacts(a, b Frame) [][2]int {
	pairs := make([][2]int, 0, a.Len())

	ia, ib := a.identityIndex(), b.identityIndex()
	if ia != nil && ib != nil {
		for id, i := range ia {
			j, found := ib[id]
			if !found {
				pairs = pairs[:0]
				break
			}
			pairs = append(pairs, [2]int{i, j})
		}
		if len(pairs) == a.Len() {
			return pairs
		}
	}

	// Fall back to frame order
	pairs = pairs[:0]
	for i := range a.Contacts {
		pairs = append(pairs, [2]int{i, i})
	}
	return pairs
}
