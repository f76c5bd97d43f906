package touch

// Sample is an ordered recording of frames for one gesture.
// Frames are only ever appended, except by the static trimming operations.
type Sample struct {
	frames []Frame

	// settled is the length the sample had right after its tail was
	// trimmed. Zero means the tail has not been trimmed since the last append.
	settled int
	// settledTol is the tolerance of that trim.
	settledTol float64
}

// NewSample creates a sample holding copies of the given frames.
func NewSample(frames ...Frame) *Sample {
	s := &Sample{frames: make([]Frame, 0, len(frames))}
	for _, f := range frames {
		s.Append(f)
	}
	return s
}

// Append adds a frame to the end of the sample.
func (s *Sample) Append(f Frame) {
	s.frames = append(s.frames, f.Clone())
	s.settled = 0
}

// Len returns the number of frames in the sample.
func (s *Sample) Len() int {
	return len(s.frames)
}

// Frames returns a copy of the frames in the sample.
func (s *Sample) Frames() []Frame {
	out := make([]Frame, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.Clone()
	}
	return out
}

// At returns the frame at position i.
func (s *Sample) At(i int) Frame {
	return s.frames[i]
}

// Clear removes all frames.
func (s *Sample) Clear() {
	s.frames = nil
	s.settled = 0
}

// Clone returns a deep copy of the sample.
func (s *Sample) Clone() *Sample {
	return &Sample{frames: s.Frames(), settled: s.settled, settledTol: s.settledTol}
}

// NumFingers returns the number of contacts in the first frame, or 0 if the sample is empty.
func (s *Sample) NumFingers() int {
	if len(s.frames) == 0 {
		return 0
	}
	return s.frames[0].Len()
}

// LastFrameSize returns the number of contacts in the last frame, or 0 if the sample is empty.
func (s *Sample) LastFrameSize() int {
	if len(s.frames) == 0 {
		return 0
	}
	return s.frames[len(s.frames)-1].Len()
}
