package touch

// DefaultStaticWindow is the number of trailing frames examined by TrimStaticTail
// when no positive window is given.
const DefaultStaticWindow = 10

// staticFrom reports whether every adjacent pair of frames in frames[from:]
// moved less than tolerance. Pairs whose finger count differs are never static,
// and neither are pairs with a non-finite coordinate.
func (s *Sample) staticFrom(from int, tolerance float64) bool {
	for i := from + 1; i < len(s.frames); i++ {
		d, ok := Displacement(s.frames[i-1], s.frames[i])
		if !ok || !(d < tolerance) {
			return false
		}
	}
	return true
}

// settledWithin reports whether the sample was trimmed since the last append
// under a tolerance no looser than tolerance. Frames removed by that trim moved
// less than the recorded tolerance, so the verdict still holds.
func (s *Sample) settledWithin(tolerance float64) bool {
	return s.settled > 0 && s.settled == len(s.frames) && tolerance >= s.settledTol
}

// markSettled records that the sample was just trimmed under tolerance.
func (s *Sample) markSettled(tolerance float64) {
	s.settled = len(s.frames)
	s.settledTol = tolerance
}

// tailStart returns the index of the first frame in the trailing window.
func (s *Sample) tailStart(window int) int {
	if window <= 0 {
		window = DefaultStaticWindow
	}
	if window > len(s.frames) {
		window = len(s.frames)
	}
	return len(s.frames) - window
}

// IsStaticTail reports whether the trailing window frames have settled.
// It does not modify the sample. A window needs at least two frames.
func (s *Sample) IsStaticTail(tolerance float64, window int) bool {
	if s.settledWithin(tolerance) {
		return true
	}
	from := s.tailStart(window)
	if len(s.frames)-from < 2 {
		return false
	}
	return s.staticFrom(from, tolerance)
}

// TrimStaticTail checks whether the trailing window frames have settled and,
// if so, collapses the window to its earliest frame. Frames before the window
// are kept unchanged. Returns true iff the tail is static.
//
// Repeated calls without an intervening Append keep returning true and do
// not trim again, as long as the tolerance is not tighter than the one that
// trimmed. A tighter tolerance re-checks the frames that remain.
func (s *Sample) TrimStaticTail(tolerance float64, window int) bool {
	if s.settledWithin(tolerance) {
		return true
	}
	if !s.IsStaticTail(tolerance, window) {
		return false
	}

	from := s.tailStart(window)
	s.frames = s.frames[:from+1]
	s.markSettled(tolerance)
	return true
}

// IsOnlyStatic reports whether every adjacent pair of frames in the whole
// sample moved less than tolerance. A single-frame sample is static, an
// empty one is not.
func (s *Sample) IsOnlyStatic(tolerance float64) bool {
	if len(s.frames) == 0 {
		return false
	}
	return s.staticFrom(0, tolerance)
}

// TrimIfOnlyStatic collapses the sample to its first frame when the whole
// sample is static, modelling a hold or tap rather than a motion.
// Returns false without modifying the sample otherwise.
func (s *Sample) TrimIfOnlyStatic(tolerance float64) bool {
	if !s.IsOnlyStatic(tolerance) {
		return false
	}
	s.frames = s.frames[:1]
	s.markSettled(tolerance)
	return true
}
