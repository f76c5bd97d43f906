package touch

import "testing"

func TestSample_Append(t *testing.T) {
	s := NewSample()

	contacts := []Contact{{ID: 1, X: 0.1, Y: 0.2}}
	f := NewFrame(1, contacts...)
	s.Append(f)

	// Mutating the caller's data must not leak into the sample
	contacts[0].X = 9
	f.Contacts[0].X = 9

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.At(0).Contacts[0].X != 0.1 {
		t.Errorf("sample frame was aliased, X = %f", s.At(0).Contacts[0].X)
	}
}

func TestSample_Frames(t *testing.T) {
	s := NewSample(oneFinger(0.1, 0.1), oneFinger(0.2, 0.2))

	frames := s.Frames()
	frames[0].Contacts[0].X = 5

	if s.At(0).Contacts[0].X != 0.1 {
		t.Error("Frames() should return a copy")
	}
}

func TestSample_NumFingers(t *testing.T) {
	s := NewSample()
	if s.NumFingers() != 0 || s.LastFrameSize() != 0 {
		t.Error("empty sample should report 0 fingers")
	}

	s.Append(NewFrame(1, Contact{ID: 1}, Contact{ID: 2}))
	s.Append(NewFrame(2, Contact{ID: 1}))

	if s.NumFingers() != 2 {
		t.Errorf("NumFingers() = %d, want 2", s.NumFingers())
	}
	if s.LastFrameSize() != 1 {
		t.Errorf("LastFrameSize() = %d, want 1", s.LastFrameSize())
	}
}

func TestSample_EmptyFrameIsKept(t *testing.T) {
	s := NewSample()
	s.Append(NewFrame(1))

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.At(0).Len() != 0 {
		t.Errorf("expected empty frame, got %d contacts", s.At(0).Len())
	}
}

func TestSample_Clear(t *testing.T) {
	s := NewSample(oneFinger(0, 0), oneFinger(1, 1))
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", s.Len())
	}
}
