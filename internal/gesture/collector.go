// Package gesture provides the gesture sample collector, the recognizer seam
// and the frame parameterization registry.
package gesture

import (
	"log"

	"github.com/ayusman/gestr/internal/touch"
)

// DefaultTolerance is the positional tolerance used for whole-sample static checks.
const DefaultTolerance = 0.01

// Summary describes the collector after a sample has been finalized.
type Summary struct {
	Samples  int // Number of finalized samples
	LastSize int // Frames in the sample just finalized
	Fingers  int // Contacts in its first frame
}

// Collector records frames into named gesture samples.
//
// It is either idle or recording. Frames are appended to the active sample
// only while recording and are dropped otherwise. Ended samples are moved to
// the finalized list and never change afterwards.
//
// A Collector is not safe for concurrent use; callers serialize access.
type Collector struct {
	active     *touch.Sample
	samples    []*touch.Sample
	recording  bool
	name       string
	tolerance  float64
	window     int
	recognizer Recognizer

	// OnSample is called with a copy of every finalized sample.
	OnSample func(name string, s *touch.Sample)
}

// Option configures a Collector.
type Option func(*Collector)

// WithTolerance sets the tolerance used by IsActiveSampleOnlyStatic.
func WithTolerance(tol float64) Option {
	return func(c *Collector) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// WithStaticWindow sets the trailing window used by IsActiveSampleNowStatic.
func WithStaticWindow(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.window = n
		}
	}
}

// WithRecognizer sets the recognizer that receives actions and parameterization requests.
func WithRecognizer(r Recognizer) Option {
	return func(c *Collector) {
		c.SetRecognizer(r)
	}
}

// NewCollector creates an idle Collector.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		active:     touch.NewSample(),
		tolerance:  DefaultTolerance,
		window:     touch.DefaultStaticWindow,
		recognizer: NopRecognizer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetRecognizer replaces the recognizer. A nil recognizer restores the inert default.
func (c *Collector) SetRecognizer(r Recognizer) {
	if r == nil {
		r = NopRecognizer{}
	}
	c.recognizer = r
}

// StartSample discards any unfinished frames, sets the gesture name and starts recording.
func (c *Collector) StartSample(name string) {
	c.name = name
	c.active.Clear()
	c.recording = true
}

// AppendFrame adds a frame to the active sample while recording.
// Frames arriving while idle are dropped.
func (c *Collector) AppendFrame(f touch.Frame) {
	if !c.recording {
		return
	}
	c.active.Append(f)
}

// EndSample stops recording. A non-empty active sample is moved to the
// finalized list; ok reports whether that happened.
func (c *Collector) EndSample() (sum Summary, ok bool) {
	c.recording = false

	if c.active.Len() == 0 {
		return Summary{Samples: len(c.samples)}, false
	}

	finished := c.active
	c.samples = append(c.samples, finished)
	c.active = touch.NewSample()

	sum = Summary{
		Samples:  len(c.samples),
		LastSize: finished.Len(),
		Fingers:  finished.NumFingers(),
	}
	log.Printf("Collected: %d samples. Last sample size: %d Number of fingers: %d",
		sum.Samples, sum.LastSize, sum.Fingers)

	if c.OnSample != nil {
		c.OnSample(c.name, finished.Clone())
	}
	return sum, true
}

// ClearSample discards the active sample and stops recording.
func (c *Collector) ClearSample() {
	c.active.Clear()
	c.recording = false
}

// Recording reports whether frames are currently being accepted.
func (c *Collector) Recording() bool {
	return c.recording
}

// GestureName returns the name given to the most recent StartSample.
func (c *Collector) GestureName() string {
	return c.name
}

// ActiveSampleSize returns the number of frames in the active sample.
func (c *Collector) ActiveSampleSize() int {
	return c.active.Len()
}

// ActiveFrames returns a copy of the active sample's frames.
func (c *Collector) ActiveFrames() []touch.Frame {
	return c.active.Frames()
}

// IsActiveSampleNowStatic reports whether the active sample's trailing frames
// have settled within tolerance, trimming them to a single frame if so.
// This query mutates the active sample.
func (c *Collector) IsActiveSampleNowStatic(tolerance float64) bool {
	return c.active.TrimStaticTail(tolerance, c.window)
}

// IsActiveSampleOnlyStatic reports whether the whole active sample is static,
// collapsing it to a single frame if so. This query mutates the active sample.
func (c *Collector) IsActiveSampleOnlyStatic() bool {
	return c.active.TrimIfOnlyStatic(c.tolerance)
}

// SampleCount returns the number of finalized samples.
func (c *Collector) SampleCount() int {
	return len(c.samples)
}

// Samples returns copies of the finalized samples in the order they were ended.
func (c *Collector) Samples() []*touch.Sample {
	out := make([]*touch.Sample, len(c.samples))
	for i, s := range c.samples {
		out[i] = s.Clone()
	}
	return out
}

// PerformAction forwards an action to the recognizer.
func (c *Collector) PerformAction(action string, params []string) []string {
	return c.recognizer.PerformAction(action, params)
}

// ParameterizeSample forwards to the recognizer.
func (c *Collector) ParameterizeSample() map[string][]float64 {
	return c.recognizer.ParameterizeSample()
}

// IsCurrentlyParameterized forwards to the recognizer.
func (c *Collector) IsCurrentlyParameterized() bool {
	return c.recognizer.IsCurrentlyParameterized()
}

// PauseParameterization forwards to the recognizer.
func (c *Collector) PauseParameterization() {
	c.recognizer.PauseParameterization()
}

// UnpauseParameterization forwards to the recognizer.
func (c *Collector) UnpauseParameterization() {
	c.recognizer.UnpauseParameterization()
}

// IsParameterizationPaused forwards to the recognizer.
func (c *Collector) IsParameterizationPaused() bool {
	return c.recognizer.IsParameterizationPaused()
}

// ClearParameterization forwards to the recognizer.
func (c *Collector) ClearParameterization() {
	c.recognizer.ClearParameterization()
}
