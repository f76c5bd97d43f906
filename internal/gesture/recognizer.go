package gesture

import "fmt"

// Recognizer names accepted by NewRecognizer.
const (
	RecognizerNone  = "none"
	RecognizerParam = "param"
)

// Recognizer is the seam through which recognition logic plugs into a Collector.
// The Collector forwards actions and parameterization requests to it.
type Recognizer interface {
	// PerformAction runs a named action and returns its textual result.
	PerformAction(action string, params []string) []string

	// ParameterizeSample extracts named feature vectors from the active sample.
	ParameterizeSample() map[string][]float64

	// IsCurrentlyParameterized reports whether a parameterization result is held.
	IsCurrentlyParameterized() bool

	// PauseParameterization freezes the held result; ParameterizeSample returns it unchanged.
	PauseParameterization()

	// UnpauseParameterization lets ParameterizeSample refresh the result again.
	UnpauseParameterization()

	// IsParameterizationPaused reports whether the result is frozen.
	IsParameterizationPaused() bool

	// ClearParameterization drops the held result.
	ClearParameterization()
}

// NopRecognizer is the inert Recognizer used when none is configured.
type NopRecognizer struct{}

// PerformAction returns nil for every action.
func (NopRecognizer) PerformAction(string, []string) []string { return nil }

// ParameterizeSample returns an empty result.
func (NopRecognizer) ParameterizeSample() map[string][]float64 { return map[string][]float64{} }

// IsCurrentlyParameterized always reports false.
func (NopRecognizer) IsCurrentlyParameterized() bool { return false }

// PauseParameterization does nothing.
func (NopRecognizer) PauseParameterization() {}

// UnpauseParameterization does nothing.
func (NopRecognizer) UnpauseParameterization() {}

// IsParameterizationPaused always reports false.
func (NopRecognizer) IsParameterizationPaused() bool { return false }

// ClearParameterization does nothing.
func (NopRecognizer) ClearParameterization() {}

// NewRecognizer selects a Recognizer by name. An empty name selects RecognizerNone.
func NewRecognizer(name string, reg *Registry, src FrameSource) (Recognizer, error) {
	switch name {
	case "", RecognizerNone:
		return NopRecognizer{}, nil
	case RecognizerParam:
		return NewParamRecognizer(reg, src), nil
	default:
		return nil, fmt.Errorf("unknown recognizer %q", name)
	}
}
