package gesture

import (
	"fmt"
	"strconv"

	"github.com/ayusman/gestr/internal/touch"
)

// FrameSource provides the frames of the sample currently being recorded.
type FrameSource interface {
	ActiveFrames() []touch.Frame
}

// ParamRecognizer parameterizes the active sample with a Registry.
// Actions:
//
//	params       names of the registered parameters
//	parameterize parameterize now, returns "name=count" per parameter
//	pause        stop refreshing the parameterization
//	unpause      resume refreshing
//	clear        drop the current parameterization
//	status       "parameterized=<bool>" and "paused=<bool>"
type ParamRecognizer struct {
	registry *Registry
	source   FrameSource
	current  map[string][]float64
	paused   bool
}

// NewParamRecognizer creates a ParamRecognizer reading frames from src.
func NewParamRecognizer(reg *Registry, src FrameSource) *ParamRecognizer {
	return &ParamRecognizer{
		registry: reg,
		source:   src,
	}
}

// PerformAction implements Recognizer. Unknown actions return nil.
func (p *ParamRecognizer) PerformAction(action string, params []string) []string {
	switch action {
	case "params":
		return p.registry.Names()
	case "parameterize":
		values := p.ParameterizeSample()
		result := make([]string, 0, len(values))
		for _, name := range p.registry.Names() {
			result = append(result, name+"="+strconv.Itoa(len(values[name])))
		}
		return result
	case "pause":
		p.PauseParameterization()
		return []string{"ok"}
	case "unpause":
		p.UnpauseParameterization()
		return []string{"ok"}
	case "clear":
		p.ClearParameterization()
		return []string{"ok"}
	case "status":
		return []string{
			fmt.Sprintf("parameterized=%t", p.IsCurrentlyParameterized()),
			fmt.Sprintf("paused=%t", p.paused),
		}
	default:
		return nil
	}
}

// ParameterizeSample evaluates the registry over every active frame and
// concatenates each parameter's values in frame order. While paused the
// previous result is returned unchanged.
func (p *ParamRecognizer) ParameterizeSample() map[string][]float64 {
	if p.paused {
		return copyValues(p.current)
	}

	values := make(map[string][]float64, p.registry.Len())
	for _, name := range p.registry.Names() {
		values[name] = []float64{}
	}
	if p.source != nil {
		for _, f := range p.source.ActiveFrames() {
			for name, v := range p.registry.Apply(f) {
				values[name] = append(values[name], v...)
			}
		}
	}

	p.current = values
	return copyValues(values)
}

// IsCurrentlyParameterized implements Recognizer.
func (p *ParamRecognizer) IsCurrentlyParameterized() bool {
	return p.current != nil
}

// PauseParameterization implements Recognizer.
func (p *ParamRecognizer) PauseParameterization() {
	p.paused = true
}

// UnpauseParameterization implements Recognizer.
func (p *ParamRecognizer) UnpauseParameterization() {
	p.paused = false
}

// IsParameterizationPaused implements Recognizer.
func (p *ParamRecognizer) IsParameterizationPaused() bool {
	return p.paused
}

// ClearParameterization implements Recognizer.
func (p *ParamRecognizer) ClearParameterization() {
	p.current = nil
}

func copyValues(m map[string][]float64) map[string][]float64 {
	out := make(map[string][]float64, len(m))
	for k, v := range m {
		out[k] = append([]float64(nil), v...)
	}
	return out
}
