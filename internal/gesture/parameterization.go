package gesture

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ayusman/gestr/internal/touch"
)

var (
	// ErrUnknownParameter is returned for a specification whose kind is not registered.
	ErrUnknownParameter = errors.New("unknown parameter kind")
	// ErrInvalidSpec is returned for a specification with malformed arguments.
	ErrInvalidSpec = errors.New("invalid parameter spec")
	// ErrDuplicateParameter is returned when two parameters share a name.
	ErrDuplicateParameter = errors.New("duplicate parameter name")
)

// NamedSpec pairs a parameter name with its textual specification, e.g.
//
//	{Name: "pinch", Spec: "fing_dist 0 1"}
type NamedSpec struct {
	Name string `json:"name"`
	Spec string `json:"spec"`
}

// kind describes one specification keyword: how many finger indices it
// takes and how to build the extractor from them.
type kind struct {
	arity int
	build func(fingers []int) (Extractor, error)
}

// kinds holds every recognised specification keyword.
var kinds = map[string]kind{
	"fing_x": {1, func(f []int) (Extractor, error) { return NewFingerX(f[0]) }},
	"fing_y": {1, func(f []int) (Extractor, error) { return NewFingerY(f[0]) }},
	"fing_dist": {2, func(f []int) (Extractor, error) {
		return NewFingerDist(f[0], f[1])
	}},
	"fing_angle": {2, func(f []int) (Extractor, error) {
		return NewFingerAngle(f[0], f[1])
	}},
	"all_mean": {0, func([]int) (Extractor, error) { return AllMean{}, nil }},
}

// ParseSpec builds an extractor from a whitespace separated specification.
// The first token selects the kind, the remaining tokens are finger indices:
//
//	fing_x 0      x coordinate of finger 0
//	fing_y 1      y coordinate of finger 1
//	fing_dist 0 1 distance between fingers 0 and 1
//	fing_angle 0 1 angle of the line from finger 0 to finger 1
//	all_mean      mean x,y of all fingers
func ParseSpec(spec string) (Extractor, error) {
	tokens := strings.Fields(spec)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty spec", ErrInvalidSpec)
	}

	k, ok := kinds[tokens[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, tokens[0])
	}

	args := tokens[1:]
	if len(args) != k.arity {
		return nil, fmt.Errorf("%w: %s takes %d finger indices, got %d", ErrInvalidSpec, tokens[0], k.arity, len(args))
	}

	fingers := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: finger index %q is not an integer", ErrInvalidSpec, a)
		}
		fingers[i] = n
	}

	return k.build(fingers)
}

// Registry is a named, ordered collection of extractors built from specifications.
// It is immutable after construction.
type Registry struct {
	names      []string
	extractors map[string]Extractor
}

// NewRegistry builds a Registry from the given specifications. Every bad entry
// is reported; the returned error joins all of them.
func NewRegistry(specs []NamedSpec) (*Registry, error) {
	r := &Registry{
		names:      make([]string, 0, len(specs)),
		extractors: make(map[string]Extractor, len(specs)),
	}

	var errs []error
	for _, s := range specs {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%w: parameter with spec %q has no name", ErrInvalidSpec, s.Spec))
			continue
		}
		if _, dup := r.extractors[name]; dup {
			errs = append(errs, fmt.Errorf("parameter %q: %w", name, ErrDuplicateParameter))
			continue
		}

		e, err := ParseSpec(s.Spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("parameter %q: %w", name, err))
			continue
		}

		r.names = append(r.names, name)
		r.extractors[name] = e
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

// Apply evaluates every extractor against the frame and returns the results by name.
func (r *Registry) Apply(f touch.Frame) map[string][]float64 {
	result := make(map[string][]float64, r.Len())
	if r == nil {
		return result
	}
	for _, name := range r.names {
		result[name] = r.extractors[name].Evaluate(f)
	}
	return result
}

// Names returns the parameter names in the order they were specified.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Get returns the extractor registered under name.
func (r *Registry) Get(name string) (Extractor, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.extractors[name]
	return e, ok
}

// Len returns the number of registered parameters.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}
