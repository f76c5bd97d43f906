// Package app wires the gesture collector to its configuration and persistence.
package app

import (
	"fmt"
	"log"
	"sync"

	"github.com/ayusman/gestr/internal/config"
	"github.com/ayusman/gestr/internal/gesture"
	"github.com/ayusman/gestr/internal/store"
	"github.com/ayusman/gestr/internal/touch"
)

// Config holds configuration options for the application.
type Config struct {
	Settings config.Config
	// Store receives finalized samples. Nil disables persistence.
	Store *store.Store
}

// Status is a snapshot of the collector state.
type Status struct {
	Recording     bool   `json:"recording"`
	Gesture       string `json:"gesture"`
	ActiveSize    int    `json:"active_size"`
	Samples       int    `json:"samples"`
	Parameterized bool   `json:"parameterized"`
	ParamsPaused  bool   `json:"params_paused"`
}

// App owns the collector and serializes every call into it.
type App struct {
	settings  config.Config
	store     *store.Store
	registry  *gesture.Registry
	collector *gesture.Collector

	mu sync.Mutex
}

// New creates a new App with the given configuration.
func New(cfg Config) (*App, error) {
	if err := cfg.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	registry, err := gesture.NewRegistry(cfg.Settings.Parameters)
	if err != nil {
		return nil, err
	}

	a := &App{
		settings: cfg.Settings,
		store:    cfg.Store,
		registry: registry,
		collector: gesture.NewCollector(
			gesture.WithTolerance(cfg.Settings.Tolerance),
			gesture.WithStaticWindow(cfg.Settings.StaticWindow),
		),
	}

	rec, err := gesture.NewRecognizer(cfg.Settings.Recognizer, registry, a.collector)
	if err != nil {
		return nil, err
	}
	a.collector.SetRecognizer(rec)
	a.collector.OnSample = a.persist

	log.Printf("Collector ready: %d parameters, recognizer %q", registry.Len(), cfg.Settings.Recognizer)
	return a, nil
}

// persist stores a finalized sample. Failures are logged; recording carries on.
func (a *App) persist(name string, s *touch.Sample) {
	if a.store == nil {
		return
	}

	g, err := a.store.Gestures().Ensure(name)
	if err != nil {
		log.Printf("Failed to save gesture %q: %v", name, err)
		return
	}
	saved, err := a.store.Samples().Create(g.ID, s)
	if err != nil {
		log.Printf("Failed to save sample for %q: %v", name, err)
		return
	}
	log.Printf("Saved sample %d of %q (%d frames)", saved.SampleIndex, name, saved.FrameCount)
}

// StartSample begins recording a gesture with the given name.
func (a *App) StartSample(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.collector.StartSample(name)
}

// EndSample stops recording and finalizes the active sample.
func (a *App) EndSample() (gesture.Summary, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.collector.EndSample()
}

// ClearSample discards the active sample and stops recording.
func (a *App) ClearSample() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.collector.ClearSample()
}

// AppendFrame pushes a complete frame into the collector.
func (a *App) AppendFrame(f touch.Frame) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.appendFrame(f)
}

func (a *App) appendFrame(f touch.Frame) {
	a.collector.AppendFrame(f)
	if a.settings.TrimStatic && a.collector.Recording() {
		a.collector.IsActiveSampleNowStatic(a.settings.Tolerance)
	}
}

// PerformAction forwards an action to the collector's recognizer.
func (a *App) PerformAction(action string, params []string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := a.collector.PerformAction(action, params)
	log.Printf("Action performed: %s, result: %v", action, result)
	return result
}

// Parameterize returns the recognizer's parameterization of the active sample.
func (a *App) Parameterize() map[string][]float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.collector.ParameterizeSample()
}

// Status returns a snapshot of the collector state.
func (a *App) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Status{
		Recording:     a.collector.Recording(),
		Gesture:       a.collector.GestureName(),
		ActiveSize:    a.collector.ActiveSampleSize(),
		Samples:       a.collector.SampleCount(),
		Parameterized: a.collector.IsCurrentlyParameterized(),
		ParamsPaused:  a.collector.IsParameterizationPaused(),
	}
}

// ActiveFrames returns a copy of the frames recorded so far.
func (a *App) ActiveFrames() []touch.Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.collector.ActiveFrames()
}

// Samples returns copies of the samples finalized since startup.
func (a *App) Samples() []*touch.Sample {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.collector.Samples()
}

// Store returns the store, or nil if persistence is disabled.
func (a *App) Store() *store.Store {
	return a.store
}
