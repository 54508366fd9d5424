package monitoring

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// RuntimeMonitor samples goroutine counts and simulation step latency for
// long-running hosts.
type RuntimeMonitor struct {
	logger         zerolog.Logger
	checkInterval  time.Duration
	alertThreshold int
	budget         time.Duration

	mu        sync.RWMutex
	baseline  int
	current   int
	peak      int
	steps     int64
	overruns  int64
	slowest   time.Duration
	totalStep time.Duration
}

// NewRuntimeMonitor creates a monitor. Steps slower than budget count as
// overruns; a zero budget disables that check.
func NewRuntimeMonitor(logger zerolog.Logger, interval, budget time.Duration) *RuntimeMonitor {
	baseline := runtime.NumGoroutine()
	return &RuntimeMonitor{
		logger:         logger.With().Str("component", "RuntimeMonitor").Logger(),
		checkInterval:  interval,
		alertThreshold: 1000,
		budget:         budget,
		baseline:       baseline,
		current:        baseline,
		peak:           baseline,
	}
}

// RegisterGauges exposes the monitor's counters on m.
func (rm *RuntimeMonitor) RegisterGauges(m metric.Meter) error {
	goroutines, err := m.Int64ObservableGauge("runtime.goroutines",
		metric.WithDescription("Live goroutines at last sample"))
	if err != nil {
		return fmt.Errorf("creating goroutine gauge: %w", err)
	}
	steps, err := m.Int64ObservableCounter("sim.steps",
		metric.WithDescription("Simulation steps executed"))
	if err != nil {
		return fmt.Errorf("creating steps counter: %w", err)
	}
	overruns, err := m.Int64ObservableCounter("sim.step.overruns",
		metric.WithDescription("Steps that took longer than the frame budget"))
	if err != nil {
		return fmt.Errorf("creating overrun counter: %w", err)
	}

	_, err = m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := rm.Stats()
		o.ObserveInt64(goroutines, int64(s.Current))
		o.ObserveInt64(steps, s.Steps)
		o.ObserveInt64(overruns, s.Overruns)
		return nil
	}, goroutines, steps, overruns)
	if err != nil {
		return fmt.Errorf("registering runtime callback: %w", err)
	}
	return nil
}

// ObserveStep records the wall time one simulation step took.
func (rm *RuntimeMonitor) ObserveStep(d time.Duration) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.steps++
	rm.totalStep += d
	if d > rm.slowest {
		rm.slowest = d
	}
	if rm.budget > 0 && d > rm.budget {
		rm.overruns++
	}
}

// Run samples until ctx is cancelled.
func (rm *RuntimeMonitor) Run(ctx context.Context) {
	rm.logger.Info().Int("baseline", rm.baseline).Msg("Started runtime monitoring")

	ticker := time.NewTicker(rm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rm.Sample()
		case <-ctx.Done():
			return
		}
	}
}

// Sample reads the goroutine count now and logs the current figures.
func (rm *RuntimeMonitor) Sample() RuntimeStats {
	current := runtime.NumGoroutine()

	rm.mu.Lock()
	rm.current = current
	if current > rm.peak {
		rm.peak = current
	}
	rm.mu.Unlock()

	s := rm.Stats()
	rm.logger.Debug().
		Int("goroutines", s.Current).
		Int("peak", s.Peak).
		Int64("steps", s.Steps).
		Dur("mean_step", s.MeanStep).
		Dur("slowest_step", s.SlowestStep).
		Int64("overruns", s.Overruns).
		Msg("Runtime metrics")

	if current > rm.alertThreshold {
		rm.logger.Warn().
			Int("current", current).
			Int("threshold", rm.alertThreshold).
			Msg("High goroutine count detected - possible leak")
	}
	return s
}

// Stats returns the figures as of the last sample.
func (rm *RuntimeMonitor) Stats() RuntimeStats {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	s := RuntimeStats{
		Current:     rm.current,
		Baseline:    rm.baseline,
		Peak:        rm.peak,
		Steps:       rm.steps,
		Overruns:    rm.overruns,
		SlowestStep: rm.slowest,
	}
	if rm.steps > 0 {
		s.MeanStep = rm.totalStep / time.Duration(rm.steps)
	}
	return s
}

type RuntimeStats struct {
	Current     int           `json:"current"`
	Baseline    int           `json:"baseline"`
	Peak        int           `json:"peak"`
	Steps       int64         `json:"steps"`
	Overruns    int64         `json:"overruns"`
	MeanStep    time.Duration `json:"mean_step"`
	SlowestStep time.Duration `json:"slowest_step"`
}
