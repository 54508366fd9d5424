package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/mitchelldurbincs/GridSkirmish/internal/config"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GridSkirmish/internal/monitoring"
	"github.com/mitchelldurbincs/GridSkirmish/internal/recorder"
)

const meterName = "github.com/mitchelldurbincs/GridSkirmish"

// Observers are the subscribers a host attaches to the bus before the
// engine is created, so they see the first GameStarted.
type Observers struct {
	Bus      *events.EventBus
	Recorder *recorder.Recorder // nil when recording is disabled
	Metrics  *subscribers.MetricsSubscriber
	Runtime  *monitoring.RuntimeMonitor

	provider *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader
	logger   zerolog.Logger
	closed   bool
}

// Attach builds a bus with the metrics subscriber, a match-end logger
// and, when enabled, the recorder. rm may be nil. On error everything built
// so far is closed.
func Attach(cfg *config.Config, rm *monitoring.RuntimeMonitor, logger zerolog.Logger) (*Observers, error) {
	o := newObservers(rm, logger)
	if err := o.attach(cfg, logger); err != nil {
		if cerr := o.Close(context.Background()); cerr != nil {
			o.logger.Warn().Err(cerr).Msg("Failed to close observers after attach error")
		}
		return nil, err
	}
	return o, nil
}

func newObservers(rm *monitoring.RuntimeMonitor, logger zerolog.Logger) *Observers {
	o := &Observers{
		Bus:     events.NewEventBus(),
		Runtime: rm,
		reader:  sdkmetric.NewManualReader(),
		logger:  logger.With().Str("component", "Observers").Logger(),
	}
	o.provider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(o.reader))
	return o
}

func (o *Observers) attach(cfg *config.Config, logger zerolog.Logger) error {
	meter := o.provider.Meter(meterName)

	ms, err := subscribers.NewMetricsSubscriber("metrics", meter)
	if err != nil {
		return err
	}
	o.Metrics = ms
	o.Bus.Subscribe(ms)

	if o.Runtime != nil {
		if err := o.Runtime.RegisterGauges(meter); err != nil {
			return err
		}
	}

	o.Bus.SubscribeFunc(events.TypeGameEnded, o.logMatchEnd)

	if cfg.Recorder.Enabled {
		rec, err := recorder.Open(recorder.Config{
			Path:      cfg.Recorder.Path,
			BatchSize: cfg.Recorder.BatchSize,
		}, logger)
		if err != nil {
			return fmt.Errorf("opening recorder: %w", err)
		}
		o.Recorder = rec
		o.Bus.Subscribe(rec)
	}
	return nil
}

func (o *Observers) logMatchEnd(e events.Event) {
	ev, ok := e.(*events.GameEndedEvent)
	if !ok {
		return
	}
	o.logger.Info().
		Str("game_id", ev.GameID()).
		Stringer("winner", ev.Winner).
		Dur("sim_time", ev.SimTime()).
		Msg("Match ended")
}

// Collect reads the current value of every instrument.
func (o *Observers) Collect(ctx context.Context) (map[string]float64, error) {
	var rm metricdata.ResourceMetrics
	if err := o.reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch d := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range d.DataPoints {
					out[m.Name] += float64(dp.Value)
				}
			case metricdata.Sum[float64]:
				for _, dp := range d.DataPoints {
					out[m.Name] += dp.Value
				}
			case metricdata.Gauge[int64]:
				for _, dp := range d.DataPoints {
					out[m.Name] += float64(dp.Value)
				}
			}
		}
	}
	return out, nil
}

// Report logs a one-line summary of every instrument.
func (o *Observers) Report(ctx context.Context) {
	values, err := o.Collect(ctx)
	if err != nil {
		o.logger.Warn().Err(err).Msg("Failed to collect metrics")
		return
	}
	ev := o.logger.Info()
	for name, v := range values {
		ev = ev.Float64(name, v)
	}
	ev.Msg("Metrics summary")
}

// Close flushes the recorder and shuts the meter provider down. Calling it
// again is a no-op.
func (o *Observers) Close(ctx context.Context) error {
	if o.closed {
		return nil
	}
	o.closed = true
	var errs []error
	if o.Recorder != nil {
		o.Bus.Unsubscribe(o.Recorder.ID())
		errs = append(errs, o.Recorder.Close())
	}
	errs = append(errs, o.provider.Shutdown(ctx))
	return errors.Join(errs...)
}
