package subscribers

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/events"
)

const instrumentationName = "github.com/mitchelldurbincs/GridSkirmish/internal/game/events/subscribers"

// DefaultMeter returns the meter from the global OTel provider, a no-op
// until a provider is installed.
func DefaultMeter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// MetricsSubscriber turns game events into OpenTelemetry instruments.
type MetricsSubscriber struct {
	id string

	events   metric.Int64Counter
	fired    metric.Int64Counter
	damage   metric.Float64Counter
	kills    metric.Int64Counter
	captures metric.Int64Counter
	aborts   metric.Int64Counter
	units    metric.Int64ObservableGauge
	funds    metric.Int64ObservableGauge

	mu       sync.Mutex
	alive    map[core.Faction]int64
	balances map[core.Faction]int64
}

// NewMetricsSubscriber registers the game instruments on m.
func NewMetricsSubscriber(id string, m metric.Meter) (*MetricsSubscriber, error) {
	ms := &MetricsSubscriber{
		id:       id,
		alive:    make(map[core.Faction]int64),
		balances: make(map[core.Faction]int64),
	}

	var err error
	if ms.events, err = m.Int64Counter(
		"game.events",
		metric.WithDescription("Game events published, by type"),
	); err != nil {
		return nil, fmt.Errorf("creating events counter: %w", err)
	}
	if ms.fired, err = m.Int64Counter(
		"game.bullets.fired",
		metric.WithDescription("Bullets fired, by faction"),
	); err != nil {
		return nil, fmt.Errorf("creating fired counter: %w", err)
	}
	if ms.damage, err = m.Float64Counter(
		"game.damage.dealt",
		metric.WithDescription("Damage landed by bullets, by attacking faction"),
	); err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}
	if ms.kills, err = m.Int64Counter(
		"game.units.killed",
		metric.WithDescription("Units destroyed, by victim faction"),
	); err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}
	if ms.captures, err = m.Int64Counter(
		"game.bases.captured",
		metric.WithDescription("Base captures, by capturing faction"),
	); err != nil {
		return nil, fmt.Errorf("creating captures counter: %w", err)
	}
	if ms.aborts, err = m.Int64Counter(
		"game.moves.aborted",
		metric.WithDescription("Paths dropped because the next cell was taken"),
	); err != nil {
		return nil, fmt.Errorf("creating aborts counter: %w", err)
	}
	if ms.units, err = m.Int64ObservableGauge(
		"game.units.alive",
		metric.WithDescription("Live units, by faction"),
	); err != nil {
		return nil, fmt.Errorf("creating units gauge: %w", err)
	}
	if ms.funds, err = m.Int64ObservableGauge(
		"game.funds",
		metric.WithDescription("Currency on hand at the last economy tick, by faction"),
	); err != nil {
		return nil, fmt.Errorf("creating funds gauge: %w", err)
	}

	_, err = m.RegisterCallback(ms.observe, ms.units, ms.funds)
	if err != nil {
		return nil, fmt.Errorf("registering gauge callback: %w", err)
	}
	return ms, nil
}

func (ms *MetricsSubscriber) observe(_ context.Context, o metric.Observer) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, f := range core.Factions {
		attrs := metric.WithAttributes(factionAttr(f))
		o.ObserveInt64(ms.units, ms.alive[f], attrs)
		o.ObserveInt64(ms.funds, ms.balances[f], attrs)
	}
	return nil
}

func factionAttr(f core.Faction) attribute.KeyValue {
	return attribute.String("faction", f.String())
}

func (ms *MetricsSubscriber) ID() string { return ms.id }

func (ms *MetricsSubscriber) InterestedIn(string) bool { return true }

// HandleEvent updates counters for event.
func (ms *MetricsSubscriber) HandleEvent(event events.Event) {
	ctx := context.Background()
	ms.events.Add(ctx, 1, metric.WithAttributes(attribute.String("type", event.Type())))

	switch e := event.(type) {
	case *events.GameStartedEvent:
		ms.mu.Lock()
		clear(ms.alive)
		ms.mu.Unlock()

	case *events.UnitSpawnedEvent:
		ms.mu.Lock()
		ms.alive[e.Faction]++
		ms.mu.Unlock()

	case *events.UnitKilledEvent:
		ms.kills.Add(ctx, 1, metric.WithAttributes(factionAttr(e.Faction)))
		ms.mu.Lock()
		ms.alive[e.Faction]--
		ms.mu.Unlock()

	case *events.BulletFiredEvent:
		ms.fired.Add(ctx, 1, metric.WithAttributes(factionAttr(e.Faction)))

	case *events.BulletHitEvent:
		ms.damage.Add(ctx, e.Damage, metric.WithAttributes(factionAttr(e.Faction)))

	case *events.BaseCapturedEvent:
		ms.captures.Add(ctx, 1, metric.WithAttributes(factionAttr(e.To)))

	case *events.MoveAbortedEvent:
		ms.aborts.Add(ctx, 1, metric.WithAttributes(factionAttr(e.Faction)))

	case *events.EconomyTickedEvent:
		ms.mu.Lock()
		for f, v := range e.Balances {
			ms.balances[f] = int64(v)
		}
		ms.mu.Unlock()
	}
}
