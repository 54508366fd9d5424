package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Dur("sim_time", event.SimTime()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("map_width", e.MapWidth).
			Int("map_height", e.MapHeight).
			Int("bases", e.BaseCount)

	case *events.GameEndedEvent:
		logEvent.Stringer("winner", e.Winner)

	case *events.UnitSpawnedEvent:
		logEvent.
			Stringer("unit", e.Unit).
			Stringer("faction", e.Faction).
			Str("unit_type", e.UnitType).
			Int("x", e.Cell.X).
			Int("y", e.Cell.Y).
			Int("cost", e.Cost)

	case *events.UnitKilledEvent:
		logEvent.
			Stringer("unit", e.Unit).
			Stringer("faction", e.Faction).
			Int("x", e.Cell.X).
			Int("y", e.Cell.Y).
			Stringer("killer", e.Killer).
			Stringer("killer_faction", e.KillerFaction)

	case *events.MoveAbortedEvent:
		logEvent.
			Stringer("unit", e.Unit).
			Stringer("faction", e.Faction).
			Stringer("at", e.Cell).
			Stringer("blocked", e.Blocked)

	case *events.BaseCreatedEvent:
		logEvent.
			Stringer("base", e.Base).
			Stringer("faction", e.Faction).
			Int("x", e.Cell.X).
			Int("y", e.Cell.Y).
			Bool("debug", e.Debug)

	case *events.BaseCapturedEvent:
		logEvent.
			Stringer("base", e.Base).
			Int("x", e.Cell.X).
			Int("y", e.Cell.Y).
			Stringer("from", e.From).
			Stringer("to", e.To).
			Stringer("by", e.By)

	case *events.BulletHitEvent:
		logEvent.
			Stringer("shooter", e.Shooter).
			Stringer("target", e.Target).
			Float64("damage", e.Damage).
			Bool("killed", e.Killed)

	case *events.BulletFizzledEvent:
		logEvent.
			Stringer("bullet", e.Bullet).
			Stringer("target", e.Target)

	case *events.EconomyTickedEvent:
		for f, v := range e.Balances {
			logEvent.Int(f.String()+"_funds", v)
		}

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg("Game event")
}
