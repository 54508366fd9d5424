// Package recorder persists game events for after-action review. It is an
// event bus subscriber that buffers rows in memory and writes them to
// SQLite in batches.
package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/events"
)

// Config holds recorder settings.
type Config struct {
	Path      string // empty means in-memory
	BatchSize int
}

type Recorder struct {
	id     string
	db     *gorm.DB
	cfg    Config
	logger zerolog.Logger

	mu      sync.Mutex
	match   *Match
	seq     uint
	pending []EventRecord
}

// Open connects to the database at cfg.Path and migrates the schema.
func Open(cfg Config, log zerolog.Logger) (*Recorder, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 256
	}

	db, err := openSqlite(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recorder database: %w", err)
	}
	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to migrate recorder schema: %w", err)
	}

	r := &Recorder{
		id:      "recorder",
		db:      db,
		cfg:     cfg,
		logger:  log.With().Str("component", "Recorder").Logger(),
		pending: make([]EventRecord, 0, cfg.BatchSize),
	}
	r.logger.Info().Str("path", cfg.Path).Msg("Recorder ready")
	return r, nil
}

func openSqlite(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// every pooled connection to :memory: would see its own empty database
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}
	return db, nil
}

func (r *Recorder) ID() string { return r.id }

func (r *Recorder) InterestedIn(string) bool { return true }

// HandleEvent buffers ev, opening or closing a match on game start and end.
// Write failures are logged; the event bus has no error path.
func (r *Recorder) HandleEvent(ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if started, ok := ev.(*events.GameStartedEvent); ok {
		if err := r.startMatchLocked(started); err != nil {
			r.logger.Error().Err(err).Msg("Failed to start match")
			return
		}
	}
	if r.match == nil {
		r.logger.Debug().Str("event_type", ev.Type()).Msg("Event before any match, dropped")
		return
	}

	r.seq++
	r.pending = append(r.pending, toRecord(r.match.ID, r.seq, ev))

	if ended, ok := ev.(*events.GameEndedEvent); ok {
		if err := r.endMatchLocked(ended); err != nil {
			r.logger.Error().Err(err).Msg("Failed to close match")
		}
		return
	}
	if len(r.pending) >= r.cfg.BatchSize {
		if err := r.flushLocked(); err != nil {
			r.logger.Error().Err(err).Msg("Failed to flush events")
		}
	}
}

func (r *Recorder) startMatchLocked(ev *events.GameStartedEvent) error {
	if err := r.flushLocked(); err != nil {
		return err
	}
	m := &Match{
		ID:        uuid.NewString(),
		GameID:    ev.GameID(),
		StartedAt: ev.Timestamp(),
		Width:     ev.MapWidth,
		Height:    ev.MapHeight,
		Bases:     ev.BaseCount,
	}
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("creating match: %w", err)
	}
	r.match = m
	r.seq = 0
	r.logger.Debug().Str("match_id", m.ID).Str("game_id", m.GameID).Msg("Match started")
	return nil
}

// endMatchLocked closes the current match. Events after it are dropped
// until the next GameStarted opens a new one.
func (r *Recorder) endMatchLocked(ev *events.GameEndedEvent) error {
	m := r.match
	r.match = nil

	m.Winner = ev.Winner.String()
	m.EndedAt = sql.NullTime{Time: ev.Timestamp(), Valid: true}
	m.SimDurationMs = ev.SimTime().Milliseconds()
	err := r.db.Model(m).Updates(map[string]interface{}{
		"winner":          m.Winner,
		"ended_at":        m.EndedAt,
		"sim_duration_ms": m.SimDurationMs,
	}).Error
	if err != nil {
		return fmt.Errorf("updating match %s: %w", m.ID, err)
	}
	r.logger.Debug().Str("match_id", m.ID).Str("winner", m.Winner).Msg("Match ended")
	return r.flushLocked()
}

// Flush writes buffered events.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushLocked()
}

// flushLocked writes pending rows in one transaction. On failure the rows
// stay buffered for the next attempt.
func (r *Recorder) flushLocked() error {
	if len(r.pending) == 0 {
		return nil
	}

	start := time.Now()
	tx := r.db.Begin()
	if err := tx.Create(&r.pending).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("writing %d events: %w", len(r.pending), err)
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("committing %d events: %w", len(r.pending), err)
	}

	r.logger.Debug().
		Int("rows", len(r.pending)).
		Dur("took", time.Since(start)).
		Msg("Flushed events")
	r.pending = r.pending[:0]
	return nil
}

// Close flushes remaining events and closes the database.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	flushErr := r.flushLocked()
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	return flushErr
}

// Matches returns recorded matches, oldest first.
func (r *Recorder) Matches() ([]Match, error) {
	var out []Match
	err := r.db.Order("started_at, id").Find(&out).Error
	return out, err
}

// Events returns a match's events in publish order.
func (r *Recorder) Events(matchID string) ([]EventRecord, error) {
	var out []EventRecord
	err := r.db.Where("match_id = ?", matchID).Order("seq").Find(&out).Error
	return out, err
}

// CountByType tallies a match's events per type.
func (r *Recorder) CountByType(matchID string) (map[string]int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	err := r.db.Model(&EventRecord{}).
		Select("type, count(*) as count").
		Where("match_id = ?", matchID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Type] = row.Count
	}
	return out, nil
}

func cell(c core.Coordinate) (sql.NullInt32, sql.NullInt32) {
	return sql.NullInt32{Int32: int32(c.X), Valid: true}, sql.NullInt32{Int32: int32(c.Y), Valid: true}
}

// toRecord flattens ev into a row.
func toRecord(matchID string, seq uint, ev events.Event) EventRecord {
	rec := EventRecord{
		MatchID:   matchID,
		Seq:       seq,
		Type:      ev.Type(),
		SimTimeMs: ev.SimTime().Milliseconds(),
	}

	switch e := ev.(type) {
	case *events.GameStartedEvent:
		rec.Amount = float64(e.BaseCount)
		rec.Detail = fmt.Sprintf("%dx%d", e.MapWidth, e.MapHeight)
	case *events.GameEndedEvent:
		rec.Faction = e.Winner.String()
	case *events.UnitSpawnedEvent:
		rec.Faction = e.Faction.String()
		rec.CellX, rec.CellY = cell(e.Cell)
		rec.Subject = e.Unit.String()
		rec.Amount = float64(e.Cost)
		rec.Detail = e.UnitType
	case *events.UnitKilledEvent:
		rec.Faction = e.Faction.String()
		rec.CellX, rec.CellY = cell(e.Cell)
		rec.Subject = e.Unit.String()
		if !e.Killer.IsNil() {
			rec.Other = e.Killer.String()
			rec.Detail = e.KillerFaction.String()
		}
	case *events.MoveAbortedEvent:
		rec.Faction = e.Faction.String()
		rec.CellX, rec.CellY = cell(e.Blocked)
		rec.Subject = e.Unit.String()
	case *events.BaseCreatedEvent:
		rec.Faction = e.Faction.String()
		rec.CellX, rec.CellY = cell(e.Cell)
		rec.Subject = e.Base.String()
		if e.Debug {
			rec.Detail = "debug"
		}
	case *events.BaseCapturedEvent:
		rec.Faction = e.To.String()
		rec.CellX, rec.CellY = cell(e.Cell)
		rec.Subject = e.Base.String()
		rec.Other = e.By.String()
		rec.Detail = "from " + e.From.String()
	case *events.BulletFiredEvent:
		rec.Faction = e.Faction.String()
		rec.Subject = e.Shooter.String()
		rec.Other = e.Target.String()
	case *events.BulletHitEvent:
		rec.Faction = e.Faction.String()
		rec.Subject = e.Shooter.String()
		rec.Other = e.Target.String()
		rec.Amount = e.Damage
		if e.Killed {
			rec.Detail = "killed"
		}
	case *events.BulletFizzledEvent:
		rec.Faction = e.Faction.String()
		rec.Subject = e.Bullet.String()
		rec.Other = e.Target.String()
	case *events.EconomyTickedEvent:
		rec.Amount = float64(e.Balances[core.Player])
		rec.Detail = fmt.Sprintf("player=%d computer=%d", e.Balances[core.Player], e.Balances[core.Computer])
	case *events.StateTransitionEvent:
		rec.Detail = e.FromPhase + ">" + e.ToPhase
	}
	return rec
}
