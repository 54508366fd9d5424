package recorder

import (
	"database/sql"
	"time"
)

// Models lists every table the recorder migrates.
var Models = []interface{}{
	&Match{},
	&EventRecord{},
}

// Match is one game from GameStarted to GameEnded. A reset starts a new
// match under the same game id.
type Match struct {
	ID        string       `gorm:"primaryKey;size:36"`
	GameID    string       `gorm:"size:36;index:idx_match_game_id"`
	StartedAt time.Time    `gorm:"index"`
	EndedAt   sql.NullTime `gorm:"default:NULL"`
	Width     int
	Height    int
	Bases     int
	Winner    string `gorm:"size:16"`
	// SimDurationMs is the simulated time at GameEnded.
	SimDurationMs int64
}

func (*Match) TableName() string {
	return "matches"
}

// EventRecord is a flattened game event. Subject and Other hold entity
// handles whose meaning depends on Type (shooter/target, unit/killer,
// base/capturer).
type EventRecord struct {
	ID        uint   `gorm:"primarykey;autoIncrement;"`
	MatchID   string `gorm:"size:36;index:idx_event_match_seq,priority:1"`
	Seq       uint   `gorm:"index:idx_event_match_seq,priority:2"`
	Type      string `gorm:"size:32;index:idx_event_type"`
	SimTimeMs int64
	Faction   string        `gorm:"size:16"`
	CellX     sql.NullInt32 `gorm:"default:NULL"`
	CellY     sql.NullInt32 `gorm:"default:NULL"`
	Subject   string        `gorm:"size:24"`
	Other     string        `gorm:"size:24"`
	Amount    float64
	Detail    string `gorm:"size:80"`
}

func (*EventRecord) TableName() string {
	return "event_records"
}
