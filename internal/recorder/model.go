package recorder

import (
	"time"

	"gorm.io/datatypes"
)

// Positions are stored as WKT. Game space is Y-up, so the ground plane maps
// to geometry XY and height to Z: (x, y, z) is written as POINT Z (x z y).

// Run is one recorded play session.
type Run struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt"`
	Seed      int64      `json:"seed"`
	Levels    int        `json:"levels"`
}

func (*Run) TableName() string {
	return "runs"
}

// Shot is a projectile leaving the muzzle.
type Shot struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	RunID        string    `json:"runId" gorm:"size:36;index:idx_shot_run_id"`
	Time         time.Time `json:"time" gorm:"index:idx_shot_time"`
	SimTime      float64   `json:"simTime"`
	ProjectileID uint64    `json:"projectileId"`
	Origin       string    `json:"origin" gorm:"size:128"`
	Heading      float64   `json:"heading"`
	AmmoLeft     int       `json:"ammoLeft"`
}

func (*Shot) TableName() string {
	return "shots"
}

// Hit is a projectile striking a combatant.
type Hit struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	RunID        string    `json:"runId" gorm:"size:36;index:idx_hit_run_id"`
	Time         time.Time `json:"time"`
	SimTime      float64   `json:"simTime"`
	ProjectileID uint64    `json:"projectileId"`
	VictimID     uint64    `json:"victimId" gorm:"index:idx_hit_victim_id"`
	VictimKind   string    `json:"victimKind" gorm:"size:32"`
	Position     string    `json:"position" gorm:"size:128"`
	Damage       int       `json:"damage"`
	HealthLeft   int       `json:"healthLeft"`
}

func (*Hit) TableName() string {
	return "hits"
}

// Kill is a combatant leaving the roster at zero health.
type Kill struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	RunID      string    `json:"runId" gorm:"size:36;index:idx_kill_run_id"`
	Time       time.Time `json:"time"`
	SimTime    float64   `json:"simTime"`
	VictimID   uint64    `json:"victimId"`
	VictimKind string    `json:"victimKind" gorm:"size:32"`
	Position   string    `json:"position" gorm:"size:128"`
	Level      int       `json:"level"`
}

func (*Kill) TableName() string {
	return "kills"
}

// PlayerHit is a combatant attack landing on the player.
type PlayerHit struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	RunID          string    `json:"runId" gorm:"size:36;index:idx_player_hit_run_id"`
	Time           time.Time `json:"time"`
	SimTime        float64   `json:"simTime"`
	AttackerID     uint64    `json:"attackerId"`
	AttackerKind   string    `json:"attackerKind" gorm:"size:32"`
	Damage         int       `json:"damage"`
	Siphoned       int       `json:"siphoned"`
	PlayerHealth   int       `json:"playerHealth"`
	PlayerPosition string    `json:"playerPosition" gorm:"size:128"`
}

func (*PlayerHit) TableName() string {
	return "player_hits"
}

// Wave is a director transition with the roster at that moment.
type Wave struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	RunID     string         `json:"runId" gorm:"size:36;index:idx_wave_run_id"`
	Time      time.Time      `json:"time"`
	SimTime   float64        `json:"simTime"`
	Level     int            `json:"level"`
	State     string         `json:"state" gorm:"size:32"`
	Spawned   int            `json:"spawned"`
	Remaining int            `json:"remaining"`
	Roster    datatypes.JSON `json:"roster"`
}

func (*Wave) TableName() string {
	return "waves"
}

// ProjectilePath is the line a projectile travelled before it was destroyed.
type ProjectilePath struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	RunID        string    `json:"runId" gorm:"size:36;index:idx_path_run_id"`
	Time         time.Time `json:"time"`
	ProjectileID uint64    `json:"projectileId"`
	Path         string    `json:"path"`
	GroundLength float64   `json:"groundLength"`
	HitVictimID  uint64    `json:"hitVictimId"`
	Expired      bool      `json:"expired"`
}

func (*ProjectilePath) TableName() string {
	return "projectile_paths"
}

// Models lists every table the recorder migrates.
func Models() []any {
	return []any{
		&Run{},
		&Shot{},
		&Hit{},
		&Kill{},
		&PlayerHit{},
		&Wave{},
		&ProjectilePath{},
	}
}
