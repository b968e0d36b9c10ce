package recorder

import (
	"encoding/json"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/skirmish-game/skirmish/internal/geo"
	"github.com/skirmish-game/skirmish/pkg/core"
	"gorm.io/datatypes"
)

// PointWKT renders a game position as a POINT Z.
func PointWKT(v core.Vec3) string {
	return geo.Point(v).AsText()
}

// PathWKT renders a projectile path as a LINESTRING Z and returns its length
// on the ground plane. A single sample is repeated so the line stays valid.
func PathWKT(points []core.Vec3) (string, float64) {
	if len(points) == 0 {
		return geom.LineString{}.ForceCoordinatesType(geom.DimXYZ).AsText(), 0
	}
	if len(points) == 1 {
		points = []core.Vec3{points[0], points[0]}
	}
	ls, err := geo.Path(points)
	if err != nil {
		return geom.LineString{}.ForceCoordinatesType(geom.DimXYZ).AsText(), 0
	}
	return ls.AsText(), ls.Length()
}

// heading is the compass yaw of dir in degrees, matching combatant rotation.
func heading(dir core.Vec3) float64 {
	return math.Atan2(dir.X, dir.Z) * 180 / math.Pi
}

func shotFrom(run string, e core.FiredEvent) Shot {
	return Shot{
		RunID:        run,
		Time:         e.Time,
		SimTime:      e.SimTime,
		ProjectileID: e.ProjectileID,
		Origin:       PointWKT(e.Origin),
		Heading:      heading(e.Direction),
		AmmoLeft:     e.AmmoLeft,
	}
}

func hitFrom(run string, e core.HitEvent) Hit {
	return Hit{
		RunID:        run,
		Time:         e.Time,
		SimTime:      e.SimTime,
		ProjectileID: e.ProjectileID,
		VictimID:     e.VictimID,
		VictimKind:   e.VictimKind.String(),
		Position:     PointWKT(e.Position),
		Damage:       e.Damage,
		HealthLeft:   e.HealthLeft,
	}
}

func killFrom(run string, e core.KillEvent) Kill {
	return Kill{
		RunID:      run,
		Time:       e.Time,
		SimTime:    e.SimTime,
		VictimID:   e.VictimID,
		VictimKind: e.VictimKind.String(),
		Position:   PointWKT(e.Position),
		Level:      e.LevelIndex + 1,
	}
}

func playerHitFrom(run string, e core.PlayerHitEvent) PlayerHit {
	return PlayerHit{
		RunID:          run,
		Time:           e.Time,
		SimTime:        e.SimTime,
		AttackerID:     e.AttackerID,
		AttackerKind:   e.AttackerKind.String(),
		Damage:         e.Damage,
		Siphoned:       e.Siphoned,
		PlayerHealth:   e.PlayerHealth,
		PlayerPosition: PointWKT(e.PlayerPosition),
	}
}

func waveFrom(run string, e core.WaveEvent) (Wave, error) {
	roster, err := json.Marshal(e.Roster)
	if err != nil {
		return Wave{}, err
	}
	return Wave{
		RunID:     run,
		Time:      e.Time,
		SimTime:   e.SimTime,
		Level:     e.LevelIndex + 1,
		State:     string(e.State),
		Spawned:   e.Spawned,
		Remaining: len(e.Roster),
		Roster:    datatypes.JSON(roster),
	}, nil
}

func pathFrom(run string, e core.ProjectilePath) ProjectilePath {
	wkt, length := PathWKT(e.Points)
	return ProjectilePath{
		RunID:        run,
		Time:         e.Time,
		ProjectileID: e.ProjectileID,
		Path:         wkt,
		GroundLength: length,
		HitVictimID:  e.HitVictimID,
		Expired:      e.Expired,
	}
}
