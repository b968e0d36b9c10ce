// Package geo converts game-space vectors to and from simplefeatures
// geometries. Game space is Y-up, so the ground plane maps to geometry XY and
// height to Z: (x, y, z) becomes POINT Z (x z y).
package geo

import (
	"errors"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/skirmish-game/skirmish/pkg/core"
)

// ErrInvalidCoordinates is returned when a geometry is not a non-empty 3D point.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Point converts a game position to a 3D point.
func Point(v core.Vec3) geom.Point {
	return geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: v.X, Y: v.Z},
			Z:    v.Y,
			Type: geom.DimXYZ,
		},
	)
}

// Vec3FromPoint converts a 3D point back to a game position.
func Vec3FromPoint(p geom.Point) (core.Vec3, error) {
	c, ok := p.Coordinates()
	if !ok || c.Type != geom.DimXYZ {
		return core.Vec3{}, ErrInvalidCoordinates
	}
	return core.V3(c.XY.X, c.Z, c.XY.Y), nil
}

// ParsePoint reads a WKT point written by Point.
func ParsePoint(wkt string) (core.Vec3, error) {
	g, err := geom.UnmarshalWKT(wkt)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("failed to parse point WKT: %w", err)
	}
	p, ok := g.AsPoint()
	if !ok {
		return core.Vec3{}, ErrInvalidCoordinates
	}
	return Vec3FromPoint(p)
}
