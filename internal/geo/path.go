package geo

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/skirmish-game/skirmish/pkg/core"
)

// Path builds a 3D line string through points.
func Path(points []core.Vec3) (geom.LineString, error) {
	if len(points) < 2 {
		return geom.LineString{}, fmt.Errorf("path must have at least 2 points, got %d", len(points))
	}

	flatCoords := make([]float64, 0, len(points)*3)
	for _, p := range points {
		flatCoords = append(flatCoords, p.X, p.Z, p.Y)
	}

	seq := geom.NewSequence(flatCoords, geom.DimXYZ)
	return geom.NewLineString(seq), nil
}

// PathPoints reads the game positions back out of a line string.
func PathPoints(ls geom.LineString) []core.Vec3 {
	seq := ls.Coordinates()
	points := make([]core.Vec3, seq.Length())
	for i := range points {
		c := seq.Get(i)
		points[i] = core.V3(c.XY.X, c.Z, c.XY.Y)
	}
	return points
}
