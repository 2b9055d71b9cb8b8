// Package world aggregates an arena boundary and a set of obstacles and
// answers nearest-feature queries against both.
package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/planarsim/internal/geometry"
)

// ErrEmptyWorld indicates a closest-feature query against a world with
// neither walls nor obstacles.
var ErrEmptyWorld = errors.New("world: no walls or obstacles to query")

type FeatureKind int

const (
	FeatureWall FeatureKind = iota
	FeatureObstacle
)

func (k FeatureKind) String() string {
	if k == FeatureWall {
		return "wall"
	}
	return "obstacle"
}

// Feature identifies which wall edge or obstacle produced the most
// recent closest-point result.
type Feature struct {
	Kind  FeatureKind
	Index int
	Shape geometry.Shape
}

// World holds the arena's boundary edges as walls plus an ordered
// obstacle collection. It caches the feature found by the last Closest
// call; a single caller owns each instance.
type World struct {
	arena     *geometry.ConvexPolygon
	walls     []*geometry.Line
	obstacles []geometry.Shape
	nearest   *Feature
}

// New builds a world around an arena polygon. The arena's edges become
// the walls; a nil arena leaves the world wall-less.
func New(arena *geometry.ConvexPolygon) *World {
	w := &World{arena: arena}
	if arena != nil {
		w.walls = arena.Edges()
	}
	return w
}

// AddObstacle appends an obstacle. Insertion order only affects which
// feature is reported when distances tie between obstacles.
func (w *World) AddObstacle(obs geometry.Shape) {
	w.obstacles = append(w.obstacles, obs)
}

func (w *World) Obstacles() []geometry.Shape {
	out := make([]geometry.Shape, len(w.obstacles))
	copy(out, w.obstacles)
	return out
}

// Closest finds the nearest wall edge and the nearest obstacle to p
// independently and returns whichever is strictly closer; walls win
// exact ties. The producing feature is recorded and retrievable via
// NearestFeature until the next query.
func (w *World) Closest(p geometry.Vec2) (geometry.Vec2, float64, error) {
	if len(w.walls) == 0 && len(w.obstacles) == 0 {
		return geometry.Vec2{}, 0, ErrEmptyWorld
	}

	wallDist := math.Inf(1)
	var wallPt geometry.Vec2
	wallIdx := -1
	for k, wall := range w.walls {
		pt, dist, err := wall.Closest(p)
		if err != nil {
			return geometry.Vec2{}, 0, fmt.Errorf("world: wall %d: %w", k, err)
		}
		if dist < wallDist {
			wallPt, wallDist, wallIdx = pt, dist, k
		}
	}

	obsDist := math.Inf(1)
	var obsPt geometry.Vec2
	obsIdx := -1
	for k, obs := range w.obstacles {
		pt, dist, err := obs.Closest(p)
		if err != nil {
			return geometry.Vec2{}, 0, fmt.Errorf("world: obstacle %d: %w", k, err)
		}
		if dist < obsDist {
			obsPt, obsDist, obsIdx = pt, dist, k
		}
	}

	if obsDist < wallDist {
		w.nearest = &Feature{Kind: FeatureObstacle, Index: obsIdx, Shape: w.obstacles[obsIdx]}
		return obsPt, obsDist, nil
	}
	w.nearest = &Feature{Kind: FeatureWall, Index: wallIdx, Shape: w.walls[wallIdx]}
	return wallPt, wallDist, nil
}

// NearestFeature returns the feature recorded by the last Closest call,
// or nil before any query.
func (w *World) NearestFeature() *Feature {
	return w.nearest
}

// Records emits the arena and obstacle shape records for an external
// drawing surface.
func (w *World) Records() []geometry.Record {
	records := make([]geometry.Record, 0, len(w.obstacles)+1)
	if w.arena != nil {
		records = append(records, w.arena.Record())
	}
	for _, obs := range w.obstacles {
		records = append(records, obs.Record())
	}
	return records
}
