package b2contact_test

import (
	"math"
	"testing"

	"github.com/ByteArena/b2contact"
)

func identity() b2contact.B2Transform {
	return b2contact.MakeB2Transform()
}

func translated(x, y float64) b2contact.B2Transform {
	xf := b2contact.MakeB2Transform()
	xf.Set(b2contact.MakeB2Vec2(x, y), 0.0)
	return xf
}

func TestCollideCircles(t *testing.T) {
	circle := b2contact.MakeB2CircleShape()
	circle.M_radius = 0.5

	for _, tc := range []struct {
		name       string
		distance   float64
		points     int
		separation float64
	}{
		{"overlapping", 0.9, 1, -0.1},
		{"touching", 1.0, 1, 0.0},
		{"speculative", 1.01, 1, 0.01},
		{"apart", 1.5, 0, 0.0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			manifold := b2contact.NewB2Manifold()
			b2contact.B2CollideCircles(manifold, &circle, identity(), &circle, translated(tc.distance, 0.0))

			if manifold.PointCount != tc.points {
				t.Fatalf("point count %d, want %d", manifold.PointCount, tc.points)
			}

			if tc.points == 0 {
				return
			}

			if math.Abs(manifold.Points[0].Separation-tc.separation) > 1e-12 {
				t.Fatalf("separation %v, want %v", manifold.Points[0].Separation, tc.separation)
			}

			if manifold.Normal != b2contact.MakeB2Vec2(1.0, 0.0) {
				t.Fatalf("normal %v does not point from A to B", manifold.Normal)
			}

			// Both anchors name the same world point.
			world := manifold.GetWorldPoints(identity(), translated(tc.distance, 0.0))
			expected := b2contact.MakeB2Vec2(0.5*tc.distance, 0.0)
			if b2contact.B2Vec2DistanceSquared(world[0], expected) > 1e-20 {
				t.Fatalf("world point %v, want %v", world[0], expected)
			}
		})
	}
}

func TestCollideConcentricCircles(t *testing.T) {
	circle := b2contact.MakeB2CircleShape()
	circle.M_radius = 0.25

	manifold := b2contact.NewB2Manifold()
	b2contact.B2CollideCircles(manifold, &circle, identity(), &circle, identity())

	if manifold.PointCount != 1 {
		t.Fatalf("point count %d", manifold.PointCount)
	}

	if manifold.Normal != b2contact.MakeB2Vec2(0.0, 1.0) {
		t.Fatalf("normal %v", manifold.Normal)
	}

	if manifold.Points[0].Separation != -0.5 {
		t.Fatalf("separation %v", manifold.Points[0].Separation)
	}
}

func TestCollideEdgeAndCircle(t *testing.T) {
	edge := b2contact.MakeB2EdgeShape()
	edge.Set(b2contact.MakeB2Vec2(-5.0, 0.0), b2contact.MakeB2Vec2(5.0, 0.0))

	circle := b2contact.MakeB2CircleShape()
	circle.M_radius = 0.5

	for _, tc := range []struct {
		name     string
		x, y     float64
		points   int
		normal   b2contact.B2Vec2
		featureA uint8
	}{
		{"face", 1.0, 0.5, 1, b2contact.MakeB2Vec2(0.0, 1.0), b2contact.B2ContactFeature_Type.E_face},
		{"vertex", 5.3, 0.4, 1, b2contact.MakeB2Vec2(0.6, 0.8), b2contact.B2ContactFeature_Type.E_vertex},
		{"above", 0.0, 2.0, 0, b2contact.B2Vec2{}, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			manifold := b2contact.NewB2Manifold()
			b2contact.B2CollideEdgeAndCircle(manifold, &edge, identity(), &circle, translated(tc.x, tc.y))

			if manifold.PointCount != tc.points {
				t.Fatalf("point count %d, want %d", manifold.PointCount, tc.points)
			}

			if tc.points == 0 {
				return
			}

			if b2contact.B2Vec2DistanceSquared(manifold.Normal, tc.normal) > 1e-20 {
				t.Fatalf("normal %v, want %v", manifold.Normal, tc.normal)
			}

			if manifold.Points[0].Id.TypeA != tc.featureA {
				t.Fatalf("feature type %d, want %d", manifold.Points[0].Id.TypeA, tc.featureA)
			}
		})
	}
}

func TestCollideEdgeRadius(t *testing.T) {
	edge := b2contact.MakeB2EdgeShape()
	edge.Set(b2contact.MakeB2Vec2(-5.0, 0.0), b2contact.MakeB2Vec2(5.0, 0.0))

	circle := b2contact.MakeB2CircleShape()
	circle.M_radius = 0.5

	manifold := b2contact.NewB2Manifold()
	b2contact.B2CollideEdgeAndCircle(manifold, &edge, identity(), &circle, translated(0.0, 0.5))

	// The edge is skinned by two linear slops.
	want := -2.0 * b2contact.B2_linearSlop
	if math.Abs(manifold.Points[0].Separation-want) > 1e-12 {
		t.Fatalf("separation %v, want %v", manifold.Points[0].Separation, want)
	}
}
