package b2contact

import (
	"math"
)

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// Contact manifolds
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

const B2_nullFeature uint8 = math.MaxUint8

var B2ContactFeature_Type = struct {
	E_vertex uint8
	E_face   uint8
}{
	E_vertex: 0,
	E_face:   1,
}

/// The features that intersect to form the contact point
/// This must be 4 bytes or less.
type B2ContactFeature struct {
	IndexA uint8 ///< Feature index on shapeA
	IndexB uint8 ///< Feature index on shapeB
	TypeA  uint8 ///< The feature type on shapeA
	TypeB  uint8 ///< The feature type on shapeB
}

type B2ContactID B2ContactFeature

/// Contact ids to facilitate warm starting.
///< Used to quickly compare contact ids.
func (v B2ContactID) Key() uint32 {
	var key uint32 = 0
	key |= uint32(v.IndexA)
	key |= uint32(v.IndexB) << 8
	key |= uint32(v.TypeA) << 16
	key |= uint32(v.TypeB) << 24
	return key
}

func (v *B2ContactID) SetKey(key uint32) {
	v.IndexA = uint8(key & 0xFF)
	v.IndexB = uint8(key >> 8 & 0xFF)
	v.TypeA = uint8(key >> 16 & 0xFF)
	v.TypeB = uint8(key >> 24 & 0xFF)
}

/// A manifold point is a contact point belonging to a contact manifold.
/// Both local points describe the same world point at the time the manifold
/// was built, one in each body's frame, so the solver can track how the
/// bodies drift apart during position correction.
/// The impulses are written back by the solver and read again next step for
/// warm starting.
type B2ManifoldPoint struct {
	LocalPointA    B2Vec2      ///< contact point in body A's frame
	LocalPointB    B2Vec2      ///< contact point in body B's frame
	Separation     float64     ///< signed distance along the normal, negative when overlapping
	NormalImpulse  float64     ///< the non-penetration impulse
	TangentImpulse float64     ///< the friction impulse
	Id             B2ContactID ///< uniquely identifies a contact point between two shapes
}

/// A manifold for two touching convex shapes. The normal is in world
/// coordinates and points from A to B. This structure is stored across time
/// steps, so we keep it small.
type B2Manifold struct {
	Points     [B2_maxManifoldPoints]B2ManifoldPoint ///< the points of contact
	Normal     B2Vec2                                ///< world normal from A to B
	PointCount int                                   ///< the number of manifold points
}

func NewB2Manifold() *B2Manifold {
	return &B2Manifold{}
}

/// World position of every manifold point given the current body transforms.
/// The two anchors disagree once the bodies moved; the midpoint is reported.
func (manifold B2Manifold) GetWorldPoints(xfA B2Transform, xfB B2Transform) [B2_maxManifoldPoints]B2Vec2 {
	var points [B2_maxManifoldPoints]B2Vec2
	for i := 0; i < manifold.PointCount; i++ {
		pA := B2TransformVec2Mul(xfA, manifold.Points[i].LocalPointA)
		pB := B2TransformVec2Mul(xfB, manifold.Points[i].LocalPointB)
		points[i] = pA.Add(pB).Mul(0.5)
	}

	return points
}
