package b2contact

import "math"

/// A line segment (edge) shape. Edges have no volume and are meant for
/// static ground.
type B2EdgeShape struct {
	B2Shape
	/// These are the edge vertices
	M_vertex1, M_vertex2 B2Vec2
}

func MakeB2EdgeShape() B2EdgeShape {
	return B2EdgeShape{
		B2Shape: B2Shape{
			M_type:   B2Shape_Type.E_edge,
			M_radius: 2.0 * B2_linearSlop,
		},
	}
}

func NewB2EdgeShape() *B2EdgeShape {
	res := MakeB2EdgeShape()
	return &res
}

func (edge *B2EdgeShape) Set(v1 B2Vec2, v2 B2Vec2) {
	edge.M_vertex1 = v1
	edge.M_vertex2 = v2
}

func (edge B2EdgeShape) Clone() B2ShapeInterface {
	clone := NewB2EdgeShape()
	clone.M_radius = edge.M_radius
	clone.M_vertex1 = edge.M_vertex1
	clone.M_vertex2 = edge.M_vertex2
	return clone
}

func (edge B2EdgeShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	return false
}

func (edge B2EdgeShape) ComputeAABB(aabb *B2AABB, xf B2Transform) {
	v1 := B2TransformVec2Mul(xf, edge.M_vertex1)
	v2 := B2TransformVec2Mul(xf, edge.M_vertex2)

	r := edge.M_radius
	aabb.LowerBound = MakeB2Vec2(math.Min(v1[0], v2[0])-r, math.Min(v1[1], v2[1])-r)
	aabb.UpperBound = MakeB2Vec2(math.Max(v1[0], v2[0])+r, math.Max(v1[1], v2[1])+r)
}

func (edge B2EdgeShape) ComputeMass(massData *B2MassData, density float64) {
	massData.Mass = 0.0
	massData.Center = edge.M_vertex1.Add(edge.M_vertex2).Mul(0.5)
	massData.I = 0.0
}
