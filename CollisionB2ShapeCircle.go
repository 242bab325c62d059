package b2contact

/// A circle shape.
type B2CircleShape struct {
	B2Shape
	/// Position
	M_p B2Vec2
}

func MakeB2CircleShape() B2CircleShape {
	return B2CircleShape{
		B2Shape: B2Shape{
			M_type:   B2Shape_Type.E_circle,
			M_radius: 0.0,
		},
		M_p: MakeB2Vec2(0, 0),
	}
}

func NewB2CircleShape() *B2CircleShape {
	res := MakeB2CircleShape()
	return &res
}

func (shape B2CircleShape) Clone() B2ShapeInterface {
	clone := NewB2CircleShape()
	clone.M_radius = shape.M_radius
	clone.M_p = shape.M_p
	return clone
}

func (shape B2CircleShape) TestPoint(transform B2Transform, p B2Vec2) bool {
	center := B2TransformVec2Mul(transform, shape.M_p)
	return B2Vec2DistanceSquared(center, p) <= shape.M_radius*shape.M_radius
}

func (shape B2CircleShape) ComputeAABB(aabb *B2AABB, transform B2Transform) {
	p := B2TransformVec2Mul(transform, shape.M_p)
	aabb.LowerBound = MakeB2Vec2(p[0]-shape.M_radius, p[1]-shape.M_radius)
	aabb.UpperBound = MakeB2Vec2(p[0]+shape.M_radius, p[1]+shape.M_radius)
}

func (shape B2CircleShape) ComputeMass(massData *B2MassData, density float64) {
	massData.Mass = density * B2_pi * shape.M_radius * shape.M_radius
	massData.Center = shape.M_p

	// inertia about the local origin
	massData.I = massData.Mass * (0.5*shape.M_radius*shape.M_radius + shape.M_p.Dot(shape.M_p))
}
