package b2contact

/// Compute the collision manifold between two circles. A manifold is produced
/// while the circles are closer than B2_speculativeDistance, so the separation
/// may be positive.
func B2CollideCircles(manifold *B2Manifold, circleA *B2CircleShape, xfA B2Transform, circleB *B2CircleShape, xfB B2Transform) {

	manifold.PointCount = 0

	pA := B2TransformVec2Mul(xfA, circleA.M_p)
	pB := B2TransformVec2Mul(xfB, circleB.M_p)

	d := pB.Sub(pA)
	distSqr := d.Dot(d)
	rA := circleA.M_radius
	rB := circleB.M_radius
	radius := rA + rB
	reach := radius + B2_speculativeDistance
	if distSqr > reach*reach {
		return
	}

	normal, distance := B2Vec2Normalize(d)
	if distance == 0.0 {
		// Concentric circles: any direction works, pick up.
		normal = MakeB2Vec2(0.0, 1.0)
	}

	cA := pA.Add(normal.Mul(rA))
	cB := pB.Sub(normal.Mul(rB))
	p := cA.Add(cB).Mul(0.5)

	manifold.Normal = normal
	manifold.PointCount = 1

	mp := &manifold.Points[0]
	mp.LocalPointA = B2TransformVec2MulT(xfA, p)
	mp.LocalPointB = B2TransformVec2MulT(xfB, p)
	mp.Separation = distance - radius
	mp.Id.SetKey(0)
}
