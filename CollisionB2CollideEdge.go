package b2contact

/// Compute the collision manifold between an edge and a circle. The normal
/// points from the edge towards the circle center.
func B2CollideEdgeAndCircle(manifold *B2Manifold, edgeA *B2EdgeShape, xfA B2Transform, circleB *B2CircleShape, xfB B2Transform) {
	manifold.PointCount = 0

	// Compute circle in frame of edge
	Q := B2TransformVec2MulT(xfA, B2TransformVec2Mul(xfB, circleB.M_p))

	A := edgeA.M_vertex1
	B := edgeA.M_vertex2
	e := B.Sub(A)

	// Barycentric coordinates
	u := e.Dot(B.Sub(Q))
	v := e.Dot(Q.Sub(A))

	radius := edgeA.M_radius + circleB.M_radius

	cf := B2ContactFeature{
		IndexB: 0,
		TypeB:  B2ContactFeature_Type.E_vertex,
	}

	var P B2Vec2
	switch {
	case v <= 0.0:
		// Region A
		P = A
		cf.IndexA = 0
		cf.TypeA = B2ContactFeature_Type.E_vertex
	case u <= 0.0:
		// Region B
		P = B
		cf.IndexA = 1
		cf.TypeA = B2ContactFeature_Type.E_vertex
	default:
		// Region AB
		den := e.Dot(e)
		B2Assert(den > 0.0)
		P = A.Mul(u).Add(B.Mul(v)).Mul(1.0 / den)
		cf.IndexA = 0
		cf.TypeA = B2ContactFeature_Type.E_face
	}

	d := Q.Sub(P)
	reach := radius + B2_speculativeDistance
	if d.Dot(d) > reach*reach {
		return
	}

	n, distance := B2Vec2Normalize(d)
	if distance == 0.0 {
		// Circle center on the edge: push out along the edge's left normal.
		n, _ = B2Vec2Normalize(MakeB2Vec2(-e[1], e[0]))
	}

	// Witness points in the edge frame, then the shared midpoint in world.
	wA := P.Add(n.Mul(edgeA.M_radius))
	wB := Q.Sub(n.Mul(circleB.M_radius))
	p := B2TransformVec2Mul(xfA, wA.Add(wB).Mul(0.5))

	manifold.Normal = B2RotVec2Mul(xfA.Q, n)
	manifold.PointCount = 1

	mp := &manifold.Points[0]
	mp.LocalPointA = B2TransformVec2MulT(xfA, p)
	mp.LocalPointB = B2TransformVec2MulT(xfB, p)
	mp.Separation = distance - radius
	mp.Id = B2ContactID(cf)
}
