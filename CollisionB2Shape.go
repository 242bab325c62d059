package b2contact

/// This holds the mass data computed for a shape.
type B2MassData struct {
	/// The mass of the shape, usually in kilograms.
	Mass float64

	/// The position of the shape's centroid relative to the shape's origin.
	Center B2Vec2

	/// The rotational inertia of the shape about the local origin.
	I float64
}

func MakeMassData() B2MassData {
	return B2MassData{
		Mass:   0.0,
		Center: MakeB2Vec2(0, 0),
		I:      0.0,
	}
}

/// An axis aligned bounding box.
type B2AABB struct {
	LowerBound B2Vec2 ///< the lower vertex
	UpperBound B2Vec2 ///< the upper vertex
}

/// Does this aabb overlap the other one, grown by margin on every side?
func (aabb B2AABB) OverlapsWithMargin(other B2AABB, margin float64) bool {
	if other.LowerBound[0]-aabb.UpperBound[0] > margin || other.LowerBound[1]-aabb.UpperBound[1] > margin {
		return false
	}

	if aabb.LowerBound[0]-other.UpperBound[0] > margin || aabb.LowerBound[1]-other.UpperBound[1] > margin {
		return false
	}

	return true
}

/// A shape is used for collision detection. Only the shapes the demo world
/// needs are provided: circles for dynamic bodies and edges for static ground.

var B2Shape_Type = struct {
	E_circle    uint8
	E_edge      uint8
	E_typeCount uint8
}{
	E_circle:    0,
	E_edge:      1,
	E_typeCount: 2,
}

type B2ShapeInterface interface {
	/// Clone the concrete shape.
	Clone() B2ShapeInterface

	/// Get the type of this shape. You can use this to down cast to the concrete shape.
	GetType() uint8

	/// Get the skin radius of this shape.
	GetRadius() float64

	/// Test a point for containment in this shape.
	TestPoint(xf B2Transform, p B2Vec2) bool

	/// Given a transform, compute the associated axis aligned bounding box.
	ComputeAABB(aabb *B2AABB, xf B2Transform)

	/// Compute the mass properties of this shape using its dimensions and density.
	/// The inertia tensor is computed about the local origin.
	ComputeMass(massData *B2MassData, density float64)
}

type B2Shape struct {
	M_type uint8

	/// Radius of a shape. For edges this is the skin thickness.
	M_radius float64
}

func (shape B2Shape) GetType() uint8 {
	return shape.M_type
}

func (shape B2Shape) GetRadius() float64 {
	return shape.M_radius
}
