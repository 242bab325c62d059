package b2contact

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// Vectors and rotations
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

/// This function is used to ensure that a floating point number is not a NaN or infinity.
func B2IsValid(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

/// A 2D column vector. Arithmetic comes from mgl64 (Add, Sub, Mul, Dot, Len).
type B2Vec2 = mgl64.Vec2

/// A 2D rotation matrix, column major: [cos, sin, -sin, cos].
type B2Rot = mgl64.Mat2

/// Useful constant
var B2Vec2_zero = MakeB2Vec2(0, 0)

func MakeB2Vec2(xIn, yIn float64) B2Vec2 {
	return B2Vec2{xIn, yIn}
}

/// Initialize from an angle in radians
func MakeB2RotFromAngle(anglerad float64) B2Rot {
	return mgl64.Rotate2D(anglerad)
}

/// Get the angle in radians
func B2RotGetAngle(q B2Rot) float64 {
	return math.Atan2(q[1], q[0])
}

/// Does this vector contain finite coordinates?
func B2Vec2IsValid(v B2Vec2) bool {
	return B2IsValid(v[0]) && B2IsValid(v[1])
}

/// Convert a vector into a unit vector. Vectors shorter than epsilon come back as zero.
func B2Vec2Normalize(v B2Vec2) (B2Vec2, float64) {
	length := v.Len()
	if length < B2_flt_epsilon {
		return B2Vec2_zero, 0.0
	}

	return v.Mul(1.0 / length), length
}

/// Perform the cross product on two vectors. In 2D this produces a scalar.
func B2Vec2Cross(a, b B2Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

/// Perform the cross product on a vector and a scalar. In 2D this produces
/// a vector.
func B2Vec2CrossVectorScalar(a B2Vec2, s float64) B2Vec2 {
	return MakeB2Vec2(s*a[1], -s*a[0])
}

/// Perform the cross product on a scalar and a vector. In 2D this produces
/// a vector.
func B2Vec2CrossScalarVector(s float64, a B2Vec2) B2Vec2 {
	return MakeB2Vec2(-s*a[1], s*a[0])
}

func B2Vec2DistanceSquared(a, b B2Vec2) float64 {
	return b.Sub(a).LenSqr()
}

/// Rotate a vector
func B2RotVec2Mul(q B2Rot, v B2Vec2) B2Vec2 {
	return q.Mul2x1(v)
}

/// Inverse rotate a vector
func B2RotVec2MulT(q B2Rot, v B2Vec2) B2Vec2 {
	return q.Transpose().Mul2x1(v)
}

func B2FloatClamp(a, low, high float64) float64 {
	return mgl64.Clamp(a, low, high)
}

///////////////////////////////////////////////////////////////////////////////
/// A transform contains translation and rotation. It is used to represent
/// the position and orientation of rigid frames.
///////////////////////////////////////////////////////////////////////////////
type B2Transform struct {
	P B2Vec2
	Q B2Rot
}

func MakeB2Transform() B2Transform {
	return B2Transform{
		P: B2Vec2_zero,
		Q: mgl64.Ident2(),
	}
}

/// Set this based on the position and angle.
func (t *B2Transform) Set(position B2Vec2, anglerad float64) {
	t.P = position
	t.Q = MakeB2RotFromAngle(anglerad)
}

func B2TransformVec2Mul(T B2Transform, v B2Vec2) B2Vec2 {
	return T.Q.Mul2x1(v).Add(T.P)
}

func B2TransformVec2MulT(T B2Transform, v B2Vec2) B2Vec2 {
	return B2RotVec2MulT(T.Q, v.Sub(T.P))
}

///////////////////////////////////////////////////////////////////////////////
/// This describes the motion of a body during a step. Shapes are defined with
/// respect to the body origin, which may not coincide with the center of mass.
/// The solver moves the center of mass, so the sweep tracks it directly.
///////////////////////////////////////////////////////////////////////////////
type B2Sweep struct {
	LocalCenter B2Vec2  ///< local center of mass position
	C0, C       B2Vec2  ///< center world positions
	A0, A       float64 ///< world angles
}

/// Interpolated transform at beta in [0,1] between the start and end of the step.
func (sweep B2Sweep) GetTransform(xf *B2Transform, beta float64) {
	xf.P = sweep.C0.Mul(1.0 - beta).Add(sweep.C.Mul(beta))
	xf.Q = MakeB2RotFromAngle((1.0-beta)*sweep.A0 + beta*sweep.A)

	// Shift to origin
	xf.P = xf.P.Sub(B2RotVec2Mul(xf.Q, sweep.LocalCenter))
}

/// Normalize an angle in radians to be between -pi and pi
func (sweep *B2Sweep) Normalize() {
	twoPi := 2.0 * B2_pi
	d := twoPi * math.Floor(sweep.A0/twoPi)
	sweep.A0 -= d
	sweep.A -= d
}
