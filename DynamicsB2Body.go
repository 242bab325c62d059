package b2contact

/// The body type.
/// static: zero mass, zero velocity, may be manually moved
/// kinematic: zero mass, non-zero velocity set by user, moved by solver
/// dynamic: positive mass, non-zero velocity determined by forces, moved by solver

var B2BodyType = struct {
	B2_staticBody    uint8
	B2_kinematicBody uint8
	B2_dynamicBody   uint8
}{
	B2_staticBody:    0,
	B2_kinematicBody: 1,
	B2_dynamicBody:   2,
}

/// Index of a body in the world body table. Constraints refer to bodies only
/// through handles, which keeps the write set of every constraint explicit.
type B2BodyHandle int

const B2_nullBody B2BodyHandle = -1

/// A body definition holds all the data needed to construct a rigid body.
/// You can safely re-use body definitions. Shapes are added to a body after construction.
type B2BodyDef struct {

	/// The body type: static, kinematic, or dynamic.
	/// Note: if a dynamic body would have zero mass, the mass is set to one.
	Type uint8

	/// The world position of the body. Avoid creating bodies at the origin
	/// since this can lead to many overlapping shapes.
	Position B2Vec2

	/// The world angle of the body in radians.
	Angle float64

	/// The linear velocity of the body's origin in world co-ordinates.
	LinearVelocity B2Vec2

	/// The angular velocity of the body.
	AngularVelocity float64

	/// Linear damping is use to reduce the linear velocity. The damping parameter
	/// can be larger than 1.0 but the damping effect becomes sensitive to the
	/// time step when the damping parameter is large.
	/// Units are 1/time
	LinearDamping float64

	/// Angular damping is use to reduce the angular velocity.
	/// Units are 1/time
	AngularDamping float64

	/// Should this body be prevented from rotating? Useful for characters.
	FixedRotation bool

	/// Use this to store application specific body data.
	UserData interface{}

	/// Scale the gravity applied to this body.
	GravityScale float64
}

/// This constructor sets the body definition default values.
func MakeB2BodyDef() B2BodyDef {
	return B2BodyDef{
		UserData:        nil,
		Position:        MakeB2Vec2(0, 0),
		Angle:           0.0,
		LinearVelocity:  MakeB2Vec2(0, 0),
		AngularVelocity: 0.0,
		LinearDamping:   0.0,
		AngularDamping:  0.0,
		FixedRotation:   false,
		Type:            B2BodyType.B2_staticBody,
		GravityScale:    1.0,
	}
}

type B2Body struct {
	M_type uint8

	M_handle B2BodyHandle

	M_xf    B2Transform // the body origin transform
	M_sweep B2Sweep     // the swept motion of the center of mass

	M_linearVelocity  B2Vec2
	M_angularVelocity float64

	M_force  B2Vec2
	M_torque float64

	M_fixtures []*B2Fixture

	M_mass, M_invMass float64

	// Rotational inertia about the center of mass.
	M_I, M_invI float64

	M_linearDamping  float64
	M_angularDamping float64
	M_gravityScale   float64

	M_fixedRotation bool

	M_userData interface{}
}

func MakeB2Body(bd *B2BodyDef, handle B2BodyHandle) B2Body {
	B2Assert(B2Vec2IsValid(bd.Position))
	B2Assert(B2Vec2IsValid(bd.LinearVelocity))
	B2Assert(B2IsValid(bd.Angle))
	B2Assert(B2IsValid(bd.AngularVelocity))
	B2Assert(B2IsValid(bd.AngularDamping) && bd.AngularDamping >= 0.0)
	B2Assert(B2IsValid(bd.LinearDamping) && bd.LinearDamping >= 0.0)

	body := B2Body{
		M_type:           bd.Type,
		M_handle:         handle,
		M_fixedRotation:  bd.FixedRotation,
		M_linearDamping:  bd.LinearDamping,
		M_angularDamping: bd.AngularDamping,
		M_gravityScale:   bd.GravityScale,
		M_userData:       bd.UserData,
	}

	body.M_xf.Set(bd.Position, bd.Angle)

	body.M_sweep.LocalCenter = B2Vec2_zero
	body.M_sweep.C0 = body.M_xf.P
	body.M_sweep.C = body.M_xf.P
	body.M_sweep.A0 = bd.Angle
	body.M_sweep.A = bd.Angle

	if body.M_type != B2BodyType.B2_staticBody {
		body.M_linearVelocity = bd.LinearVelocity
		body.M_angularVelocity = bd.AngularVelocity
	}

	if body.M_type == B2BodyType.B2_dynamicBody {
		body.M_mass = 1.0
		body.M_invMass = 1.0
	}

	return body
}

func (body B2Body) GetType() uint8 {
	return body.M_type
}

func (body B2Body) GetHandle() B2BodyHandle {
	return body.M_handle
}

func (body B2Body) GetTransform() B2Transform {
	return body.M_xf
}

func (body B2Body) GetPosition() B2Vec2 {
	return body.M_xf.P
}

func (body B2Body) GetAngle() float64 {
	return body.M_sweep.A
}

func (body B2Body) GetWorldCenter() B2Vec2 {
	return body.M_sweep.C
}

func (body B2Body) GetLocalCenter() B2Vec2 {
	return body.M_sweep.LocalCenter
}

func (body B2Body) GetSweep() B2Sweep {
	return body.M_sweep
}

/// Set the position of the body's origin and rotation.
func (body *B2Body) SetTransform(position B2Vec2, angle float64) {
	body.M_xf.Set(position, angle)

	body.M_sweep.C = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.A = angle

	body.M_sweep.C0 = body.M_sweep.C
	body.M_sweep.A0 = angle
}

func (body *B2Body) SetLinearVelocity(v B2Vec2) {
	if body.M_type == B2BodyType.B2_staticBody {
		return
	}

	body.M_linearVelocity = v
}

func (body B2Body) GetLinearVelocity() B2Vec2 {
	return body.M_linearVelocity
}

func (body *B2Body) SetAngularVelocity(w float64) {
	if body.M_type == B2BodyType.B2_staticBody {
		return
	}

	body.M_angularVelocity = w
}

func (body B2Body) GetAngularVelocity() float64 {
	return body.M_angularVelocity
}

func (body B2Body) GetMass() float64 {
	return body.M_mass
}

func (body B2Body) GetInverseMass() float64 {
	return body.M_invMass
}

func (body B2Body) GetInverseInertia() float64 {
	return body.M_invI
}

/// Rotational inertia about the body origin.
func (body B2Body) GetInertia() float64 {
	return body.M_I + body.M_mass*body.M_sweep.LocalCenter.Dot(body.M_sweep.LocalCenter)
}

func (body B2Body) GetMassData(data *B2MassData) {
	data.Mass = body.M_mass
	data.I = body.GetInertia()
	data.Center = body.M_sweep.LocalCenter
}

/// Override the mass properties. Only dynamic bodies take mass; a dynamic body
/// given a non-positive mass gets a mass of one.
func (body *B2Body) SetMassData(massData *B2MassData) {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return
	}

	body.M_invMass = 0.0
	body.M_I = 0.0
	body.M_invI = 0.0

	body.M_mass = massData.Mass
	if body.M_mass <= 0.0 {
		body.M_mass = 1.0
	}

	body.M_invMass = 1.0 / body.M_mass

	if massData.I > 0.0 && !body.M_fixedRotation {
		body.M_I = massData.I - body.M_mass*massData.Center.Dot(massData.Center)
		B2Assert(body.M_I > 0.0)
		body.M_invI = 1.0 / body.M_I
	}

	// Move center of mass.
	oldCenter := body.M_sweep.C
	body.M_sweep.LocalCenter = massData.Center
	body.M_sweep.C = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.C0 = body.M_sweep.C

	// Update center of mass velocity.
	body.M_linearVelocity = body.M_linearVelocity.Add(B2Vec2CrossScalarVector(body.M_angularVelocity, body.M_sweep.C.Sub(oldCenter)))
}

/// Recompute mass, center of mass and inertia from the attached fixtures.
func (body *B2Body) ResetMassData() {
	// Compute mass data from shapes. Each shape has its own density.
	body.M_mass = 0.0
	body.M_invMass = 0.0
	body.M_I = 0.0
	body.M_invI = 0.0
	body.M_sweep.LocalCenter = B2Vec2_zero

	// Static and kinematic bodies have zero mass.
	if body.M_type == B2BodyType.B2_staticBody || body.M_type == B2BodyType.B2_kinematicBody {
		body.M_sweep.C0 = body.M_xf.P
		body.M_sweep.C = body.M_xf.P
		body.M_sweep.A0 = body.M_sweep.A
		return
	}

	B2Assert(body.M_type == B2BodyType.B2_dynamicBody)

	// Accumulate mass over all fixtures.
	localCenter := B2Vec2_zero
	for _, f := range body.M_fixtures {
		if f.M_density == 0.0 {
			continue
		}

		massData := MakeMassData()
		f.GetMassData(&massData)
		body.M_mass += massData.Mass
		localCenter = localCenter.Add(massData.Center.Mul(massData.Mass))
		body.M_I += massData.I
	}

	// Compute center of mass.
	if body.M_mass > 0.0 {
		body.M_invMass = 1.0 / body.M_mass
		localCenter = localCenter.Mul(body.M_invMass)
	} else {
		// Force all dynamic bodies to have a positive mass.
		body.M_mass = 1.0
		body.M_invMass = 1.0
	}

	if body.M_I > 0.0 && !body.M_fixedRotation {
		// Center the inertia about the center of mass.
		body.M_I -= body.M_mass * localCenter.Dot(localCenter)
		B2Assert(body.M_I > 0.0)
		body.M_invI = 1.0 / body.M_I
	} else {
		body.M_I = 0.0
		body.M_invI = 0.0
	}

	// Move center of mass.
	oldCenter := body.M_sweep.C
	body.M_sweep.LocalCenter = localCenter
	body.M_sweep.C = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.C0 = body.M_sweep.C

	// Update center of mass velocity.
	body.M_linearVelocity = body.M_linearVelocity.Add(B2Vec2CrossScalarVector(body.M_angularVelocity, body.M_sweep.C.Sub(oldCenter)))
}

func (body B2Body) GetWorldPoint(localPoint B2Vec2) B2Vec2 {
	return B2TransformVec2Mul(body.M_xf, localPoint)
}

func (body B2Body) GetLocalPoint(worldPoint B2Vec2) B2Vec2 {
	return B2TransformVec2MulT(body.M_xf, worldPoint)
}

func (body B2Body) GetLinearVelocityFromWorldPoint(worldPoint B2Vec2) B2Vec2 {
	return body.M_linearVelocity.Add(B2Vec2CrossScalarVector(body.M_angularVelocity, worldPoint.Sub(body.M_sweep.C)))
}

func (body B2Body) GetFixtures() []*B2Fixture {
	return body.M_fixtures
}

func (body *B2Body) SetUserData(data interface{}) {
	body.M_userData = data
}

func (body B2Body) GetUserData() interface{} {
	return body.M_userData
}

func (body *B2Body) ApplyForceToCenter(force B2Vec2) {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return
	}

	body.M_force = body.M_force.Add(force)
}

func (body *B2Body) ApplyLinearImpulse(impulse B2Vec2, point B2Vec2) {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return
	}

	body.M_linearVelocity = body.M_linearVelocity.Add(impulse.Mul(body.M_invMass))
	body.M_angularVelocity += body.M_invI * B2Vec2Cross(point.Sub(body.M_sweep.C), impulse)
}

/// Rebuild the cached origin transform from the sweep. Must follow every
/// mutation of M_sweep.C or M_sweep.A.
func (body *B2Body) SynchronizeTransform() {
	body.M_xf.Q = MakeB2RotFromAngle(body.M_sweep.A)
	body.M_xf.P = body.M_sweep.C.Sub(B2RotVec2Mul(body.M_xf.Q, body.M_sweep.LocalCenter))
}

/// Does this body take part in collision response with the other one?
/// At least one of them has to be dynamic.
func (body B2Body) ShouldCollide(other B2Body) bool {
	return body.M_type == B2BodyType.B2_dynamicBody || other.M_type == B2BodyType.B2_dynamicBody
}
