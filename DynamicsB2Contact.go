package b2contact

import (
	"math"
)

/// Friction mixing law. The idea is to allow either fixture to drive the friction to zero.
/// For example, anything slides on ice.
func B2MixFriction(friction1, friction2 float64) float64 {
	return math.Sqrt(friction1 * friction2)
}

/// Restitution mixing law. The idea is allow for anything to bounce off an inelastic surface.
/// For example, a superball bounces on anything.
func B2MixRestitution(restitution1, restitution2 float64) float64 {
	if restitution1 > restitution2 {
		return restitution1
	}

	return restitution2
}

/// What the contact solver needs from a contact. Implementations must be
/// backed by pointers: the manifolds returned by GetManifolds are written
/// back by the solver and read again next step for warm starting.
type B2ContactInterface interface {
	/// Both shapes take part in collision response and the contact is touching.
	IsSolid() bool

	/// The manifolds of this contact, usually one. The slice aliases the
	/// contact's own storage.
	GetManifolds() []B2Manifold

	GetFriction() float64
	GetRestitution() float64

	GetBodyA() B2BodyHandle
	GetBodyB() B2BodyHandle
}

var B2Contact_Flag = struct {
	// Used when crawling contact graph when forming islands.
	E_islandFlag uint32
	// Set when the shapes are touching.
	E_touchingFlag uint32
	// This contact can be disabled (by user)
	E_enabledFlag uint32
}{
	E_islandFlag:   0x0001,
	E_touchingFlag: 0x0002,
	E_enabledFlag:  0x0004,
}

/// The class manages contact between two shapes. A contact exists for each
/// overlapping (or nearly overlapping) pair of fixtures. The world keeps the
/// contact alive across steps so impulses can be matched for warm starting.
type B2Contact struct {
	M_flags uint32

	M_fixtureA *B2Fixture
	M_fixtureB *B2Fixture

	M_manifolds     [B2_maxManifolds]B2Manifold
	M_manifoldCount int

	M_friction    float64
	M_restitution float64
}

/// Edges always end up as fixture A so the normal points into the circle.
func NewB2Contact(fixtureA *B2Fixture, fixtureB *B2Fixture) *B2Contact {
	if fixtureB.GetType() == B2Shape_Type.E_edge && fixtureA.GetType() != B2Shape_Type.E_edge {
		fixtureA, fixtureB = fixtureB, fixtureA
	}

	return &B2Contact{
		M_flags:       B2Contact_Flag.E_enabledFlag,
		M_fixtureA:    fixtureA,
		M_fixtureB:    fixtureB,
		M_friction:    B2MixFriction(fixtureA.M_friction, fixtureB.M_friction),
		M_restitution: B2MixRestitution(fixtureA.M_restitution, fixtureB.M_restitution),
	}
}

func (contact B2Contact) GetFixtureA() *B2Fixture {
	return contact.M_fixtureA
}

func (contact B2Contact) GetFixtureB() *B2Fixture {
	return contact.M_fixtureB
}

func (contact B2Contact) GetBodyA() B2BodyHandle {
	return contact.M_fixtureA.M_body
}

func (contact B2Contact) GetBodyB() B2BodyHandle {
	return contact.M_fixtureB.M_body
}

func (contact *B2Contact) GetManifolds() []B2Manifold {
	return contact.M_manifolds[:contact.M_manifoldCount]
}

func (contact *B2Contact) GetManifold() *B2Manifold {
	return &contact.M_manifolds[0]
}

func (contact B2Contact) IsTouching() bool {
	return (contact.M_flags & B2Contact_Flag.E_touchingFlag) == B2Contact_Flag.E_touchingFlag
}

func (contact *B2Contact) SetEnabled(flag bool) {
	if flag {
		contact.M_flags |= B2Contact_Flag.E_enabledFlag
	} else {
		contact.M_flags &= ^B2Contact_Flag.E_enabledFlag
	}
}

func (contact B2Contact) IsEnabled() bool {
	return (contact.M_flags & B2Contact_Flag.E_enabledFlag) == B2Contact_Flag.E_enabledFlag
}

func (contact B2Contact) IsSensor() bool {
	return contact.M_fixtureA.M_isSensor || contact.M_fixtureB.M_isSensor
}

func (contact B2Contact) IsSolid() bool {
	return contact.IsTouching() && contact.IsEnabled() && !contact.IsSensor()
}

func (contact *B2Contact) SetFriction(friction float64) {
	contact.M_friction = friction
}

func (contact B2Contact) GetFriction() float64 {
	return contact.M_friction
}

func (contact *B2Contact) ResetFriction() {
	contact.M_friction = B2MixFriction(contact.M_fixtureA.M_friction, contact.M_fixtureB.M_friction)
}

func (contact *B2Contact) SetRestitution(restitution float64) {
	contact.M_restitution = restitution
}

func (contact B2Contact) GetRestitution() float64 {
	return contact.M_restitution
}

func (contact *B2Contact) ResetRestitution() {
	contact.M_restitution = B2MixRestitution(contact.M_fixtureA.M_restitution, contact.M_fixtureB.M_restitution)
}

/// Evaluate this contact with the given transforms.
func (contact *B2Contact) Evaluate(manifold *B2Manifold, xfA B2Transform, xfB B2Transform) {
	shapeA := contact.M_fixtureA.M_shape
	shapeB := contact.M_fixtureB.M_shape

	switch {
	case shapeA.GetType() == B2Shape_Type.E_circle && shapeB.GetType() == B2Shape_Type.E_circle:
		B2CollideCircles(manifold, shapeA.(*B2CircleShape), xfA, shapeB.(*B2CircleShape), xfB)
	case shapeA.GetType() == B2Shape_Type.E_edge && shapeB.GetType() == B2Shape_Type.E_circle:
		B2CollideEdgeAndCircle(manifold, shapeA.(*B2EdgeShape), xfA, shapeB.(*B2CircleShape), xfB)
	default:
		manifold.PointCount = 0
	}
}

/// Regenerate the manifold from the current body transforms, carry the old
/// impulses over to points with matching ids and fire the listener.
func B2ContactUpdate(contact *B2Contact, bodies []B2Body, listener B2ContactListenerInterface) {
	oldManifold := *contact.GetManifold()

	// Re-enable this contact.
	contact.M_flags |= B2Contact_Flag.E_enabledFlag

	touching := false
	wasTouching := contact.IsTouching()

	xfA := bodies[contact.GetBodyA()].GetTransform()
	xfB := bodies[contact.GetBodyB()].GetTransform()

	manifold := contact.GetManifold()
	if contact.IsSensor() {
		// Sensors don't generate manifolds.
		contact.Evaluate(manifold, xfA, xfB)
		touching = manifold.PointCount > 0 && manifold.Points[0].Separation < 0.0
		manifold.PointCount = 0
	} else {
		contact.Evaluate(manifold, xfA, xfB)
		touching = manifold.PointCount > 0

		// Match old contact ids to new contact ids and copy the
		// stored impulses to warm start the solver.
		for i := 0; i < manifold.PointCount; i++ {
			mp2 := &manifold.Points[i]
			mp2.NormalImpulse = 0.0
			mp2.TangentImpulse = 0.0
			id2 := mp2.Id

			for j := 0; j < oldManifold.PointCount; j++ {
				mp1 := &oldManifold.Points[j]

				if mp1.Id.Key() == id2.Key() {
					mp2.NormalImpulse = mp1.NormalImpulse
					mp2.TangentImpulse = mp1.TangentImpulse
					break
				}
			}
		}
	}

	contact.M_manifoldCount = 0
	if touching {
		contact.M_flags |= B2Contact_Flag.E_touchingFlag
		if manifold.PointCount > 0 {
			contact.M_manifoldCount = 1
		}
	} else {
		contact.M_flags &= ^B2Contact_Flag.E_touchingFlag
	}

	if !wasTouching && touching && listener != nil {
		listener.BeginContact(contact)
	}

	if wasTouching && !touching && listener != nil {
		listener.EndContact(contact)
	}

	if !contact.IsSensor() && touching && listener != nil {
		listener.PreSolve(contact, oldManifold)
	}
}
