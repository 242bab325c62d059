package b2contact

import (
	"github.com/pkg/errors"
)

var B2World_Flags = struct {
	E_newFixture  int
	E_locked      int
	E_clearForces int
}{
	E_newFixture:  0x0001,
	E_locked:      0x0002,
	E_clearForces: 0x0004,
}

type b2FixturePair struct {
	fixtureA *B2Fixture
	fixtureB *B2Fixture
}

/// The world owns the body table and keeps contacts alive across steps so the
/// solver can be warm started. Pair finding is brute force.
type B2World struct {
	M_flags int

	M_bodies []B2Body

	M_contacts     []*B2Contact
	M_contactIndex map[b2FixturePair]*B2Contact

	M_contactFilter   B2ContactFilterInterface
	M_contactListener B2ContactListenerInterface

	M_gravity  B2Vec2
	M_settings B2ContactSolverSettings

	// This is used to compute the time step ratio to
	// support a variable time step.
	M_inv_dt0 float64

	M_warmStarting bool

	M_profile B2Profile
}

func MakeB2World(gravity B2Vec2) B2World {
	return B2World{
		M_flags:         B2World_Flags.E_clearForces,
		M_bodies:        make([]B2Body, 0),
		M_contacts:      make([]*B2Contact, 0),
		M_contactIndex:  make(map[b2FixturePair]*B2Contact),
		M_contactFilter: &B2ContactFilter{},
		M_gravity:       gravity,
		M_settings:      MakeB2ContactSolverSettings(),
		M_inv_dt0:       0.0,
		M_warmStarting:  true,
	}
}

func (world B2World) GetBodyCount() int {
	return len(world.M_bodies)
}

/// The body behind a handle. The pointer is invalidated by CreateBody.
func (world *B2World) GetBody(handle B2BodyHandle) *B2Body {
	B2Assert(handle >= 0 && int(handle) < len(world.M_bodies))
	return &world.M_bodies[handle]
}

func (world B2World) GetBodies() []B2Body {
	return world.M_bodies
}

func (world B2World) GetContactCount() int {
	return len(world.M_contacts)
}

/// Contacts in creation order.
func (world B2World) GetContacts() []*B2Contact {
	return world.M_contacts
}

func (world *B2World) SetGravity(gravity B2Vec2) {
	world.M_gravity = gravity
}

func (world B2World) GetGravity() B2Vec2 {
	return world.M_gravity
}

func (world B2World) IsLocked() bool {
	return (world.M_flags & B2World_Flags.E_locked) == B2World_Flags.E_locked
}

func (world *B2World) SetAutoClearForces(flag bool) {
	if flag {
		world.M_flags |= B2World_Flags.E_clearForces
	} else {
		world.M_flags &= ^B2World_Flags.E_clearForces
	}
}

func (world B2World) GetAutoClearForces() bool {
	return (world.M_flags & B2World_Flags.E_clearForces) == B2World_Flags.E_clearForces
}

func (world *B2World) SetWarmStarting(flag bool) {
	world.M_warmStarting = flag
}

func (world B2World) GetWarmStarting() bool {
	return world.M_warmStarting
}

func (world *B2World) SetContactFilter(filter B2ContactFilterInterface) {
	world.M_contactFilter = filter
}

func (world *B2World) SetContactListener(listener B2ContactListenerInterface) {
	world.M_contactListener = listener
}

/// Replace the solver tunables used by the following steps.
func (world *B2World) SetSettings(settings B2ContactSolverSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	world.M_settings = settings
	return nil
}

func (world B2World) GetSettings() B2ContactSolverSettings {
	return world.M_settings
}

func (world B2World) GetProfile() B2Profile {
	return world.M_profile
}

func (world *B2World) CreateBody(def *B2BodyDef) B2BodyHandle {
	B2Assert(world.IsLocked() == false)

	handle := B2BodyHandle(len(world.M_bodies))
	world.M_bodies = append(world.M_bodies, MakeB2Body(def, handle))

	return handle
}

func (world *B2World) CreateFixture(handle B2BodyHandle, def *B2FixtureDef) *B2Fixture {
	B2Assert(world.IsLocked() == false)

	body := world.GetBody(handle)
	fixture := NewB2Fixture(handle, def)
	body.M_fixtures = append(body.M_fixtures, fixture)

	// Adjust mass properties if needed.
	if fixture.M_density > 0.0 {
		body.ResetMassData()
	}

	// Let the world know we have a new fixture. This will cause new contacts
	// to be created at the beginning of the next time step.
	world.M_flags |= B2World_Flags.E_newFixture

	return fixture
}

/// Create contacts for every fixture pair whose boxes are within the
/// speculative distance and that are not tracked yet.
func (world *B2World) FindNewContacts() {
	for i := range world.M_bodies {
		bodyA := &world.M_bodies[i]

		for j := i + 1; j < len(world.M_bodies); j++ {
			bodyB := &world.M_bodies[j]

			if !bodyA.ShouldCollide(*bodyB) {
				continue
			}

			for _, fixtureA := range bodyA.M_fixtures {
				aabbA := fixtureA.GetAABB(bodyA.M_xf)

				for _, fixtureB := range bodyB.M_fixtures {
					if world.contactKnown(fixtureA, fixtureB) {
						continue
					}

					if world.M_contactFilter != nil && !world.M_contactFilter.ShouldCollide(fixtureA, fixtureB) {
						continue
					}

					if !aabbA.OverlapsWithMargin(fixtureB.GetAABB(bodyB.M_xf), B2_speculativeDistance) {
						continue
					}

					contact := NewB2Contact(fixtureA, fixtureB)
					world.M_contactIndex[b2FixturePair{contact.M_fixtureA, contact.M_fixtureB}] = contact
					world.M_contacts = append(world.M_contacts, contact)
				}
			}
		}
	}
}

/// Destroy contacts whose boxes drifted apart and update the others.
func (world *B2World) Collide() {
	kept := world.M_contacts[:0]

	for _, contact := range world.M_contacts {
		fixtureA := contact.GetFixtureA()
		fixtureB := contact.GetFixtureB()
		xfA := world.M_bodies[fixtureA.M_body].M_xf
		xfB := world.M_bodies[fixtureB.M_body].M_xf

		if !fixtureA.GetAABB(xfA).OverlapsWithMargin(fixtureB.GetAABB(xfB), B2_speculativeDistance) {
			if contact.IsTouching() && world.M_contactListener != nil {
				world.M_contactListener.EndContact(contact)
			}

			world.destroyContact(contact)
			continue
		}

		B2ContactUpdate(contact, world.M_bodies, world.M_contactListener)
		kept = append(kept, contact)
	}

	for i := len(kept); i < len(world.M_contacts); i++ {
		world.M_contacts[i] = nil
	}
	world.M_contacts = kept
}

func (world *B2World) destroyContact(contact *B2Contact) {
	delete(world.M_contactIndex, b2FixturePair{contact.M_fixtureA, contact.M_fixtureB})
}

/// Contacts are indexed in their own fixture order, which may differ from the
/// body order used while searching.
func (world *B2World) contactKnown(fixtureA, fixtureB *B2Fixture) bool {
	if _, ok := world.M_contactIndex[b2FixturePair{fixtureA, fixtureB}]; ok {
		return true
	}

	_, ok := world.M_contactIndex[b2FixturePair{fixtureB, fixtureA}]
	return ok
}

/// Find islands, integrate and solve constraints.
func (world *B2World) Solve(step B2TimeStep) error {
	world.M_profile.SolveInit = 0.0
	world.M_profile.SolveVelocity = 0.0
	world.M_profile.SolvePosition = 0.0
	world.M_profile.PositionIterations = 0
	world.M_profile.PositionSolved = true

	bodyCount := len(world.M_bodies)

	// Contact graph: solid contacts per body.
	edges := make([][]*B2Contact, bodyCount)
	for _, contact := range world.M_contacts {
		if !contact.IsSolid() || len(contact.GetManifolds()) == 0 {
			continue
		}

		a := contact.GetBodyA()
		b := contact.GetBodyB()
		edges[a] = append(edges[a], contact)
		edges[b] = append(edges[b], contact)
	}

	// Islands are solved one after the other, so a contact that cannot be
	// built has to be found before the first island moves.
	checkDef := MakeB2ContactSolverDef()
	checkDef.Step = step
	checkDef.Bodies = world.M_bodies
	checkDef.Settings = world.M_settings
	for _, contact := range world.M_contacts {
		if contact.IsSolid() && len(contact.GetManifolds()) > 0 {
			checkDef.Contacts = append(checkDef.Contacts, contact)
		}
	}

	if err := B2CheckContactSolverDef(&checkDef); err != nil {
		return errors.Wrap(err, "contact check")
	}

	bodyVisited := make([]bool, bodyCount)
	contactVisited := make(map[*B2Contact]bool)

	island := MakeB2Island(world.M_bodies, world.M_contactListener)
	stack := make([]B2BodyHandle, 0, bodyCount)

	for seed := range world.M_bodies {
		if bodyVisited[seed] {
			continue
		}

		// The seed can be dynamic or kinematic.
		if world.M_bodies[seed].GetType() == B2BodyType.B2_staticBody {
			continue
		}

		// Reset island and stack.
		island.Clear()
		stack = append(stack[:0], B2BodyHandle(seed))
		bodyVisited[seed] = true

		// Perform a depth first search (DFS) on the constraint graph.
		for len(stack) > 0 {
			handle := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			island.AddBody(handle)

			// To keep islands as small as possible, we don't
			// propagate islands across static bodies.
			if world.M_bodies[handle].GetType() == B2BodyType.B2_staticBody {
				continue
			}

			for _, contact := range edges[handle] {
				if contactVisited[contact] {
					continue
				}

				island.AddContact(contact)
				contactVisited[contact] = true

				other := contact.GetBodyA()
				if other == handle {
					other = contact.GetBodyB()
				}

				if bodyVisited[other] {
					continue
				}

				stack = append(stack, other)
				bodyVisited[other] = true
			}
		}

		profile := MakeB2Profile()
		if err := island.Solve(&profile, step, world.M_gravity, world.M_settings); err != nil {
			return errors.Wrapf(err, "island seeded by body %d", seed)
		}

		world.M_profile.SolveInit += profile.SolveInit
		world.M_profile.SolveVelocity += profile.SolveVelocity
		world.M_profile.SolvePosition += profile.SolvePosition
		if profile.PositionIterations > world.M_profile.PositionIterations {
			world.M_profile.PositionIterations = profile.PositionIterations
		}
		world.M_profile.PositionSolved = world.M_profile.PositionSolved && profile.PositionSolved

		// Allow static bodies to participate in other islands.
		for _, handle := range island.M_bodies {
			if world.M_bodies[handle].GetType() == B2BodyType.B2_staticBody {
				bodyVisited[handle] = false
			}
		}
	}

	// Look for new contacts.
	world.FindNewContacts()

	return nil
}

/// Take a time step. This performs collision detection, integration,
/// and constraint solution. When a contact cannot be solved the error is
/// returned before any body is integrated; contacts are already updated.
func (world *B2World) Step(dt float64, velocityIterations int, positionIterations int) error {
	stepTimer := MakeB2Timer()

	// If new fixtures were added, we need to find the new contacts.
	if (world.M_flags & B2World_Flags.E_newFixture) != 0x0000 {
		world.FindNewContacts()
		world.M_flags &= ^B2World_Flags.E_newFixture
	}

	world.M_flags |= B2World_Flags.E_locked
	defer func() {
		world.M_flags &= ^B2World_Flags.E_locked
	}()

	step := MakeB2TimeStepFor(dt, world.M_inv_dt0, velocityIterations, positionIterations, world.M_warmStarting)

	// Update contacts. This is where some contacts are destroyed.
	{
		timer := MakeB2Timer()
		world.Collide()
		world.M_profile.Collide = timer.GetMilliseconds()
	}

	// Integrate velocities, solve velocity constraints, and integrate positions.
	if step.Dt > 0.0 {
		timer := MakeB2Timer()
		if err := world.Solve(step); err != nil {
			return errors.Wrap(err, "solve")
		}
		world.M_profile.Solve = timer.GetMilliseconds()
	}

	if step.Dt > 0.0 {
		world.M_inv_dt0 = step.Inv_dt
	}

	if (world.M_flags & B2World_Flags.E_clearForces) != 0x0000 {
		world.ClearForces()
	}

	world.M_profile.Step = stepTimer.GetMilliseconds()

	return nil
}

func (world *B2World) ClearForces() {
	for i := range world.M_bodies {
		world.M_bodies[i].M_force = B2Vec2_zero
		world.M_bodies[i].M_torque = 0.0
	}
}
