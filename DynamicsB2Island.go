package b2contact

import (
	"math"
)

/// A group of bodies connected through solid contacts, solved together.
/// Bodies are not copied: the island refers to the world body table by handle
/// and the contact solver writes straight into it.
type B2Island struct {
	M_listener B2ContactListenerInterface

	M_bodyTable []B2Body

	M_bodies   []B2BodyHandle
	M_contacts []*B2Contact
}

func MakeB2Island(bodyTable []B2Body, listener B2ContactListenerInterface) B2Island {
	return B2Island{
		M_listener:  listener,
		M_bodyTable: bodyTable,
		M_bodies:    make([]B2BodyHandle, 0),
		M_contacts:  make([]*B2Contact, 0),
	}
}

func (island *B2Island) Clear() {
	island.M_bodies = island.M_bodies[:0]
	island.M_contacts = island.M_contacts[:0]
}

func (island *B2Island) AddBody(handle B2BodyHandle) {
	island.M_bodies = append(island.M_bodies, handle)
}

func (island *B2Island) AddContact(contact *B2Contact) {
	island.M_contacts = append(island.M_contacts, contact)
}

func (island B2Island) GetBodyCount() int {
	return len(island.M_bodies)
}

func (island B2Island) GetContactCount() int {
	return len(island.M_contacts)
}

/*
Position Correction Notes
=========================
Velocities are solved with sequential impulses and a speculative or
restitution bias only; no Baumgarte term enters the velocity pass. After the
positions are integrated, penetration is removed with a few non linear
Gauss-Seidel passes that move the bodies directly. Each pass recomputes the
separation from the current sweeps, so a body touching several others sees
the corrections already applied by earlier constraints of the same pass.
*/

func (island *B2Island) Solve(profile *B2Profile, step B2TimeStep, gravity B2Vec2, settings B2ContactSolverSettings) error {
	timer := MakeB2Timer()

	h := step.Dt

	// Integrate velocities and apply damping.
	for _, handle := range island.M_bodies {
		b := &island.M_bodyTable[handle]

		// Store positions for continuous collision.
		b.M_sweep.C0 = b.M_sweep.C
		b.M_sweep.A0 = b.M_sweep.A

		if b.M_type != B2BodyType.B2_dynamicBody {
			continue
		}

		v := b.M_linearVelocity
		w := b.M_angularVelocity

		v = v.Add(gravity.Mul(b.M_gravityScale).Add(b.M_force.Mul(b.M_invMass)).Mul(h))
		w += h * b.M_invI * b.M_torque

		// Pade approximation of v2 = v1 * exp(-c * dt)
		v = v.Mul(1.0 / (1.0 + h*b.M_linearDamping))
		w *= 1.0 / (1.0 + h*b.M_angularDamping)

		b.M_linearVelocity = v
		b.M_angularVelocity = w
	}

	timer.Reset()

	contactSolverDef := MakeB2ContactSolverDef()
	contactSolverDef.Step = step
	contactSolverDef.Bodies = island.M_bodyTable
	contactSolverDef.Settings = settings
	for _, contact := range island.M_contacts {
		contactSolverDef.Contacts = append(contactSolverDef.Contacts, contact)
	}

	contactSolver, err := MakeB2ContactSolver(&contactSolverDef)
	if err != nil {
		return err
	}

	contactSolver.InitVelocityConstraints()

	profile.SolveInit = timer.GetMilliseconds()

	// Solve velocity constraints
	timer.Reset()
	for i := 0; i < step.VelocityIterations; i++ {
		contactSolver.SolveVelocityConstraints()
	}

	contactSolver.FinalizeVelocityConstraints()
	profile.SolveVelocity = timer.GetMilliseconds()

	// Integrate positions
	for _, handle := range island.M_bodies {
		b := &island.M_bodyTable[handle]
		if b.M_type == B2BodyType.B2_staticBody {
			continue
		}

		v := b.M_linearVelocity
		w := b.M_angularVelocity

		// Check for large velocities
		translation := v.Mul(h)
		if translation.Dot(translation) > B2_maxTranslationSquared {
			ratio := B2_maxTranslation / translation.Len()
			v = v.Mul(ratio)
		}

		rotation := h * w
		if rotation*rotation > B2_maxRotationSquared {
			ratio := B2_maxRotation / math.Abs(rotation)
			w *= ratio
		}

		b.M_sweep.C = b.M_sweep.C.Add(v.Mul(h))
		b.M_sweep.A += h * w
		b.M_linearVelocity = v
		b.M_angularVelocity = w
		b.SynchronizeTransform()
	}

	// Solve position constraints
	timer.Reset()
	positionSolved := false
	iterations := 0
	for iterations < step.PositionIterations {
		iterations++
		if contactSolver.SolvePositionConstraints(settings.Baumgarte) {
			// Exit early if the position errors are small.
			positionSolved = true
			break
		}
	}

	for _, handle := range island.M_bodies {
		island.M_bodyTable[handle].SynchronizeTransform()
	}

	profile.SolvePosition = timer.GetMilliseconds()
	profile.PositionIterations = iterations
	profile.PositionSolved = positionSolved

	island.Report(contactSolver)

	return nil
}

/// Hand the final impulses of every contact to the listener.
func (island *B2Island) Report(solver *B2ContactSolver) {
	if island.M_listener == nil {
		return
	}

	// Constraints follow contact order, one per manifold.
	index := 0
	for _, contact := range island.M_contacts {
		count := len(contact.GetManifolds())
		for j := 0; j < count; j++ {
			impulse := solver.GetImpulse(index)
			island.M_listener.PostSolve(contact, &impulse)
			index++
		}
	}
}
