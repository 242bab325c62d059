package b2contact

import (
	"math"

	"github.com/pkg/errors"
)

type B2ContactConstraintPoint struct {
	LocalAnchorA    B2Vec2
	LocalAnchorB    B2Vec2
	RA              B2Vec2
	RB              B2Vec2
	NormalImpulse   float64
	TangentImpulse  float64
	PositionImpulse float64
	NormalMass      float64
	TangentMass     float64
	EqualizedMass   float64
	Separation      float64
	VelocityBias    float64
}

type B2ContactConstraint struct {
	Points      [B2_maxManifoldPoints]B2ContactConstraintPoint
	Normal      B2Vec2
	Manifold    *B2Manifold
	BodyA       B2BodyHandle
	BodyB       B2BodyHandle
	Friction    float64
	Restitution float64
	PointCount  int
}

type B2ContactSolverDef struct {
	Step     B2TimeStep
	Contacts []B2ContactInterface // has to be backed by pointers
	Bodies   []B2Body
	Settings B2ContactSolverSettings
}

func MakeB2ContactSolverDef() B2ContactSolverDef {
	return B2ContactSolverDef{
		Contacts: make([]B2ContactInterface, 0),
		Bodies:   make([]B2Body, 0),
		Settings: MakeB2ContactSolverSettings(),
	}
}

var B2ContactSolver_Phase = struct {
	E_constructed         uint8
	E_velocityInitialized uint8
	E_finalized           uint8
}{
	E_constructed:         0,
	E_velocityInitialized: 1,
	E_finalized:           2,
}

/// Resolves the contacts of one time step. Build it, call
/// InitVelocityConstraints once, SolveVelocityConstraints as often as the step
/// asks, FinalizeVelocityConstraints once, then SolvePositionConstraints until
/// it reports convergence. Nothing carries over to the next step except the
/// impulses written back into the manifolds.
type B2ContactSolver struct {
	M_step        B2TimeStep
	M_settings    B2ContactSolverSettings
	M_bodies      []B2Body
	M_constraints []B2ContactConstraint
	M_phase       uint8
}

func MakeB2ContactSolver(def *B2ContactSolverDef) (*B2ContactSolver, error) {
	if err := def.Settings.Validate(); err != nil {
		return nil, newB2PreconditionError(-1, -1, -1, err)
	}

	constraintCount := 0
	for i, contact := range def.Contacts {
		if !contact.IsSolid() {
			return nil, newB2PreconditionError(i, -1, -1, ErrB2NonSolidContact)
		}

		constraintCount += len(contact.GetManifolds())
	}

	solver := &B2ContactSolver{
		M_step:        def.Step,
		M_settings:    def.Settings,
		M_bodies:      def.Bodies,
		M_constraints: make([]B2ContactConstraint, constraintCount),
		M_phase:       B2ContactSolver_Phase.E_constructed,
	}

	speculativeRate := def.Settings.SpeculativeRate(def.Step)
	bodyCount := B2BodyHandle(len(def.Bodies))

	count := 0
	for i, contact := range def.Contacts {
		indexA := contact.GetBodyA()
		indexB := contact.GetBodyB()
		if indexA < 0 || indexA >= bodyCount || indexB < 0 || indexB >= bodyCount || indexA == indexB {
			return nil, newB2PreconditionError(i, count, -1, errors.Wrapf(ErrB2InvalidBody, "bodies %d and %d of %d", indexA, indexB, bodyCount))
		}

		bA := &solver.M_bodies[indexA]
		bB := &solver.M_bodies[indexB]
		manifolds := contact.GetManifolds()
		friction := contact.GetFriction()
		restitution := contact.GetRestitution()

		vA := bA.M_linearVelocity
		vB := bB.M_linearVelocity
		wA := bA.M_angularVelocity
		wB := bB.M_angularVelocity

		for j := range manifolds {
			manifold := &manifolds[j]

			if manifold.PointCount <= 0 {
				return nil, newB2PreconditionError(i, count, -1, ErrB2EmptyManifold)
			}

			if manifold.PointCount > B2_maxManifoldPoints {
				return nil, newB2PreconditionError(i, count, -1, errors.Wrapf(ErrB2TooManyPoints, "%d points", manifold.PointCount))
			}

			normal := manifold.Normal

			c := &solver.M_constraints[count]
			c.BodyA = indexA
			c.BodyB = indexB
			c.Manifold = manifold
			c.Normal = normal
			c.PointCount = manifold.PointCount
			c.Friction = friction
			c.Restitution = restitution

			tangent := B2Vec2CrossVectorScalar(normal, 1.0)

			for k := 0; k < c.PointCount; k++ {
				cp := &manifold.Points[k]
				ccp := &c.Points[k]

				ccp.NormalImpulse = cp.NormalImpulse
				ccp.TangentImpulse = cp.TangentImpulse
				ccp.Separation = cp.Separation
				ccp.PositionImpulse = 0.0

				ccp.LocalAnchorA = cp.LocalPointA
				ccp.LocalAnchorB = cp.LocalPointB
				ccp.RA = B2RotVec2Mul(bA.M_xf.Q, cp.LocalPointA.Sub(bA.GetLocalCenter()))
				ccp.RB = B2RotVec2Mul(bB.M_xf.Q, cp.LocalPointB.Sub(bB.GetLocalCenter()))

				rnA := B2Vec2Cross(ccp.RA, normal)
				rnB := B2Vec2Cross(ccp.RB, normal)
				rnA *= rnA
				rnB *= rnB

				kNormal := bA.M_invMass + bB.M_invMass + bA.M_invI*rnA + bB.M_invI*rnB

				if !(kNormal > B2_flt_epsilon) {
					return nil, newB2PreconditionError(i, count, k, errors.Wrapf(ErrB2DegenerateMass, "normal denominator %g", kNormal))
				}
				ccp.NormalMass = 1.0 / kNormal

				// Weighting by the body's own mass makes the position correction
				// independent of the mass scale: heavy bodies are not pushed less.
				kEqualized := bA.M_mass*bA.M_invMass + bB.M_mass*bB.M_invMass
				kEqualized += bA.M_mass*bA.M_invI*rnA + bB.M_mass*bB.M_invI*rnB

				if !(kEqualized > B2_flt_epsilon) {
					return nil, newB2PreconditionError(i, count, k, errors.Wrapf(ErrB2DegenerateMass, "equalized denominator %g", kEqualized))
				}
				ccp.EqualizedMass = 1.0 / kEqualized

				rtA := B2Vec2Cross(ccp.RA, tangent)
				rtB := B2Vec2Cross(ccp.RB, tangent)
				rtA *= rtA
				rtB *= rtB

				kTangent := bA.M_invMass + bB.M_invMass + bA.M_invI*rtA + bB.M_invI*rtB

				if !(kTangent > B2_flt_epsilon) {
					return nil, newB2PreconditionError(i, count, k, errors.Wrapf(ErrB2DegenerateMass, "tangent denominator %g", kTangent))
				}
				ccp.TangentMass = 1.0 / kTangent

				// Setup a velocity bias for speculative contacts and restitution.
				ccp.VelocityBias = 0.0
				if ccp.Separation > 0.0 {
					ccp.VelocityBias = -speculativeRate * ccp.Separation
				}

				vRel := normal.Dot(vB.Add(B2Vec2CrossScalarVector(wB, ccp.RB)).Sub(vA).Sub(B2Vec2CrossScalarVector(wA, ccp.RA)))
				if vRel < -def.Settings.VelocityThreshold {
					ccp.VelocityBias += -c.Restitution * vRel
				}
			}

			count++
		}
	}

	B2Assert(count == constraintCount)

	return solver, nil
}

/// Runs every construction check of MakeB2ContactSolver. Bodies and manifolds
/// are only read, so a failing step can be rejected before anything moves.
func B2CheckContactSolverDef(def *B2ContactSolverDef) error {
	_, err := MakeB2ContactSolver(def)
	return err
}

func (solver B2ContactSolver) GetConstraints() []B2ContactConstraint {
	return solver.M_constraints
}

func (solver B2ContactSolver) GetConstraintCount() int {
	return len(solver.M_constraints)
}

/// Warm start: seed the iteration with last step's impulses, rescaled to the
/// new step length. Without warm starting the impulses start at zero.
func (solver *B2ContactSolver) InitVelocityConstraints() {
	B2Assert(solver.M_phase == B2ContactSolver_Phase.E_constructed)
	solver.M_phase = B2ContactSolver_Phase.E_velocityInitialized

	step := solver.M_step

	for i := range solver.M_constraints {
		c := &solver.M_constraints[i]

		bA := &solver.M_bodies[c.BodyA]
		bB := &solver.M_bodies[c.BodyB]
		invMassA := bA.M_invMass
		invIA := bA.M_invI
		invMassB := bB.M_invMass
		invIB := bB.M_invI
		normal := c.Normal
		tangent := B2Vec2CrossVectorScalar(normal, 1.0)

		if step.WarmStarting {
			for j := 0; j < c.PointCount; j++ {
				ccp := &c.Points[j]
				ccp.NormalImpulse *= step.DtRatio
				ccp.TangentImpulse *= step.DtRatio
				P := normal.Mul(ccp.NormalImpulse).Add(tangent.Mul(ccp.TangentImpulse))
				bA.M_angularVelocity -= invIA * B2Vec2Cross(ccp.RA, P)
				bA.M_linearVelocity = bA.M_linearVelocity.Sub(P.Mul(invMassA))
				bB.M_angularVelocity += invIB * B2Vec2Cross(ccp.RB, P)
				bB.M_linearVelocity = bB.M_linearVelocity.Add(P.Mul(invMassB))
			}
		} else {
			for j := 0; j < c.PointCount; j++ {
				ccp := &c.Points[j]
				ccp.NormalImpulse = 0.0
				ccp.TangentImpulse = 0.0
			}
		}
	}
}

/// One sequential impulse pass over every constraint in construction order.
///
/// Friction is box clamped against the normal impulse the pair holds right
/// now: within a pass it lags the normal update of the same pair, across
/// passes it follows it. Repeated passes converge this towards the Coulomb
/// cone well enough; an exact cone is not attempted.
func (solver *B2ContactSolver) SolveVelocityConstraints() {
	B2Assert(solver.M_phase == B2ContactSolver_Phase.E_velocityInitialized)

	for i := range solver.M_constraints {
		c := &solver.M_constraints[i]
		bA := &solver.M_bodies[c.BodyA]
		bB := &solver.M_bodies[c.BodyB]
		wA := bA.M_angularVelocity
		wB := bB.M_angularVelocity
		vA := bA.M_linearVelocity
		vB := bB.M_linearVelocity
		invMassA := bA.M_invMass
		invIA := bA.M_invI
		invMassB := bB.M_invMass
		invIB := bB.M_invI
		normal := c.Normal
		tangent := B2Vec2CrossVectorScalar(normal, 1.0)
		friction := c.Friction

		// Solve normal constraints
		for j := 0; j < c.PointCount; j++ {
			ccp := &c.Points[j]

			// Relative velocity at contact
			dv := vB.Add(B2Vec2CrossScalarVector(wB, ccp.RB)).Sub(vA).Sub(B2Vec2CrossScalarVector(wA, ccp.RA))

			// Compute normal impulse
			vn := dv.Dot(normal)
			lambda := -ccp.NormalMass * (vn - ccp.VelocityBias)

			// Clamp the accumulated impulse
			newImpulse := math.Max(ccp.NormalImpulse+lambda, 0.0)
			lambda = newImpulse - ccp.NormalImpulse

			// Apply contact impulse
			P := normal.Mul(lambda)

			vA = vA.Sub(P.Mul(invMassA))
			wA -= invIA * B2Vec2Cross(ccp.RA, P)

			vB = vB.Add(P.Mul(invMassB))
			wB += invIB * B2Vec2Cross(ccp.RB, P)

			ccp.NormalImpulse = newImpulse
		}

		// Solve tangent constraints
		for j := 0; j < c.PointCount; j++ {
			ccp := &c.Points[j]

			// Relative velocity at contact
			dv := vB.Add(B2Vec2CrossScalarVector(wB, ccp.RB)).Sub(vA).Sub(B2Vec2CrossScalarVector(wA, ccp.RA))

			// Compute tangent force
			vt := dv.Dot(tangent)
			lambda := ccp.TangentMass * (-vt)

			// Clamp the accumulated force
			maxFriction := friction * ccp.NormalImpulse
			newImpulse := B2FloatClamp(ccp.TangentImpulse+lambda, -maxFriction, maxFriction)
			lambda = newImpulse - ccp.TangentImpulse

			// Apply contact impulse
			P := tangent.Mul(lambda)

			vA = vA.Sub(P.Mul(invMassA))
			wA -= invIA * B2Vec2Cross(ccp.RA, P)

			vB = vB.Add(P.Mul(invMassB))
			wB += invIB * B2Vec2Cross(ccp.RB, P)

			ccp.TangentImpulse = newImpulse
		}

		bA.M_linearVelocity = vA
		bA.M_angularVelocity = wA
		bB.M_linearVelocity = vB
		bB.M_angularVelocity = wB
	}
}

/// Store impulses for warm starting.
func (solver *B2ContactSolver) FinalizeVelocityConstraints() {
	B2Assert(solver.M_phase == B2ContactSolver_Phase.E_velocityInitialized)
	solver.M_phase = B2ContactSolver_Phase.E_finalized

	for i := range solver.M_constraints {
		c := &solver.M_constraints[i]
		m := c.Manifold

		for j := 0; j < c.PointCount; j++ {
			m.Points[j].NormalImpulse = c.Points[j].NormalImpulse
			m.Points[j].TangentImpulse = c.Points[j].TangentImpulse
		}
	}
}

/// The impulses of constraint i in reporting form.
func (solver B2ContactSolver) GetImpulse(i int) B2ContactImpulse {
	c := &solver.M_constraints[i]

	impulse := MakeB2ContactImpulse()
	impulse.Count = c.PointCount

	for j := 0; j < c.PointCount; j++ {
		impulse.NormalImpulses[j] = c.Points[j].NormalImpulse
		impulse.TangentImpulses[j] = c.Points[j].TangentImpulse
	}

	return impulse
}

/// Sequential position solver (non linear Gauss-Seidel). Returns true once the
/// deepest penetration seen in this pass is within 1.5 linear slop.
func (solver *B2ContactSolver) SolvePositionConstraints(baumgarte float64) bool {
	B2Assert(solver.M_phase == B2ContactSolver_Phase.E_finalized)

	linearSlop := solver.M_settings.LinearSlop
	maxLinearCorrection := solver.M_settings.MaxLinearCorrection

	minSeparation := 0.0

	for i := range solver.M_constraints {
		c := &solver.M_constraints[i]
		bA := &solver.M_bodies[c.BodyA]
		bB := &solver.M_bodies[c.BodyB]
		invMassA := bA.M_mass * bA.M_invMass
		invIA := bA.M_mass * bA.M_invI
		invMassB := bB.M_mass * bB.M_invMass
		invIB := bB.M_mass * bB.M_invI

		normal := c.Normal

		// Solve normal constraints
		for j := 0; j < c.PointCount; j++ {
			ccp := &c.Points[j]

			rA := B2RotVec2Mul(bA.M_xf.Q, ccp.LocalAnchorA.Sub(bA.GetLocalCenter()))
			rB := B2RotVec2Mul(bB.M_xf.Q, ccp.LocalAnchorB.Sub(bB.GetLocalCenter()))

			pA := bA.M_sweep.C.Add(rA)
			pB := bB.M_sweep.C.Add(rB)
			dp := pB.Sub(pA)

			// Approximate the current separation.
			separation := dp.Dot(normal) + ccp.Separation

			// Track max constraint error.
			minSeparation = math.Min(minSeparation, separation)

			// Prevent large corrections and allow slop.
			C := baumgarte * B2FloatClamp(separation+linearSlop, -maxLinearCorrection, 0.0)

			// Compute normal impulse
			dImpulse := -ccp.EqualizedMass * C

			// Clamp the accumulated impulse
			impulse0 := ccp.PositionImpulse
			ccp.PositionImpulse = math.Max(impulse0+dImpulse, 0.0)
			dImpulse = ccp.PositionImpulse - impulse0

			impulse := normal.Mul(dImpulse)

			bA.M_sweep.C = bA.M_sweep.C.Sub(impulse.Mul(invMassA))
			bA.M_sweep.A -= invIA * B2Vec2Cross(rA, impulse)
			bA.SynchronizeTransform()

			bB.M_sweep.C = bB.M_sweep.C.Add(impulse.Mul(invMassB))
			bB.M_sweep.A += invIB * B2Vec2Cross(rB, impulse)
			bB.SynchronizeTransform()
		}
	}

	// We can't expect minSpeparation >= -linearSlop because we don't
	// push the separation above -linearSlop.
	return minSeparation >= -1.5*linearSlop
}
