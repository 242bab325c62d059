package b2contact

import (
	"math"

	"github.com/pkg/errors"
)

func B2Assert(a bool) {
	if !a {
		panic("B2Assert")
	}
}

const B2_maxFloat = math.MaxFloat64

/// Smallest positive effective-mass denominator the solver accepts.
const B2_flt_epsilon = 1.192092896e-07

const B2_pi = math.Pi

/// @file
/// Global tuning constants based on meters-kilograms-seconds (MKS) units.
///

// Collision

/// The maximum number of contact points between two convex shapes. Constraint
/// points are stored inline, so this bound is fixed at compile time.
const B2_maxManifoldPoints = 2

/// The maximum number of manifolds a single contact may hand to the solver.
const B2_maxManifolds = 1

/// A small length used as a collision and constraint tolerance. Usually it is
/// chosen to be numerically significant, but visually insignificant.
const B2_linearSlop = 0.005

/// Manifolds are kept while the shapes are closer than this. Points with a
/// positive separation are speculative: the solver lets the bodies close the gap
/// but not overlap.
const B2_speculativeDistance = 4.0 * B2_linearSlop

// Dynamics

/// A velocity threshold for elastic collisions. Any collision with a relative linear
/// velocity below this threshold will be treated as inelastic.
const B2_velocityThreshold = 1.0

/// The maximum linear position correction used when solving constraints. This helps to
/// prevent overshoot.
const B2_maxLinearCorrection = 0.2

/// Rate used to turn a positive (speculative) separation into a velocity bias.
/// It is an inverse time and matches a 60Hz step.
const B2_speculativeBiasRate = 60.0

/// The maximum linear velocity of a body. This limit is very large and is used
/// to prevent numerical problems. You shouldn't need to adjust this.
const B2_maxTranslation = 2.0
const B2_maxTranslationSquared = (B2_maxTranslation * B2_maxTranslation)

/// The maximum angular velocity of a body. This limit is very large and is used
/// to prevent numerical problems. You shouldn't need to adjust this.
const B2_maxRotation = (0.5 * B2_pi)
const B2_maxRotationSquared = (B2_maxRotation * B2_maxRotation)

/// This scale factor controls how fast overlap is resolved. Ideally this would be 1 so
/// that overlap is removed in one time step. However using values close to 1 often lead
/// to overshoot.
const B2_baumgarte = 0.2

/// Tunables of the contact solver. They are physically meaningful and depend on
/// the integration rate, so they travel with the solver definition instead of
/// being read from package constants.
type B2ContactSolverSettings struct {
	/// Penetration tolerated before the position solver pushes back.
	LinearSlop float64

	/// Cap on the correction applied to one point in one position pass.
	MaxLinearCorrection float64

	/// Closing speed below which restitution is ignored.
	VelocityThreshold float64

	/// Inverse-time rate applied to speculative separations. Zero derives it
	/// from the step's inverse duration.
	SpeculativeBiasRate float64

	/// Fraction of the position error removed per position pass.
	Baumgarte float64
}

func MakeB2ContactSolverSettings() B2ContactSolverSettings {
	return B2ContactSolverSettings{
		LinearSlop:          B2_linearSlop,
		MaxLinearCorrection: B2_maxLinearCorrection,
		VelocityThreshold:   B2_velocityThreshold,
		SpeculativeBiasRate: B2_speculativeBiasRate,
		Baumgarte:           B2_baumgarte,
	}
}

func (settings B2ContactSolverSettings) Validate() error {
	switch {
	case !B2IsValid(settings.LinearSlop) || settings.LinearSlop < 0.0:
		return errors.Wrapf(ErrB2InvalidSettings, "linear slop %v", settings.LinearSlop)
	case !B2IsValid(settings.MaxLinearCorrection) || settings.MaxLinearCorrection <= 0.0:
		return errors.Wrapf(ErrB2InvalidSettings, "max linear correction %v", settings.MaxLinearCorrection)
	case !B2IsValid(settings.VelocityThreshold) || settings.VelocityThreshold < 0.0:
		return errors.Wrapf(ErrB2InvalidSettings, "velocity threshold %v", settings.VelocityThreshold)
	case !B2IsValid(settings.SpeculativeBiasRate) || settings.SpeculativeBiasRate < 0.0:
		return errors.Wrapf(ErrB2InvalidSettings, "speculative bias rate %v", settings.SpeculativeBiasRate)
	case !B2IsValid(settings.Baumgarte) || settings.Baumgarte <= 0.0 || settings.Baumgarte > 1.0:
		return errors.Wrapf(ErrB2InvalidSettings, "baumgarte %v", settings.Baumgarte)
	}

	return nil
}

/// The speculative rate actually used for a step.
func (settings B2ContactSolverSettings) SpeculativeRate(step B2TimeStep) float64 {
	if settings.SpeculativeBiasRate > 0.0 {
		return settings.SpeculativeBiasRate
	}

	return step.Inv_dt
}
