package b2contact

/// Profiling data. Times are in milliseconds.
type B2Profile struct {
	Step          float64
	Collide       float64
	Solve         float64
	SolveInit     float64
	SolveVelocity float64
	SolvePosition float64

	/// Position passes actually run in the last step and whether the last one
	/// reported convergence.
	PositionIterations int
	PositionSolved     bool
}

func MakeB2Profile() B2Profile {
	return B2Profile{}
}

/// This is an internal structure.
type B2TimeStep struct {
	Dt                 float64 // time step
	Inv_dt             float64 // inverse time step (0 if dt == 0).
	DtRatio            float64 // dt * inv_dt0
	VelocityIterations int
	PositionIterations int
	WarmStarting       bool
}

func MakeB2TimeStep() B2TimeStep {
	return B2TimeStep{}
}

/// Builds a step for duration dt following a step whose inverse duration was inv_dt0.
func MakeB2TimeStepFor(dt float64, inv_dt0 float64, velocityIterations int, positionIterations int, warmStarting bool) B2TimeStep {
	step := MakeB2TimeStep()
	step.Dt = dt
	step.VelocityIterations = velocityIterations
	step.PositionIterations = positionIterations
	if dt > 0.0 {
		step.Inv_dt = 1.0 / dt
	} else {
		step.Inv_dt = 0.0
	}

	step.DtRatio = inv_dt0 * dt
	step.WarmStarting = warmStarting

	return step
}
