package b2contact

import (
	"testing"

	"github.com/pkg/errors"
)

func addRestingBall(world *B2World, x float64) B2BodyHandle {
	bd := MakeB2BodyDef()
	bd.Type = B2BodyType.B2_dynamicBody
	bd.Position = MakeB2Vec2(x, 0.5)
	body := world.CreateBody(&bd)

	shape := MakeB2CircleShape()
	shape.M_radius = 0.5

	fd := MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = 1.0
	world.CreateFixture(body, &fd)

	return body
}

// Two balls on the ground form two islands. When the contact of the second
// island cannot be built, the first island must not be solved either.
func TestWorldStepRejectsBeforeAnyIslandMoves(t *testing.T) {
	world := MakeB2World(MakeB2Vec2(0.0, -10.0))

	bd := MakeB2BodyDef()
	ground := world.CreateBody(&bd)
	edge := MakeB2EdgeShape()
	edge.Set(MakeB2Vec2(-20.0, 0.0), MakeB2Vec2(20.0, 0.0))
	fd := MakeB2FixtureDef()
	fd.Shape = &edge
	world.CreateFixture(ground, &fd)

	addRestingBall(&world, -3.0)
	broken := addRestingBall(&world, 3.0)

	if err := world.Step(1.0/60.0, 8, 3); err != nil {
		t.Fatalf("first step: %+v", err)
	}

	if count := world.GetContactCount(); count != 2 {
		t.Fatalf("%d contacts, want one per ball", count)
	}

	// Leaves the contact with the ground without any effective mass.
	world.M_bodies[broken].M_invMass = 0.0
	world.M_bodies[broken].M_invI = 0.0

	before := append([]B2Body(nil), world.GetBodies()...)

	err := world.Step(1.0/60.0, 8, 3)
	if !errors.Is(err, ErrB2DegenerateMass) {
		t.Fatalf("step error %v, want degenerate mass", err)
	}

	for i, body := range world.GetBodies() {
		if body.M_sweep.C != before[i].M_sweep.C || body.M_sweep.A != before[i].M_sweep.A {
			t.Fatalf("body %d moved from %v to %v", i, before[i].M_sweep.C, body.M_sweep.C)
		}

		if body.M_linearVelocity != before[i].M_linearVelocity || body.M_angularVelocity != before[i].M_angularVelocity {
			t.Fatalf("body %d velocity changed from %v to %v", i, before[i].M_linearVelocity, body.M_linearVelocity)
		}
	}
}
