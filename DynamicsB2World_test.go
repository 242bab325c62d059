package b2contact_test

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/ByteArena/b2contact"
	"github.com/pmezard/go-difflib/difflib"
)

type countingListener struct {
	begin, end, preSolve, postSolve int
	maxNormalImpulse                float64
}

func (l *countingListener) BeginContact(contact *b2contact.B2Contact) { l.begin++ }
func (l *countingListener) EndContact(contact *b2contact.B2Contact)   { l.end++ }
func (l *countingListener) PreSolve(contact *b2contact.B2Contact, oldManifold b2contact.B2Manifold) {
	l.preSolve++
}
func (l *countingListener) PostSolve(contact *b2contact.B2Contact, impulse *b2contact.B2ContactImpulse) {
	l.postSolve++
	for i := 0; i < impulse.Count; i++ {
		l.maxNormalImpulse = math.Max(l.maxNormalImpulse, impulse.NormalImpulses[i])
	}
}

func addGround(world *b2contact.B2World) b2contact.B2BodyHandle {
	bd := b2contact.MakeB2BodyDef()
	ground := world.CreateBody(&bd)

	shape := b2contact.MakeB2EdgeShape()
	shape.Set(b2contact.MakeB2Vec2(-20.0, 0.0), b2contact.MakeB2Vec2(20.0, 0.0))

	fd := b2contact.MakeB2FixtureDef()
	fd.Shape = &shape
	world.CreateFixture(ground, &fd)

	return ground
}

func addBall(world *b2contact.B2World, x, y, radius, restitution float64) b2contact.B2BodyHandle {
	bd := b2contact.MakeB2BodyDef()
	bd.Type = b2contact.B2BodyType.B2_dynamicBody
	bd.Position = b2contact.MakeB2Vec2(x, y)
	body := world.CreateBody(&bd)

	shape := b2contact.MakeB2CircleShape()
	shape.M_radius = radius

	fd := b2contact.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = 1.0
	fd.Friction = 0.6
	fd.Restitution = restitution
	world.CreateFixture(body, &fd)

	return body
}

func TestWorldBallComesToRest(t *testing.T) {
	world := b2contact.MakeB2World(b2contact.MakeB2Vec2(0.0, -10.0))
	addGround(&world)
	ball := addBall(&world, 0.0, 2.0, 0.5, 0.0)

	listener := &countingListener{}
	world.SetContactListener(listener)

	for i := 0; i < 180; i++ {
		if err := world.Step(1.0/60.0, 8, 3); err != nil {
			t.Fatalf("step %d: %+v", i, err)
		}
	}

	body := world.GetBody(ball)
	y := body.GetPosition()[1]
	if y < 0.45 || y > 0.6 {
		t.Fatalf("ball rests at %v", y)
	}

	if speed := body.GetLinearVelocity().Len(); speed > 0.05 {
		t.Fatalf("ball still moving at %v", speed)
	}

	if world.GetContactCount() != 1 {
		t.Fatalf("contact count %d", world.GetContactCount())
	}

	if listener.begin != 1 || listener.end != 0 {
		t.Fatalf("begin %d end %d", listener.begin, listener.end)
	}

	if listener.postSolve == 0 || listener.maxNormalImpulse <= 0.0 {
		t.Fatalf("no impulses reported")
	}

	if !world.GetProfile().PositionSolved {
		t.Fatalf("resting contact not converged")
	}
}

func TestWorldBounceRisesAgain(t *testing.T) {
	world := b2contact.MakeB2World(b2contact.MakeB2Vec2(0.0, -10.0))
	addGround(&world)
	ball := addBall(&world, 0.0, 3.0, 0.5, 0.8)

	bounced := false
	for i := 0; i < 120; i++ {
		if err := world.Step(1.0/60.0, 8, 3); err != nil {
			t.Fatalf("step %d: %+v", i, err)
		}

		if world.GetBody(ball).GetLinearVelocity()[1] > 2.0 {
			bounced = true
			break
		}
	}

	if !bounced {
		t.Fatalf("ball never bounced")
	}
}

func TestWorldSensorDoesNotCollide(t *testing.T) {
	world := b2contact.MakeB2World(b2contact.MakeB2Vec2(0.0, -10.0))

	bd := b2contact.MakeB2BodyDef()
	ground := world.CreateBody(&bd)
	shape := b2contact.MakeB2EdgeShape()
	shape.Set(b2contact.MakeB2Vec2(-20.0, 0.0), b2contact.MakeB2Vec2(20.0, 0.0))
	fd := b2contact.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.IsSensor = true
	world.CreateFixture(ground, &fd)

	ball := addBall(&world, 0.0, 1.0, 0.5, 0.0)

	listener := &countingListener{}
	world.SetContactListener(listener)

	for i := 0; i < 60; i++ {
		if err := world.Step(1.0/60.0, 8, 3); err != nil {
			t.Fatalf("step %d: %+v", i, err)
		}
	}

	if y := world.GetBody(ball).GetPosition()[1]; y > -1.0 {
		t.Fatalf("ball held up by a sensor at %v", y)
	}

	if listener.begin != 1 || listener.end != 1 {
		t.Fatalf("begin %d end %d", listener.begin, listener.end)
	}

	if listener.postSolve != 0 || listener.preSolve != 0 {
		t.Fatalf("sensor reached the solver")
	}
}

func TestWorldFilterGroup(t *testing.T) {
	world := b2contact.MakeB2World(b2contact.MakeB2Vec2(0.0, 0.0))

	for _, x := range []float64{0.0, 0.9} {
		bd := b2contact.MakeB2BodyDef()
		bd.Type = b2contact.B2BodyType.B2_dynamicBody
		bd.Position = b2contact.MakeB2Vec2(x, 0.0)
		body := world.CreateBody(&bd)

		shape := b2contact.MakeB2CircleShape()
		shape.M_radius = 0.5
		fd := b2contact.MakeB2FixtureDef()
		fd.Shape = &shape
		fd.Density = 1.0
		fd.Filter.GroupIndex = -1
		world.CreateFixture(body, &fd)
	}

	if err := world.Step(1.0/60.0, 8, 3); err != nil {
		t.Fatalf("%+v", err)
	}

	if world.GetContactCount() != 0 {
		t.Fatalf("negative group collided")
	}
}

func TestWorldRejectsBadSettings(t *testing.T) {
	world := b2contact.MakeB2World(b2contact.MakeB2Vec2(0.0, -10.0))

	settings := b2contact.MakeB2ContactSolverSettings()
	settings.MaxLinearCorrection = -1.0
	if err := world.SetSettings(settings); err == nil {
		t.Fatalf("negative correction accepted")
	}

	if world.GetSettings() != b2contact.MakeB2ContactSolverSettings() {
		t.Fatalf("settings changed by a rejected update")
	}
}

func TestTimeStepRatio(t *testing.T) {
	step := b2contact.MakeB2TimeStepFor(1.0/30.0, 60.0, 8, 3, true)
	if math.Abs(step.DtRatio-2.0) > 1e-12 {
		t.Fatalf("dt ratio %v", step.DtRatio)
	}

	step = b2contact.MakeB2TimeStepFor(0.0, 60.0, 8, 3, true)
	if step.Inv_dt != 0.0 || step.DtRatio != 0.0 {
		t.Fatalf("zero step %+v", step)
	}
}

func stackTrace(t *testing.T, warmStarting bool) string {
	world := b2contact.MakeB2World(b2contact.MakeB2Vec2(0.0, -10.0))
	world.SetWarmStarting(warmStarting)

	characters := make(map[string]b2contact.B2BodyHandle)
	characters["00_ground"] = addGround(&world)

	for i := 0; i < 4; i++ {
		name := fmt.Sprintf("%02d_ball", i+1)
		characters[name] = addBall(&world, 0.01*float64(i), 0.5+1.0*float64(i), 0.5, 0.0)
	}

	characterNames := make([]string, 0)
	for k := range characters {
		characterNames = append(characterNames, k)
	}

	sort.Strings(characterNames)

	output := ""
	for i := 0; i < 60; i++ {
		if err := world.Step(1.0/60.0, 8, 3); err != nil {
			t.Fatalf("step %d: %+v", i, err)
		}

		for _, name := range characterNames {
			body := world.GetBody(characters[name])
			position := body.GetPosition()
			output += fmt.Sprintf("%v(%s): %4.3f %4.3f %4.3f\n", i, name, position[0], position[1], body.GetAngle())
		}
	}

	return output
}

func TestWorldDeterministic(t *testing.T) {
	for _, warm := range []bool{true, false} {
		expected := stackTrace(t, warm)
		output := stackTrace(t, warm)

		if output != expected {
			diff := difflib.UnifiedDiff{
				A:        difflib.SplitLines(expected),
				B:        difflib.SplitLines(output),
				FromFile: "First",
				ToFile:   "Second",
				Context:  0,
			}
			text, _ := difflib.GetUnifiedDiffString(diff)
			t.Fatalf("two runs diverged (warm starting %v): \n%s", warm, text)
		}
	}
}
