// Package scene builds the demo worlds.
package scene

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/ByteArena/b2contact"
)

var ErrUnknownScene = errors.New("unknown scene")

type Scene struct {
	Name  string
	World *b2contact.B2World

	// Bodies worth printing, in a stable order.
	Tracked []b2contact.B2BodyHandle
}

type builder func(world *b2contact.B2World) []b2contact.B2BodyHandle

var builders = map[string]builder{
	"impact":  buildImpact,
	"pyramid": buildPyramid,
	"bounce":  buildBounce,
}

func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Build(name string, settings b2contact.B2ContactSolverSettings) (*Scene, error) {
	build, ok := builders[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScene, "%q", name)
	}

	gravity := b2contact.MakeB2Vec2(0.0, -10.0)
	if name == "impact" {
		gravity = b2contact.B2Vec2_zero
	}

	world := b2contact.MakeB2World(gravity)
	if err := world.SetSettings(settings); err != nil {
		return nil, err
	}

	return &Scene{
		Name:    name,
		World:   &world,
		Tracked: build(&world),
	}, nil
}

func addGround(world *b2contact.B2World, halfWidth float64) b2contact.B2BodyHandle {
	bd := b2contact.MakeB2BodyDef()
	ground := world.CreateBody(&bd)

	shape := b2contact.MakeB2EdgeShape()
	shape.Set(b2contact.MakeB2Vec2(-halfWidth, 0.0), b2contact.MakeB2Vec2(halfWidth, 0.0))

	fd := b2contact.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Friction = 0.6
	world.CreateFixture(ground, &fd)

	return ground
}

func addCircle(world *b2contact.B2World, position b2contact.B2Vec2, radius float64, fd b2contact.B2FixtureDef) b2contact.B2BodyHandle {
	bd := b2contact.MakeB2BodyDef()
	bd.Type = b2contact.B2BodyType.B2_dynamicBody
	bd.Position = position
	body := world.CreateBody(&bd)

	shape := b2contact.MakeB2CircleShape()
	shape.M_radius = radius
	fd.Shape = &shape
	world.CreateFixture(body, &fd)

	return body
}

// Two unit bodies meeting head on at 5 m/s, already 1cm deep.
func buildImpact(world *b2contact.B2World) []b2contact.B2BodyHandle {
	fd := b2contact.MakeB2FixtureDef()
	fd.Density = 1.0
	fd.Friction = 0.3
	fd.Restitution = 0.5

	lower := addCircle(world, b2contact.MakeB2Vec2(0.0, 0.0), 0.5, fd)
	upper := addCircle(world, b2contact.MakeB2Vec2(0.0, 0.99), 0.5, fd)

	unit := b2contact.MakeMassData()
	unit.Mass = 1.0
	unit.I = 1.0
	for _, handle := range []b2contact.B2BodyHandle{lower, upper} {
		world.GetBody(handle).SetMassData(&unit)
	}

	world.GetBody(lower).SetLinearVelocity(b2contact.MakeB2Vec2(0.0, 2.5))
	world.GetBody(upper).SetLinearVelocity(b2contact.MakeB2Vec2(0.0, -2.5))

	return []b2contact.B2BodyHandle{lower, upper}
}

// Circles stacked in a pyramid on the ground.
func buildPyramid(world *b2contact.B2World) []b2contact.B2BodyHandle {
	addGround(world, 20.0)

	const rows = 5
	const radius = 0.5

	fd := b2contact.MakeB2FixtureDef()
	fd.Density = 1.0
	fd.Friction = 0.6

	tracked := make([]b2contact.B2BodyHandle, 0, rows*(rows+1)/2)
	for row := 0; row < rows; row++ {
		count := rows - row
		y := radius + float64(row)*2.0*radius*0.866
		x0 := -float64(count-1) * radius
		for i := 0; i < count; i++ {
			x := x0 + float64(i)*2.0*radius
			tracked = append(tracked, addCircle(world, b2contact.MakeB2Vec2(x, y), radius, fd))
		}
	}

	return tracked
}

// Balls of rising restitution dropped side by side.
func buildBounce(world *b2contact.B2World) []b2contact.B2BodyHandle {
	addGround(world, 20.0)

	tracked := make([]b2contact.B2BodyHandle, 0, 5)
	for i := 0; i < 5; i++ {
		fd := b2contact.MakeB2FixtureDef()
		fd.Density = 1.0
		fd.Restitution = 0.2 * float64(i)
		tracked = append(tracked, addCircle(world, b2contact.MakeB2Vec2(-4.0+2.0*float64(i), 4.0), 0.4, fd))
	}

	return tracked
}
