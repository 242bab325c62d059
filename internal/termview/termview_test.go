package termview

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ByteArena/b2contact"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func newWorld() *b2contact.B2World {
	world := b2contact.MakeB2World(b2contact.MakeB2Vec2(0.0, -10.0))

	bd := b2contact.MakeB2BodyDef()
	ground := world.CreateBody(&bd)
	edge := b2contact.MakeB2EdgeShape()
	edge.Set(b2contact.MakeB2Vec2(-20.0, 0.0), b2contact.MakeB2Vec2(20.0, 0.0))
	fd := b2contact.MakeB2FixtureDef()
	fd.Shape = &edge
	world.CreateFixture(ground, &fd)

	bd = b2contact.MakeB2BodyDef()
	bd.Type = b2contact.B2BodyType.B2_dynamicBody
	bd.Position = b2contact.MakeB2Vec2(0.0, 2.0)
	ball := world.CreateBody(&bd)
	circle := b2contact.MakeB2CircleShape()
	circle.M_radius = 0.5
	fd = b2contact.MakeB2FixtureDef()
	fd.Shape = &circle
	fd.Density = 1.0
	world.CreateFixture(ball, &fd)

	return &world
}

func TestCell(t *testing.T) {
	view := New(newScreen(t), 4.0)

	if x, y := view.Cell(b2contact.MakeB2Vec2(0.0, 0.0)); x != 40 || y != 22 {
		t.Fatalf("origin at %d,%d", x, y)
	}

	if x, y := view.Cell(b2contact.MakeB2Vec2(1.0, 2.0)); x != 44 || y != 18 {
		t.Fatalf("(1,2) at %d,%d", x, y)
	}
}

func TestDraw(t *testing.T) {
	screen := newScreen(t)
	view := New(screen, 4.0)
	view.Draw(newWorld(), 7)

	if r, _, _, _ := screen.GetContent(40, 18); r != 'o' {
		t.Fatalf("ball centre drawn as %q", r)
	}

	if r, _, _, _ := screen.GetContent(40, 22); r != '=' {
		t.Fatalf("ground drawn as %q", r)
	}

	var status strings.Builder
	for x := 0; x < 20; x++ {
		r, _, _, _ := screen.GetContent(x, 23)
		status.WriteRune(r)
	}

	if !strings.HasPrefix(status.String(), " step 7") {
		t.Fatalf("status line %q", status.String())
	}
}

func TestDrawClipsOffscreen(t *testing.T) {
	screen := newScreen(t)
	view := New(screen, 40.0)

	// At this scale most of the ground is off screen; drawing must not panic.
	view.Draw(newWorld(), 0)
}
