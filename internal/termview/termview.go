// Package termview draws a world into a terminal.
package termview

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/ByteArena/b2contact"
)

var (
	styleStatic  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDynamic = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleContact = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// View maps world meters to cells. Cells are about twice as tall as they are
// wide, so the vertical scale is halved.
type View struct {
	screen tcell.Screen
	scale  float64
}

func New(screen tcell.Screen, scale float64) *View {
	return &View{
		screen: screen,
		scale:  scale,
	}
}

// Cell returns the cell showing world point p. The world origin sits at the
// bottom centre of the screen, one row above the status line.
func (v *View) Cell(p b2contact.B2Vec2) (int, int) {
	width, height := v.screen.Size()
	x := int(math.Round(float64(width)/2.0 + p[0]*v.scale))
	y := int(math.Round(float64(height-2) - p[1]*v.scale*0.5))
	return x, y
}

func (v *View) plot(p b2contact.B2Vec2, r rune, style tcell.Style) {
	width, height := v.screen.Size()
	x, y := v.Cell(p)
	if x < 0 || y < 0 || x >= width || y >= height-1 {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *View) drawCircle(center b2contact.B2Vec2, radius float64, angle float64, style tcell.Style) {
	// Enough samples to close the outline at this scale.
	samples := int(math.Max(8.0, 2.0*b2contact.B2_pi*radius*v.scale))
	for i := 0; i < samples; i++ {
		a := 2.0 * b2contact.B2_pi * float64(i) / float64(samples)
		v.plot(center.Add(b2contact.MakeB2Vec2(math.Cos(a), math.Sin(a)).Mul(radius)), '·', style)
	}

	// A spoke shows the rotation.
	spoke := b2contact.MakeB2Vec2(math.Cos(angle), math.Sin(angle)).Mul(0.5 * radius)
	v.plot(center.Add(spoke), '+', style)
	v.plot(center, 'o', style)
}

func (v *View) drawSegment(a, b b2contact.B2Vec2, style tcell.Style) {
	samples := int(math.Max(2.0, a.Sub(b).Len()*v.scale))
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		v.plot(a.Mul(1.0-t).Add(b.Mul(t)), '=', style)
	}
}

// Draw clears the screen and renders every fixture, every contact point and a
// status line.
func (v *View) Draw(world *b2contact.B2World, step int) {
	v.screen.Clear()

	for _, body := range world.GetBodies() {
		style := styleDynamic
		if body.GetType() == b2contact.B2BodyType.B2_staticBody {
			style = styleStatic
		}

		xf := body.GetTransform()
		for _, fixture := range body.GetFixtures() {
			switch shape := fixture.GetShape().(type) {
			case *b2contact.B2CircleShape:
				v.drawCircle(b2contact.B2TransformVec2Mul(xf, shape.M_p), shape.M_radius, body.GetAngle(), style)
			case *b2contact.B2EdgeShape:
				v.drawSegment(b2contact.B2TransformVec2Mul(xf, shape.M_vertex1), b2contact.B2TransformVec2Mul(xf, shape.M_vertex2), style)
			}
		}
	}

	bodies := world.GetBodies()
	for _, contact := range world.GetContacts() {
		xfA := bodies[contact.GetBodyA()].GetTransform()
		xfB := bodies[contact.GetBodyB()].GetTransform()
		for _, manifold := range contact.GetManifolds() {
			points := manifold.GetWorldPoints(xfA, xfB)
			for i := 0; i < manifold.PointCount; i++ {
				v.plot(points[i], '*', styleContact)
			}
		}
	}

	profile := world.GetProfile()
	status := fmt.Sprintf(" step %d  contacts %d  position passes %d  solved %v ", step, world.GetContactCount(), profile.PositionIterations, profile.PositionSolved)
	_, height := v.screen.Size()
	for i, r := range status {
		v.screen.SetContent(i, height-1, r, nil, styleStatus)
	}

	v.screen.Show()
}
