package scene

import (
	"math"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/ByteArena/b2contact"
)

func TestNames(t *testing.T) {
	want := []string{"bounce", "impact", "pyramid"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildUnknown(t *testing.T) {
	if _, err := Build("domino", b2contact.MakeB2ContactSolverSettings()); !errors.Is(err, ErrUnknownScene) {
		t.Fatalf("got %v", err)
	}
}

func TestImpactSeparatesAtHalfSpeed(t *testing.T) {
	s, err := Build("impact", b2contact.MakeB2ContactSolverSettings())
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if err := s.World.Step(1.0/60.0, 10, 3); err != nil {
		t.Fatalf("%+v", err)
	}

	lower := s.World.GetBody(s.Tracked[0])
	upper := s.World.GetBody(s.Tracked[1])

	vRel := upper.GetLinearVelocity()[1] - lower.GetLinearVelocity()[1]
	if math.Abs(vRel-2.5) > 0.025 {
		t.Fatalf("separating speed %v, want 2.5", vRel)
	}

	profile := s.World.GetProfile()
	if !profile.PositionSolved || profile.PositionIterations > 3 {
		t.Fatalf("profile %+v", profile)
	}
}

func TestScenesStayAboveGround(t *testing.T) {
	for _, name := range []string{"pyramid", "bounce"} {
		t.Run(name, func(t *testing.T) {
			s, err := Build(name, b2contact.MakeB2ContactSolverSettings())
			if err != nil {
				t.Fatalf("%+v", err)
			}

			for i := 0; i < 240; i++ {
				if err := s.World.Step(1.0/60.0, 8, 3); err != nil {
					t.Fatalf("step %d: %+v", i, err)
				}
			}

			for _, handle := range s.Tracked {
				if y := s.World.GetBody(handle).GetPosition()[1]; y < 0.3 {
					t.Fatalf("body %d sank to %v", handle, y)
				}
			}
		})
	}
}
