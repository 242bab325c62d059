package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ByteArena/b2contact"
	"github.com/ByteArena/b2contact/internal/envconfig"
	"github.com/ByteArena/b2contact/internal/scene"
	"github.com/ByteArena/b2contact/internal/stream"
	"github.com/ByteArena/b2contact/internal/termview"
)

var (
	sceneName = flag.String("scene", "pyramid", "scene to run: "+strings.Join(scene.Names(), ", "))
	steps     = flag.Int("steps", 300, "number of steps, 0 runs until interrupted")
	hz        = flag.Float64("hz", 60.0, "steps per simulated second")
	velIters  = flag.Int("vel", 8, "velocity iterations per step")
	posIters  = flag.Int("pos", 3, "maximum position iterations per step")
	warm      = flag.Bool("warm", true, "warm start the contact solver")
	envFile   = flag.String("env", ".env", "file with B2_* solver overrides, ignored when missing")
	baumgarte = flag.Float64("baumgarte", 0.0, "position correction factor, 0 keeps the configured one")
	view      = flag.Bool("view", false, "draw the scene in the terminal")
	viewScale = flag.Float64("scale", 4.0, "terminal cells per meter")
	serve     = flag.String("serve", "", "stream frames over websocket on this address, e.g. :8080")
)

func main() {
	flag.Parse()

	settings, err := envconfig.Load(*envFile, b2contact.MakeB2ContactSolverSettings())
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *baumgarte > 0.0 {
		settings.Baumgarte = *baumgarte
	}

	if *hz <= 0.0 {
		log.Fatalf("hz must be positive, got %v", *hz)
	}

	s, err := scene.Build(*sceneName, settings)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}
	s.World.SetWarmStarting(*warm)

	var hub *stream.Hub
	if *serve != "" {
		hub = stream.NewHub()
		defer hub.Close()

		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		go func() {
			log.Printf("streaming frames on ws://%s/ws", *serve)
			if err := http.ListenAndServe(*serve, mux); err != nil {
				log.Fatalf("serve: %v", err)
			}
		}()
	}

	if *view {
		if err := runView(s, hub); err != nil {
			log.Fatalf("view: %v", err)
		}
		return
	}

	if err := runTrace(s, hub); err != nil {
		log.Fatalf("%+v", err)
	}
}

func step(s *scene.Scene, i int, hub *stream.Hub) error {
	if err := s.World.Step(1.0 / *hz, *velIters, *posIters); err != nil {
		return err
	}

	if hub != nil {
		hub.Broadcast(stream.MakeFrame(s.World, i))
	}

	return nil
}

// Prints one line per tracked body and step. Paced in real time only when
// frames are streamed.
func runTrace(s *scene.Scene, hub *stream.Hub) error {
	var ticker *time.Ticker
	if hub != nil {
		ticker = time.NewTicker(time.Duration(float64(time.Second) / *hz))
		defer ticker.Stop()
	}

	for i := 0; *steps == 0 || i < *steps; i++ {
		if ticker != nil {
			<-ticker.C
		}

		if err := step(s, i, hub); err != nil {
			return err
		}

		for _, handle := range s.Tracked {
			body := s.World.GetBody(handle)
			position := body.GetPosition()
			fmt.Fprintf(os.Stdout, "%v(%d): %4.3f %4.3f %4.3f\n", i, handle, position[0], position[1], body.GetAngle())
		}
	}

	profile := s.World.GetProfile()
	log.Printf("%s: %d steps, %d contacts, last step %.3fms (solve %.3fms), positions solved %v",
		s.Name, *steps, s.World.GetContactCount(), profile.Step, profile.Solve, profile.PositionSolved)

	return nil
}

func runView(s *scene.Scene, hub *stream.Hub) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}

	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	quit := make(chan struct{})
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					close(quit)
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return
			}
		}
	}()

	v := termview.New(screen, *viewScale)
	ticker := time.NewTicker(time.Duration(float64(time.Second) / *hz))
	defer ticker.Stop()

	for i := 0; *steps == 0 || i < *steps; i++ {
		select {
		case <-quit:
			return nil
		case <-ticker.C:
		}

		if err := step(s, i, hub); err != nil {
			return err
		}

		v.Draw(s.World, i)
	}

	// Keep the last frame up until the user leaves.
	<-quit
	return nil
}
