package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ByteArena/b2contact"
)

func restingWorld(t *testing.T) *b2contact.B2World {
	t.Helper()
	world := b2contact.MakeB2World(b2contact.MakeB2Vec2(0.0, -10.0))

	bd := b2contact.MakeB2BodyDef()
	ground := world.CreateBody(&bd)
	edge := b2contact.MakeB2EdgeShape()
	edge.Set(b2contact.MakeB2Vec2(-5.0, 0.0), b2contact.MakeB2Vec2(5.0, 0.0))
	fd := b2contact.MakeB2FixtureDef()
	fd.Shape = &edge
	world.CreateFixture(ground, &fd)

	bd = b2contact.MakeB2BodyDef()
	bd.Type = b2contact.B2BodyType.B2_dynamicBody
	bd.Position = b2contact.MakeB2Vec2(1.0, 0.5)
	ball := world.CreateBody(&bd)
	circle := b2contact.MakeB2CircleShape()
	circle.M_radius = 0.5
	fd = b2contact.MakeB2FixtureDef()
	fd.Shape = &circle
	fd.Density = 1.0
	world.CreateFixture(ball, &fd)

	for i := 0; i < 10; i++ {
		if err := world.Step(1.0/60.0, 8, 3); err != nil {
			t.Fatalf("%+v", err)
		}
	}

	return &world
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestMakeFrame(t *testing.T) {
	frame := MakeFrame(restingWorld(t), 10)

	if frame.Step != 10 {
		t.Fatalf("step %d", frame.Step)
	}

	if len(frame.Bodies) != 1 || frame.Bodies[0].Handle != 1 {
		t.Fatalf("bodies %+v", frame.Bodies)
	}

	if len(frame.Contacts) != 1 || len(frame.Contacts[0].NormalImpulses) != 1 {
		t.Fatalf("contacts %+v", frame.Contacts)
	}

	if frame.Contacts[0].NormalImpulses[0] <= 0.0 {
		t.Fatalf("resting contact carries no impulse: %+v", frame.Contacts[0])
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub)
	defer server.Close()
	defer hub.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitFor(t, "client registration", func() bool { return hub.Clients() == 1 })

	hub.Broadcast(MakeFrame(restingWorld(t), 42))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame Frame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}

	if frame.Step != 42 || len(frame.Bodies) != 1 {
		t.Fatalf("frame %+v", frame)
	}

	conn.Close()
	waitFor(t, "client removal", func() bool { return hub.Clients() == 0 })
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	c := &client{send: make(chan Frame, 1)}
	hub.clients[c] = struct{}{}

	// The buffer holds one frame, the second overflows it.
	hub.Broadcast(Frame{Step: 1})
	hub.Broadcast(Frame{Step: 2})

	if hub.Clients() != 0 {
		t.Fatalf("slow client kept")
	}

	if frame, ok := <-c.send; !ok || frame.Step != 1 {
		t.Fatalf("first frame lost: %+v %v", frame, ok)
	}

	if _, ok := <-c.send; ok {
		t.Fatalf("send channel of a dropped client left open")
	}
}
