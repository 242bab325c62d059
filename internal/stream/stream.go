// Package stream pushes simulation frames to websocket clients.
package stream

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ByteArena/b2contact"
)

const (
	writeWait  = 2 * time.Second
	clientSend = 16
)

type Body struct {
	Handle int     `json:"handle"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
}

type Contact struct {
	BodyA          int       `json:"bodyA"`
	BodyB          int       `json:"bodyB"`
	Separation     []float64 `json:"separation"`
	NormalImpulses []float64 `json:"normalImpulses"`
}

// Frame is the state of the world after one step.
type Frame struct {
	Step     int       `json:"step"`
	Bodies   []Body    `json:"bodies"`
	Contacts []Contact `json:"contacts"`
	Solved   bool      `json:"solved"`
}

func MakeFrame(world *b2contact.B2World, step int) Frame {
	frame := Frame{
		Step:     step,
		Bodies:   make([]Body, 0, world.GetBodyCount()),
		Contacts: make([]Contact, 0, world.GetContactCount()),
		Solved:   world.GetProfile().PositionSolved,
	}

	for _, body := range world.GetBodies() {
		if body.GetType() == b2contact.B2BodyType.B2_staticBody {
			continue
		}

		position := body.GetPosition()
		velocity := body.GetLinearVelocity()
		frame.Bodies = append(frame.Bodies, Body{
			Handle: int(body.GetHandle()),
			X:      position[0],
			Y:      position[1],
			Angle:  body.GetAngle(),
			VX:     velocity[0],
			VY:     velocity[1],
		})
	}

	for _, contact := range world.GetContacts() {
		if !contact.IsSolid() {
			continue
		}

		c := Contact{
			BodyA: int(contact.GetBodyA()),
			BodyB: int(contact.GetBodyB()),
		}
		for _, manifold := range contact.GetManifolds() {
			for i := 0; i < manifold.PointCount; i++ {
				c.Separation = append(c.Separation, manifold.Points[i].Separation)
				c.NormalImpulses = append(c.NormalImpulses, manifold.Points[i].NormalImpulse)
			}
		}
		frame.Contacts = append(frame.Contacts, c)
	}

	return frame
}

type client struct {
	conn *websocket.Conn
	send chan Frame
}

// Hub fans frames out to every connected client. A client that cannot keep up
// is dropped instead of slowing the simulation down.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan Frame, clientSend),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	go h.readLoop(c)
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(frame Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			h.removeLocked(c)
			log.Printf("dropping slow client, %d left", len(h.clients))
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for frame := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(frame); err != nil {
			log.Printf("websocket write: %v", err)
			h.remove(c)
			break
		}
	}

	c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// Clients only listen; reading is needed to notice them leave.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			h.remove(c)
			return
		}
	}
}
