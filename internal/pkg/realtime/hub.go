package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Frame is the JSON envelope exchanged over a relay connection. Data is an
// opaque payload forwarded as-is.
type Frame struct {
	Event  string          `json:"event"`
	RoomID string          `json:"roomId"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// inbound couples a client frame with the client that sent it
type inbound struct {
	client *Client
	frame  *Frame
}

// Hub is the room-based broadcast relay. Rooms are keyed by caller-supplied
// string ids (direct-chat pair or per-user notification room); membership is
// trusted, any connected client may join any room it knows the id of.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	frames     chan *inbound

	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		frames:     make(chan *inbound),
		logger:     logger,
	}
}

// Run starts the hub loop, handling registrations and client frames
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.logger.Info().
				Str("connID", client.connID).
				Str("userID", client.userID).
				Msg("Relay client connected")

		case client := <-h.unregister:
			h.removeClient(client)

		case in := <-h.frames:
			h.handleFrame(in.client, in.frame)
		}
	}
}

// handleFrame dispatches a client frame by event name
func (h *Hub) handleFrame(client *Client, frame *Frame) {
	switch frame.Event {
	case EventJoinRoom:
		h.joinRoom(client, frame.RoomID)

	case EventLeaveRoom:
		h.leaveRoom(client, frame.RoomID)

	case EventJoinUserRoom:
		// The room id field carries a user id here
		h.joinRoom(client, UserRoom(frame.RoomID))

	case EventSendMessage:
		// Pass-through relay: re-emit to the room, skipping the sender,
		// matching the REST write that persists the message separately
		h.broadcast(frame.RoomID, EventReceiveMessage, frame.Data, client)

	default:
		h.logger.Debug().
			Str("event", frame.Event).
			Str("connID", client.connID).
			Msg("Ignoring unknown relay event")
	}
}

// joinRoom adds a client to a room
func (h *Hub) joinRoom(client *Client, room string) {
	if room == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	client.joined[room] = true

	h.logger.Info().
		Str("room", room).
		Str("userID", client.userID).
		Str("connID", client.connID).
		Msg("Client joined room")
}

// leaveRoom removes a client from a room
func (h *Hub) leaveRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropMembership(client, room)
}

// removeClient removes a client from every room and closes its send queue
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.closed {
		return
	}

	for room := range client.joined {
		h.dropMembership(client, room)
	}

	client.closed = true
	close(client.send)

	h.logger.Info().
		Str("connID", client.connID).
		Str("userID", client.userID).
		Msg("Relay client disconnected")
}

// dropMembership removes one room membership; the caller holds the lock
func (h *Hub) dropMembership(client *Client, room string) {
	clients, ok := h.rooms[room]
	if !ok {
		return
	}

	delete(clients, client)
	delete(client.joined, room)

	if len(clients) == 0 {
		delete(h.rooms, room)
	}
}

// broadcast sends an event payload to every client in a room, except the
// excluded one. Delivery is at-most-once: a client with a full send queue
// misses the event.
func (h *Hub) broadcast(room, event string, payload interface{}, exclude *Client) {
	frame := Frame{
		Event:  event,
		RoomID: room,
	}

	switch data := payload.(type) {
	case json.RawMessage:
		frame.Data = data
	case nil:
	default:
		raw, err := json.Marshal(payload)
		if err != nil {
			h.logger.Error().Err(err).
				Str("room", room).
				Str("event", event).
				Msg("Failed to marshal relay payload")
			return
		}
		frame.Data = raw
	}

	data, err := json.Marshal(&frame)
	if err != nil {
		h.logger.Error().Err(err).
			Str("room", room).
			Str("event", event).
			Msg("Failed to marshal relay frame")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[room]
	if !ok {
		h.logger.Debug().
			Str("room", room).
			Str("event", event).
			Msg("No clients in room for broadcast")
		return
	}

	for client := range clients {
		if client == exclude {
			continue
		}
		select {
		case client.send <- data:
		default:
			h.logger.Warn().
				Str("room", room).
				Str("connID", client.connID).
				Msg("Dropped relay frame for slow client")
		}
	}
}

// Publish sends an event to every client in a room. It implements Publisher.
func (h *Hub) Publish(room string, event string, payload interface{}) {
	h.broadcast(room, event, payload, nil)
}

// ClientsInRoom returns the number of clients currently joined to a room
func (h *Hub) ClientsInRoom(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[room])
}
