package websocket

type Hub struct {
	Rooms      map[string]*Room
	Join       chan joinRequest
	Unregister chan *WSClient
	Broadcast  chan *WSMessage
	snapshots  chan chan []string
}

func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]*Room),
		Join:       make(chan joinRequest),
		Unregister: make(chan *WSClient),
		Broadcast:  make(chan *WSMessage),
		snapshots:  make(chan chan []string),
	}
}

// RoomIDs lists the rooms known to this process. The snapshot is taken on the
// hub goroutine, so callers never touch Rooms concurrently with joins.
func (h *Hub) RoomIDs() []string {
	reply := make(chan []string, 1)
	h.snapshots <- reply
	return <-reply
}

// Run owns all room membership state; it is the only goroutine that touches
// h.Rooms, so joins, broadcasts, and disconnects serialize here in arrival
// order.
func (h *Hub) Run() {
	for {
		select {
		case req := <-h.Join:
			room, ok := h.Rooms[req.roomID]
			if !ok {
				room = &Room{
					Id:      req.roomID,
					Clients: make(map[string]*WSClient),
				}
				h.Rooms[req.roomID] = room
				setRooms(len(h.Rooms))
			}
			// Re-joining is a no-op; the map key keeps it idempotent.
			room.Clients[req.client.ConnID] = req.client

		case reply := <-h.snapshots:
			ids := make([]string, 0, len(h.Rooms))
			for id := range h.Rooms {
				ids = append(ids, id)
			}
			reply <- ids

		case client := <-h.Unregister:
			for _, room := range h.Rooms {
				delete(room.Clients, client.ConnID)
			}
			client.shutdown()

		case message := <-h.Broadcast:
			room, ok := h.Rooms[message.RoomID]
			if !ok {
				// Nobody joined this room on this process; delivery is a no-op.
				continue
			}
			delivered := 0
			for _, client := range room.Clients {
				if client.closed {
					delete(room.Clients, client.ConnID)
					continue
				}
				select {
				case client.Message <- message:
					delivered++
				default:
					// Slow consumer: drop it rather than stall the room.
					delete(room.Clients, client.ConnID)
					client.shutdown()
				}
			}
			if delivered > 0 {
				addDelivered(delivered)
			}
		}
	}
}
