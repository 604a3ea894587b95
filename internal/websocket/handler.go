package websocket

import (
	"context"
	"elearn-backend/internal/env"
	"elearn-backend/internal/model"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	upgrader    websocket.Upgrader
	redisClient *redis.Client
)

func init() {
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	redisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.ChatRedisURL),
		Password: env.Get(env.ChatRedisPass),
		DB:       0,
	})
}

// RoomStore is the gateway's only persistence dependency: a best-effort append
// of a relayed message onto the room's embedded log.
type RoomStore interface {
	AppendMessage(ctx context.Context, roomID string, msg model.RoomMessage) error
}

type Handler struct {
	hub         *Hub
	store       RoomStore
	redisClient *redis.Client
	publish     func(ctx context.Context, msg *WSMessage) error
	subscribed  sync.Map
	now         func() time.Time
}

func NewHandler(h *Hub, store RoomStore) *Handler {
	return &Handler{
		hub:         h,
		store:       store,
		redisClient: redisClient,
		publish: func(ctx context.Context, msg *WSMessage) error {
			return publishMessage(ctx, redisClient, msg)
		},
		now: time.Now,
	}
}

// Serve upgrades the request and starts the connection pumps. The caller has
// already verified the handshake token; userID is the verified identity, and
// it overrides whatever sender the client later claims in-band.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written its own error response.
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	cl := &WSClient{
		Conn:    conn,
		Message: make(chan *WSMessage, 10),
		ConnID:  uuid.NewString(),
		UserID:  userID,
		done:    make(chan struct{}),
	}

	incConnections()

	go cl.keepAlive()
	go cl.writeMessage()
	go cl.readMessage(h)
}

func (h *Handler) joinRoom(cl *WSClient, roomID string) {
	if roomID == "" {
		log.Printf("client %s tried to join an unnamed room", cl.ConnID)
		return
	}

	// No check that roomID names a persisted Room; joining a name is enough.
	h.ensureSubscribed(roomID)
	h.hub.Join <- joinRequest{client: cl, roomID: roomID}
}

// relayMessage persists best-effort and then delivers no matter what: a
// failed append is logged and swallowed, never surfaced to the sender.
// Delivery goes through the room's Redis channel so members connected to
// other gateway processes receive it too; the sender's own process gets it
// back through its room subscription. Without Redis the message goes straight
// to the local hub.
func (h *Handler) relayMessage(cl *WSClient, event ClientEvent) {
	if event.RoomID == "" || event.Text == "" {
		log.Printf("client %s sent incomplete message event", cl.ConnID)
		return
	}

	timestamp := h.now().UTC().Format(time.RFC3339)

	record := model.RoomMessage{
		SenderID:  cl.UserID,
		Text:      event.Text,
		Timestamp: timestamp,
	}
	if err := h.store.AppendMessage(context.Background(), event.RoomID, record); err != nil {
		log.Printf("error saving message for room %s: %v", event.RoomID, err)
	}

	msg := &WSMessage{
		Event:     EventNewMessage,
		RoomID:    event.RoomID,
		Sender:    cl.UserID,
		Text:      event.Text,
		Timestamp: timestamp,
	}

	if h.publish != nil {
		err := h.publish(context.Background(), msg)
		if err == nil {
			return
		}
		log.Printf("error publishing message for room %s: %v; delivering locally only", event.RoomID, err)
	}

	h.hub.Broadcast <- msg
}

// ensureSubscribed starts the Redis fan-in goroutine for a room exactly once
// per process so REST-originated messages reach local members.
func (h *Handler) ensureSubscribed(roomID string) {
	if h.redisClient == nil {
		return
	}
	if _, loaded := h.subscribed.LoadOrStore(roomID, struct{}{}); loaded {
		return
	}
	go h.subscribeToRoomChannel(roomID)
}

func (h *Handler) subscribeToRoomChannel(roomID string) {
	log.Printf("subscribing to Redis channel: %s", roomID)
	subscriber := h.redisClient.Subscribe(context.Background(), roomID)
	defer subscriber.Close()

	ch := subscriber.Channel()
	for msg := range ch {
		var relayed WSMessage
		if err := json.Unmarshal([]byte(msg.Payload), &relayed); err != nil {
			log.Printf("malformed payload on Redis channel %s: %v", roomID, err)
			continue
		}
		relayed.Event = EventNewMessage
		relayed.RoomID = roomID

		h.hub.Broadcast <- &relayed
	}
	log.Printf("unsubscribed from Redis channel: %s", roomID)
}

func (h *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ids := h.hub.RoomIDs()
	sort.Strings(ids)

	rooms := make([]RoomRes, 0, len(ids))
	for _, id := range ids {
		rooms = append(rooms, RoomRes{ID: id})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rooms)
}
