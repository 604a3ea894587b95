package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	Conn    *websocket.Conn
	Message chan *WSMessage
	// ConnID identifies the live connection; UserID is the authenticated
	// identity stamped onto every message this connection sends.
	ConnID   string
	UserID   string
	done     chan struct{}
	mu       sync.Mutex
	isClosed bool

	// closed is touched only by the hub goroutine.
	closed bool
}

// shutdown is hub-goroutine only; the map deletes and this flag serialize
// there, so the channel is closed exactly once.
func (cl *WSClient) shutdown() {
	if cl.closed {
		return
	}
	cl.closed = true
	close(cl.Message)
}

func (cl *WSClient) keepAlive() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.Conn.WriteMessage(websocket.PingMessage, nil)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("ping error for client %s: %v", cl.ConnID, err)
				return
			}
		}
	}
}

func (cl *WSClient) writeMessage() {
	defer func() {
		cl.mu.Lock()
		cl.isClosed = true
		cl.Conn.Close()
		cl.mu.Unlock()
	}()

	for {
		select {
		case <-cl.done:
			return
		case msg, ok := <-cl.Message:
			if !ok {
				return
			}

			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.Conn.WriteJSON(msg)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("error sending message to client %s: %v", cl.ConnID, err)
				return
			}
		}
	}
}

func (cl *WSClient) readMessage(h *Handler) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from panic in readMessage: %v", r)
		}

		if cl.done != nil {
			close(cl.done)
		}

		h.hub.Unregister <- cl
		decConnections()
		log.Printf("client %s (user %s) disconnected", cl.ConnID, cl.UserID)
	}()

	cl.Conn.SetReadLimit(512 * 1024)

	for {
		_, raw, err := cl.Conn.ReadMessage()
		if err != nil {
			if closeErr, ok := err.(*websocket.CloseError); ok {
				if closeErr.Code == websocket.CloseNormalClosure ||
					closeErr.Code == websocket.CloseGoingAway ||
					closeErr.Code == websocket.CloseNoStatusReceived {
					break
				}
			}
			log.Printf("error reading message from client %s: %v", cl.ConnID, err)
			break
		}

		var event ClientEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Printf("client %s sent malformed event: %v", cl.ConnID, err)
			continue
		}

		switch event.Event {
		case EventJoinRoom:
			h.joinRoom(cl, event.RoomID)
		case EventSendMessage:
			h.relayMessage(cl, event)
		default:
			log.Printf("client %s sent unknown event %q", cl.ConnID, event.Event)
		}
	}
}
