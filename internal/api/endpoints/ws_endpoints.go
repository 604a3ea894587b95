package endpoints

import (
	"fmt"
	"net/http"
	"strings"

	authsvc "elearn-backend/internal/service/auth"
	"elearn-backend/internal/websocket"
)

type WSEndpoints interface {
	Chat(http.ResponseWriter, *http.Request) error
	Rooms(http.ResponseWriter, *http.Request) error
}

type wsEndpoints struct {
	handler *websocket.Handler
}

func NewWSEndpoints(handler *websocket.Handler) WSEndpoints {
	return &wsEndpoints{handler: handler}
}

// Chat upgrades the connection after verifying the handshake token. The token
// travels as a query parameter because browsers cannot set headers on
// websocket upgrades.
func (h *wsEndpoints) Chat(w http.ResponseWriter, r *http.Request) error {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	identity, err := authsvc.IdentityFromToken(token)
	if err != nil {
		return &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Unauthorized",
			ErrorLog:   fmt.Errorf("websocket handshake token: %w", err),
		}
	}

	h.handler.Serve(w, r, identity.UserID)
	return nil
}

// Rooms lists the rooms currently live in this gateway process.
func (h *wsEndpoints) Rooms(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
			h.handler.GetRooms(w, r)
			return nil
		},
	})
}
