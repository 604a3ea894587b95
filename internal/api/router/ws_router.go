package router

import (
	"net/http"

	"elearn-backend/internal/api"
	"elearn-backend/internal/api/endpoints"
)

// WebsocketRoutes mounts the chat gateway. The handshake carries the access
// token as a query parameter; the endpoint validates it before upgrading.
func WebsocketRoutes() api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		wsEndpoints := endpoints.NewWSEndpoints(s.Handler())
		mux.HandleFunc("/ws", s.MakeHTTPHandleFunc(wsEndpoints.Chat))
		mux.HandleFunc("/ws/rooms", s.MakeHTTPHandleFunc(wsEndpoints.Rooms))
	}
}
