package router

import (
	"net/http"
	"strings"

	"elearn-backend/internal/api"
	"elearn-backend/internal/api/endpoints"
	"elearn-backend/internal/api/middleware"
)

func RoomRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		paths := endpoints.RoomPaths{
			ItemPrefix: strings.TrimRight(prefix, "/") + "/rooms/",
		}
		roomEndpoints := endpoints.NewRoomEndpoints(s.Database(), paths)

		mux.HandleFunc(prefix+"/rooms", s.MakeHTTPHandleFunc(roomEndpoints.List, middleware.ValidateUserJWT))
		mux.HandleFunc(prefix+"/rooms/create", s.MakeHTTPHandleFunc(roomEndpoints.Create, middleware.ValidateUserJWT))
		mux.HandleFunc(prefix+"/rooms/join", s.MakeHTTPHandleFunc(roomEndpoints.Join, middleware.ValidateUserJWT))
		mux.HandleFunc(prefix+"/rooms/", s.MakeHTTPHandleFunc(roomEndpoints.Item, middleware.ValidateUserJWT))
	}
}
