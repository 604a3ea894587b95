package router

import (
	"net/http"
	"strings"

	"elearn-backend/internal/api"
	"elearn-backend/internal/api/endpoints"
	"elearn-backend/internal/api/middleware"
)

func ChatRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		paths := endpoints.ChatPaths{
			MessagesPrefix: strings.TrimRight(prefix, "/") + "/chats/",
		}
		chatEndpoints := endpoints.NewChatEndpoints(s.Database(), paths)

		mux.HandleFunc(prefix+"/chats/send", s.MakeHTTPHandleFunc(chatEndpoints.Send, middleware.ValidateUserJWT))
		mux.HandleFunc(prefix+"/chats/", s.MakeHTTPHandleFunc(chatEndpoints.Messages, middleware.ValidateUserJWT))
	}
}
