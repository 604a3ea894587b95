package router

import (
	"net/http"

	"elearn-backend/internal/api"
	"elearn-backend/internal/api/endpoints"
	"elearn-backend/internal/api/middleware"
)

func CartRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		cartEndpoints := endpoints.NewCartEndpoints(s.Database())
		mux.HandleFunc(prefix+"/cart", s.MakeHTTPHandleFunc(cartEndpoints.Cart, middleware.ValidateUserJWT))
		mux.HandleFunc(prefix+"/cart/", s.MakeHTTPHandleFunc(cartEndpoints.Cart, middleware.ValidateUserJWT))
	}
}
