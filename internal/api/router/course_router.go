package router

import (
	"net/http"
	"strings"

	"elearn-backend/internal/api"
	"elearn-backend/internal/api/endpoints"
)

func CourseRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		paths := endpoints.CoursePaths{
			ItemPrefix: strings.TrimRight(prefix, "/") + "/courses/",
		}
		courseEndpoints := endpoints.NewCourseEndpoints(s.Database(), paths)

		mux.HandleFunc(prefix+"/courses", s.MakeHTTPHandleFunc(courseEndpoints.Collection))
		mux.HandleFunc(prefix+"/courses/search", s.MakeHTTPHandleFunc(courseEndpoints.Search))
		mux.HandleFunc(prefix+"/courses/filter", s.MakeHTTPHandleFunc(courseEndpoints.Filter))
		mux.HandleFunc(prefix+"/courses/", s.MakeHTTPHandleFunc(courseEndpoints.Item))
	}
}

// UploadRoutes serves stored course videos from the upload directory.
func UploadRoutes(uploadDir string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		fileServer := http.FileServer(http.Dir(uploadDir))
		mux.Handle("/uploads/videos/", http.StripPrefix("/uploads/videos/", fileServer))
	}
}
