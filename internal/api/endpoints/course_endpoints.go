package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"elearn-backend/internal/database"
	"elearn-backend/internal/dto"
	"elearn-backend/internal/model"
	coursesvc "elearn-backend/internal/service/course"
)

type CoursePaths struct {
	// ItemPrefix is the mount point for per-course routes, e.g. "/api/courses/".
	ItemPrefix string
}

type CourseEndpoints interface {
	Collection(http.ResponseWriter, *http.Request) error
	Search(http.ResponseWriter, *http.Request) error
	Filter(http.ResponseWriter, *http.Request) error
	Item(http.ResponseWriter, *http.Request) error
}

type courseEndpoints struct {
	service *coursesvc.Service
	uploads *videoUploader
	paths   CoursePaths
}

func NewCourseEndpoints(db *database.Database, paths CoursePaths) CourseEndpoints {
	return &courseEndpoints{
		service: coursesvc.New(db),
		uploads: newVideoUploader(),
		paths:   paths,
	}
}

func (h *courseEndpoints) Collection(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:  h.handleList,
		http.MethodPost: h.handleCreate,
	})
}

func (h *courseEndpoints) Search(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleSearch,
	})
}

func (h *courseEndpoints) Filter(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleFilter,
	})
}

// Item serves /api/courses/{id} plus the nested review and videos routes.
func (h *courseEndpoints) Item(w http.ResponseWriter, r *http.Request) error {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, h.paths.ItemPrefix), "/")
	segments := strings.Split(rest, "/")

	switch {
	case len(segments) == 1 && segments[0] != "":
		courseID := segments[0]
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleGet(w, r, courseID)
			},
			http.MethodPut: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleUpdate(w, r, courseID)
			},
			http.MethodDelete: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleDelete(w, r, courseID)
			},
		})
	case len(segments) == 2 && segments[1] == "review":
		courseID := segments[0]
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleReview(w, r, courseID)
			},
		})
	case len(segments) == 2 && segments[1] == "videos":
		courseID := segments[0]
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleUploadVideo(w, r, courseID)
			},
		})
	default:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Not found",
			ErrorLog:   fmt.Errorf("unknown course path %q", r.URL.Path),
		}
	}
}

func (h *courseEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	courses, err := h.service.List(r.Context())
	if err != nil {
		return h.serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, toCourseResponses(courses))
}

func (h *courseEndpoints) handleSearch(w http.ResponseWriter, r *http.Request) error {
	courses, err := h.service.Search(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		return h.serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, toCourseResponses(courses))
}

func (h *courseEndpoints) handleFilter(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	params := coursesvc.FilterParams{
		Category: query.Get("category"),
		Teacher:  query.Get("teacher"),
	}

	for name, target := range map[string]**float64{
		"minPrice": &params.MinPrice,
		"maxPrice": &params.MaxPrice,
		"rating":   &params.MinRating,
	} {
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return &HTTPError{
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("Invalid %s value", name),
				ErrorLog:   fmt.Errorf("parse %s=%q: %w", name, raw, err),
			}
		}
		*target = &value
	}

	courses, err := h.service.Filter(r.Context(), params)
	if err != nil {
		return h.serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, toCourseResponses(courses))
}

func (h *courseEndpoints) handleGet(w http.ResponseWriter, r *http.Request, courseID string) error {
	course, err := h.service.Get(r.Context(), courseID)
	if err != nil {
		return h.serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, toCourseResponse(course))
}

func (h *courseEndpoints) handleCreate(w http.ResponseWriter, r *http.Request) error {
	identity, httpErr := identityWithRole(r, model.RoleTeacher)
	if httpErr != nil {
		return httpErr
	}

	var req dto.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode create course request: %w", err),
		}
	}

	course, err := h.service.Create(r.Context(), coursesvc.CreateParams{
		TeacherID:   identity.UserID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, toCourseResponse(course))
}

func (h *courseEndpoints) handleUpdate(w http.ResponseWriter, r *http.Request, courseID string) error {
	identity, httpErr := identityWithRole(r, model.RoleTeacher)
	if httpErr != nil {
		return httpErr
	}

	var req dto.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode update course request: %w", err),
		}
	}

	course, err := h.service.Update(r.Context(), identity.UserID, courseID, coursesvc.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, toCourseResponse(course))
}

func (h *courseEndpoints) handleDelete(w http.ResponseWriter, r *http.Request, courseID string) error {
	identity, httpErr := identityWithRole(r, model.RoleTeacher)
	if httpErr != nil {
		return httpErr
	}

	if err := h.service.Delete(r.Context(), identity.UserID, courseID); err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, ApiMessageResponse{Message: "Course deleted successfully!"})
}

func (h *courseEndpoints) handleReview(w http.ResponseWriter, r *http.Request, courseID string) error {
	identity, httpErr := identityWithRole(r, model.RoleStudent)
	if httpErr != nil {
		return httpErr
	}

	var req dto.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode review request: %w", err),
		}
	}

	course, err := h.service.AddReview(r.Context(), courseID, coursesvc.ReviewParams{
		StudentID: identity.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, toCourseResponse(course))
}

func (h *courseEndpoints) handleUploadVideo(w http.ResponseWriter, r *http.Request, courseID string) error {
	identity, httpErr := identityWithRole(r, model.RoleTeacher)
	if httpErr != nil {
		return httpErr
	}

	videoPath, err := h.uploads.Save(r)
	if err != nil {
		return err
	}

	if _, err := h.service.AttachVideo(r.Context(), identity.UserID, courseID, videoPath); err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.UploadVideoResponse{VideoPath: videoPath})
}

func (h *courseEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*coursesvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("course service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case coursesvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case coursesvc.ErrorCodeUnauthorized:
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: svcErr.Message, ErrorLog: errorLog}
	case coursesvc.ErrorCodeForbidden:
		return &HTTPError{StatusCode: http.StatusForbidden, Message: svcErr.Message, ErrorLog: errorLog}
	case coursesvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}

func toCourseResponses(courses []model.CourseItem) []dto.CourseResponse {
	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, toCourseResponse(course))
	}
	return responses
}

func toCourseResponse(course model.CourseItem) dto.CourseResponse {
	reviews := make([]dto.ReviewResponse, 0, len(course.Reviews))
	for _, review := range course.Reviews {
		reviews = append(reviews, dto.ReviewResponse{
			StudentID: review.StudentID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}

	videos := course.Videos
	if videos == nil {
		videos = []string{}
	}

	return dto.CourseResponse{
		CourseID:    course.CourseID,
		Title:       course.Title,
		Description: course.Description,
		TeacherID:   course.TeacherID,
		Price:       course.Price,
		Category:    course.Category,
		Rating:      course.Rating,
		Reviews:     reviews,
		Videos:      videos,
		CreatedAt:   course.CreatedAt,
	}
}
