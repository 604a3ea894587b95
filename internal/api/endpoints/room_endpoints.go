package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"elearn-backend/internal/database"
	"elearn-backend/internal/dto"
	"elearn-backend/internal/model"
	roomsvc "elearn-backend/internal/service/room"
)

type RoomPaths struct {
	// ItemPrefix is the mount point for per-room routes, e.g. "/api/rooms/".
	ItemPrefix string
}

type RoomEndpoints interface {
	Create(http.ResponseWriter, *http.Request) error
	Join(http.ResponseWriter, *http.Request) error
	List(http.ResponseWriter, *http.Request) error
	Item(http.ResponseWriter, *http.Request) error
}

type roomEndpoints struct {
	service *roomsvc.Service
	paths   RoomPaths
}

func NewRoomEndpoints(db *database.Database, paths RoomPaths) RoomEndpoints {
	return &roomEndpoints{
		service: roomsvc.New(db),
		paths:   paths,
	}
}

func (h *roomEndpoints) Create(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleCreate,
	})
}

func (h *roomEndpoints) Join(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleJoin,
	})
}

func (h *roomEndpoints) List(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleList,
	})
}

func (h *roomEndpoints) Item(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleGet,
	})
}

func (h *roomEndpoints) handleCreate(w http.ResponseWriter, r *http.Request) error {
	identity, httpErr := identityWithRole(r, model.RoleTeacher)
	if httpErr != nil {
		return httpErr
	}

	var req dto.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode create room request: %w", err),
		}
	}

	room, err := h.service.Create(r.Context(), roomsvc.CreateParams{
		TeacherID: identity.UserID,
		RoomName:  req.RoomName,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, toRoomResponse(room))
}

func (h *roomEndpoints) handleJoin(w http.ResponseWriter, r *http.Request) error {
	identity, httpErr := identityFromRequest(r)
	if httpErr != nil {
		return httpErr
	}

	var req dto.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode join room request: %w", err),
		}
	}

	room, err := h.service.Join(r.Context(), identity.UserID, req.RoomID)
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, toRoomResponse(room))
}

func (h *roomEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	rooms, err := h.service.List(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	responses := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, toRoomResponse(room))
	}

	return WriteJSON(w, http.StatusOK, responses)
}

func (h *roomEndpoints) handleGet(w http.ResponseWriter, r *http.Request) error {
	roomID, err := extractFromPath(r.URL.Path, h.paths.ItemPrefix)
	if err != nil {
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Not found",
			ErrorLog:   err,
		}
	}

	room, err := h.service.Get(r.Context(), roomID)
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, toRoomResponse(room))
}

func (h *roomEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*roomsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("room service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case roomsvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case roomsvc.ErrorCodeForbidden:
		return &HTTPError{StatusCode: http.StatusForbidden, Message: svcErr.Message, ErrorLog: errorLog}
	case roomsvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}

// toRoomResponse includes the embedded message log in append order.
func toRoomResponse(room model.RoomItem) dto.RoomResponse {
	students := room.Students
	if students == nil {
		students = []string{}
	}

	messages := make([]dto.RoomMessageResponse, 0, len(room.Messages))
	for _, msg := range room.Messages {
		messages = append(messages, dto.RoomMessageResponse{
			SenderID:  msg.SenderID,
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
		})
	}

	return dto.RoomResponse{
		RoomID:    room.RoomID,
		RoomName:  room.RoomName,
		TeacherID: room.TeacherID,
		Students:  students,
		Messages:  messages,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}
