package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"elearn-backend/internal/database"
	"elearn-backend/internal/dto"
	"elearn-backend/internal/model"
	chatsvc "elearn-backend/internal/service/chat"
)

type ChatPaths struct {
	// MessagesPrefix is the mount point for per-room listing, e.g. "/api/chats/".
	MessagesPrefix string
}

type ChatEndpoints interface {
	Send(http.ResponseWriter, *http.Request) error
	Messages(http.ResponseWriter, *http.Request) error
}

type chatEndpoints struct {
	service *chatsvc.Service
	paths   ChatPaths
}

func NewChatEndpoints(db *database.Database, paths ChatPaths) ChatEndpoints {
	return &chatEndpoints{
		service: chatsvc.New(db),
		paths:   paths,
	}
}

func (h *chatEndpoints) Send(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSend,
	})
}

func (h *chatEndpoints) Messages(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleMessages,
	})
}

func (h *chatEndpoints) handleSend(w http.ResponseWriter, r *http.Request) error {
	identity, httpErr := identityFromRequest(r)
	if httpErr != nil {
		return httpErr
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode send message request: %w", err),
		}
	}

	msg, err := h.service.Send(r.Context(), chatsvc.SendParams{
		RoomID:   req.RoomID,
		SenderID: identity.UserID,
		Text:     req.Text,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, toMessageResponse(msg))
}

func (h *chatEndpoints) handleMessages(w http.ResponseWriter, r *http.Request) error {
	roomID, err := extractFromPath(r.URL.Path, h.paths.MessagesPrefix)
	if err != nil {
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Not found",
			ErrorLog:   err,
		}
	}

	messages, err := h.service.List(r.Context(), roomID)
	if err != nil {
		return h.serviceError(err)
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, toMessageResponse(msg))
	}

	return WriteJSON(w, http.StatusOK, responses)
}

func (h *chatEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*chatsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("chat service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case chatsvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case chatsvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}

func toMessageResponse(msg model.MessageItem) dto.MessageResponse {
	return dto.MessageResponse{
		MessageID: msg.MessageID,
		RoomID:    msg.RoomID,
		SenderID:  msg.SenderID,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	}
}
