package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"elearn-backend/internal/database"
	"elearn-backend/internal/dto"
	"elearn-backend/internal/model"
	cartsvc "elearn-backend/internal/service/cart"
)

type CartEndpoints interface {
	Cart(http.ResponseWriter, *http.Request) error
}

type cartEndpoints struct {
	service *cartsvc.Service
}

func NewCartEndpoints(db *database.Database) CartEndpoints {
	return &cartEndpoints{
		service: cartsvc.New(db),
	}
}

func (h *cartEndpoints) Cart(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:    h.handleList,
		http.MethodPost:   h.handleAdd,
		http.MethodDelete: h.handleRemove,
	})
}

func (h *cartEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	identity, httpErr := identityFromRequest(r)
	if httpErr != nil {
		return httpErr
	}

	entries, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		return h.serviceError(err)
	}

	responses := make([]dto.CartItemResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toCartItemResponse(entry))
	}

	return WriteJSON(w, http.StatusOK, responses)
}

func (h *cartEndpoints) handleAdd(w http.ResponseWriter, r *http.Request) error {
	identity, httpErr := identityWithRole(r, model.RoleStudent)
	if httpErr != nil {
		return httpErr
	}

	var req dto.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode add to cart request: %w", err),
		}
	}

	entry, err := h.service.Add(r.Context(), identity.UserID, req.CourseID)
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, toCartItemResponse(entry))
}

func (h *cartEndpoints) handleRemove(w http.ResponseWriter, r *http.Request) error {
	identity, httpErr := identityFromRequest(r)
	if httpErr != nil {
		return httpErr
	}

	var req dto.RemoveFromCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode remove from cart request: %w", err),
		}
	}

	if err := h.service.Remove(r.Context(), identity.UserID, req.CourseID); err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, ApiMessageResponse{Message: "Course removed from cart!"})
}

func (h *cartEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*cartsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("cart service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case cartsvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case cartsvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}

func toCartItemResponse(entry cartsvc.Entry) dto.CartItemResponse {
	return dto.CartItemResponse{
		CourseID:  entry.Item.CourseID,
		Course:    toCourseResponse(entry.Course),
		CreatedAt: entry.Item.CreatedAt,
	}
}
