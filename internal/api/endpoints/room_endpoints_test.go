package endpoints

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"elearn-backend/internal/dto"
	"elearn-backend/internal/model"
	chatsvc "elearn-backend/internal/service/chat"
	roomsvc "elearn-backend/internal/service/room"
)

type roomTestRepository struct {
	mu    sync.Mutex
	rooms map[string]model.RoomItem
}

func newRoomTestRepository() *roomTestRepository {
	return &roomTestRepository{rooms: make(map[string]model.RoomItem)}
}

func (m *roomTestRepository) PutRoom(ctx context.Context, room model.RoomItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[room.RoomID] = room
	return nil
}

func (m *roomTestRepository) GetRoom(ctx context.Context, roomID string) (model.RoomItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[roomID]
	if !ok {
		return model.RoomItem{}, roomsvc.ErrNotFound
	}
	return room, nil
}

func (m *roomTestRepository) ListRooms(ctx context.Context) ([]model.RoomItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rooms := make([]model.RoomItem, 0, len(m.rooms))
	for _, room := range m.rooms {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

type chatTestRepository struct {
	rooms    *roomTestRepository
	mu       sync.Mutex
	messages []model.MessageItem
}

func (m *chatTestRepository) PutMessage(ctx context.Context, msg model.MessageItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *chatTestRepository) ListMessages(ctx context.Context, roomID string) ([]model.MessageItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	messages := make([]model.MessageItem, 0)
	for _, msg := range m.messages {
		if msg.RoomID == roomID {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

func (m *chatTestRepository) GetRoom(ctx context.Context, roomID string) (model.RoomItem, error) {
	room, err := m.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return model.RoomItem{}, chatsvc.ErrNotFound
	}
	return room, nil
}

type chatTestEnv struct {
	mux      *http.ServeMux
	rooms    *roomTestRepository
	roomSvc  *roomsvc.Service
	messages *chatTestRepository
	publishs *[]string
}

func setupRoomChatMux(t *testing.T) chatTestEnv {
	t.Helper()

	roomRepo := newRoomTestRepository()
	roomService := roomsvc.NewWithRepository(roomRepo, fixedTime)

	chatRepo := &chatTestRepository{rooms: roomRepo}
	published := make([]string, 0)
	chatService := chatsvc.NewWithRepository(chatRepo, func(_ context.Context, roomID, senderID, text, timestamp string) error {
		published = append(published, roomID+"|"+senderID+"|"+text)
		return nil
	}, fixedTime)

	roomEndpoints := &roomEndpoints{
		service: roomService,
		paths:   RoomPaths{ItemPrefix: "/api/rooms/"},
	}
	chatEndpoints := &chatEndpoints{
		service: chatService,
		paths:   ChatPaths{MessagesPrefix: "/api/chats/"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/rooms", handlerFor(roomEndpoints.List))
	mux.HandleFunc("/api/rooms/create", handlerFor(roomEndpoints.Create))
	mux.HandleFunc("/api/rooms/join", handlerFor(roomEndpoints.Join))
	mux.HandleFunc("/api/rooms/", handlerFor(roomEndpoints.Item))
	mux.HandleFunc("/api/chats/send", handlerFor(chatEndpoints.Send))
	mux.HandleFunc("/api/chats/", handlerFor(chatEndpoints.Messages))

	return chatTestEnv{
		mux:      mux,
		rooms:    roomRepo,
		roomSvc:  roomService,
		messages: chatRepo,
		publishs: &published,
	}
}

func createRoom(t *testing.T, env chatTestEnv, authorization string) dto.RoomResponse {
	t.Helper()

	rec := doJSON(t, env.mux, http.MethodPost, "/api/rooms/create", authorization, dto.CreateRoomRequest{
		RoomName: "algebra-101",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var room dto.RoomResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &room); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	return room
}

func TestCreateRoomRequiresTeacher(t *testing.T) {
	env := setupRoomChatMux(t)

	rec := doJSON(t, env.mux, http.MethodPost, "/api/rooms/create", bearerToken(t, "student-1", "s@example.com", model.RoleStudent), dto.CreateRoomRequest{
		RoomName: "algebra-101",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestJoinRoomIsIdempotentOverHTTP(t *testing.T) {
	env := setupRoomChatMux(t)
	teacher := bearerToken(t, "teacher-1", "t@example.com", model.RoleTeacher)
	student := bearerToken(t, "student-1", "s@example.com", model.RoleStudent)

	room := createRoom(t, env, teacher)

	for i := 0; i < 2; i++ {
		rec := doJSON(t, env.mux, http.MethodPost, "/api/rooms/join", student, dto.JoinRoomRequest{RoomID: room.RoomID})
		if rec.Code != http.StatusOK {
			t.Fatalf("join %d: expected 200, got %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	rec := doJSON(t, env.mux, http.MethodGet, "/api/rooms/"+room.RoomID, student, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got dto.RoomResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	if len(got.Students) != 1 || got.Students[0] != "student-1" {
		t.Fatalf("unexpected students %v", got.Students)
	}
}

func TestRoomEndpointReturnsEmbeddedLogInOrder(t *testing.T) {
	env := setupRoomChatMux(t)
	teacher := bearerToken(t, "teacher-1", "t@example.com", model.RoleTeacher)
	room := createRoom(t, env, teacher)

	// Messages appended through the gateway path land in the embedded log.
	for _, text := range []string{"first", "second"} {
		err := env.roomSvc.AppendMessage(context.Background(), room.RoomID, model.RoomMessage{
			SenderID:  "student-1",
			Text:      text,
			Timestamp: "2024-01-01T12:00:00Z",
		})
		if err != nil {
			t.Fatalf("append %q: %v", text, err)
		}
	}

	rec := doJSON(t, env.mux, http.MethodGet, "/api/rooms/"+room.RoomID, teacher, nil)
	var got dto.RoomResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	if len(got.Messages) != 2 || got.Messages[0].Text != "first" || got.Messages[1].Text != "second" {
		t.Fatalf("unexpected log %+v", got.Messages)
	}
}

func TestChatSendWritesMessagesStoreNotRoomLog(t *testing.T) {
	env := setupRoomChatMux(t)
	teacher := bearerToken(t, "teacher-1", "t@example.com", model.RoleTeacher)
	student := bearerToken(t, "student-1", "s@example.com", model.RoleStudent)
	room := createRoom(t, env, teacher)

	rec := doJSON(t, env.mux, http.MethodPost, "/api/chats/send", student, dto.SendMessageRequest{
		RoomID: room.RoomID,
		Text:   "hello",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var msg dto.MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if msg.SenderID != "student-1" {
		t.Fatalf("sender must come from the token, got %q", msg.SenderID)
	}

	if len(*env.publishs) != 1 {
		t.Fatalf("expected one publish, got %v", *env.publishs)
	}

	stored, err := env.rooms.GetRoom(context.Background(), room.RoomID)
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	if len(stored.Messages) != 0 {
		t.Fatalf("chat send must not touch the embedded log: %+v", stored.Messages)
	}

	listRec := doJSON(t, env.mux, http.MethodGet, "/api/chats/"+room.RoomID, student, nil)
	if listRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", listRec.Code, listRec.Body.String())
	}
	var messages []dto.MessageResponse
	if err := json.Unmarshal(listRec.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(messages) != 1 || messages[0].Text != "hello" {
		t.Fatalf("unexpected messages %+v", messages)
	}
}

func TestChatSendToUnknownRoomIs404(t *testing.T) {
	env := setupRoomChatMux(t)
	student := bearerToken(t, "student-1", "s@example.com", model.RoleStudent)

	rec := doJSON(t, env.mux, http.MethodPost, "/api/chats/send", student, dto.SendMessageRequest{
		RoomID: "missing",
		Text:   "hello",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}
