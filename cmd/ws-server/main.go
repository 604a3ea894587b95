package main

import (
	"log"

	"elearn-backend/internal/api"
	"elearn-backend/internal/api/router"
	"elearn-backend/internal/database"
	"elearn-backend/internal/env"
	"elearn-backend/internal/queue"
	roomsvc "elearn-backend/internal/service/room"
	"elearn-backend/internal/websocket"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	env.MustHave(env.AWSRegion, env.AWSID, env.AWSSecret, env.ChatRedisURL)

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()
	handler := websocket.NewHandler(hub, roomsvc.New(db))

	server := api.NewAPIServer(
		":83",
		queueManager,
		db,
		handler,
		router.UtilsRoutes("/api"),
		router.WebsocketRoutes(),
	)

	server.Run()
}
