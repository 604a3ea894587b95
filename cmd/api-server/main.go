package main

import (
	"log"

	"elearn-backend/internal/api"
	"elearn-backend/internal/api/router"
	"elearn-backend/internal/database"
	"elearn-backend/internal/env"
	"elearn-backend/internal/queue"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	// JWT_SECRET is deliberately absent here: token signing falls back to a
	// built-in default when it is unset.
	env.MustHave(env.AWSRegion, env.AWSID, env.AWSSecret, env.ChatRedisURL)

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	server := api.NewAPIServer(
		":81",
		queueManager,
		db,
		nil,
		router.UtilsRoutes("/api"),
		router.AuthRoutes("/api"),
		router.CourseRoutes("/api"),
		router.CartRoutes("/api"),
		router.RoomRoutes("/api"),
		router.ChatRoutes("/api"),
		router.UploadRoutes(env.GetOrDefault(env.UploadDir, "uploads/videos")),
	)

	server.Run()
}
