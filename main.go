package main

import (
	"context"
	"log"
	"os"

	"api/config"
	"api/database"
	"api/middleware"
	v1 "api/routes/v1"
	"api/services"
	"api/services/platforms"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Contest Tracker API
// @version 1.0
// @description Aggregates programming contests from Codeforces, CodeChef and
// @description LeetCode and links YouTube solution videos to stored contests.
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	config.LoadConfig()

	database.InitDB()
	database.InitRedis()

	aggregator := platforms.NewAggregator(database.RDB)
	store := services.NewContestStore(database.DB)
	resolver := services.NewContestResolver(store, aggregator)

	var engine *services.SyncEngine
	if config.YouTubeAPIKey != "" {
		client, err := services.NewYouTubeClient(context.Background(), config.YouTubeAPIKey)
		if err != nil {
			log.Fatal("failed to create YouTube client: ", err)
		}
		engine = services.NewSyncEngine(client, store)

		scheduler := services.NewSyncScheduler(engine, config.SyncInterval)
		scheduler.Start()
		defer scheduler.Stop()
		log.Println("YouTube playlist sync scheduler started")
	} else {
		log.Println("WARNING: YOUTUBE_API_KEY not set, YouTube playlist sync disabled")
	}

	middleware.UpdateSystemMetrics()

	r := gin.Default()
	v1.Register(r, v1.Dependencies{
		Aggregator: aggregator,
		Resolver:   resolver,
		SyncEngine: engine,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Println("Starting server on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
