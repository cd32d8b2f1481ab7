package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"questboard/src/core/cache"
	"questboard/src/core/config"
	"questboard/src/core/database"
	"questboard/src/core/router"
	"questboard/src/core/wallet"
)

func main() {
	// Initialize the Fiber app
	app := fiber.New()

	// Middleware
	app.Use(recover.New())   // Recover middleware to handle panics
	app.Use(cors.New())      // CORS middleware for cross-origin requests
	app.Use(requestid.New()) // Middleware to generate unique request IDs

	// Setup environment variables
	config.SetupEnv()

	// Connect to the database
	db, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}

	// Object storage for thumbnails and image options
	storageClient, bucket, err := database.SupabaseStorage()
	if err != nil {
		log.Fatalf("Storage setup failed: %v", err)
	}

	// Leaderboard cache is optional; without Redis every request hits the DB
	var leaderboard *cache.LeaderboardCache
	if addr := config.Config("REDIS_ADDR"); addr != "" {
		redisDB, _ := strconv.Atoi(config.Config("REDIS_DB"))
		leaderboard, err = cache.New(addr, config.Config("REDIS_PASSWORD"), redisDB, 30*time.Second)
		if err != nil {
			log.Fatalf("Redis setup failed: %v", err)
		}
	}

	// Payout wallet
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	payoutWallet, err := wallet.New(ctx, config.Config("WALLET_RPC_URL"), config.Config("WALLET_PRIVATE_KEY"))
	cancel()
	if err != nil {
		log.Fatalf("Wallet setup failed: %v", err)
	}

	// Set up routes
	router.InitialiseAndSetupRoutes(app, router.Dependencies{
		DB:          db,
		Leaderboard: leaderboard,
		Storage:     storageClient,
		Bucket:      bucket,
		Wallet:      payoutWallet,
	})

	// Get port from config and start the server
	port := config.Config("APP_PORT")
	if port == "" {
		port = "5555"
	}
	log.Fatal(app.Listen(fmt.Sprintf(":%s", port)))
}
