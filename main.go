package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/campus-watch/api-go/config"
	"github.com/campus-watch/api-go/routes"
	"github.com/campus-watch/api-go/services"
	"github.com/campus-watch/api-go/utils/mailer"
	"github.com/campus-watch/api-go/utils/storage"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	if err := config.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Initialize database
	db := config.InitDB()

	// Best-effort notification delivery runs outside the request path.
	outbox := services.NewOutbox(mailer.NewClient(config.LoadEmailConfig()))
	defer outbox.Close()

	images := storage.NewImageStore()

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, db, outbox, images)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
