package main

import (
	"log"
	"os"
	"time"

	"cargolink/internal/db"
	"cargolink/internal/middleware"
	"cargolink/internal/router"
	"cargolink/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Start the notification reconciler: retries failed fan-outs and
	// sweeps for proposals whose notifications went missing
	services.GetReconcileService().StartPeriodicSweep(5 * time.Minute)

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("cargolink_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("CargoLink server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
