package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/config"
	"github.com/yeremiapane/housekeeping-app/feed"
	"github.com/yeremiapane/housekeeping-app/middlewares"
	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/router"
	"github.com/yeremiapane/housekeeping-app/services"
	"github.com/yeremiapane/housekeeping-app/utils"
)

func init() {
	// Load .env before anything reads the environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	settings := config.Load()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	feed.Init(db, settings.FeedPersist)

	janitor := services.NewFeedJanitor(db, settings.FeedTTLDays)
	janitor.Start()
	defer janitor.Stop()

	push := services.NewPushService(db, settings)
	telegram := services.NewTelegramService(settings)

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, settings, push, telegram)
	r.Use(rateLimiter.RateLimit())

	_ = r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	utils.InfoLogger.Printf("Listening on port %s", settings.Port)
	if err := r.Run(":" + settings.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.CleaningLog{},
		&models.RoomDND{},
		&models.RoomPriority{},
		&models.RoomNote{},
		&models.InspectionLog{},
		&models.LiveFeedEvent{},
		&models.ScoreLog{},
		&models.PushSubscription{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
