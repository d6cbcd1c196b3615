package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/config"
	"github.com/yeremiapane/housekeeping-app/controllers"
	"github.com/yeremiapane/housekeeping-app/middlewares"
	"github.com/yeremiapane/housekeeping-app/services"
)

// SetupRouter wires every endpoint. Floor kiosks post the cleaning
// lifecycle without a session, so those routes take optional auth; the
// destructive and administrative routes require a token.
func SetupRouter(db *gorm.DB, settings config.Settings, push *services.PushService, telegram *services.TelegramService) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(settings.CORSOrigins))
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	logCtrl := controllers.NewLogController(db, push)
	dndCtrl := controllers.NewDNDController(db, push)
	priorityCtrl := controllers.NewPriorityController(db)
	noteCtrl := controllers.NewNoteController(db)
	inspectionCtrl := controllers.NewInspectionController(db, push)
	feedCtrl := controllers.NewFeedController(db)
	scoreCtrl := controllers.NewScoreController(db)
	pushCtrl := controllers.NewPushController(push)
	telegramCtrl := controllers.NewTelegramController(telegram)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Live feed websocket. Anonymous floor displays are allowed; a token,
	// when supplied, identifies the client in the logs.
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("", feedCtrl.HandleWebSocket)
	}

	api := r.Group("/api")
	api.Use(middlewares.OptionalAuthMiddleware())
	{
		// CLEANING LIFECYCLE (kiosk friendly)
		api.GET("/logs", logCtrl.GetLogs)
		api.GET("/logs/status", logCtrl.GetRoomStatus)
		api.POST("/logs/start", logCtrl.StartCleaning)
		api.POST("/logs/finish", logCtrl.FinishCleaning)
		api.POST("/logs/check", logCtrl.CheckRoom)
		api.POST("/logs/reset", logCtrl.ResetCleaning)

		// DND / PRIORITY / NOTES
		api.GET("/logs/dnd", dndCtrl.GetDND)
		api.POST("/logs/dnd", dndCtrl.SetDND)
		api.GET("/logs/priority", priorityCtrl.GetPriorities)
		api.POST("/logs/priority", priorityCtrl.SetPriority)
		api.GET("/logs/notes", noteCtrl.GetNotes)
		api.POST("/logs/notes", noteCtrl.SetNote)

		// INSPECTIONS
		api.GET("/inspection/logs", inspectionCtrl.GetLogs)
		api.POST("/inspection/item", inspectionCtrl.UpdateItem)
		api.POST("/inspection/submit", inspectionCtrl.Submit)

		// FEED HISTORY
		api.GET("/feed/events", feedCtrl.GetEvents)
		api.GET("/feed/events/:room", feedCtrl.GetRoomEvents)

		// SCORES
		api.POST("/score/add", scoreCtrl.AddScore)
		api.GET("/score/leaderboard", scoreCtrl.Leaderboard)

		// WEB PUSH
		api.GET("/push/public-key", pushCtrl.PublicKey)
		api.POST("/push/subscribe", pushCtrl.Subscribe)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.PATCH("/profile", userCtrl.UpdateProfile)
		auth.POST("/logout", userCtrl.Logout)
		auth.POST("/send-telegram", telegramCtrl.Send)

		admin := auth.Group("/")
		admin.Use(middlewares.RequireRole("supervisor"))
		{
			admin.POST("/logs/clear", logCtrl.ClearLogs)
			admin.POST("/score/reward-fastest", scoreCtrl.RewardFastest)
			admin.GET("/users", userCtrl.ListUsers)
		}
	}

	return r
}
