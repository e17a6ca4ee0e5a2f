package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BjornOnGit/adec-web/internal/handler"
	"github.com/BjornOnGit/adec-web/internal/middleware"
	"github.com/BjornOnGit/adec-web/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	directoryHandler *handler.DirectoryHandler,
	settingsHandler *handler.SettingsHandler,
	messageHandler *handler.MessageHandler,
	eventHandler *handler.EventHandler,
	documentHandler *handler.DocumentHandler,
	blogHandler *handler.BlogHandler,
	marketingHandler *handler.MarketingHandler,
	wsHandler *handler.WSHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Authentication
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.Me)
	auth.POST("/password", middleware.JWTAuth(jwtManager), authHandler.ChangePassword)

	// Public site
	api.GET("/stats", directoryHandler.GetStats)
	api.GET("/partners", marketingHandler.ListPartners)
	api.POST("/newsletter", marketingHandler.Subscribe)
	api.POST("/contact", marketingHandler.Contact)
	api.GET("/blog", blogHandler.ListPublished)
	api.GET("/blog/:id", blogHandler.GetPublished)

	// Members portal (auth required)
	portal := api.Group("/portal", middleware.JWTAuth(jwtManager))

	directory := portal.Group("/directory")
	directory.GET("", directoryHandler.ListMembers)
	directory.GET("/:id", directoryHandler.GetProfile)

	settings := portal.Group("/settings")
	settings.GET("/profile", settingsHandler.GetAccount)
	settings.PUT("/profile", settingsHandler.UpdateProfile)
	settings.POST("/avatar", settingsHandler.UploadAvatar)
	settings.DELETE("/avatar", settingsHandler.DeleteAvatar)
	settings.GET("/notifications", settingsHandler.GetPreferences)
	settings.PUT("/notifications", settingsHandler.UpdatePreferences)

	conversations := portal.Group("/conversations")
	conversations.GET("", messageHandler.ListConversations)
	conversations.POST("", messageHandler.StartConversation)
	conversations.GET("/:id/messages", messageHandler.ListMessages)
	conversations.POST("/:id/messages", messageHandler.SendMessage)
	conversations.POST("/:id/read", messageHandler.MarkRead)

	events := portal.Group("/events")
	events.GET("", eventHandler.ListEvents)
	events.POST("", eventHandler.CreateEvent)
	events.GET("/calendar", eventHandler.Calendar)
	events.GET("/mine", eventHandler.ListMine)
	events.GET("/registrations", eventHandler.MyRegistrations)
	events.GET("/:id", eventHandler.GetEvent)
	events.PUT("/:id", eventHandler.UpdateEvent)
	events.DELETE("/:id", eventHandler.DeleteEvent)
	events.POST("/:id/register", eventHandler.Register)
	events.DELETE("/:id/register", eventHandler.Unregister)

	documents := portal.Group("/documents")
	documents.GET("", documentHandler.ListDocuments)
	documents.POST("", documentHandler.Upload)
	documents.DELETE("/:id", documentHandler.Delete)
	documents.GET("/:id/download", documentHandler.Download)

	blog := portal.Group("/blog")
	blog.GET("", blogHandler.ListMine)
	blog.POST("", blogHandler.CreatePost)
	blog.PUT("/:id", blogHandler.UpdatePost)
	blog.DELETE("/:id", blogHandler.DeletePost)

	// Real-time portal events
	router.GET("/ws/portal", middleware.JWTAuth(jwtManager), wsHandler.Connect)
}
