package routes

import (
	"net/http"
	"time"

	"estately/handlers"
	"estately/middleware"
	"estately/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterGuestRoutes registers the public guest-session endpoint.
func RegisterGuestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/guest/session", hb.CreateGuestSessionHandler)
}

// RegisterConversationRoutes registers conversation and chat endpoints.
func RegisterConversationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/conversations")
	{
		// Protected routes (Require Authentication)
		api.Use(middleware.GuestAuthMiddleware())
		api.POST("", hb.CreateConversationHandler)
		api.GET("", hb.ListConversationsHandler)
		api.GET("/:id", hb.GetConversationHandler)
		api.DELETE("/:id", hb.DeleteConversationHandler)
		api.POST("/:id/messages", hb.SendMessageHandler)
	}
}

// RegisterPropertyRoutes registers property listing endpoints.
func RegisterPropertyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/properties")
	{
		api.Use(middleware.GuestAuthMiddleware())
		api.GET("/search", hb.SearchPropertiesHandler)
		api.POST("", hb.AddPropertyHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterGuestRoutes(r, hb)
	RegisterConversationRoutes(r, hb)
	RegisterPropertyRoutes(r, hb)
	RegisterHealthRoute(r)
}
