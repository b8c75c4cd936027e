// File: estately/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estately/config"
	"estately/cron"
	"estately/database"
	convRepo "estately/database/repository/conversation"
	propertyRepo "estately/database/repository/property"
	"estately/handlers"
	"estately/middleware"
	"estately/routes"
	"estately/services/chat"
	ai "estately/services/intelligence"
	"estately/services/search"
	"estately/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	conversationRepo := convRepo.NewMongoConversationRepo()
	propertiesRepo := propertyRepo.NewMongoPropertyRepo()

	// services.
	searchService := &search.DefaultPropertySearchService{
		Repo: propertiesRepo,
	}

	sessionStore := ai.NewRedisSessionStore(utils.GetSessionCacheClient())
	memoryStore := ai.NewRedisMemoryStore(utils.GetMemoryCacheClient())
	dispatcher := &ai.Dispatcher{
		Search:   searchService,
		Memories: memoryStore,
	}
	modelClient := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	aiService := ai.NewDefaultAIService(modelClient, sessionStore, dispatcher)

	titleClient := cron.NewTitleClient()
	conversationService := &chat.DefaultConversationService{
		Repo:   conversationRepo,
		Titles: titleClient,
	}

	// Background title worker.
	cron.InitTitleWorker(aiService, conversationRepo)

	// handlers.
	conversationHandler := handlers.NewConversationHandler(conversationService)
	chatHandler := handlers.NewChatHandler(conversationService, aiService)
	propertyHandler := handlers.NewPropertyHandler(searchService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CreateGuestSessionHandler: handlers.CreateGuestSessionHandler,

		CreateConversationHandler: conversationHandler.CreateConversationHandler,
		ListConversationsHandler:  conversationHandler.ListConversationsHandler,
		GetConversationHandler:    conversationHandler.GetConversationHandler,
		DeleteConversationHandler: conversationHandler.DeleteConversationHandler,

		SendMessageHandler: chatHandler.SendMessageHandler,

		SearchPropertiesHandler: propertyHandler.SearchPropertiesHandler,
		AddPropertyHandler:      propertyHandler.AddPropertyHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background health monitoring for /health.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionCacheClient(), utils.GetMemoryCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
