package routes

import (
	"net/http"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/database"
	"task-manager/internal/handlers"
	"task-manager/internal/middleware"
	"task-manager/internal/realtime"
	"task-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires services and handlers onto a gin engine. database.InitDB
// must have run first.
func SetupRoutes(cfg config.Config) *gin.Engine {
	ginRouter := gin.Default()

	ginRouter.Use(middleware.RequestID())

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	db := database.GetDB()

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "Unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "Healthy",
			"database":  "Connected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	taskService := service.NewTaskService(db, cfg.DefaultPageSize, cfg.MaxPageSize)
	commentService := service.NewCommentService(db)
	noteService := service.NewNoteService(db)
	catalogService := service.NewCatalogService(db, time.Duration(cfg.CatalogCacheTTL)*time.Second)

	accountHandler := handlers.NewAccountHandler(db, time.Duration(cfg.TokenTTLHours)*time.Hour)
	taskHandler := handlers.NewTaskHandler(taskService, realtime.GetHub())
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	commentHandler := handlers.NewCommentHandler(commentService)
	noteHandler := handlers.NewNoteHandler(noteService)
	userHandler := handlers.NewUserHandler(db)

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/account/login", accountHandler.Login)
		api.POST("/account/register", accountHandler.Register)
		api.GET("/account/checkauth", accountHandler.CheckAuth)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		protectedRoutes.POST("/account/logout", accountHandler.Logout)

		// Task endpoints
		protectedRoutes.GET("/tasks", taskHandler.List)
		protectedRoutes.GET("/tasks/:id", taskHandler.Get)
		protectedRoutes.POST("/tasks", taskHandler.Create)
		protectedRoutes.PUT("/tasks/:id", taskHandler.Update)
		protectedRoutes.DELETE("/tasks/:id", taskHandler.Delete)

		// Category and tag endpoints
		protectedRoutes.GET("/categories", catalogHandler.ListCategories)
		protectedRoutes.POST("/categories", catalogHandler.CreateCategory)
		protectedRoutes.DELETE("/categories/:id", catalogHandler.DeleteCategory)
		protectedRoutes.GET("/tags", catalogHandler.ListTags)
		protectedRoutes.POST("/tags", catalogHandler.CreateTag)
		protectedRoutes.DELETE("/tags/:id", catalogHandler.DeleteTag)

		// Comment endpoints
		protectedRoutes.GET("/tasks/:id/comments", commentHandler.ListByTask)
		protectedRoutes.POST("/comments", commentHandler.Create)
		protectedRoutes.DELETE("/comments/:id", commentHandler.Delete)

		// Note endpoints
		protectedRoutes.GET("/tasks/:id/notes", noteHandler.ListByTask)
		protectedRoutes.POST("/notes", noteHandler.Create)
		protectedRoutes.PUT("/notes/:id", noteHandler.Update)
		protectedRoutes.DELETE("/notes/:id", noteHandler.Delete)

		// User directory
		protectedRoutes.GET("/users", userHandler.List)
		protectedRoutes.GET("/users/:id", userHandler.Get)

		// Realtime task events
		protectedRoutes.GET("/ws", handlers.WebSocket)
	}

	return ginRouter
}
