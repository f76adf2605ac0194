package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskdock-dev/taskdock/internal/auth"
	"github.com/taskdock-dev/taskdock/internal/config"
	"github.com/taskdock-dev/taskdock/internal/handlers"
	"github.com/taskdock-dev/taskdock/internal/middleware"
	"github.com/taskdock-dev/taskdock/internal/store"
	"gorm.io/gorm"
)

func New(cfg config.Config, gdb *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	users := store.NewUserStore(gdb)
	todos := store.NewTodoStore(gdb)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	authHandler := &handlers.AuthHandler{Users: users, Tokens: tokens}
	todoHandler := &handlers.TodoHandler{Todos: todos}

	requireAuth := middleware.Auth(tokens, users)

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.HealthCheck)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", requireAuth, authHandler.Me)
	}

	todosGroup := r.Group("/todos", requireAuth)
	{
		todosGroup.GET("", todoHandler.List)
		todosGroup.POST("", todoHandler.Create)
		todosGroup.GET("/stats/summary", todoHandler.Stats)
		todosGroup.GET("/:id", todoHandler.Get)
		todosGroup.PUT("/:id", todoHandler.Update)
		todosGroup.DELETE("/:id", todoHandler.Delete)
	}

	return r
}
