package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"taskhive/taskhive/config"
	"taskhive/taskhive/database"
	"taskhive/taskhive/middleware"
	"taskhive/taskhive/routes"
	"taskhive/taskhive/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpirationSeconds)
	userService := services.NewUserService(db)
	taskService := services.NewTaskService(db)

	// Request bodies with unknown fields are rejected at the binding step.
	gin.EnableJsonDecoderDisallowUnknownFields()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	routes.RegisterHealthRoutes(router)
	routes.RegisterAuthRoutes(router, authService)

	// Every task endpoint runs behind the request authenticator.
	taskGroup := router.Group("/tasks")
	taskGroup.Use(middleware.AuthMiddleware(authService, userService))
	routes.RegisterTaskRoutes(taskGroup, taskService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
