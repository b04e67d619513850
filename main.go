// Command notevault runs the note-taking API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/notevault/notevault/concurrency/worker"
	"github.com/notevault/notevault/config"
	"github.com/notevault/notevault/data"
	"github.com/notevault/notevault/ecode"
	"github.com/notevault/notevault/handler"
	"github.com/notevault/notevault/logging/logger"
	"github.com/notevault/notevault/middleware"
	"github.com/notevault/notevault/net/resp"
	"github.com/notevault/notevault/security/jwt"
	"github.com/notevault/notevault/service"
)

func main() {
	confPath := flag.String("conf", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*confPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, cleanup, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx := context.Background()

	if cfg.Auth.JWT.Secret == "" {
		log.Fatal(ctx, "auth.jwt.secret must be configured")
	}

	config.Watch(func(updated *config.Config) {
		log.Info(ctx, "configuration reloaded", "logger_level", updated.Logger.Level)
		log.ApplyLevel(updated.Logger.Level)
	})

	dataLayer, err := data.New(cfg.Data.MongoDB, log)
	if err != nil {
		log.Error(ctx, "failed to connect database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := dataLayer.Close(); err != nil {
			log.Error(ctx, "failed to close database", "error", err)
		}
	}()

	tokens := jwt.NewTokenManager(cfg.Auth.JWT.Secret, time.Duration(cfg.Auth.JWT.Expire)*time.Hour)

	pool := worker.NewPool(worker.DefaultConfig())
	pool.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		pool.Stop(stopCtx)
	}()

	authService := service.NewAuthService(dataLayer.UserRepo, tokens, pool, log)
	noteService := service.NewNoteService(dataLayer.NoteRepo, log)

	authHandler := handler.NewAuthHandler(authService, log, cfg.IsProduction(), cfg.Domain)
	noteHandler := handler.NewNoteHandler(noteService, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Trace())

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotAllowed(ecode.Text(ecode.MethodNotAllowed)))
	})

	if cfg.Frontend.Origin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.Frontend.Origin},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := r.Group("/api/v1")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/check-auth", middleware.ProtectRoute(authService), authHandler.CheckAuth)
	}

	noteRoutes := api.Group("/note", middleware.ProtectRoute(authService))
	{
		noteRoutes.POST("/create", noteHandler.Create)
		noteRoutes.GET("/get", noteHandler.List)
		noteRoutes.GET("/:id", noteHandler.Get)
		noteRoutes.POST("/update/:id", noteHandler.Update)
		noteRoutes.PATCH("/update/:id", noteHandler.Update)
		noteRoutes.DELETE("/delete/:id", noteHandler.Delete)
	}

	if cfg.IsProduction() && cfg.Frontend.Dist != "" {
		serveFrontend(r, cfg.Frontend.Dist)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info(ctx, "server starting", "addr", cfg.Addr(), "mode", cfg.RunMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(ctx, "server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "forced shutdown", "error", err)
	}

	log.Info(ctx, "server stopped")
}

// serveFrontend serves the built client, falling back to index.html for
// client-side routes.
func serveFrontend(r *gin.Engine, dist string) {
	r.Static("/assets", filepath.Join(dist, "assets"))
	r.StaticFile("/", filepath.Join(dist, "index.html"))
	r.NoRoute(func(c *gin.Context) {
		c.File(filepath.Join(dist, "index.html"))
	})
}
