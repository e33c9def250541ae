// @title                       Builder Portfolio API
// @version                     1.0
// @description                 Projects shared between the managers who create them and the builders who deliver them.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/builderportfolio/portfolio-system/internal/api"
	"github.com/builderportfolio/portfolio-system/internal/api/handler"
	"github.com/builderportfolio/portfolio-system/internal/core/domain"
	"github.com/builderportfolio/portfolio-system/internal/core/service"
	"github.com/builderportfolio/portfolio-system/internal/infrastructure/memory"
	"github.com/builderportfolio/portfolio-system/internal/pkg/config"
	"github.com/builderportfolio/portfolio-system/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "portfolio-api",
	})

	// --- Stores ---
	ids := memory.NewIdentityStore()
	users := memory.NewUserRepository()
	projects := memory.NewProjectRepository()
	builders := memory.NewRoleIndex(domain.RoleBuilder)
	managers := memory.NewRoleIndex(domain.RoleManager)

	// --- Services ---
	userService := service.NewUserService(users, ids, builders, managers, cfg.JWTSecret, cfg.TokenTTL,
		log.With().Str("component", "user_service").Logger())
	projectService := service.NewProjectService(ids, projects, builders, managers,
		log.With().Str("component", "project_service").Logger())

	stores := map[string]handler.Counter{
		"users":    users,
		"projects": projects,
		"builders": builders,
		"managers": managers,
	}

	e := api.NewRouter(api.Deps{
		Users:      userService,
		Projects:   projectService,
		Stores:     stores,
		JWTSecret:  cfg.JWTSecret,
		LoginRPS:   cfg.Login.RPS,
		LoginBurst: cfg.Login.Burst,
		Registerer: prometheus.DefaultRegisterer,
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("portfolio api starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("portfolio api stopped")
}
