package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gse-tracker/internal/config"
	"gse-tracker/internal/delivery/http/handler"
	"gse-tracker/internal/infrastructure/database/postgres"
	"gse-tracker/internal/middleware"
	"gse-tracker/internal/notify"
	pointUsecase "gse-tracker/internal/usecase/chargingpoint"
	equipmentUsecase "gse-tracker/internal/usecase/equipment"
	locationUsecase "gse-tracker/internal/usecase/location"
	sessionUsecase "gse-tracker/internal/usecase/session"
	swapUsecase "gse-tracker/internal/usecase/swap"
	userUsecase "gse-tracker/internal/usecase/user"
	"gse-tracker/pkg/utils"
)

// SetupRoutes wires repositories, services and handlers onto a gin
// engine. notifier receives session/swap change events; pass the hub
// (optionally fanned out with an MQTT publisher) from main.
func SetupRoutes(cfg *config.Config, db *postgres.DB, hub *notify.Hub, notifier notify.Publisher) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	if cfg.RateLimit.GeneralRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
	}

	locationRepo := postgres.NewLocationRepository(db)
	userRepo := postgres.NewUserRepository(db)
	equipmentRepo := postgres.NewEquipmentRepository(db)
	pointRepo := postgres.NewChargingPointRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	swapRepo := postgres.NewSwapRepository(db)

	userService := userUsecase.NewService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)
	locationService := locationUsecase.NewService(locationRepo, userRepo)
	equipmentService := equipmentUsecase.NewService(equipmentRepo, userRepo)
	pointService := pointUsecase.NewService(pointRepo, userRepo)
	sessionService := sessionUsecase.NewService(sessionRepo, equipmentRepo, pointRepo, userRepo, notifier)
	swapService := swapUsecase.NewService(swapRepo, equipmentRepo, userRepo, notifier)

	userHandler := handler.NewUserHandler(userService)
	locationHandler := handler.NewLocationHandler(locationService)
	equipmentHandler := handler.NewEquipmentHandler(equipmentService)
	pointHandler := handler.NewChargingPointHandler(pointService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	swapHandler := handler.NewSwapHandler(swapService)
	wsHandler := handler.NewWSHandler(hub, equipmentService)

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "ok", nil)
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", userHandler.Login)
		auth.POST("/refresh", userHandler.Refresh)
	}

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/auth/me", userHandler.Me)
		authed.POST("/auth/change-password", userHandler.ChangePassword)

		authed.GET("/locations", locationHandler.ListLocations)
		authed.GET("/locations/:id", locationHandler.GetLocation)
		authed.GET("/locations/:id/equipment", equipmentHandler.ListByLocation)
		authed.GET("/locations/:id/equipment/resolve", equipmentHandler.ResolveByCode)
		authed.GET("/locations/:id/charging-points", pointHandler.ListByLocation)

		authed.GET("/equipment/:id", equipmentHandler.GetEquipment)
		authed.GET("/equipment/:id/session", sessionHandler.GetOpenSession)
		authed.GET("/equipment/:id/sessions", sessionHandler.ListRecent)
		authed.GET("/equipment/:id/swaps", swapHandler.ListRecent)
		authed.GET("/equipment/:id/swaps/total", swapHandler.TotalSwaps)
		authed.GET("/equipment/:id/watch", wsHandler.Watch)

		authed.POST("/sessions", sessionHandler.StartCharging)
		authed.POST("/sessions/:id/stop", sessionHandler.StopCharging)
		authed.POST("/swaps", swapHandler.RecordSwap)

		admin := authed.Group("")
		admin.Use(middleware.AdminOrAbove())
		{
			admin.POST("/equipment", equipmentHandler.CreateEquipment)
			admin.PUT("/equipment/:id", equipmentHandler.UpdateEquipment)
			admin.POST("/charging-points", pointHandler.CreateChargingPoint)
			admin.PUT("/charging-points/:id", pointHandler.UpdateChargingPoint)
			admin.POST("/users", userHandler.CreateProfile)
			admin.GET("/users", userHandler.ListProfiles)
		}
		authed.GET("/users/:id", userHandler.GetProfile)
		authed.PUT("/users/:id", userHandler.UpdateProfile)

		superAdmin := authed.Group("")
		superAdmin.Use(middleware.SuperAdminOnly())
		{
			superAdmin.DELETE("/equipment/:id", equipmentHandler.DeleteEquipment)
			superAdmin.DELETE("/charging-points/:id", pointHandler.DeleteChargingPoint)
			superAdmin.POST("/locations", locationHandler.CreateLocation)
			superAdmin.PUT("/locations/:id/active", locationHandler.SetActive)
		}
	}

	return router
}
