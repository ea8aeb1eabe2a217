package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/c5sim/coverage-sim-go/internal/config"
	"github.com/c5sim/coverage-sim-go/internal/handler"
	"github.com/c5sim/coverage-sim-go/internal/middleware"
	"github.com/c5sim/coverage-sim-go/internal/repository"
	"github.com/c5sim/coverage-sim-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto the gin engine
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Repositories
	cameraRepo := repository.NewCameraRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	cameraSvc := service.NewCameraService(cameraRepo, proposalRepo)
	simulationSvc := service.NewSimulationService(cameraRepo)
	optimizerSvc := service.NewOptimizerService(cameraRepo)
	authSvc := service.NewAuthService(userRepo, cfg)

	// Handlers
	cameraH := handler.NewCameraHandler(cameraSvc)
	coverageH := handler.NewCoverageHandler(simulationSvc)
	optimizerH := handler.NewOptimizerHandler(optimizerSvc)
	authH := handler.NewAuthHandler(authSvc)

	// Liveness probe; the simulation client gates every workflow on this
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")
	{
		api.POST("/usuarios/registro", authH.Register)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authH.Login)
			auth.POST("/logout", authH.Logout)
			auth.GET("/me", authH.Me)
		}

		cameras := api.Group("/camaras")
		{
			cameras.GET("", cameraH.List)
			cameras.POST("", cameraH.Create)
		}

		proposals := api.Group("/camaras-propuestas")
		{
			proposals.GET("", cameraH.ListProposals)
			proposals.POST("/guardar-buenas", cameraH.SaveGoodProposals)
		}

		api.POST("/cobertura/camara-simulada", coverageH.EvaluateSimulated)

		// genetic searches are expensive; keep repeat callers in check
		gaLimit := middleware.RateLimit(6, time.Minute)
		api.GET("/ag/puntos-ciegos", gaLimit, optimizerH.BlindSpots)
		api.POST("/ga/mejorar-cobertura", gaLimit, optimizerH.ImproveCoverage)
	}

	return r
}
