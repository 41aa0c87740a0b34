package main

import (
	"strconv"
	"time"

	_ "backend/api/swagger" // swagger docs
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/timefilter"
	"backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Operation Approval API
// @version         1.0
// @description     Gateway-fronted service for financial operation requests, approvals and project statistics.
// @host            localhost:8080
// @BasePath        /
func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.NewConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.WithError(err).WithField("timezone", cfg.Timezone).Fatal("unknown service timezone")
	}

	model.SetDownloadBaseURL(cfg.DownloadBaseURL)

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	log.Info("connected to PostgreSQL")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	requestRepo := repository.NewRequestRepository(db)
	fileRepo := repository.NewFileRepository(db)
	txManager := repository.NewTransactionManager(db)

	requestService := service.NewRequestService(requestRepo, txManager, wsHub, loc)
	operationService := service.NewOperationService(requestRepo)
	fileService := service.NewFileService(fileRepo)

	filter := timefilter.New(loc)

	// Initialize Handlers
	requestHandler := handler.NewRequestHandler(requestService, filter)
	operationHandler := handler.NewOperationHandler(operationService, fileService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin", "Content-Length", "Content-Type", "Accept",
		middleware.HeaderAuthenticated, middleware.HeaderCompanyID,
		middleware.HeaderUserEmail, middleware.HeaderUserLogin,
		middleware.HeaderPermissions,
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Every business route requires the trusted gateway headers
	api := router.Group("")
	api.Use(middleware.RequireGateway())

	// WebSocket endpoint for request lifecycle events
	api.GET("/requests/events", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// API Routing
	requestHandler.RegisterRoutes(api)
	operationHandler.RegisterRoutes(api)

	addr := cfg.ServiceHost + ":" + strconv.Itoa(cfg.ServicePort)
	log.WithField("addr", addr).Info("server listening")
	if err := router.Run(addr); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
