package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"secure_law_firm_go/config"
	"secure_law_firm_go/db"
	"secure_law_firm_go/docstore"
	"secure_law_firm_go/handlers"
	"secure_law_firm_go/middleware"
	"secure_law_firm_go/models"
	"secure_law_firm_go/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize relational database
	if err := db.Initialize(cfg.DBPath, cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Worker{},
		&models.Client{},
		&models.Case{},
		&models.CaseHistory{},
		&models.ClientHistory{},
		&models.Session{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize document store (in-memory fallback without a Mongo URI)
	var documents docstore.Store
	if cfg.MongoURI != "" {
		mongoStore, err := docstore.NewMongoStore(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatalf("Failed to initialize document store: %v", err)
		}
		documents = mongoStore
	} else {
		log.Println("[WARNING] MONGO_URI not set, using in-memory document store")
		documents = docstore.NewMemoryStore()
	}
	defer documents.Close(context.Background())

	// Initialize blob storage
	storage := services.NewStorage(cfg)

	// Build the services
	intake := services.NewCaseIntake(db.DB, documents, storage)
	archiver := services.NewCaseArchiver(db.DB, documents, storage)
	documentService := services.NewDocumentService(db.DB, documents, storage)

	caseHandler := handlers.NewCaseHandler(db.DB, intake, archiver)
	documentHandler := handlers.NewDocumentHandler(documentService)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes
	e.POST("/login", handlers.LoginHandler)

	// Protected routes
	protected := e.Group("/api")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/logout", handlers.LogoutHandler)
		protected.GET("/me", handlers.MeHandler)
		protected.GET("/me/2fa-qr", handlers.TwoFAQRHandler)

		cases := protected.Group("/cases")
		{
			cases.GET("", caseHandler.ListCases, middleware.RequirePermission(models.PermissionViewCase))
			cases.GET("/:id", caseHandler.GetCase, middleware.RequirePermission(models.PermissionViewCase))
			cases.POST("", caseHandler.CreateCase, middleware.RequirePermission(models.PermissionCreateCase))
			cases.PUT("/:id", caseHandler.UpdateCase, middleware.RequirePermission(models.PermissionEditCase))
			cases.DELETE("/:id", caseHandler.DeleteCase, middleware.RequirePermission(models.PermissionDeleteCase))

			cases.GET("/:id/documents", documentHandler.ListCaseDocuments, middleware.RequirePermission(models.PermissionViewDocuments))
			cases.POST("/:id/documents", documentHandler.UploadCaseDocument, middleware.RequirePermission(models.PermissionUploadDocument))
		}

		workers := protected.Group("/workers")
		workers.Use(middleware.RequirePermission(models.PermissionCreateWorker))
		{
			workers.POST("", handlers.CreateWorkerHandler)
		}
	}

	// Hourly cleanup of expired sessions
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
