package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"serviceboard/internal/config"
	"serviceboard/internal/handler"
	"serviceboard/internal/middleware"
	"serviceboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := runMigrations(db, cfg.MigrationsURL); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Database schema up to date")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	boardRepo := repository.NewBoardRepository(db)
	srRepo := repository.NewServiceRequestRepository(db)
	actionRepo := repository.NewActionRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)

	// Initialize handlers
	boardHandler := handler.NewBoardHandler(boardRepo, srRepo)
	accessHandler := handler.NewAccessHandler(boardRepo)
	actionHandler := handler.NewActionHandler(actionRepo, srRepo, apptRepo)
	appointmentHandler := handler.NewAppointmentHandler(boardRepo, apptRepo, actionRepo)

	// Board routes: metadata and password verification are never gated
	r.POST("/boards", boardHandler.Create)
	r.GET("/boards/:ref", boardHandler.GetByRef)
	r.PUT("/boards/:ref", boardHandler.Update)
	r.POST("/boards/:ref/verify-password", accessHandler.VerifyPassword)

	// Appointment routes
	r.GET("/boards/:ref/appointments", appointmentHandler.List)
	r.POST("/boards/:ref/appointments", appointmentHandler.Create)

	// Action routes - sit behind the board password gate
	gated := r.Group("/boards/:ref/actions")
	gated.Use(middleware.BoardGateMiddleware(cfg.JWTSecret, boardRepo))
	{
		gated.GET("", actionHandler.List)
		gated.POST("", actionHandler.Create)
	}

	// Mutations addressed by action id (called by the business-side
	// action-card editor)
	r.PATCH("/actions/:id/status", actionHandler.UpdateStatus)
	r.POST("/actions/:id/confirm-appointment", actionHandler.ConfirmAppointment)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func runMigrations(db *gorm.DB, sourceURL string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
