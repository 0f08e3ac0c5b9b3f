package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/handler"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/service"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenManager(s.cfg.Auth.JWTSecret, time.Duration(s.cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		return err
	}

	adminRepo := repository.NewAdminRepository(s.db, s.logger)
	projectRepo := repository.NewProjectRepository(s.db, s.logger)
	skillRepo := repository.NewSkillRepository(s.db, s.logger)
	certificateRepo := repository.NewCertificateRepository(s.db, s.logger)
	profileRepo := repository.NewProfileRepository(s.db, s.logger)
	contactRepo := repository.NewContactRepository(s.db, s.logger)
	resumeRepo := repository.NewResumeRepository(s.db, s.logger)

	authService := service.NewAuthService(adminRepo, tokens, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	projectHandler := handler.NewProjectHandler(projectRepo, s.logger)
	skillHandler := handler.NewSkillHandler(skillRepo, s.logger)
	certificateHandler := handler.NewCertificateHandler(certificateRepo, s.logger)
	profileHandler := handler.NewProfileHandler(profileRepo, s.logger)
	contactHandler := handler.NewContactHandler(contactRepo, s.logger)
	uploadHandler := handler.NewUploadHandler(resumeRepo, s.cfg.Uploads.Dir, s.logger)

	protect := middleware.Auth(tokens, adminRepo, s.logger)
	adminOnly := middleware.RequireRoles("admin", "super_admin")
	loginLimiter := middleware.LoginRateLimit(
		s.cfg.Auth.LoginMaxAttempts,
		time.Duration(s.cfg.Auth.LoginWindowMinutes)*time.Minute,
	)

	s.router.Use(middleware.Secure(s.cfg.CORS.AllowedOrigins))

	s.router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"message":   "Portfolio Backend API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Authentication
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/login", loginLimiter, authHandler.Login)
	authProtected := authGroup.Group("")
	authProtected.Use(protect)
	{
		authProtected.GET("/profile", authHandler.GetProfile)
		authProtected.PUT("/profile", authHandler.UpdateProfile)
		authProtected.PUT("/change-password", authHandler.ChangePassword)
		authProtected.GET("/verify", authHandler.Verify)
	}

	// Projects
	portfolio := s.router.Group("/api/portfolio")
	portfolio.GET("/projects", projectHandler.List)
	portfolio.GET("/projects/:id", projectHandler.Get)
	portfolio.GET("/featured", projectHandler.Featured)
	portfolioAdmin := portfolio.Group("")
	portfolioAdmin.Use(protect, adminOnly)
	{
		portfolioAdmin.GET("/admin/projects", projectHandler.AdminList)
		portfolioAdmin.POST("/projects", projectHandler.Create)
		portfolioAdmin.PUT("/projects/:id", projectHandler.Update)
		portfolioAdmin.DELETE("/projects/:id", projectHandler.Delete)
	}

	// Skills
	skills := s.router.Group("/api/skills")
	skills.GET("", skillHandler.List)
	skills.GET("/:id", skillHandler.Get)
	skillsAdmin := skills.Group("")
	skillsAdmin.Use(protect, adminOnly)
	{
		skillsAdmin.POST("", skillHandler.Create)
		skillsAdmin.PUT("/:id", skillHandler.Update)
		skillsAdmin.DELETE("/:id", skillHandler.Delete)
	}

	// Certificates
	certificates := s.router.Group("/api/certificates")
	certificates.GET("", certificateHandler.List)
	certificates.GET("/:id", certificateHandler.Get)
	certificatesAdmin := certificates.Group("")
	certificatesAdmin.Use(protect, adminOnly)
	{
		certificatesAdmin.POST("", certificateHandler.Create)
		certificatesAdmin.PUT("/:id", certificateHandler.Update)
		certificatesAdmin.DELETE("/:id", certificateHandler.Delete)
	}

	// Site profile
	s.router.GET("/api/profile", profileHandler.Get)
	s.router.PUT("/api/profile", protect, adminOnly, profileHandler.Update)

	// Contact inbox
	contact := s.router.Group("/api/contact")
	contact.POST("", contactHandler.Create)
	contactAdmin := contact.Group("")
	contactAdmin.Use(protect, adminOnly)
	{
		contactAdmin.GET("", contactHandler.List)
		contactAdmin.PUT("/:id/read", contactHandler.MarkRead)
		contactAdmin.DELETE("/:id", contactHandler.Delete)
	}

	// File uploads
	upload := s.router.Group("/api/upload")
	upload.GET("/resume", uploadHandler.ListResumes)
	uploadAdmin := upload.Group("")
	uploadAdmin.Use(protect, adminOnly)
	{
		uploadAdmin.POST("/image", uploadHandler.UploadImage)
		uploadAdmin.DELETE("/image/:filename", uploadHandler.DeleteImage)
		uploadAdmin.POST("/resume", uploadHandler.UploadResume)
		uploadAdmin.DELETE("/resume/:id", uploadHandler.DeleteResume)
		uploadAdmin.POST("/certificate", uploadHandler.UploadCertificate)
	}

	// Uploaded files
	s.router.Static("/uploads", s.cfg.Uploads.Dir)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Route not found"})
	})

	return nil
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + s.cfg.Server.Port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("port", s.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("Shutting down gracefully")
	return srv.Shutdown(shutdownCtx)
}
