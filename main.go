package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/server"
	"portfolio-backend/internal/service"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yml", "path to config file")
	createAdmin := flag.Bool("create-admin", false, "seed the initial admin account and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Server.Mode == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	if *createAdmin {
		runCreateAdmin(cfg, db, logger)
		return
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		logger.Fatal("Failed to create uploads directory", zap.Error(err))
	}

	srv, err := server.NewServer(db, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize server", zap.Error(err))
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}

	logger.Info("Application stopped.")
}

// runCreateAdmin seeds the one initial admin account, aborting when any
// admin already exists. A generated password is printed exactly once; a
// password supplied via environment is never echoed.
func runCreateAdmin(cfg *config.Config, db *sqlx.DB, logger *zap.Logger) {
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		logger.Fatal("Failed to initialize token manager", zap.Error(err))
	}

	adminRepo := repository.NewAdminRepository(db, logger)
	authService := service.NewAuthService(adminRepo, tokens, logger)

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@localhost"
	}

	password := os.Getenv("ADMIN_PASSWORD")
	generated := password == ""
	if generated {
		password, err = randomPassword()
		if err != nil {
			logger.Fatal("Failed to generate password", zap.Error(err))
		}
	}

	admin, err := authService.SeedAdmin(username, email, password)
	if err != nil {
		if errors.Is(err, service.ErrAdminExists) {
			fmt.Println("Aborting: an admin account already exists. No changes made.")
			return
		}
		logger.Fatal("Seeding failed", zap.Error(err))
	}

	fmt.Println("Admin account created.")
	fmt.Printf("  Username: %s\n", admin.Username)
	fmt.Printf("  Email   : %s\n", admin.Email)
	if generated {
		fmt.Printf("  Password: %s (store it securely now; it will not be shown again)\n", password)
	} else {
		fmt.Println("  Password: (as supplied via ADMIN_PASSWORD)")
	}
	fmt.Println("Remove the ADMIN_* variables from the environment after logging in.")
}

func randomPassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
