package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inamhi-tic/helpdesk-service/internal/config"
	"github.com/inamhi-tic/helpdesk-service/internal/database"
	"github.com/inamhi-tic/helpdesk-service/internal/logger"
	"github.com/inamhi-tic/helpdesk-service/internal/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the initial administrator account (idempotent)",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	email := getenvDefault("ADMIN_EMAIL", "admin@inamhi.gob.ec")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return errors.New("seed: ADMIN_PASSWORD is required")
	}

	var existing model.User
	err = db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		slog.Info("seed: administrator already present", "email", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}
	admin := &model.User{
		FullName: getenvDefault("ADMIN_NAME", "Administrador Principal"),
		Email:    email,
		Password: string(hash),
		Role:     model.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	slog.Info("seed: administrator created", "email", email)
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
