package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"study-helper/internal/config"
	"study-helper/internal/database"
	"study-helper/internal/domain"
	"study-helper/internal/logger"
	"study-helper/internal/repository"
	"study-helper/internal/security"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Bootstraps an admin account (idempotent) and a few demo mastery rows so
// the profile endpoint has something to show on a fresh install.
func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewSQLXUserRepository(db)

	existing, err := userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		log.Fatal("Failed to look up admin user", zap.Error(err))
	}
	if existing != nil {
		log.Info("Admin user already exists, nothing to do", zap.String("username", username))
		return
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash admin password", zap.Error(err))
	}

	admin := &domain.User{
		UUID:           uuid.NewString(),
		Username:       username,
		HashedPassword: hashed,
		Nickname:       "Administrator",
		IsActive:       true,
		IsAdmin:        true,
		CreatedAt:      time.Now(),
	}
	if err := userRepo.CreateUser(ctx, admin); err != nil {
		log.Fatal("Failed to create admin user", zap.Error(err))
	}
	log.Info("Admin user created", zap.String("username", username), zap.Int64("id", admin.ID))

	if err := seedDemoMastery(ctx, db, admin.ID); err != nil {
		log.Fatal("Failed to seed demo mastery rows", zap.Error(err))
	}
	log.Info("Demo mastery rows seeded", zap.Int64("user_id", admin.ID))
}

func seedDemoMastery(ctx context.Context, db *sqlx.DB, userID int64) error {
	demo := map[string]float64{
		"derivatives": 0.82,
		"integration": 0.55,
		"vectors":     0.30,
	}
	for topic, mastery := range demo {
		var id int64
		if err := db.GetContext(ctx, &id, "SELECT topic_mastery_seq.NEXTVAL FROM dual"); err != nil {
			return fmt.Errorf("failed to get next mastery id: %w", err)
		}
		query := `INSERT INTO topic_mastery (id, user_id, topic, mastery) VALUES (:1, :2, :3, :4)`
		if _, err := db.ExecContext(ctx, query, id, userID, topic, mastery); err != nil {
			return fmt.Errorf("failed to insert mastery row for topic %s: %w", topic, err)
		}
	}
	return nil
}
