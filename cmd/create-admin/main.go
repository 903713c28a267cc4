package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/scintilla-cusat/recruit-api/internal/models"
	"github.com/scintilla-cusat/recruit-api/internal/repository"
	"github.com/scintilla-cusat/recruit-api/pkg/config"
	"github.com/scintilla-cusat/recruit-api/pkg/database"
)

// Seeds an admin account from ADMIN_EMAIL / ADMIN_PASSWORD. Idempotent: an
// existing email is reported, not overwritten.
func main() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_EMAIL and ADMIN_PASSWORD are required")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to postgres: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := repository.NewAdminRepository(db)

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		fmt.Printf("admin %s already exists\n", email)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		fmt.Fprintf(os.Stderr, "failed to check existing admin: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	admin := &models.Admin{
		Email:            email,
		PasswordHash:     string(hash),
		CurrentUPIPerson: models.UPIAccounts[0].Name,
	}
	if err := repo.Create(ctx, admin); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("created admin %s (%s)\n", email, admin.ID)
}
