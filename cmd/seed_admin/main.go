// seed_admin creates the first admin account, or resets its password when the email exists.
//
// Usage: go run ./cmd/seed_admin <email> <password> [name]
// Reads the database settings from the same environment as the API.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wholesale-api/internal/application/auth"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/postgres"
	"github.com/jhoicas/wholesale-api/pkg/config"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: seed_admin <email> <password> [name]")
		os.Exit(2)
	}
	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	password := os.Args[2]
	name := "Admin"
	if len(os.Args) > 3 {
		name = os.Args[3]
	}
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DB.Driver != "postgres" {
		fmt.Fprintln(os.Stderr, "seed_admin needs DB_DRIVER=postgres")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if _, err := postgres.Migrate(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	users := postgres.NewUserRepository(pool)
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "look up %s: %v\n", email, err)
		os.Exit(1)
	}

	now := time.Now()
	if existing != nil {
		existing.PasswordHash = hash
		existing.Role = entity.RoleAdmin
		existing.Status = "active"
		existing.UpdatedAt = now
		if err := users.Update(ctx, existing); err != nil {
			fmt.Fprintf(os.Stderr, "update %s: %v\n", email, err)
			os.Exit(1)
		}
		fmt.Printf("Reset admin %s (%s)\n", email, existing.ID)
		return
	}

	admin := &entity.User{
		ID:           uuid.New().String(),
		Firstname:    name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", email, err)
		os.Exit(1)
	}
	fmt.Printf("Created admin %s (%s)\n", email, admin.ID)
}
