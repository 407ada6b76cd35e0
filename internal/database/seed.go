package database

import (
	"context"
	"errors"
	"log"

	"github.com/rollcall-io/rollcall/internal/models"
)

const (
	seedAdminUsername = "admin"
	seedAdminPassword = "password123"
)

// SeedAdmin ensures a bootstrap admin account exists so the system is
// usable on first start. It is idempotent: if the admin username is
// already taken nothing changes. The seed admin is the only user with no
// creator attribution.
func (db *DB) SeedAdmin(ctx context.Context) error {
	_, err := db.GetUserByUsername(ctx, seedAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	admin := &models.User{
		Role:     models.RoleAdmin,
		FullName: "Admin User",
		Username: seedAdminUsername,
		Email:    "admin@example.com",
	}
	if err := admin.SetPassword(seedAdminPassword); err != nil {
		return err
	}

	if err := db.CreateUser(ctx, admin); err != nil {
		return err
	}
	log.Printf("Seed admin account created (username %q)", seedAdminUsername)
	return nil
}
