package database

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// EnsureSuperAdmin creates the bootstrap super admin account when no
// super admin exists yet. The password is stored as a bcrypt hash.
func EnsureSuperAdmin(ctx context.Context, db Database, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	count, err := db.CountSuperAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		// A super admin already exists
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.CreateUser(ctx, &User{
		Username: username,
		Password: string(hashed),
		Name:     "Super Admin",
		Role:     RoleSuperAdmin,
	})
}
