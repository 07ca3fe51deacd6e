package service

import (
	"errors"
	"testing"

	"github.com/botshop/internal/config"
	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"

	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 1
	return NewAuthService(cfg, repository.NewAdminRepository(db))
}

func seedTestAdmin(t *testing.T, db *gorm.DB, svc *AuthService, username, password string) *models.Admin {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := models.Admin{
		Username:     username,
		PasswordHash: hash,
		Role:         constants.AdminRoleStaff,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return &admin
}

func newAuthTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db := newShopTestDB(t, name)
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate admin failed: %v", err)
	}
	return db
}

func TestLoginAndParseJWT(t *testing.T) {
	db := newAuthTestDB(t, "auth_login")
	svc := newTestAuthService(db)
	seedTestAdmin(t, db, svc, "staff1", "correct-horse-battery")

	admin, token, expiresAt, err := svc.Login("staff1", "correct-horse-battery")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("expected last_login_at to be set")
	}
	if expiresAt.IsZero() {
		t.Fatalf("expected expiry to be set")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "staff1" || claims.Role != constants.AdminRoleStaff {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := newAuthTestDB(t, "auth_invalid")
	svc := newTestAuthService(db)
	seedTestAdmin(t, db, svc, "staff2", "correct-horse-battery")

	if _, _, _, err := svc.Login("staff2", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}

func TestParseJWTRejectsTampered(t *testing.T) {
	db := newAuthTestDB(t, "auth_tampered")
	svc := newTestAuthService(db)
	admin := seedTestAdmin(t, db, svc, "staff3", "correct-horse-battery")

	token, _, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	if _, err := svc.ParseJWT(token + "x"); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestChangePassword(t *testing.T) {
	db := newAuthTestDB(t, "auth_change_password")
	svc := newTestAuthService(db)
	admin := seedTestAdmin(t, db, svc, "staff4", "old-password-123")

	if err := svc.ChangePassword(admin.ID, "wrong", "new-password-456"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid old password, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "old-password-123", "new-password-456"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, _, _, err := svc.Login("staff4", "new-password-456"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
