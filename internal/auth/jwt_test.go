package auth

import (
	"testing"

	"github.com/foundit/foundit/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, 42, "admin", model.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "admin" || claims.Role != model.RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected non-empty JTI")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", 1, "staff", model.RoleStaff)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken("secret-b", token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("secret", "not-a-token"); err == nil {
		t.Error("expected validation to fail for malformed token")
	}
}
