package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	ts := NewTokenService("secreto", 2*time.Hour)

	raw, err := ts.Issue(7, RolePaciente)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := ts.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("expected subject id 7, got %d", claims.UserID)
	}
	if claims.Rol != RolePaciente {
		t.Errorf("expected rol %q, got %q", RolePaciente, claims.Rol)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > 2*time.Hour {
		t.Errorf("unexpected expiry: %v", claims.ExpiresAt)
	}
}

func TestVerify_Expired(t *testing.T) {
	ts := NewTokenService("secreto", -time.Minute)

	raw, err := ts.Issue(1, RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = ts.Verify(raw)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := NewTokenService("secreto", time.Hour).Issue(1, RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = NewTokenService("otro", time.Hour).Verify(raw)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	ts := NewTokenService("secreto", time.Hour)
	if _, err := ts.Verify("no.es.jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHashPassword_Verify(t *testing.T) {
	hash, err := HashPassword("pw", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "pw" {
		t.Error("hash equals plaintext")
	}
	if !CheckPassword(hash, "pw") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "otra") {
		t.Error("wrong password accepted")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("pw", 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("pw", 4)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}
