package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"scheduling-api/internal/auth"
)

const secret = "test-secret-which-is-long-enough"

func TestRefreshTokenGeneration(t *testing.T) {
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(raw) != 64 { // 32 bytes hex = 64 chars
		t.Errorf("expected 64 char raw token, got %d", len(raw))
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}
	if auth.HashRefreshToken(raw) != hash {
		t.Error("hash mismatch")
	}
}

func TestAccessTokenExpiry(t *testing.T) {
	tok, err := auth.MakeToken("test-uid", secret)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	claims, err := auth.ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "test-uid" {
		t.Errorf("uid mismatch: %s", claims.UserID)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
	diff := time.Until(claims.ExpiresAt.Time)
	if diff < 14*time.Minute || diff > 16*time.Minute {
		t.Errorf("expected ~15min expiry, got %v", diff)
	}
}

func TestAlgorithmConfusion(t *testing.T) {
	tok, _ := auth.MakeToken("uid", secret)
	if _, err := auth.ParseToken(tok, secret); err != nil {
		t.Fatalf("valid token failed: %v", err)
	}
	if _, err := auth.ParseToken(tok, "wrong-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
	if _, err := auth.ParseToken("not.a.token", secret); err == nil {
		t.Fatal("expected error for garbage token")
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{UserID: "uid"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := auth.ParseToken(none, secret); err == nil {
		t.Fatal("expected alg=none token to be rejected")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := auth.HashPassword("testpass123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !auth.CheckPassword(hash, "testpass123") {
		t.Error("expected password to match")
	}
	if auth.CheckPassword(hash, "wrongpassword") {
		t.Error("expected mismatch")
	}
}

func TestMemoryDenylist(t *testing.T) {
	ctx := context.Background()
	d := auth.NewMemoryDenylist()

	if ok, _ := d.Revoked(ctx, "a"); ok {
		t.Fatal("nothing revoked yet")
	}
	d.Revoke(ctx, "a", time.Now().Add(time.Minute))
	d.Revoke(ctx, "b", time.Now().Add(-time.Second))
	if ok, _ := d.Revoked(ctx, "a"); !ok {
		t.Error("a should be revoked")
	}
	if ok, _ := d.Revoked(ctx, "b"); ok {
		t.Error("b already expired and should no longer count")
	}
}
