package auth

import (
	"testing"
	"time"
)

func TestAccessRoundTrip(t *testing.T) {
	tks := NewTokens("test-secret", time.Minute, time.Hour)
	raw, err := tks.Access("user-1", "ADMIN", "a@b.c")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	c, err := tks.ParseValidate(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Sub != "user-1" || c.Role != "ADMIN" || c.Email != "a@b.c" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tks := NewTokens("test-secret", -time.Minute, time.Hour)
	raw, err := tks.Access("user-1", "USER", "a@b.c")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tks.ParseValidate(raw); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	raw, err := NewTokens("secret-a", time.Minute, time.Hour).Access("u", "USER", "e")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokens("secret-b", time.Minute, time.Hour).ParseValidate(raw); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}
