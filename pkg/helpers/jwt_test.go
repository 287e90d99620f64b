package helpers

import (
	"testing"
	"time"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	access, exp, err := m.GenerateAccessToken("user-1", "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Error("expiry should be in the future")
	}

	claims, err := m.ParseAccessToken(access)
	if err != nil {
		t.Fatalf("ParseAccessToken failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.SessionID != "sess-1" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestJWTManager_SecretsAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	refresh, _, err := m.GenerateRefreshToken("user-1", "sess-1")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}
	if _, err := m.ParseAccessToken(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}

	other := NewJWTManager("different", "refresh-secret", time.Minute, time.Hour)
	access, _, err := m.GenerateAccessToken("user-1", "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if _, err := other.ParseAccessToken(access); err == nil {
		t.Error("token verified with the wrong secret")
	}
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)
	access, _, err := m.GenerateAccessToken("user-1", "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if _, err := m.ParseAccessToken(access); err == nil {
		t.Error("expired token accepted")
	}
}
