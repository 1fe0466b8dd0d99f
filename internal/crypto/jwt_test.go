package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testUserID = "65a1f0c2e4b0a1b2c3d4e5f6"

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(testUserID, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}
}

func TestValidateTokenValid(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(testUserID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserID != testUserID {
		t.Errorf("ValidateToken() UserID = %q, want %q", claims.UserID, testUserID)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("token lifetime = %v, want %v", got, time.Hour)
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("not-a-valid-token", "test-secret")
	if err == nil {
		t.Error("ValidateToken() expected error for invalid token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testUserID, "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if _, err := ValidateToken(token, "wrong-secret"); err == nil {
		t.Error("ValidateToken() expected error for wrong secret")
	}
}

func TestValidateTokenTampered(t *testing.T) {
	token, err := GenerateToken(testUserID, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered, "test-secret"); err == nil {
		t.Error("ValidateToken() expected error for tampered signature")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(testUserID, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if _, err := ValidateToken(token, "test-secret"); err == nil {
		t.Error("ValidateToken() expected error for expired token")
	}
}

func signClaims(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}
	return s
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	token := signClaims(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wrong-issuer",
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: testUserID,
	}, "test-secret")

	if _, err := ValidateToken(token, "test-secret"); err == nil {
		t.Error("ValidateToken() expected error for wrong issuer")
	}
}

func TestValidateTokenWrongAudience(t *testing.T) {
	token := signClaims(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{"wrong-audience"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: testUserID,
	}, "test-secret")

	if _, err := ValidateToken(token, "test-secret"); err == nil {
		t.Error("ValidateToken() expected error for wrong audience")
	}
}

func TestValidateTokenMissingUserID(t *testing.T) {
	token := signClaims(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "test-secret")

	if _, err := ValidateToken(token, "test-secret"); err == nil {
		t.Error("ValidateToken() expected error without user_id")
	}
}
