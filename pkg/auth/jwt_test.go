package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testKey = "test-signing-key"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestTokenParser_Parse(t *testing.T) {
	p := NewTokenParser(testKey)
	token := sign(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{
		"sub":  "user-42",
		"role": "ROLE_VETERINARIO",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	claims, err := p.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Subject != "user-42" || claims.Role != RoleVeterinarian {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenParser_Rejects(t *testing.T) {
	p := NewTokenParser(testKey)
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "expired",
			token:   sign(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{"role": "admin", "exp": time.Now().Add(-time.Minute).Unix()}),
			wantErr: ErrTokenExpired,
		},
		{
			name:    "wrong key",
			token:   sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"role": "admin", "exp": future}),
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "no role",
			token:   sign(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{"sub": "x", "exp": future}),
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "garbage",
			token:   "not.a.token",
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "alg none",
			token:   sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"role": "admin", "exp": future}),
			wantErr: ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Parse(tt.token); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeRole(t *testing.T) {
	tests := map[string]Role{
		"ROLE_ADMIN":   RoleAdmin,
		"role_admin":   RoleAdmin,
		"paciente":     RolePatient,
		" Veterinario": RoleVeterinarian,
		"":             "",
	}
	for in, want := range tests {
		if got := NormalizeRole(in); got != want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}
