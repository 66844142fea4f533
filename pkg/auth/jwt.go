package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RolePatient      Role = "paciente"
	RoleVeterinarian Role = "veterinario"
	RoleAdmin        Role = "admin"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is what the API needs from a verified token.
type Claims struct {
	Subject string
	Role    Role
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenParser verifies HS256 tokens issued by the users service. It never
// issues tokens itself.
type TokenParser struct {
	signingKey []byte
}

func NewTokenParser(signingKey string) *TokenParser {
	return &TokenParser{signingKey: []byte(signingKey)}
}

func (p *TokenParser) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	role := NormalizeRole(claims.Role)
	if role == "" {
		return nil, fmt.Errorf("%w: missing role", ErrTokenInvalid)
	}

	return &Claims{Subject: claims.Subject, Role: role}, nil
}

// NormalizeRole strips the ROLE_ prefix Spring-style issuers add and lowercases.
func NormalizeRole(raw string) Role {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 5 && strings.EqualFold(raw[:5], "ROLE_") {
		raw = raw[5:]
	}
	return Role(strings.ToLower(raw))
}
