package auth

import (
	"errors"
	"os"
	"time"

	"task-manager/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const devFallbackSecret = "development-insecure-secret-change-me"

var (
	jwtSecret   = []byte(getEnv("JWT_SECRET", devFallbackSecret))
	jwtIssuer   = getEnv("JWT_ISSUER", "task-manager")
	jwtAudience = getEnv("JWT_AUDIENCE", "task-manager-clients")
)

// Configure installs the signing secret from loaded configuration. The
// package default is resolved at init, before any .env file has been read,
// so commands must call this once config is available.
func Configure(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Claims represents the JWT claims. Role travels in the token so handlers
// never need a second lookup to resolve the principal.
type Claims struct {
	UserID uint        `json:"user_id"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for the given user
func GenerateToken(user *models.User, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Issuer != jwtIssuer {
		return nil, errors.New("invalid token issuer")
	}
	audValid := false
	for _, aud := range claims.Audience {
		if aud == jwtAudience {
			audValid = true
			break
		}
	}
	if !audValid {
		return nil, errors.New("invalid token audience")
	}
	if !models.ValidRole(claims.Role) {
		return nil, errors.New("invalid token role")
	}

	return claims, nil
}
