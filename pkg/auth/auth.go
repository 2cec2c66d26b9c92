package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

type Config struct {
	JWTKey string        `envconfig:"AUTH_JWT_KEY" default:"supersecretkey"`
	TTL    time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
}

type Claims struct {
	Profile struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
	} `json:"profile"`
	jwt.RegisteredClaims
}

// NewToken issues a signed HS256 token for the given profile.
func NewToken(cfg Config, name, email string, isAdmin bool) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	claims.Profile.Name = name
	claims.Profile.Email = email
	claims.Profile.IsAdmin = isAdmin

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTKey))
}

func ParseToken(cfg Config, tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

type ctxKey struct{}

type Identity struct {
	Email   string
	IsAdmin bool
}

func SetAuthContext(ctx context.Context, email string, isAdmin bool) context.Context {
	return context.WithValue(ctx, ctxKey{}, Identity{Email: email, IsAdmin: isAdmin})
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
