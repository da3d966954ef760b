package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"

	"ultimedia/internal/common"
	"ultimedia/internal/config"
)

// NewAuthMiddleware verifies identity-provider issued bearer tokens and puts
// the caller's user ID and email into request context. Keys come from the
// JWKS endpoint when configured, otherwise the shared HS256 secret.
func NewAuthMiddleware(cfg config.Auth) (echo.MiddlewareFunc, error) {
	var keyFunc jwt.Keyfunc
	switch {
	case cfg.JWKSURL != "":
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshInterval: time.Hour,
		})
		if err != nil {
			return nil, fmt.Errorf("load JWKS from %s: %w", cfg.JWKSURL, err)
		}
		keyFunc = jwks.Keyfunc
	default:
		secret := cfg.JWTSecret
		if secret == "" {
			secret = random.String(32) // Generate random secret for development
			log.Printf("WARNING: Using generated JWT secret: %s", secret)
		}
		key := []byte(secret)
		keyFunc = func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return key, nil
		}
	}

	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(auth, claims, keyFunc)
			if err != nil {
				return nil, err
			}
			if !token.Valid {
				return nil, errors.New("invalid token")
			}

			sub, err := claims.GetSubject()
			if err != nil || sub == "" {
				return nil, errors.New("token has no subject")
			}
			userID, err := common.ValidateUUID(sub, "sub")
			if err != nil {
				return nil, err
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			if email, ok := claims["email"].(string); ok && email != "" {
				ctx = context.WithValue(ctx, common.UserEmailKey, email)
			}
			c.SetRequest(c.Request().WithContext(ctx))
			return token, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.SendUnauthorized(c, "invalid or missing token")
		},
	}), nil
}
