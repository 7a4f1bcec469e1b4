package clients

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-layered-config/internal/config"
)

// ErrInvalidJWTConfig indicates a JWT config that cannot issue tokens.
var ErrInvalidJWTConfig = errors.New("invalid jwt config")

// GenerateToken creates a signed HMAC-SHA256 JWT token from cfg.
//
// The token includes the following standard claims:
//   - Issuer    (iss): cfg.Issuer
//   - Subject   (sub): subject
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus cfg.Expire seconds
func GenerateToken(cfg config.JWTConfig, subject string, now time.Time) (string, error) {
	if cfg.Issuer == "" || cfg.Expire <= 0 || cfg.Secret == "" {
		return "", ErrInvalidJWTConfig
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.ExpireDuration())),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return signed, nil
}

// CheckJWT issues a probe token with cfg and verifies it with the same
// secret and issuer.
func CheckJWT(cfg config.JWTConfig) error {
	signed, err := GenerateToken(cfg, "configctl-probe", time.Now())
	if err != nil {
		return err
	}

	_, err = jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) {
			return []byte(cfg.Secret), nil
		},
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return fmt.Errorf("error verifying probe JWT token: %w", err)
	}

	return nil
}
