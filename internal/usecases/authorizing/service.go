package authorizing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vikareta-analytics-api/internal/config"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_token_validator.go -package=mocks

// TokenValidator verifica tokens emitidos pelo backend do marketplace.
// Esta API não emite tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) TokenValidator {
	if cfg.Auth.Secret == "" {
		logrus.Warn("authorizing: AUTH_SECRET não configurado, todos os tokens serão recusados")
	}
	return &Service{cfg: cfg}
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	if s.cfg.Auth.Secret == "" {
		return nil, ErrInvalidToken
	}

	claims := &domain.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Role != domain.RoleAdmin && claims.Role != domain.RoleSeller {
		return nil, fmt.Errorf("%w: role %q", ErrInsufficientPrivilege, claims.Role)
	}

	return claims, nil
}
