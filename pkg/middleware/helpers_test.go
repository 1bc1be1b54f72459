package middleware

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func contextWithClaims(r *http.Request, claims *domain.Claims) context.Context {
	return context.WithValue(r.Context(), ContextKeyUser, claims)
}
