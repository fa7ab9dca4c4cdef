package graphql

import (
	"context"
	"encoding/json"
	"net/http"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeyBrand contextKey = "brand"

// BrandFromContext returns the brand key for the current request, or "" when
// the request did not pin one (resolvers then fall back to the stored brand).
func BrandFromContext(ctx context.Context) string {
	if v := ctx.Value(CtxKeyBrand); v != nil {
		if key, ok := v.(string); ok {
			return key
		}
	}
	return ""
}

// WithBrand attaches a brand key to context.
func WithBrand(ctx context.Context, brandKey string) context.Context {
	return context.WithValue(ctx, CtxKeyBrand, brandKey)
}

// Per-request brand override.
// Resolved from: Brand header > __brand query param > JSON variables.__brand
const (
	HeaderBrand     = "Brand"
	QueryParamBrand = "__brand"
	VarBrand        = "__brand"
)

// GetBrand extracts the brand override from the request headers or URL.
// The JSON body fallback is handled separately because the handler owns the body.
func GetBrand(r *http.Request) string {
	if h := r.Header.Get(HeaderBrand); h != "" {
		return h
	}
	if q := r.URL.Query().Get(QueryParamBrand); q != "" {
		return q
	}
	return ""
}

// ParseBrandFromVariables parses variables from a JSON body for __brand.
func ParseBrandFromVariables(body []byte) (string, bool) {
	var payload struct {
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Variables == nil {
		return "", false
	}
	if v, ok := payload.Variables[VarBrand]; ok {
		if key, ok := v.(string); ok && key != "" {
			return key, true
		}
	}
	return "", false
}
