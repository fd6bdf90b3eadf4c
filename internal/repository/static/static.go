// Package static provides a placeholder credential source that hands the same
// token to every store. It stands in until a real secret store is configured.
package static

import (
	"context"
	"strings"

	"github.com/bhrigu136/shopify-ai-analytics/internal/repository"
)

// Resolver returns a fixed token for any non-blank store id.
type Resolver struct {
	token string
}

var _ repository.CredentialResolver = (*Resolver)(nil)

// NewResolver creates a Resolver that hands out token.
func NewResolver(token string) *Resolver {
	return &Resolver{token: token}
}

func (r *Resolver) ResolveToken(_ context.Context, storeID string) (string, error) {
	if strings.TrimSpace(storeID) == "" || r.token == "" {
		return "", repository.ErrCredentialNotFound
	}
	return r.token, nil
}
