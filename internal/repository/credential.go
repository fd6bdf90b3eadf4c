package repository

import (
	"context"
	"errors"

	"github.com/bhrigu136/shopify-ai-analytics/internal/model"
)

// ErrCredentialNotFound means no access token is known for the store:
// the shop does not exist or the app is not installed.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialResolver looks up the access token used to call the AI service on a store's behalf.
type CredentialResolver interface {
	// ResolveToken returns the plaintext token, or ErrCredentialNotFound.
	ResolveToken(ctx context.Context, storeID string) (string, error)
}

// CredentialRepository is a CredentialResolver backed by persistent storage.
type CredentialRepository interface {
	CredentialResolver

	// Save inserts or replaces the token for token.StoreID.
	Save(ctx context.Context, token *model.ShopToken) (*model.ShopToken, error)

	// Delete removes the token for storeID. It returns nil if the row did not exist.
	Delete(ctx context.Context, storeID string) error
}
