package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bhrigu136/shopify-ai-analytics/internal/model"
	"github.com/bhrigu136/shopify-ai-analytics/internal/repository"
	"github.com/bhrigu136/shopify-ai-analytics/internal/tokencrypt"
)

// CredentialPostgres is a PostgreSQL implementation of repository.CredentialRepository.
// Tokens are encrypted before write and decrypted after read.
type CredentialPostgres struct {
	db     *sql.DB
	cipher *tokencrypt.Cipher
	now    func() time.Time
}

// NewCredentialPostgres creates a new CredentialPostgres repository.
func NewCredentialPostgres(db *sql.DB, cipher *tokencrypt.Cipher) *CredentialPostgres {
	return &CredentialPostgres{db: db, cipher: cipher, now: time.Now}
}

var _ repository.CredentialRepository = (*CredentialPostgres)(nil)

// ResolveToken fetches and decrypts the token installed for storeID.
func (r *CredentialPostgres) ResolveToken(ctx context.Context, storeID string) (string, error) {
	const q = `SELECT encrypted_token FROM shop_tokens WHERE store_id = $1`

	var encrypted string
	if err := r.db.QueryRowContext(ctx, q, storeID).Scan(&encrypted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrCredentialNotFound
		}
		return "", fmt.Errorf("lookup token for %q: %w", storeID, err)
	}

	token, err := r.cipher.Decrypt(encrypted)
	if err != nil {
		return "", fmt.Errorf("decrypt token for %q: %w", storeID, err)
	}
	return token, nil
}

// Save upserts the token for t.StoreID and returns the stored row.
// installed_at is kept on conflict; updated_at is refreshed.
func (r *CredentialPostgres) Save(ctx context.Context, t *model.ShopToken) (*model.ShopToken, error) {
	encrypted, err := r.cipher.Encrypt(t.Token)
	if err != nil {
		return nil, fmt.Errorf("encrypt token for %q: %w", t.StoreID, err)
	}

	const q = `
		INSERT INTO shop_tokens (store_id, encrypted_token, installed_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (store_id) DO UPDATE
		SET encrypted_token = EXCLUDED.encrypted_token, updated_at = EXCLUDED.updated_at
		RETURNING store_id, installed_at, updated_at
	`
	out := model.ShopToken{Token: t.Token}
	if err := r.db.QueryRowContext(ctx, q, t.StoreID, encrypted, r.now().UTC()).Scan(
		&out.StoreID,
		&out.InstalledAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("save token for %q: %w", t.StoreID, err)
	}
	return &out, nil
}

// Delete removes the token for storeID. It does not return an error if the row does not exist.
func (r *CredentialPostgres) Delete(ctx context.Context, storeID string) error {
	const q = `DELETE FROM shop_tokens WHERE store_id = $1`
	if _, err := r.db.ExecContext(ctx, q, storeID); err != nil {
		return fmt.Errorf("delete token for %q: %w", storeID, err)
	}
	return nil
}
