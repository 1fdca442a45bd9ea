package storage

import (
	"context"
	"fmt"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/security"
)

// EncryptedStore seals every value before handing it to the wrapped Store
type EncryptedStore struct {
	inner     Store
	encryptor *security.Encryptor
}

// NewEncryptedStore wraps inner with AES-256-GCM encryption
func NewEncryptedStore(inner Store, encryptor *security.Encryptor) *EncryptedStore {
	return &EncryptedStore{
		inner:     inner,
		encryptor: encryptor,
	}
}

// Get reads and decrypts a value
func (s *EncryptedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	sealed, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}

	plaintext, err := s.encryptor.Decrypt(sealed)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decrypt key %s: %w", key, err)
	}
	return plaintext, true, nil
}

// Set encrypts and writes a value
func (s *EncryptedStore) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := s.encryptor.Encrypt(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt key %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed)
}

// Remove deletes a key
func (s *EncryptedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}

// RemoveKeys deletes keys atomically through the wrapped store
func (s *EncryptedStore) RemoveKeys(ctx context.Context, keys ...string) error {
	return s.inner.RemoveKeys(ctx, keys...)
}

var _ Store = (*EncryptedStore)(nil)
