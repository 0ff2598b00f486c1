package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkraev/lockbox/internal/common"
	"github.com/mkraev/lockbox/internal/cryptox"
	"github.com/mkraev/lockbox/internal/dbx"
	"github.com/mkraev/lockbox/internal/logging"
	"github.com/mkraev/lockbox/internal/server/blob"
	"github.com/mkraev/lockbox/internal/server/models"
	"github.com/mkraev/lockbox/internal/server/repositories/repomanager"
)

// inlineBlobLimit is the envelope size above which file envelopes move to
// the blob store when one is configured. Small envelopes stay inline.
const inlineBlobLimit = 64 << 10

// CreateItemParams carries the client-supplied fields of a store request.
// Content is plaintext for text items and a base64 data URL for file items.
type CreateItemParams struct {
	Type    string
	Content string
	Name    string
	Size    string
}

// ItemContent is a fetched, decrypted item.
type ItemContent struct {
	Content string
	Type    string
	Name    string
}

// VaultService is the vault access gate: it encrypts on create, decrypts on
// fetch, and keeps every read and delete scoped to the owning user.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cipher      *cryptox.Cipher
	blobs       blob.Store // nil when offload is disabled
	logger      logging.Logger
}

// NewVaultService constructs a VaultService. blobs may be nil; envelopes are
// then always stored inline.
func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, cipher *cryptox.Cipher, blobs blob.Store, l logging.Logger) *VaultService {
	return &VaultService{
		db:          db,
		repomanager: m,
		cipher:      cipher,
		blobs:       blobs,
		logger:      l.With("module", "vault_service"),
	}
}

// CreateItem validates the request, encrypts the content with the envelope
// matching its type, and persists the item for userID. Returns the new item
// ID. Size-cap and data-URL checks run before any cipher work.
func (s *VaultService) CreateItem(ctx context.Context, userID string, p CreateItemParams) (string, error) {
	if p.Content == "" || p.Type == "" || p.Name == "" {
		return "", fmt.Errorf("%w: missing required fields", common.ErrorValidation)
	}
	if !models.ValidType(p.Type) {
		return "", fmt.Errorf("%w: unknown item type %q", common.ErrorValidation, p.Type)
	}

	var envelope string
	var err error
	switch p.Type {
	case models.ItemTypeText:
		envelope, err = s.cipher.EncryptText(p.Content)
	case models.ItemTypeFile:
		envelope, err = s.cipher.EncryptFile(p.Content)
	}
	if err != nil {
		return "", err
	}

	item := &models.Item{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   p.Name,
		Type:   p.Type,
		Size:   p.Size,
	}
	if item.Size == "" {
		item.Size = "0 KB"
	}

	if s.blobs != nil && p.Type == models.ItemTypeFile && len(envelope) > inlineBlobLimit {
		key := blob.NewStorageKey()
		if err := s.blobs.Save(ctx, key, []byte(envelope)); err != nil {
			return "", fmt.Errorf("blob save: %w", err)
		}
		item.StorageKey = key
	} else {
		item.Content = envelope
	}

	repo := s.repomanager.Items(s.db)
	if _, err := repo.Create(ctx, item); err != nil {
		// Roll back the orphaned object; the DB row is the source of truth.
		if item.StorageKey != "" {
			if derr := s.blobs.Delete(ctx, item.StorageKey); derr != nil {
				s.logger.Warn(ctx, "orphaned blob after failed insert", "key", item.StorageKey, "error", derr.Error())
			}
		}
		return "", fmt.Errorf("error creating item: %w", err)
	}

	return item.ID, nil
}

// ListItems returns metadata for the user's items, newest first. Content is
// never part of the listing.
func (s *VaultService) ListItems(ctx context.Context, userID string) ([]*models.Item, error) {
	repo := s.repomanager.Items(s.db)
	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	return result, nil
}

// FetchItem loads one of the user's items and decrypts it. A foreign or
// missing item is common.ErrorNotFound; an envelope that cannot be decrypted
// surfaces the cipher error so callers can distinguish "not found" from
// "found but unreadable".
func (s *VaultService) FetchItem(ctx context.Context, userID, itemID string) (*ItemContent, error) {
	repo := s.repomanager.Items(s.db)
	item, err := repo.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	envelope := item.Content
	if item.StorageKey != "" {
		// Offloaded rows can outlive the offload configuration.
		if s.blobs == nil {
			return nil, fmt.Errorf("item %s is offloaded but no blob store is configured", itemID)
		}
		data, err := s.blobs.Load(ctx, item.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("blob load: %w", err)
		}
		envelope = string(data)
	}

	var content string
	switch item.Type {
	case models.ItemTypeFile:
		content, err = s.cipher.DecryptFile(envelope)
	default:
		content, err = s.cipher.DecryptText(envelope)
	}
	if err != nil {
		return nil, err
	}

	return &ItemContent{Content: content, Type: item.Type, Name: item.Name}, nil
}

// DeleteItem removes one of the user's items. Lookup and delete run in one
// transaction so the storage key cannot refer to a row someone else already
// replaced; the blob object, if any, is deleted best-effort after the row is
// gone.
func (s *VaultService) DeleteItem(ctx context.Context, userID, itemID string) error {
	var storageKey string
	err := s.inTx(ctx, func(ctx context.Context, db dbx.DBTX) error {
		repo := s.repomanager.Items(db)
		item, err := repo.GetByID(ctx, userID, itemID)
		if err != nil {
			return err
		}
		storageKey = item.StorageKey
		return repo.Delete(ctx, userID, itemID)
	})
	if err != nil {
		return err
	}

	if storageKey != "" {
		if s.blobs == nil {
			s.logger.Warn(ctx, "blob store disabled, object left behind", "key", storageKey)
			return nil
		}
		if err := s.blobs.Delete(ctx, storageKey); err != nil {
			s.logger.Warn(ctx, "blob delete failed", "key", storageKey, "error", err.Error())
		}
	}
	return nil
}

// inTx runs fn inside a database transaction when a SQL database backs the
// service. The in-memory manager ignores the handle, so fn runs directly.
func (s *VaultService) inTx(ctx context.Context, fn func(context.Context, dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}
