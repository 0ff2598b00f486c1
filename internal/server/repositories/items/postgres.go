// Package items provides the PostgreSQL-backed repository for vault items.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkraev/lockbox/internal/common"
	"github.com/mkraev/lockbox/internal/dbx"
	"github.com/mkraev/lockbox/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a vault item and returns it with the stored timestamp.
func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query :=
		`INSERT INTO vault_items (id, user_id, name, type, content, storage_key, size)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING date_added
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.UserID, item.Name, item.Type, item.Content, item.StorageKey, item.Size).Scan(&item.DateAdded)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// ListByUser returns metadata for the user's items, newest first. Content and
// storage keys are deliberately not selected.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Item, error) {
	query :=
		`SELECT id, name, type, size, date_added FROM vault_items
		 WHERE user_id = $1
		 ORDER BY date_added DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Item
	for rows.Next() {
		item := &models.Item{UserID: userID}
		if err := rows.Scan(&item.ID, &item.Name, &item.Type, &item.Size, &item.DateAdded); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID loads a single item owned by userID, common.ErrorNotFound otherwise.
func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Item, error) {
	query :=
		`SELECT id, user_id, name, type, content, storage_key, size, date_added FROM vault_items
		 WHERE id = $1 AND user_id = $2
		 `

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&item.ID, &item.UserID, &item.Name, &item.Type, &item.Content, &item.StorageKey, &item.Size, &item.DateAdded)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Delete removes an item owned by userID; common.ErrorNotFound when no row
// matched.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query :=
		`DELETE FROM vault_items
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
