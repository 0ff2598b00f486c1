package items

import (
	"context"

	"github.com/mkraev/lockbox/internal/server/models"
)

// Repository persists vault items. GetByID and Delete are owner-scoped: an
// item belonging to another user behaves exactly like a missing one.
type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Item, error)
	GetByID(ctx context.Context, userID, id string) (*models.Item, error)
	Delete(ctx context.Context, userID, id string) error
}
