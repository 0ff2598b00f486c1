package repomanager

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/mkraev/lockbox/internal/common"
	"github.com/mkraev/lockbox/internal/dbx"
	"github.com/mkraev/lockbox/internal/server/models"
	"github.com/mkraev/lockbox/internal/server/repositories/items"
	"github.com/mkraev/lockbox/internal/server/repositories/users"
)

// InMemoryRepositoryManager backs services with map-based repositories for
// tests. It mimics the database behavior the services rely on: the unique
// email index and owner-scoped item reads/deletes.
type InMemoryRepositoryManager struct {
	users *InMemoryUserRepository
	items *InMemoryItemRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: &InMemoryUserRepository{byEmail: map[string]*models.User{}},
		items: &InMemoryItemRepository{byID: map[string]*models.Item{}},
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Items(db dbx.DBTX) items.Repository { return m.items }

type InMemoryUserRepository struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := *user
	u.CreatedAt = time.Now()
	r.byEmail[user.Email] = &u
	return &u, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

type InMemoryItemRepository struct {
	mu   sync.Mutex
	byID map[string]*models.Item
	seq  int
}

func (r *InMemoryItemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it := *item
	// Monotonic timestamps keep list ordering deterministic even when two
	// inserts land within clock resolution.
	r.seq++
	it.DateAdded = time.Now().Add(time.Duration(r.seq) * time.Microsecond)
	r.byID[it.ID] = &it
	return &it, nil
}

func (r *InMemoryItemRepository) ListByUser(ctx context.Context, userID string) ([]*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Item
	for _, it := range r.byID {
		if it.UserID != userID {
			continue
		}
		meta := &models.Item{
			ID: it.ID, UserID: it.UserID, Name: it.Name,
			Type: it.Type, Size: it.Size, DateAdded: it.DateAdded,
		}
		result = append(result, meta)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DateAdded.After(result[j].DateAdded)
	})
	return result, nil
}

func (r *InMemoryItemRepository) GetByID(ctx context.Context, userID, id string) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.byID[id]
	if !ok || it.UserID != userID {
		return nil, common.ErrorNotFound
	}
	out := *it
	return &out, nil
}

func (r *InMemoryItemRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.byID[id]
	if !ok || it.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}
