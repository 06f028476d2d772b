package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/lotto645-backend/internal/models"
)

// ErrNotFound is returned when a lookup matches nothing
var ErrNotFound = errors.New("record not found")

// DrawRepository defines the interface for draw history persistence
type DrawRepository interface {
	// UpsertMany inserts or replaces draws keyed by draw number and returns
	// how many were written
	UpsertMany(ctx context.Context, draws []models.Draw) (int, error)
	FindAll(ctx context.Context) ([]*models.Draw, error)
	FindByNumber(ctx context.Context, drawNumber int) (*models.Draw, error)
	FindLatest(ctx context.Context) (*models.Draw, error)
	Count(ctx context.Context) (int64, error)
}

// FeaturedDrawRepository stores the single curated "last draw"
type FeaturedDrawRepository interface {
	// Get returns the stored draw, or the default one when none was saved
	Get(ctx context.Context) (*models.FeaturedDraw, error)
	Save(ctx context.Context, draw *models.FeaturedDraw) error
}

// AdminUserRepository defines the interface for admin account operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) (*models.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
