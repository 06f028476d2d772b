package memory

import (
	"context"
	"sync"

	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/internal/repositories"
)

type FeaturedDrawRepository struct {
	mu   sync.RWMutex
	draw *models.FeaturedDraw
}

var _ repositories.FeaturedDrawRepository = (*FeaturedDrawRepository)(nil)

func NewFeaturedDrawRepository() *FeaturedDrawRepository {
	return &FeaturedDrawRepository{}
}

func (r *FeaturedDrawRepository) Get(_ context.Context) (*models.FeaturedDraw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.draw == nil {
		d := models.DefaultFeaturedDraw()
		return &d, nil
	}
	d := *r.draw
	d.Numbers = append([]int(nil), r.draw.Numbers...)
	return &d, nil
}

func (r *FeaturedDrawRepository) Save(_ context.Context, draw *models.FeaturedDraw) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := *draw
	d.Numbers = append([]int(nil), draw.Numbers...)
	r.draw = &d
	return nil
}
