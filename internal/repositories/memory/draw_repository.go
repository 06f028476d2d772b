package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/internal/repositories"
)

// DrawRepository keeps draws in process memory. It backs the API when no
// MongoDB URI is configured and the service tests.
type DrawRepository struct {
	mu    sync.RWMutex
	draws map[int]models.Draw
}

var _ repositories.DrawRepository = (*DrawRepository)(nil)

// NewDrawRepository creates an empty in-memory DrawRepository
func NewDrawRepository() *DrawRepository {
	return &DrawRepository{draws: make(map[int]models.Draw)}
}

func (r *DrawRepository) UpsertMany(_ context.Context, draws []models.Draw) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, d := range draws {
		if prev, ok := r.draws[d.DrawNumber]; ok {
			d.CreatedAt = prev.CreatedAt
		} else {
			d.CreatedAt = now
		}
		d.UpdatedAt = now
		r.draws[d.DrawNumber] = d
	}
	return len(draws), nil
}

func (r *DrawRepository) FindAll(_ context.Context) ([]*models.Draw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Draw, 0, len(r.draws))
	for _, d := range r.draws {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DrawNumber < out[j].DrawNumber })
	return out, nil
}

func (r *DrawRepository) FindByNumber(_ context.Context, drawNumber int) (*models.Draw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.draws[drawNumber]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &d, nil
}

func (r *DrawRepository) FindLatest(_ context.Context) (*models.Draw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *models.Draw
	for _, d := range r.draws {
		if latest == nil || d.DrawNumber > latest.DrawNumber {
			d := d
			latest = &d
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	return latest, nil
}

func (r *DrawRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.draws)), nil
}
