package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errDuplicateEmail = errors.New("admin user with this email already exists")

type AdminUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.AdminUser
}

var _ repositories.AdminUserRepository = (*AdminUserRepository)(nil)

func NewAdminUserRepository() *AdminUserRepository {
	return &AdminUserRepository{users: make(map[string]models.AdminUser)}
}

func (r *AdminUserRepository) Create(_ context.Context, adminUser *models.AdminUser) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(adminUser.Email)
	if _, exists := r.users[key]; exists {
		return nil, errDuplicateEmail
	}
	adminUser.ID = primitive.NewObjectID()
	r.users[key] = *adminUser
	return adminUser, nil
}

func (r *AdminUserRepository) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}
