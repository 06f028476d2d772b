package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lotto645-backend/internal/config"
	"github.com/ArowuTest/lotto645-backend/internal/models"
)

func TestNew_InMemoryWithMockOfficialAPI(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.LottoAPI.MockAPI = true
	cfg.JWT.Secret = "app-test"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	_, err = a.DrawService.ImportCSV(ctx, strings.NewReader("drawNumber,n1,n2,n3,n4,n5,n6\n1,1,2,3,4,5,6\n"))
	require.NoError(t, err)

	result, err := a.DrawService.SyncOfficial(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Imported)
	assert.Equal(t, 5, a.Store.Len())

	require.NoError(t, a.AuthService.EnsureAdmin(ctx, "admin@example.com", "pw"))
	resp, err := a.AuthService.Login(ctx, &models.LoginRequest{Email: "admin@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}
