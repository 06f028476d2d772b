package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lotto645-backend/internal/config"
	"github.com/ArowuTest/lotto645-backend/internal/engine"
	"github.com/ArowuTest/lotto645-backend/internal/handlers"
	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/internal/repositories/memory"
	"github.com/ArowuTest/lotto645-backend/internal/services"
)

const (
	testSecret   = "router-test-secret"
	testEmail    = "admin@example.com"
	testPassword = "s3cret"
)

type testServer struct {
	router *gin.Engine
	repo   *memory.DrawRepository
	draws  *services.DrawServiceImpl
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.Server.AllowedHosts = []string{"*"}

	repo := memory.NewDrawRepository()
	drawService := services.NewDrawService(engine.NewDrawStore(), repo, memory.NewFeaturedDrawRepository(), nil, nil, nil)
	authService := services.NewAuthService(memory.NewAdminUserRepository(), testSecret, time.Hour)
	require.NoError(t, authService.EnsureAdmin(context.Background(), testEmail, testPassword))

	router := SetupRouter(cfg, HandlerDependencies{
		AuthHandler:  handlers.NewAuthHandler(authService),
		DrawHandler:  handlers.NewDrawHandler(drawService, 10, 23),
		StatsHandler: handlers.NewStatsHandler(drawService, 10),
		SuggestionHandler: handlers.NewSuggestionHandler(
			services.NewCombinationService(drawService, nil, 10, 23),
			services.NewPredictionService(drawService, 10, 5),
		),
		FeaturedDrawHandler: handlers.NewFeaturedDrawHandler(drawService),
	})
	return &testServer{router: router, repo: repo, draws: drawService}
}

func (s *testServer) seed(t *testing.T, n int) {
	t.Helper()
	draws := make([]models.Draw, 0, n)
	for i := 1; i <= n; i++ {
		base := (i % 39) + 1
		draws = append(draws, models.Draw{
			DrawNumber: i,
			Date:       "2024-01-01",
			Numbers:    [6]int{base, base + 1, base + 2, base + 3, base + 4, base + 5},
			Bonus:      45,
		})
	}
	_, err := s.repo.UpsertMany(context.Background(), draws)
	require.NoError(t, err)
	_, err = s.draws.Reload(context.Background())
	require.NoError(t, err)
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: testEmail, Password: testPassword}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestDrawRoutes(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, 55)

	w := s.do(t, http.MethodGet, "/api/v1/draws?count=10", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	draws := body["draws"].([]any)
	require.Len(t, draws, 10)
	assert.Equal(t, 55.0, body["end"])
	first := draws[0].(map[string]any)
	assert.Equal(t, 46.0, first["drawNumber"])
	assert.Contains(t, first, "sum")

	w = s.do(t, http.MethodGet, "/api/v1/draws/latest", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 55.0, decode(t, w)["drawNumber"])

	w = s.do(t, http.MethodGet, "/api/v1/draws?end=20&count=5", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20.0, decode(t, w)["end"])

	w = s.do(t, http.MethodGet, "/api/v1/draws/7", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7.0, decode(t, w)["drawNumber"])

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/draws/999", nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/draws/abc", nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/draws?count=0", nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/draws?high_cut=46", nil, "").Code)
}

func TestLatestOnEmptyDataset(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/draws/latest", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "no data", body["message"])
	assert.Nil(t, body["draw"])

	w = s.do(t, http.MethodGet, "/api/v1/draws", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Empty(t, body["draws"])
	assert.Equal(t, 0.0, body["end"])
}

func TestDigestRoute(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/digest?numbers=1,2,3,23,40,45", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	digest := decode(t, w)["digest"].(map[string]any)
	assert.Equal(t, 114.0, digest["sum"])
	assert.Equal(t, 4.0, digest["oddCount"])
	assert.Equal(t, 3.0, digest["highCount"])

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/digest?numbers=a", nil, "").Code)
}

func TestStatsRoutes(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, 30)

	w := s.do(t, http.MethodGet, "/api/v1/stats/frequency?count=10", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 60.0, body["total"])
	assert.Len(t, body["frequency"], engine.MaxNumber)

	w = s.do(t, http.MethodGet, "/api/v1/stats/frequency?count=10&bonus=true", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 70.0, decode(t, w)["total"])

	w = s.do(t, http.MethodGet, "/api/v1/stats/ranges?top=3", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Len(t, body["top"], 3)
	assert.Len(t, body["buckets"], 5)
	assert.NotEmpty(t, body["bottom"])

	w = s.do(t, http.MethodGet, "/api/v1/stats/between?start=1&end=10", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, 10.0, body["draws"])
	assert.Len(t, body["shares"], 5)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/stats/between?start=10&end=1", nil, "").Code)
}

func TestSuggestionRoutes(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, 20)

	w := s.do(t, http.MethodPost, "/api/v1/combinations", map[string]any{"mode": "weighted", "count": 3, "seed": 5}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["combinations"], 3)

	w = s.do(t, http.MethodPost, "/api/v1/combinations", map[string]any{"mode": "nope"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/predict", map[string]any{"seed": 1}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Contains(t, []any{models.StrategyConservative, models.StrategyBalanced, models.StrategyHighRisk}, body["best_key"])
	assert.Len(t, body["best3"], 3)

	w = s.do(t, http.MethodPost, "/api/v1/predict", map[string]any{"count": 51}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeaturedDrawRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/last_draw", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7.0, decode(t, w)["bonus"])

	req := map[string]any{"draw_no": 1100, "numbers": []int{6, 5, 4, 3, 2, 1}, "bonus": 9}
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/v1/last_draw", req, "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/v1/last_draw", req, "garbage").Code)

	token := s.login(t)
	w = s.do(t, http.MethodPost, "/api/v1/last_draw", req, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0, 5.0, 6.0}, body["numbers"])
	assert.Equal(t, testEmail, body["updatedBy"])

	bad := map[string]any{"numbers": []int{1, 2, 3}}
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/last_draw", bad, token).Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: testEmail, Password: "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadAndReload(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	csvBody := "회차,날짜,번호1,번호2,번호3,번호4,번호5,번호6,보너스\n" +
		"1,2002-12-07,10,23,29,33,37,40,16\n" +
		"2,2002-12-14,9,13,21,25,32,42,2\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "draws.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvBody))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/draws/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, 2.0, body["imported"])
	assert.Equal(t, 2.0, body["latestDrawNumber"])

	w = s.do(t, http.MethodPost, "/api/v1/draws/reload", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, decode(t, w)["loaded"])

	// no official client configured
	w = s.do(t, http.MethodPost, "/api/v1/draws/sync", nil, token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/official/latest", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUploadRequiresFile(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/draws/upload", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
