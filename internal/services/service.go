package services

import (
	"context"
	"errors"
	"io"

	"github.com/ArowuTest/lotto645-backend/internal/engine"
	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/pkg/lottoapi"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidDraw is returned when a featured draw fails validation
	ErrInvalidDraw = errors.New("invalid draw")
	// ErrInvalidRequest is returned for out-of-range request parameters
	ErrInvalidRequest = errors.New("invalid request")
	// ErrOfficialUnavailable is returned when no official results client is configured
	ErrOfficialUnavailable = errors.New("official results client is not configured")
)

// DrawService defines the interface for the draw dataset and its statistics
type DrawService interface {
	// Reload replaces the in-memory dataset with the persisted draws
	Reload(ctx context.Context) (engine.LoadReport, error)

	// ImportCSV persists the rows of a draw history CSV and reloads
	ImportCSV(ctx context.Context, r io.Reader) (*models.ImportResult, error)

	// SyncOfficial fetches start..end from the official results API, persists
	// them and reloads. Zero start means "after the latest stored draw", zero
	// end means "latest official draw".
	SyncOfficial(ctx context.Context, start, end int) (*models.ImportResult, error)

	// Window returns up to count draws ending at end (0 = latest)
	Window(end, count int) []models.Draw
	Latest() (models.Draw, bool)
	GetDraw(drawNumber int) (models.Draw, bool)
	Between(start, end int) []models.Draw

	NumberFrequency(end, count int, includeBonus bool) engine.FrequencyVector
	RangeFrequency(end, count int) engine.RangeTable

	GetFeaturedDraw(ctx context.Context) (*models.FeaturedDraw, error)
	SetFeaturedDraw(ctx context.Context, req *models.FeaturedDrawRequest, updatedBy string) (*models.FeaturedDraw, error)

	OfficialLatest(ctx context.Context) (int, error)
	OfficialDraw(ctx context.Context, drawNumber int) (lottoapi.Draw, error)
}

// CombinationService generates candidate combinations
type CombinationService interface {
	Generate(ctx context.Context, req *models.CombinationRequest) (*models.CombinationResponse, error)
}

// PredictionService scores strategy-based candidates
type PredictionService interface {
	Predict(ctx context.Context, req *models.PredictRequest) (*models.PredictResponse, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	// EnsureAdmin creates the admin account when it does not exist yet
	EnsureAdmin(ctx context.Context, email, password string) error
}

// OfficialResults is the subset of the official results client the services use
type OfficialResults interface {
	FetchDraw(ctx context.Context, n int) (lottoapi.Draw, error)
	FetchRange(ctx context.Context, start, end int) ([]lottoapi.Draw, error)
	LatestDrawNumber(ctx context.Context) (int, error)
}
