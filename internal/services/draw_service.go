package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ArowuTest/lotto645-backend/internal/engine"
	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/internal/repositories"
	"github.com/ArowuTest/lotto645-backend/internal/utils"
	"github.com/ArowuTest/lotto645-backend/pkg/events"
	"github.com/ArowuTest/lotto645-backend/pkg/kvstore"
	"github.com/ArowuTest/lotto645-backend/pkg/lottoapi"
)

const snapshotKey = "snapshot/draws"

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl keeps the draw store in sync with the repository
type DrawServiceImpl struct {
	store        *engine.DrawStore
	drawRepo     repositories.DrawRepository
	featuredRepo repositories.FeaturedDrawRepository
	official     OfficialResults
	snapshot     kvstore.Store
	emitter      events.Emitter
}

// NewDrawService creates a new DrawServiceImpl. official and snapshot may be nil.
func NewDrawService(
	store *engine.DrawStore,
	drawRepo repositories.DrawRepository,
	featuredRepo repositories.FeaturedDrawRepository,
	official OfficialResults,
	snapshot kvstore.Store,
	emitter events.Emitter,
) *DrawServiceImpl {
	if emitter == nil {
		emitter = events.NewEmitter(events.Nop{}, "")
	}
	return &DrawServiceImpl{
		store:        store,
		drawRepo:     drawRepo,
		featuredRepo: featuredRepo,
		official:     official,
		snapshot:     snapshot,
		emitter:      emitter,
	}
}

// Reload replaces the in-memory dataset with the persisted draws. When the
// repository is unreachable or empty the last local snapshot is used.
func (s *DrawServiceImpl) Reload(ctx context.Context) (engine.LoadReport, error) {
	// 1. Read everything from the repository
	stored, err := s.drawRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to load draws from repository", "error", err)
		if report, ok := s.restoreSnapshot(); ok {
			return report, nil
		}
		return engine.LoadReport{}, fmt.Errorf("failed to load draws: %w", err)
	}
	if len(stored) == 0 {
		if report, ok := s.restoreSnapshot(); ok {
			return report, nil
		}
	}

	// 2. Swap them into the store
	draws := make([]models.Draw, 0, len(stored))
	for _, d := range stored {
		draws = append(draws, *d)
	}
	report := s.store.Replace(draws)
	s.logRejected("repository", report)

	// 3. Refresh the local snapshot and announce the new dataset
	s.saveSnapshot()
	s.emitReloaded("repository", report)

	slog.Info("Draw dataset loaded", "draws", report.Loaded, "rejected", len(report.Rejected))
	return report, nil
}

func (s *DrawServiceImpl) restoreSnapshot() (engine.LoadReport, bool) {
	if s.snapshot == nil {
		return engine.LoadReport{}, false
	}
	var draws []models.Draw
	found, err := s.snapshot.GetAny(snapshotKey, &draws)
	if err != nil {
		slog.Warn("Failed to read draw snapshot", "error", err)
		return engine.LoadReport{}, false
	}
	if !found || len(draws) == 0 {
		return engine.LoadReport{}, false
	}

	report := s.store.Replace(draws)
	s.emitReloaded(models.DrawSourceSnapshot, report)
	slog.Warn("Draw dataset restored from local snapshot", "draws", report.Loaded)
	return report, true
}

func (s *DrawServiceImpl) saveSnapshot() {
	if s.snapshot == nil || s.store.Len() == 0 {
		return
	}
	if err := s.snapshot.SetAny(snapshotKey, s.store.All(), 0); err != nil {
		slog.Warn("Failed to write draw snapshot", "error", err)
	}
}

func (s *DrawServiceImpl) emitReloaded(source string, report engine.LoadReport) {
	ev := events.DatasetReloaded{Source: source, Loaded: report.Loaded, Rejected: len(report.Rejected)}
	if latest, ok := s.store.Latest(); ok {
		ev.Latest = latest.DrawNumber
	}
	if err := s.emitter.EmitDatasetReloaded(ev); err != nil {
		slog.Warn("Failed to publish dataset event", "error", err)
	}
}

func (s *DrawServiceImpl) logRejected(source string, report engine.LoadReport) {
	for _, r := range report.Rejected {
		slog.Warn("Skipped malformed draw row", "source", source, "row", r.Index, "draw", r.DrawNumber, "reason", r.Reason)
	}
}

// ImportCSV parses a draw history CSV, persists the valid rows and reloads
func (s *DrawServiceImpl) ImportCSV(ctx context.Context, r io.Reader) (*models.ImportResult, error) {
	// 1. Parse rows; the header must be usable
	records, err := utils.ParseDrawCSV(r)
	if err != nil && len(records) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	result := &models.ImportResult{TotalRows: len(records), Errors: []string{}}
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	// 2. Validate through a scratch store so the upload gets the same rules
	// as the live dataset
	scratch := engine.NewDrawStore()
	report := scratch.Load(records)
	s.logRejected(models.DrawSourceCSV, report)
	for _, rej := range report.Rejected {
		result.Errors = append(result.Errors, rej.Error())
	}
	result.Rejected = len(report.Rejected)

	draws := scratch.All()
	for i := range draws {
		draws[i].Source = models.DrawSourceCSV
	}

	// 3. Persist and reload
	return s.persistAndReload(ctx, draws, result)
}

// SyncOfficial fetches rounds from the official API, persists and reloads
func (s *DrawServiceImpl) SyncOfficial(ctx context.Context, start, end int) (*models.ImportResult, error) {
	if s.official == nil {
		return nil, ErrOfficialUnavailable
	}

	// 1. Resolve the range
	if end <= 0 {
		latest, err := s.official.LatestDrawNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to determine latest official draw: %w", err)
		}
		end = latest
	}
	if start <= 0 {
		start = 1
		if latest, ok := s.store.Latest(); ok {
			start = latest.DrawNumber + 1
		}
	}
	result := &models.ImportResult{Errors: []string{}}
	if start > end {
		if latest, ok := s.store.Latest(); ok {
			result.Latest = latest.DrawNumber
		}
		return result, nil
	}

	// 2. Fetch; keep whatever arrived before a failure
	fetched, fetchErr := s.official.FetchRange(ctx, start, end)
	result.TotalRows = end - start + 1
	draws := make([]models.Draw, 0, len(fetched))
	for _, d := range fetched {
		draws = append(draws, models.Draw{
			DrawNumber: d.DrawNumber,
			Date:       d.Date,
			Numbers:    d.Numbers,
			Bonus:      d.Bonus,
			Source:     models.DrawSourceOfficial,
		})
	}
	if fetchErr != nil {
		slog.Error("Official sync stopped early", "start", start, "end", end, "fetched", len(draws), "error", fetchErr)
		result.Errors = append(result.Errors, fetchErr.Error())
	}

	// 3. Persist and reload
	result, err := s.persistAndReload(ctx, draws, result)
	if err != nil {
		return result, err
	}
	if fetchErr != nil {
		return result, fmt.Errorf("official sync incomplete: %w", fetchErr)
	}
	return result, nil
}

func (s *DrawServiceImpl) persistAndReload(ctx context.Context, draws []models.Draw, result *models.ImportResult) (*models.ImportResult, error) {
	if len(draws) > 0 {
		n, err := s.drawRepo.UpsertMany(ctx, draws)
		if err != nil {
			slog.Error("Failed to persist draws", "count", len(draws), "error", err)
			return result, fmt.Errorf("failed to persist draws: %w", err)
		}
		result.Imported = n
	}

	if _, err := s.Reload(ctx); err != nil {
		return result, err
	}
	if latest, ok := s.store.Latest(); ok {
		result.Latest = latest.DrawNumber
	}
	slog.Info("Draws imported", "imported", result.Imported, "rejected", result.Rejected, "latest", result.Latest)
	return result, nil
}

// resolveEnd maps 0 (or negative) to the latest draw number
func (s *DrawServiceImpl) resolveEnd(end int) int {
	if end > 0 {
		return end
	}
	if latest, ok := s.store.Latest(); ok {
		return latest.DrawNumber
	}
	return 0
}

func (s *DrawServiceImpl) Window(end, count int) []models.Draw {
	return s.store.Window(s.resolveEnd(end), count)
}

func (s *DrawServiceImpl) Latest() (models.Draw, bool) {
	return s.store.Latest()
}

func (s *DrawServiceImpl) GetDraw(drawNumber int) (models.Draw, bool) {
	return s.store.Get(drawNumber)
}

func (s *DrawServiceImpl) Between(start, end int) []models.Draw {
	return s.store.Between(start, end)
}

func (s *DrawServiceImpl) NumberFrequency(end, count int, includeBonus bool) engine.FrequencyVector {
	draws := s.Window(end, count)
	if includeBonus {
		return engine.NumberFrequencyWithBonus(draws)
	}
	return engine.NumberFrequency(draws)
}

func (s *DrawServiceImpl) RangeFrequency(end, count int) engine.RangeTable {
	return engine.RangeFrequency(s.Window(end, count))
}

// GetFeaturedDraw returns the curated last draw
func (s *DrawServiceImpl) GetFeaturedDraw(ctx context.Context) (*models.FeaturedDraw, error) {
	d, err := s.featuredRepo.Get(ctx)
	if err != nil {
		slog.Error("Failed to read featured draw", "error", err)
		return nil, fmt.Errorf("failed to read featured draw: %w", err)
	}
	return d, nil
}

// SetFeaturedDraw validates and stores the curated last draw. Out-of-range and
// repeated numbers are dropped and six must remain. An out-of-range bonus is
// stored as 0.
func (s *DrawServiceImpl) SetFeaturedDraw(ctx context.Context, req *models.FeaturedDrawRequest, updatedBy string) (*models.FeaturedDraw, error) {
	nums, err := utils.NormalizeMainNumbers(req.Numbers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraw, err)
	}
	bonus := req.Bonus
	if bonus < 1 || bonus > engine.MaxNumber {
		bonus = 0
	}

	d := &models.FeaturedDraw{
		DrawNumber: req.DrawNumber,
		Numbers:    nums,
		Bonus:      bonus,
		UpdatedAt:  time.Now(),
		UpdatedBy:  updatedBy,
	}
	if err := s.featuredRepo.Save(ctx, d); err != nil {
		slog.Error("Failed to save featured draw", "error", err)
		return nil, fmt.Errorf("failed to save featured draw: %w", err)
	}

	if err := s.emitter.Emit(events.Event{
		Type:      events.TypeFeaturedDrawUpdated,
		Data:      d,
		Timestamp: d.UpdatedAt.UTC().Unix(),
	}); err != nil {
		slog.Warn("Failed to publish featured draw event", "error", err)
	}
	return d, nil
}

// OfficialLatest returns the newest drawn round according to the official API
func (s *DrawServiceImpl) OfficialLatest(ctx context.Context) (int, error) {
	if s.official == nil {
		return 0, ErrOfficialUnavailable
	}
	return s.official.LatestDrawNumber(ctx)
}

// OfficialDraw returns one round from the official API
func (s *DrawServiceImpl) OfficialDraw(ctx context.Context, drawNumber int) (lottoapi.Draw, error) {
	if s.official == nil {
		return lottoapi.Draw{}, ErrOfficialUnavailable
	}
	d, err := s.official.FetchDraw(ctx, drawNumber)
	if err != nil && !errors.Is(err, lottoapi.ErrDrawNotFound) {
		slog.Error("Official draw lookup failed", "draw", drawNumber, "error", err)
	}
	return d, err
}
