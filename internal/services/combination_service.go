package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ArowuTest/lotto645-backend/internal/engine"
	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/pkg/events"
)

// Compile-time check to ensure CombinationServiceImpl implements CombinationService
var _ CombinationService = (*CombinationServiceImpl)(nil)

// CombinationServiceImpl generates uniform or frequency-weighted combinations
type CombinationServiceImpl struct {
	draws         DrawService
	emitter       events.Emitter
	defaultWindow int
	highThreshold int
}

// NewCombinationService creates a new CombinationServiceImpl
func NewCombinationService(draws DrawService, emitter events.Emitter, defaultWindow, highThreshold int) *CombinationServiceImpl {
	if emitter == nil {
		emitter = events.NewEmitter(events.Nop{}, "")
	}
	if defaultWindow <= 0 {
		defaultWindow = 10
	}
	if highThreshold <= 0 {
		highThreshold = engine.DefaultHighThreshold
	}
	return &CombinationServiceImpl{
		draws:         draws,
		emitter:       emitter,
		defaultWindow: defaultWindow,
		highThreshold: highThreshold,
	}
}

// Generate produces req.Count combinations (clamped to 1..20). Weighted mode
// uses smoothed frequencies over the window ending at req.End.
func (s *CombinationServiceImpl) Generate(ctx context.Context, req *models.CombinationRequest) (*models.CombinationResponse, error) {
	// 1. Validate the request
	mode, err := engine.ParseMode(req.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	window := req.Window
	if window <= 0 {
		window = s.defaultWindow
	}
	end := req.End
	if end <= 0 {
		if latest, ok := s.draws.Latest(); ok {
			end = latest.DrawNumber
		}
	}

	// 2. Build weights for weighted mode
	var weights []int
	if mode == engine.ModeWeighted {
		weights = s.draws.NumberFrequency(end, window, false).Smoothed()
	}

	// 3. Sample with a per-request sampler
	sampler := engine.NewRandomSampler()
	if req.Seed != nil {
		sampler = engine.NewSeededSampler(*req.Seed)
	}
	combos, err := sampler.GenerateMany(mode, req.Count, weights)
	if err != nil {
		slog.Error("Failed to generate combinations", "mode", mode, "error", err)
		return nil, fmt.Errorf("failed to generate combinations: %w", err)
	}

	resp := &models.CombinationResponse{
		Mode:         string(mode),
		Window:       window,
		End:          end,
		Combinations: make([]models.GeneratedCombination, 0, len(combos)),
	}
	for _, c := range combos {
		d := engine.DrawDigest(c[:], s.highThreshold)
		resp.Combinations = append(resp.Combinations, models.GeneratedCombination{
			Numbers:   c,
			Sum:       d.Sum,
			OddCount:  d.OddCount,
			HighCount: d.HighCount,
		})
	}

	// 4. Announce
	if err := s.emitter.EmitCombinationsGenerated(events.CombinationsGenerated{
		Mode:   string(mode),
		Count:  len(combos),
		Window: window,
		Seeded: req.Seed != nil,
	}); err != nil {
		slog.Warn("Failed to publish combinations event", "error", err)
	}

	return resp, nil
}
