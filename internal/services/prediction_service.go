package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ArowuTest/lotto645-backend/internal/engine"
	"github.com/ArowuTest/lotto645-backend/internal/models"
)

const (
	// MaxPredictCount caps candidates per strategy
	MaxPredictCount = 50

	adjacentPenalty = 0.8
	minWin          = 5.0
	maxWin          = 95.0
)

type strategy struct {
	name string
	pool []int
}

// strategies are evaluated in this order; ties for best keep the earlier one
var strategies = []strategy{
	{name: models.StrategyConservative, pool: poolWhere(func(n int) bool { return n >= 8 && n <= 38 })},
	{name: models.StrategyBalanced, pool: engine.FullPool()},
	{name: models.StrategyHighRisk, pool: poolWhere(func(n int) bool { return n <= 10 || n >= 36 })},
}

// best3Order is the display order of the per-strategy winners
var best3Order = []string{models.StrategyBalanced, models.StrategyConservative, models.StrategyHighRisk}

func poolWhere(keep func(int) bool) []int {
	var pool []int
	for n := 1; n <= engine.MaxNumber; n++ {
		if keep(n) {
			pool = append(pool, n)
		}
	}
	return pool
}

// Compile-time check to ensure PredictionServiceImpl implements PredictionService
var _ PredictionService = (*PredictionServiceImpl)(nil)

// PredictionServiceImpl scores strategy candidates against recent frequencies
type PredictionServiceImpl struct {
	draws         DrawService
	defaultWindow int
	defaultCount  int
}

// NewPredictionService creates a new PredictionServiceImpl
func NewPredictionService(draws DrawService, defaultWindow, defaultCount int) *PredictionServiceImpl {
	if defaultWindow <= 0 {
		defaultWindow = 10
	}
	if defaultCount <= 0 {
		defaultCount = 5
	}
	return &PredictionServiceImpl{
		draws:         draws,
		defaultWindow: defaultWindow,
		defaultCount:  defaultCount,
	}
}

// Predict draws count weighted candidates per strategy from the last window
// draws and ranks them
func (s *PredictionServiceImpl) Predict(ctx context.Context, req *models.PredictRequest) (*models.PredictResponse, error) {
	// 1. Resolve parameters
	count := req.Count
	if count == 0 {
		count = s.defaultCount
	}
	if count < 1 || count > MaxPredictCount {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidRequest, MaxPredictCount)
	}
	window := req.Window
	if window <= 0 {
		window = s.defaultWindow
	}

	last, err := s.draws.GetFeaturedDraw(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Recent frequencies and the weights derived from them
	freq := s.draws.NumberFrequency(0, window, false)
	weights := freq.Smoothed()

	sampler := engine.NewRandomSampler()
	if req.Seed != nil {
		sampler = engine.NewSeededSampler(*req.Seed)
	}

	// 3. Generate and score per strategy
	resp := &models.PredictResponse{
		Last:          *last,
		Window:        window,
		AllByStrategy: make(map[string][]models.ScoredCombination, len(strategies)),
	}
	bestPer := make(map[string]models.ScoredCombination, len(strategies))
	bestScore := -1e9
	for _, st := range strategies {
		scored := make([]models.ScoredCombination, 0, count)
		for i := 0; i < count; i++ {
			c, err := sampler.WeightedFrom(st.pool, weights)
			if err != nil {
				slog.Error("Failed to sample strategy candidate", "strategy", st.name, "error", err)
				return nil, fmt.Errorf("failed to sample %s candidate: %w", st.name, err)
			}
			scored = append(scored, scoreCombination(st.name, c.Slice(), freq, window))
		}
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})

		resp.AllByStrategy[st.name] = scored
		bestPer[st.name] = scored[0]
		if scored[0].Score > bestScore {
			bestScore = scored[0].Score
			resp.BestStrategy = st.name
		}
	}

	// 4. Assemble the summary views
	best := resp.AllByStrategy[resp.BestStrategy]
	if len(best) > 5 {
		best = best[:5]
	}
	resp.BestTop5 = best
	for _, name := range best3Order {
		resp.Best3 = append(resp.Best3, bestPer[name])
	}

	table := engine.RangeTableFrom(freq)
	resp.Ranges = models.RangeSummary{
		Buckets: table.Map(),
		Top:     engine.TopRanges(table, 2),
		Bottom:  engine.BottomRange(table),
	}

	slog.Info("Predictions generated", "best", resp.BestStrategy, "count", count, "window", window, "seeded", req.Seed != nil)
	return resp, nil
}

// scoreCombination computes the reward and risk metrics of one candidate.
// reward is the mean raw frequency, risk grows with spread and adjacent pairs.
func scoreCombination(name string, nums []int, freq engine.FrequencyVector, window int) models.ScoredCombination {
	n := float64(len(nums))

	fvals := make([]int, len(nums))
	var fsum, mean float64
	for i, x := range nums {
		fvals[i] = freq.Count(x)
		fsum += float64(fvals[i])
		mean += float64(x)
	}
	reward := fsum / n
	mean /= n

	var variance float64
	adjacent := 0
	for i, x := range nums {
		d := float64(x) - mean
		variance += d * d
		if i > 0 && x == nums[i-1]+1 {
			adjacent++
		}
	}
	variance /= n

	risk := variance/100 + float64(adjacent)*adjacentPenalty
	score := reward / (1 + risk)
	rr := reward / (risk + 1e-6)
	win := score * 100 / (reward + 1)
	if win < minWin {
		win = minWin
	}
	if win > maxWin {
		win = maxWin
	}

	return models.ScoredCombination{
		Strategy:  name,
		Numbers:   nums,
		Reward:    round(reward, 3),
		Risk:      round(risk, 3),
		Score:     round(score, 3),
		RR:        round(rr, 3),
		Win:       round(win, 1),
		Rationale: rationale(nums, fvals, freq.Total(), window),
	}
}

// rationale renders "NN/freq/share%/basis" per number, joined by " | "
func rationale(nums, fvals []int, total, window int) string {
	if total == 0 {
		total = 1
	}
	basis := fmt.Sprintf("최근%d회", window)
	parts := make([]string, len(nums))
	for i, x := range nums {
		share := decimal.NewFromInt(int64(fvals[i])).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total))).
			StringFixed(1)
		parts[i] = fmt.Sprintf("%02d/%d/%s%%/%s", x, fvals[i], share, basis)
	}
	return strings.Join(parts, " | ")
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
