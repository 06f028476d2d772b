package engine

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
)

// MaxCombinations caps a single GenerateMany call
const MaxCombinations = 20

// RandomSource is the only randomness the sampler needs. *rand.Rand from
// math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// Mode selects how GenerateMany picks numbers
type Mode string

const (
	ModeUniform  Mode = "uniform"
	ModeWeighted Mode = "weighted"
)

// ParseMode accepts "uniform"/"random" and "weighted"/"frequency"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "uniform", "random":
		return ModeUniform, nil
	case "weighted", "frequency":
		return ModeWeighted, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Combination is six distinct numbers in 1..45, ascending
type Combination [6]int

// Slice returns the numbers as a slice
func (c Combination) Slice() []int {
	out := make([]int, len(c))
	copy(out, c[:])
	return out
}

// Sampler draws combinations from an injected random source.
// It is not safe for concurrent use.
type Sampler struct {
	rng RandomSource
}

// NewSampler wraps rng
func NewSampler(rng RandomSource) *Sampler {
	return &Sampler{rng: rng}
}

// NewSeededSampler returns a reproducible sampler
func NewSeededSampler(seed uint64) *Sampler {
	return NewSampler(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewRandomSampler returns a sampler seeded from the runtime's random source
func NewRandomSampler() *Sampler {
	return NewSampler(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// arena holds the numbers still available for a combination. Picked slots
// are swap-removed so the live region is always nums[:n].
type arena struct {
	nums    [MaxNumber]int
	weights [MaxNumber]int
	n       int
	total   int
}

func (a *arena) take(j int) int {
	picked := a.nums[j]
	a.total -= a.weights[j]
	a.n--
	a.nums[j], a.weights[j] = a.nums[a.n], a.weights[a.n]
	return picked
}

func newArena(pool []int, weights []int) (*arena, error) {
	if len(weights) < MaxNumber {
		return nil, fmt.Errorf("%w: need %d weights, got %d", ErrInvalidWeights, MaxNumber, len(weights))
	}
	if pool == nil {
		pool = FullPool()
	}

	a := &arena{}
	var seen [MaxNumber + 1]bool
	for _, n := range pool {
		if n < 1 || n > MaxNumber || seen[n] {
			continue
		}
		seen[n] = true
		w := weights[n-1]
		if w <= 0 {
			return nil, fmt.Errorf("%w: weight for %d is %d", ErrInvalidWeights, n, w)
		}
		if w > math.MaxInt-a.total {
			return nil, fmt.Errorf("%w: weight total overflows at %d", ErrInvalidWeights, n)
		}
		a.nums[a.n] = n
		a.weights[a.n] = w
		a.n++
		a.total += w
	}
	if a.n < len(Combination{}) {
		return nil, fmt.Errorf("%w: %d usable numbers", ErrPoolTooSmall, a.n)
	}
	return a, nil
}

// FullPool returns 1..45
func FullPool() []int {
	pool := make([]int, MaxNumber)
	for i := range pool {
		pool[i] = i + 1
	}
	return pool
}

// Uniform picks 6 numbers without replacement, every combination equally likely
func (s *Sampler) Uniform() Combination {
	a := &arena{n: MaxNumber}
	for i := range a.nums {
		a.nums[i] = i + 1
	}

	var c Combination
	for k := range c {
		c[k] = a.take(s.rng.IntN(a.n))
	}
	sort.Ints(c[:])
	return c
}

// Weighted picks 6 numbers without replacement, number i+1 being chosen with
// probability proportional to weights[i] among those still available
func (s *Sampler) Weighted(weights []int) (Combination, error) {
	return s.WeightedFrom(nil, weights)
}

// WeightedFrom is Weighted restricted to pool. A nil pool means 1..45.
func (s *Sampler) WeightedFrom(pool []int, weights []int) (Combination, error) {
	a, err := newArena(pool, weights)
	if err != nil {
		return Combination{}, err
	}
	return s.drawWeighted(a), nil
}

func (s *Sampler) drawWeighted(a *arena) Combination {
	var c Combination
	for k := range c {
		r := s.rng.IntN(a.total)
		acc := 0
		j := a.n - 1
		for i := 0; i < a.n; i++ {
			acc += a.weights[i]
			if acc > r {
				j = i
				break
			}
		}
		c[k] = a.take(j)
	}
	sort.Ints(c[:])
	return c
}

// ClampCount bounds a requested combination count to 1..MaxCombinations
func ClampCount(count int) int {
	if count < 1 {
		return 1
	}
	if count > MaxCombinations {
		return MaxCombinations
	}
	return count
}

// GenerateMany produces count independent combinations. Duplicates between
// calls are not removed.
func (s *Sampler) GenerateMany(mode Mode, count int, weights []int) ([]Combination, error) {
	count = ClampCount(count)
	out := make([]Combination, 0, count)

	switch mode {
	case ModeUniform:
		for i := 0; i < count; i++ {
			out = append(out, s.Uniform())
		}
	case ModeWeighted:
		base, err := newArena(nil, weights)
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			a := *base
			out = append(out, s.drawWeighted(&a))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return out, nil
}
