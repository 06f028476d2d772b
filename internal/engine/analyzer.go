package engine

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/shopspring/decimal"
)

// MaxNumber is the largest ball in a 6/45 game
const MaxNumber = 45

// FrequencyVector holds an occurrence count per number, indexed by number-1
type FrequencyVector []int

// NewFrequencyVector returns a zeroed vector for 1..45
func NewFrequencyVector() FrequencyVector {
	return make(FrequencyVector, MaxNumber)
}

// Count returns the count for n, zero when n is out of range
func (f FrequencyVector) Count(n int) int {
	if n < 1 || n > len(f) {
		return 0
	}
	return f[n-1]
}

// Total is the sum of all counts
func (f FrequencyVector) Total() int {
	total := 0
	for _, c := range f {
		total += c
	}
	return total
}

// Smoothed returns count+1 for every number, usable as sampling weights
func (f FrequencyVector) Smoothed() []int {
	w := make([]int, len(f))
	for i, c := range f {
		w[i] = c + 1
	}
	return w
}

// MarshalJSON renders the vector as {"1": c1, ..., "45": c45}
func (f FrequencyVector) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(f))
	for i, c := range f {
		m[strconv.Itoa(i+1)] = c
	}
	return json.Marshal(m)
}

func (f FrequencyVector) add(n int) {
	if n >= 1 && n <= len(f) {
		f[n-1]++
	}
}

// NumberFrequency counts how often each number appears among the main
// numbers of draws. The bonus is not counted.
func NumberFrequency(draws []models.Draw) FrequencyVector {
	f := NewFrequencyVector()
	for _, d := range draws {
		for _, n := range d.Numbers {
			f.add(n)
		}
	}
	return f
}

// NumberFrequencyWithBonus is NumberFrequency plus the bonus ball
func NumberFrequencyWithBonus(draws []models.Draw) FrequencyVector {
	f := NumberFrequency(draws)
	for _, d := range draws {
		f.add(d.Bonus)
	}
	return f
}

// RangeBucket is the per-number breakdown of one fixed range
type RangeBucket struct {
	Label  string `json:"label"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Counts []int  `json:"counts"` // Counts[i] is the count of Start+i
	Total  int    `json:"total"`
}

// RangeTable is the five buckets in fixed order
type RangeTable []RangeBucket

var rangeBounds = [...]struct {
	label      string
	start, end int
}{
	{"1-10", 1, 10},
	{"11-20", 11, 20},
	{"21-30", 21, 30},
	{"31-40", 31, 40},
	{"41-45", 41, 45},
}

// RangeLabels lists the bucket labels in table order
func RangeLabels() []string {
	labels := make([]string, len(rangeBounds))
	for i, b := range rangeBounds {
		labels[i] = b.label
	}
	return labels
}

// RangeFrequency groups main-number counts into the five fixed ranges
func RangeFrequency(draws []models.Draw) RangeTable {
	return RangeTableFrom(NumberFrequency(draws))
}

// RangeTableFrom groups an existing frequency vector
func RangeTableFrom(f FrequencyVector) RangeTable {
	table := make(RangeTable, 0, len(rangeBounds))
	for _, b := range rangeBounds {
		bucket := RangeBucket{
			Label:  b.label,
			Start:  b.start,
			End:    b.end,
			Counts: make([]int, b.end-b.start+1),
		}
		for n := b.start; n <= b.end; n++ {
			c := f.Count(n)
			bucket.Counts[n-b.start] = c
			bucket.Total += c
		}
		table = append(table, bucket)
	}
	return table
}

// ranked orders buckets by total descending; equal totals keep table order
func (t RangeTable) ranked() RangeTable {
	out := make(RangeTable, len(t))
	copy(out, t)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// TopRanges returns the labels of the k strongest ranges
func TopRanges(table RangeTable, k int) []string {
	if k < 0 {
		k = 0
	}
	if k > len(table) {
		k = len(table)
	}
	ranked := table.ranked()
	labels := make([]string, 0, k)
	for _, b := range ranked[:k] {
		labels = append(labels, b.Label)
	}
	return labels
}

// BottomRange returns the label ranked last by TopRanges' ordering
func BottomRange(table RangeTable) string {
	if len(table) == 0 {
		return ""
	}
	ranked := table.ranked()
	return ranked[len(ranked)-1].Label
}

// RangeShare is a bucket's share of all counted balls
type RangeShare struct {
	Label   string  `json:"label"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// RangeShares converts bucket totals to percentages rounded to one decimal
func RangeShares(table RangeTable) []RangeShare {
	all := 0
	for _, b := range table {
		all += b.Total
	}

	shares := make([]RangeShare, 0, len(table))
	for _, b := range table {
		pct := decimal.Zero
		if all > 0 {
			pct = decimal.NewFromInt(int64(b.Total)).
				Mul(decimal.NewFromInt(100)).
				Div(decimal.NewFromInt(int64(all))).
				Round(1)
		}
		shares = append(shares, RangeShare{Label: b.Label, Total: b.Total, Percent: pct.InexactFloat64()})
	}
	return shares
}

// Map renders the table as label -> number -> count
func (t RangeTable) Map() map[string]map[string]int {
	out := make(map[string]map[string]int, len(t))
	for _, b := range t {
		m := make(map[string]int, len(b.Counts))
		for i, c := range b.Counts {
			m[strconv.Itoa(b.Start+i)] = c
		}
		out[b.Label] = m
	}
	return out
}
