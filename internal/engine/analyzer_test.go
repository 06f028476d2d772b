package engine

import (
	"encoding/json"
	"testing"

	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draw(n int, nums [6]int, bonus int) models.Draw {
	return models.Draw{DrawNumber: n, Numbers: nums, Bonus: bonus}
}

func TestNumberFrequency(t *testing.T) {
	draws := []models.Draw{
		draw(1, [6]int{1, 2, 3, 4, 5, 6}, 7),
		draw(2, [6]int{1, 12, 23, 34, 44, 45}, 7),
	}

	f := NumberFrequency(draws)

	require.Len(t, f, MaxNumber)
	assert.Equal(t, 2, f.Count(1))
	assert.Equal(t, 1, f.Count(45))
	assert.Equal(t, 0, f.Count(7), "bonus is not counted")
	assert.Equal(t, 12, f.Total())
}

func TestNumberFrequencyWithBonus(t *testing.T) {
	f := NumberFrequencyWithBonus([]models.Draw{draw(1, [6]int{1, 2, 3, 4, 5, 6}, 7)})

	assert.Equal(t, 1, f.Count(7))
	assert.Equal(t, 7, f.Total())
}

func TestNumberFrequency_SumIsSixPerDraw(t *testing.T) {
	s := NewDrawStore()
	s.Load(sequentialDraws(100))

	for _, n := range []int{0, 1, 17, 100} {
		w := s.Window(100, n)
		assert.Equal(t, 6*len(w), NumberFrequency(w).Total())
	}
}

func TestNumberFrequency_IgnoresOutOfRange(t *testing.T) {
	f := NumberFrequency([]models.Draw{draw(1, [6]int{0, 2, 3, 4, 5, 46}, 0)})

	assert.Equal(t, 4, f.Total())
	assert.Equal(t, 0, f.Count(46))
}

func TestFrequencyVector_SmoothedAndJSON(t *testing.T) {
	f := NumberFrequency([]models.Draw{draw(1, [6]int{1, 2, 3, 4, 5, 6}, 0)})

	w := f.Smoothed()
	assert.Equal(t, 2, w[0])
	assert.Equal(t, 1, w[44])

	raw, err := json.Marshal(f)
	require.NoError(t, err)
	var m map[string]int
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Len(t, m, 45)
	assert.Equal(t, 1, m["6"])
	assert.Equal(t, 0, m["45"])
}

func TestRangeFrequency(t *testing.T) {
	table := RangeFrequency([]models.Draw{
		draw(1, [6]int{1, 10, 11, 20, 41, 45}, 0),
		draw(2, [6]int{2, 3, 21, 31, 40, 42}, 0),
	})

	require.Len(t, table, 5)
	assert.Equal(t, []string{"1-10", "11-20", "21-30", "31-40", "41-45"}, RangeLabels())
	totals := []int{}
	for _, b := range table {
		totals = append(totals, b.Total)
	}
	assert.Equal(t, []int{4, 2, 1, 2, 3}, totals)
	assert.Len(t, table[4].Counts, 5)
	assert.Equal(t, 1, table[4].Counts[4], "45 is the last slot of 41-45")
}

func TestRangeFrequency_EveryNumberInOneBucket(t *testing.T) {
	f := NewFrequencyVector()
	for i := range f {
		f[i] = 1
	}
	table := RangeTableFrom(f)

	total := 0
	for _, b := range table {
		assert.Equal(t, b.End-b.Start+1, b.Total)
		total += b.Total
	}
	assert.Equal(t, 45, total)
}

func TestRangeFrequency_WindowOfTen(t *testing.T) {
	s := NewDrawStore()
	s.Load(sequentialDraws(100))

	table := RangeFrequency(s.Window(100, 10))
	total := 0
	for _, b := range table {
		total += b.Total
	}
	assert.Equal(t, 60, total)

	top := TopRanges(table, 2)
	require.Len(t, top, 2)
	first, second := totalOf(table, top[0]), totalOf(table, top[1])
	assert.GreaterOrEqual(t, first, second)
	for _, b := range table {
		if b.Label != top[0] && b.Label != top[1] {
			assert.LessOrEqual(t, b.Total, second)
		}
	}
}

func totalOf(table RangeTable, label string) int {
	for _, b := range table {
		if b.Label == label {
			return b.Total
		}
	}
	return -1
}

func TestTopRanges_TiesKeepRangeOrder(t *testing.T) {
	table := RangeTable{
		{Label: "1-10", Start: 1, Total: 3},
		{Label: "11-20", Start: 11, Total: 5},
		{Label: "21-30", Start: 21, Total: 3},
		{Label: "31-40", Start: 31, Total: 5},
		{Label: "41-45", Start: 41, Total: 1},
	}

	assert.Equal(t, []string{"11-20", "31-40"}, TopRanges(table, 2))
	assert.Equal(t, []string{"11-20", "31-40", "1-10", "21-30", "41-45"}, TopRanges(table, 9))
	assert.Empty(t, TopRanges(table, -1))
	assert.Equal(t, "41-45", BottomRange(table))
}

func TestBottomRange_TieTakesLastInRanking(t *testing.T) {
	table := RangeFrequency(nil)

	assert.Equal(t, []string{"1-10", "11-20"}, TopRanges(table, 2))
	assert.Equal(t, "41-45", BottomRange(table))
	assert.Equal(t, "", BottomRange(RangeTable{}))
}

func TestRangeShares(t *testing.T) {
	table := RangeTable{
		{Label: "1-10", Total: 1},
		{Label: "11-20", Total: 2},
		{Label: "21-30", Total: 0},
		{Label: "31-40", Total: 0},
		{Label: "41-45", Total: 0},
	}

	shares := RangeShares(table)
	assert.Equal(t, 33.3, shares[0].Percent)
	assert.Equal(t, 66.7, shares[1].Percent)
	assert.Equal(t, 0.0, shares[2].Percent)

	for _, s := range RangeShares(RangeFrequency(nil)) {
		assert.Equal(t, 0.0, s.Percent)
	}
}

func TestRangeTable_Map(t *testing.T) {
	m := RangeFrequency([]models.Draw{draw(1, [6]int{1, 2, 3, 4, 5, 45}, 0)}).Map()

	assert.Len(t, m, 5)
	assert.Len(t, m["41-45"], 5)
	assert.Equal(t, 1, m["41-45"]["45"])
	assert.Equal(t, 0, m["11-20"]["11"])
}

func TestDrawDigest(t *testing.T) {
	d := DrawDigest([]int{1, 2, 23, 24, 44, 45}, DefaultHighThreshold)

	assert.Equal(t, Digest{Sum: 139, OddCount: 3, HighCount: 4}, d)
	assert.Equal(t, 0, DrawDigest([]int{1, 2, 3}, 46).HighCount)
	assert.Equal(t, Digest{}, DrawDigest(nil, DefaultHighThreshold))
}
