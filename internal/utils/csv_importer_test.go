package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ArowuTest/lotto645-backend/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const koreanCSV = "\ufeff회차,날짜,번호1,번호2,번호3,번호4,번호5,번호6,보너스\n" +
	"1,2002-12-07,10,23,29,33,37,40,16\n" +
	"2,2002-12-14,9,13,21,25,32,42,2\n" +
	"\n" +
	"3,2002-12-21,11,16,19,21,27,x,30\n" +
	"4,2002-12-28,14\n"

func TestParseDrawCSV_KoreanHeaders(t *testing.T) {
	records, err := ParseDrawCSV(strings.NewReader(koreanCSV))
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, engine.RawRecord{
		DrawNumber: "1",
		Date:       "2002-12-07",
		Numbers:    []string{"10", "23", "29", "33", "37", "40"},
		Bonus:      "16",
	}, records[0])
	assert.Len(t, records[3].Numbers, 1)

	store := engine.NewDrawStore()
	report := store.Load(records)
	assert.Equal(t, 2, report.Loaded)
	assert.Len(t, report.Rejected, 2)
}

func TestParseDrawCSV_EnglishHeadersInAnyOrder(t *testing.T) {
	in := "bonus,n6,n5,n4,n3,n2,n1,date,round\n7,6,5,4,3,2,1,2024-01-06,1101\n"

	records, err := ParseDrawCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1101", records[0].DrawNumber)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, records[0].Numbers)
	assert.Equal(t, "7", records[0].Bonus)
}

func TestParseDrawCSV_MissingColumns(t *testing.T) {
	_, err := ParseDrawCSV(strings.NewReader("date,n1,n2\n"))
	assert.True(t, errors.Is(err, ErrMissingColumn))

	_, err = ParseDrawCSV(strings.NewReader("round,n1,n2,n3,n4,n5\n"))
	assert.True(t, errors.Is(err, ErrMissingColumn))

	_, err = ParseDrawCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseDrawCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draws.csv")
	require.NoError(t, os.WriteFile(path, []byte(koreanCSV), 0o600))

	records, err := ParseDrawCSVFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 4)

	_, err = ParseDrawCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
