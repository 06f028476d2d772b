package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ArowuTest/lotto645-backend/internal/models"
)

// RawRecord is one pre-split row of a draw dataset, before numeric parsing
type RawRecord struct {
	DrawNumber string
	Date       string
	Numbers    []string
	Bonus      string
}

// RejectedRecord describes a row dropped by Load
type RejectedRecord struct {
	Index      int    `json:"index"`
	DrawNumber string `json:"drawNumber"`
	Reason     string `json:"reason"`
	err        error
}

// Error implements error
func (r RejectedRecord) Error() string {
	return fmt.Sprintf("row %d (draw %q): %s", r.Index, r.DrawNumber, r.Reason)
}

// Unwrap lets errors.Is match ErrMalformedRecord
func (r RejectedRecord) Unwrap() error { return r.err }

// LoadReport is the outcome of replacing the store contents
type LoadReport struct {
	Loaded   int              `json:"loaded"`
	Rejected []RejectedRecord `json:"rejected"`
}

// ParseRecord converts a raw row into a draw.
// Number ranges and distinctness are not checked here.
func ParseRecord(raw RawRecord) (models.Draw, error) {
	var d models.Draw

	n, err := atoi(raw.DrawNumber)
	if err != nil {
		return d, fmt.Errorf("%w: draw number %q is not numeric", ErrMalformedRecord, raw.DrawNumber)
	}
	d.DrawNumber = n
	d.Date = strings.TrimSpace(raw.Date)

	if len(raw.Numbers) != models.MainNumbersPerDraw {
		return d, fmt.Errorf("%w: expected %d main numbers, got %d", ErrMalformedRecord, models.MainNumbersPerDraw, len(raw.Numbers))
	}
	for i, s := range raw.Numbers {
		v, err := atoi(s)
		if err != nil {
			return d, fmt.Errorf("%w: main number %d (%q) is not numeric", ErrMalformedRecord, i+1, s)
		}
		d.Numbers[i] = v
	}

	// a missing bonus column is tolerated, a garbled one is not
	if strings.TrimSpace(raw.Bonus) != "" {
		b, err := atoi(raw.Bonus)
		if err != nil {
			return d, fmt.Errorf("%w: bonus %q is not numeric", ErrMalformedRecord, raw.Bonus)
		}
		d.Bonus = b
	}
	return d, nil
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
