package models

import (
	"time"
)

// MainNumbersPerDraw is the number of main balls in one 6/45 draw
const MainNumbersPerDraw = 6

// Draw represents one historical draw result
type Draw struct {
	DrawNumber int       `bson:"drawNumber" json:"drawNumber"`
	Date       string    `bson:"date" json:"date"` // as published, e.g. 2024-01-06
	Numbers    [6]int    `bson:"numbers" json:"numbers"`
	Bonus      int       `bson:"bonus" json:"bonus"`
	Source     string    `bson:"source,omitempty" json:"source,omitempty"` // CSV, OFFICIAL_API, SNAPSHOT
	CreatedAt  time.Time `bson:"createdAt,omitempty" json:"-"`
	UpdatedAt  time.Time `bson:"updatedAt,omitempty" json:"-"`
}

// Draw sources
const (
	DrawSourceCSV      = "CSV"
	DrawSourceOfficial = "OFFICIAL_API"
	DrawSourceSnapshot = "SNAPSHOT"
)

// DrawWithDigest pairs a draw with its sum/odd/high summary
type DrawWithDigest struct {
	Draw
	Sum       int `json:"sum"`
	OddCount  int `json:"oddCount"`
	HighCount int `json:"highCount"`
}

// ImportResult summarizes a CSV upload or official sync
type ImportResult struct {
	TotalRows int      `json:"totalRows"`
	Imported  int      `json:"imported"`
	Rejected  int      `json:"rejected"`
	Errors    []string `json:"errors"`
	Latest    int      `json:"latestDrawNumber"`
}
