package models

import (
	"time"
)

// FeaturedDraw is the manually curated "last draw" shown next to suggestions.
// A single document holds it.
type FeaturedDraw struct {
	DrawNumber int       `bson:"drawNumber" json:"draw_no"`
	Numbers    []int     `bson:"numbers" json:"numbers"`
	Bonus      int       `bson:"bonus" json:"bonus"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy  string    `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// DefaultFeaturedDraw is served until an admin sets one
func DefaultFeaturedDraw() FeaturedDraw {
	return FeaturedDraw{
		DrawNumber: 0,
		Numbers:    []int{1, 2, 3, 4, 5, 6},
		Bonus:      7,
	}
}

// FeaturedDrawRequest is the body of POST /last_draw
type FeaturedDrawRequest struct {
	DrawNumber int   `json:"draw_no"`
	Numbers    []int `json:"numbers" binding:"required"`
	Bonus      int   `json:"bonus"`
}
