package model

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for review dates on input and in SQL.
const DateLayout = "2006-01-02"

// Validation failures returned by Review.Validate, in check order.
var (
	ErrInvalidReviewID   = errors.New("invalid review id")
	ErrInvalidRating     = errors.New("invalid rating")
	ErrInvalidComment    = errors.New("invalid comment")
	ErrInvalidReviewDate = errors.New("invalid review date")
)

// FixedReviewID is the row every review session updates.
const FixedReviewID int64 = 1

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a book review row in the Reviews table.
type Review struct {
	ID         int64
	Rating     int
	Comment    string
	ReviewDate time.Time // Calendar date only; time of day is ignored.
}

// Validate returns the first violated constraint, or nil if the review may be written.
func (r Review) Validate() error {
	if r.ID <= 0 {
		return ErrInvalidReviewID
	}
	if !ValidRating(r.Rating) {
		return ErrInvalidRating
	}
	if strings.TrimSpace(r.Comment) == "" {
		return ErrInvalidComment
	}
	if r.ReviewDate.IsZero() {
		return ErrInvalidReviewDate
	}
	return nil
}

// FormattedDate returns the review date as YYYY-MM-DD in UTC.
func (r Review) FormattedDate() string {
	return r.ReviewDate.UTC().Format(DateLayout)
}

// ValidRating reports whether rating is within [MinRating, MaxRating].
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// ParseReviewDate parses a YYYY-MM-DD string into a date at midnight UTC.
func ParseReviewDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}
