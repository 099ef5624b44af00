package application

import (
	"fmt"
	"strings"

	"github.com/ericfisherdev/bookreview/internal/domain/model"
)

// EscapeSQLString doubles single quotes so s can be embedded in a quoted SQL literal.
func EscapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// UnescapeSQLString reverses EscapeSQLString.
func UnescapeSQLString(s string) string {
	return strings.ReplaceAll(s, "''", "'")
}

// BuildUpdateStatement renders the UPDATE that writes rating, comment and date
// for the review's row in a single statement. The review must already be valid.
func BuildUpdateStatement(review model.Review) string {
	return fmt.Sprintf(
		"UPDATE Reviews SET Rating = %d, Comment = '%s', ReviewDate = '%s' WHERE ReviewID = %d",
		review.Rating,
		EscapeSQLString(review.Comment),
		review.FormattedDate(),
		review.ID,
	)
}
