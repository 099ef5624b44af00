package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/bookreview/internal/domain/model"
)

// ErrReviewNotFound is returned when no row exists for the requested review ID.
var ErrReviewNotFound = errors.New("review not found")

// ExecResult is the raw outcome of a dispatched statement.
type ExecResult struct {
	RowsAffected int64
	LastInsertID int64
}

// StatementExecutor defines the driven port for dispatching raw SQL text to
// the database connection.
type StatementExecutor interface {
	Exec(ctx context.Context, statement string) (ExecResult, error)
}

// ReviewStore extends StatementExecutor with read-back of a single review.
type ReviewStore interface {
	StatementExecutor
	// GetReview returns the stored review. Returns ErrReviewNotFound if absent.
	GetReview(ctx context.Context, id int64) (*model.Review, error)
}
