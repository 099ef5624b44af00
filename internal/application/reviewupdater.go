package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/bookreview/internal/domain/model"
	"github.com/ericfisherdev/bookreview/internal/domain/port/driven"
)

var (
	// ErrValidation wraps a model validation failure; no SQL was dispatched.
	ErrValidation = errors.New("review validation failed")
	// ErrExecution wraps a database failure while running the update.
	ErrExecution = errors.New("review update failed")
)

// ReviewUpdater validates reviews and writes them through a StatementExecutor.
type ReviewUpdater struct {
	executor driven.StatementExecutor
	logger   *slog.Logger
}

// NewReviewUpdater creates a ReviewUpdater. A nil logger falls back to slog.Default().
func NewReviewUpdater(executor driven.StatementExecutor, logger *slog.Logger) *ReviewUpdater {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewUpdater{
		executor: executor,
		logger:   logger,
	}
}

// UpdateReview validates review and, if valid, dispatches one UPDATE statement
// setting Rating, Comment and ReviewDate for its row. Success is only logged
// once the statement has completed.
func (u *ReviewUpdater) UpdateReview(ctx context.Context, review model.Review) (driven.ExecResult, error) {
	if err := review.Validate(); err != nil {
		u.logger.Error("Error updating review")
		u.logger.Debug("review rejected", "review_id", review.ID, "reason", err)
		return driven.ExecResult{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	stmt := BuildUpdateStatement(review)
	u.logger.Debug("dispatching statement", "sql", stmt)

	result, err := u.executor.Exec(ctx, stmt)
	if err != nil {
		u.logger.Error("Error executing SQL", "error", err)
		return driven.ExecResult{}, fmt.Errorf("%w: review %d: %w", ErrExecution, review.ID, err)
	}

	u.logger.Info("SQL executed successfully")
	u.logger.Info("Result",
		"rows_affected", result.RowsAffected,
		"last_insert_id", result.LastInsertID,
	)
	u.logger.Info("Review updated successfully", "review_id", review.ID)

	return result, nil
}
