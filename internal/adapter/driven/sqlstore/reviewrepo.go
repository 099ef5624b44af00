package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/bookreview/internal/domain/model"
	"github.com/ericfisherdev/bookreview/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReviewStore = (*ReviewRepo)(nil)

// ReviewRepo is the SQL implementation of the ReviewStore port interface.
type ReviewRepo struct {
	db *DB
}

// NewReviewRepo creates a new ReviewRepo backed by the given DB.
func NewReviewRepo(db *DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Exec runs a complete statement with no bind arguments.
func (r *ReviewRepo) Exec(ctx context.Context, statement string) (driven.ExecResult, error) {
	if !r.db.Connected() {
		return driven.ExecResult{}, ErrNotConnected
	}

	res, err := r.db.Conn.ExecContext(ctx, statement)
	if err != nil {
		return driven.ExecResult{}, fmt.Errorf("exec statement: %w", err)
	}

	var result driven.ExecResult
	if n, err := res.RowsAffected(); err == nil {
		result.RowsAffected = n
	}
	if id, err := res.LastInsertId(); err == nil {
		result.LastInsertID = id
	}

	return result, nil
}

// GetReview returns the stored review with the given ID.
func (r *ReviewRepo) GetReview(ctx context.Context, id int64) (*model.Review, error) {
	if !r.db.Connected() {
		return nil, ErrNotConnected
	}

	const query = `SELECT ReviewID, Rating, Comment, ReviewDate FROM Reviews WHERE ReviewID = ?`

	var (
		review model.Review
		date   string
	)
	err := r.db.Conn.QueryRowContext(ctx, query, id).Scan(&review.ID, &review.Rating, &review.Comment, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, driven.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review %d: %w", id, err)
	}

	// DATE columns may come back as YYYY-MM-DD or a full timestamp.
	if len(date) > len(model.DateLayout) {
		date = date[:len(model.DateLayout)]
	}
	review.ReviewDate, err = model.ParseReviewDate(date)
	if err != nil {
		return nil, fmt.Errorf("parse date of review %d: %w", id, err)
	}

	return &review, nil
}
