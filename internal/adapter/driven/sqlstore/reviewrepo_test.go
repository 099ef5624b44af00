package sqlstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/bookreview/internal/application"
	"github.com/ericfisherdev/bookreview/internal/config"
	"github.com/ericfisherdev/bookreview/internal/domain/model"
	"github.com/ericfisherdev/bookreview/internal/domain/port/driven"
)

func makeReview(rating int, comment string, date string) model.Review {
	d, err := model.ParseReviewDate(date)
	if err != nil {
		panic(err)
	}
	return model.Review{ID: 1, Rating: rating, Comment: comment, ReviewDate: d}
}

func TestReviewRepo_SeededRowExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)

	got, err := repo.GetReview(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestReviewRepo_ExecUpdateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()

	review := makeReview(4, "Great read!", "2024-01-15")

	result, err := repo.Exec(ctx, application.BuildUpdateStatement(review))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.RowsAffected)

	got, err := repo.GetReview(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, "Great read!", got.Comment)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got.ReviewDate)
}

func TestReviewRepo_QuotedCommentRoundTrips(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()

	review := makeReview(5, "it's great, O'Reilly's best", "2024-02-29")

	_, err := repo.Exec(ctx, application.BuildUpdateStatement(review))
	require.NoError(t, err)

	got, err := repo.GetReview(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, review.Comment, got.Comment)
}

func TestReviewRepo_RepeatedUpdatesOverwriteSameRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()

	_, err := repo.Exec(ctx, application.BuildUpdateStatement(makeReview(2, "first", "2024-01-01")))
	require.NoError(t, err)
	_, err = repo.Exec(ctx, application.BuildUpdateStatement(makeReview(5, "second", "2024-06-30")))
	require.NoError(t, err)

	var count int
	require.NoError(t, db.Conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM Reviews").Scan(&count))
	assert.Equal(t, 1, count)

	got, err := repo.GetReview(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "second", got.Comment)
}

func TestReviewRepo_GetReview_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)

	got, err := repo.GetReview(context.Background(), 42)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, driven.ErrReviewNotFound)
}

func TestReviewRepo_Exec_InvalidSQL(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)

	_, err := repo.Exec(context.Background(), "UPDATE NoSuchTable SET x = 1")

	assert.Error(t, err)
}

func TestReviewRepo_Disconnected(t *testing.T) {
	repo := NewReviewRepo(&DB{driver: config.DriverMySQL})
	ctx := context.Background()

	_, err := repo.Exec(ctx, "UPDATE Reviews SET Rating = 1 WHERE ReviewID = 1")
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = repo.GetReview(ctx, 1)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	_ = setupTestDB(t)

	// Reopening the same database re-runs the migrations, which must be a no-op.
	again, err := open(context.Background(), "sqlite", testDSN(t), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.Close() })

	got, err := NewReviewRepo(again).GetReview(context.Background(), model.FixedReviewID)
	require.NoError(t, err)
	assert.Equal(t, model.FixedReviewID, got.ID)
}

func TestReviewRepo_BackslashCommentStaysInOneRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()

	_, err := repo.Exec(ctx, "INSERT INTO Reviews (ReviewID, Rating, Comment, ReviewDate) VALUES (2, 5, 'other book', '2023-12-01')")
	require.NoError(t, err)

	review := makeReview(4, `\', Rating = 1 -- `, "2024-01-15")

	result, err := repo.Exec(ctx, application.BuildUpdateStatement(review))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.RowsAffected)

	got, err := repo.GetReview(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, review.Comment, got.Comment)
	assert.Equal(t, 4, got.Rating)

	other, err := repo.GetReview(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, other.Rating)
	assert.Equal(t, "other book", other.Comment)
}

func TestReviewRepo_NoReconnectAfterConnectionLoss(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()

	assert.Equal(t, 1, db.pool.Stats().MaxOpenConnections)

	// Simulate losing the pinned connection; the repo must not dial a new one.
	require.NoError(t, db.Conn.Close())

	_, err := repo.Exec(ctx, application.BuildUpdateStatement(makeReview(3, "after loss", "2024-01-15")))
	assert.ErrorIs(t, err, sql.ErrConnDone)

	_, err = repo.GetReview(ctx, 1)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}
