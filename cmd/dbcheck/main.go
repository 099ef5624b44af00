package main

import (
	"context"
	"fmt"
	"os"
	"time"

	sqlstore "github.com/ericfisherdev/bookreview/internal/adapter/driven/sqlstore"
	"github.com/ericfisherdev/bookreview/internal/config"
	"github.com/ericfisherdev/bookreview/internal/domain/model"
)

func main() {
	os.Exit(check())
}

// check exits 0 when the configured database is reachable and the review row
// updated by reviewupdate exists.
func check() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	db, err := sqlstore.Open(ctx, cfg.DBDriver, sqlstore.DSN(cfg))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer db.Close()

	review, err := sqlstore.NewReviewRepo(db).GetReview(ctx, model.FixedReviewID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("review %d: rating=%d date=%s\n", review.ID, review.Rating, review.FormattedDate())
	return 0
}
