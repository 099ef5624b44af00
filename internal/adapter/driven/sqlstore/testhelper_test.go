package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"testing"
)

// testDSN returns a named in-memory SQLite DSN. A unique name derived from
// t.Name() ensures isolation between parallel tests; every DB opened with the
// same DSN in one test shares the database via cache=shared.
func testDSN(t *testing.T) string {
	t.Helper()

	// Percent-encode the test name so it's a safe SQLite URI filename component
	// and cannot be misinterpreted as query parameters in the "file:%s?..." DSN.
	safeName := url.PathEscape(t.Name())
	// WAL mode is not applicable to in-memory databases; omit journal_mode pragma.
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", safeName)
}

// setupTestDB opens an in-memory SQLite database with the Reviews schema applied.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := open(context.Background(), "sqlite", testDSN(t), true)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	return db
}
