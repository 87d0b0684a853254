package testsupport

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

var dsnNameReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_")

// NewSQLiteMemoryDB opens a shared-cache in-memory sqlite database named after
// the calling test, so parallel tests never see each other's page tables. The
// database is closed when the test finishes.
func NewSQLiteMemoryDB(tb testing.TB) *sql.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dsnNameReplacer.Replace(tb.Name()))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		tb.Fatalf("open sqlite %s: %v", dsn, err)
	}
	tb.Cleanup(func() { _ = db.Close() })
	return db
}
