package testsupport

import (
	"testing"
)

func TestNewSQLiteMemoryDBIsolatedPerTest(t *testing.T) {
	var first string

	t.Run("writer", func(t *testing.T) {
		db := NewSQLiteMemoryDB(t)
		if _, err := db.Exec(`CREATE TABLE pages (slug TEXT)`); err != nil {
			t.Fatalf("create table: %v", err)
		}
		if _, err := db.Exec(`INSERT INTO pages (slug) VALUES ('faq')`); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if err := db.QueryRow(`SELECT slug FROM pages`).Scan(&first); err != nil {
			t.Fatalf("select: %v", err)
		}
	})
	if first != "faq" {
		t.Fatalf("expected stored slug, got %q", first)
	}

	t.Run("reader", func(t *testing.T) {
		db := NewSQLiteMemoryDB(t)
		var count int
		err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'pages'`).Scan(&count)
		if err != nil {
			t.Fatalf("query schema: %v", err)
		}
		if count != 0 {
			t.Fatal("expected a fresh database without the writer's table")
		}
	})
}
