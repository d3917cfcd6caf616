package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"findex/internal/database"
)

func newTestDB(t *testing.T) (*database.Database, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+database.DBSuffix)
	db, err := database.New(context.Background(), path)
	if err != nil {
		t.Fatalf("creating database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, path
}

func TestSanitizeCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"vacuum", "vacuum"},
		{"my-cmd_2", "my-cmd_2"},
		{"bad;rm -rf", "bad_rm_-rf"},
		{"new\nline", "new_line"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeCommand(tt.in); got != tt.want {
			t.Errorf("sanitizeCommand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDiscoverDatabasesExplicitFlag(t *testing.T) {
	_, path := newTestDB(t)

	got := discoverDatabases(path)
	if len(got) != 1 || got[0] != path {
		t.Errorf("discoverDatabases(%q) = %v, want [%s]", path, got, path)
	}
}

func TestDiscoverDatabasesFromEnv(t *testing.T) {
	_, path := newTestDB(t)
	t.Setenv("DATABASE_DIR", filepath.Dir(path))

	got := discoverDatabases("")
	if len(got) != 1 || got[0] != path {
		t.Errorf("discoverDatabases(\"\") = %v, want [%s]", got, path)
	}
}

func TestVacuum(t *testing.T) {
	db, path := newTestDB(t)

	if err := db.UpsertBatch([]database.FileRecord{{Path: "/a/b.txt", Name: "b.txt"}}); err != nil {
		t.Fatalf("seeding record: %v", err)
	}
	if !vacuum(db, path) {
		t.Error("vacuum returned false for a healthy database")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file missing after vacuum: %v", err)
	}
}

func TestShowStatus(t *testing.T) {
	db, path := newTestDB(t)
	ctx := context.Background()

	if err := db.SetMeta(ctx, "last_indexed", "2026-08-30T00:00:00Z"); err != nil {
		t.Fatalf("setting meta: %v", err)
	}
	if !showStatus(ctx, db, path) {
		t.Error("showStatus returned false for a healthy database")
	}
}

func TestShowRecord(t *testing.T) {
	db, path := newTestDB(t)
	ctx := context.Background()

	mtime := 1700000000.5
	size := int64(42)
	err := db.UpsertBatch([]database.FileRecord{
		{Path: "/a/b.txt", Name: "b.txt", MTime: &mtime, Size: &size},
	})
	if err != nil {
		t.Fatalf("seeding record: %v", err)
	}

	if !showRecord(ctx, db, path, "/a/b.txt") {
		t.Error("showRecord returned false for an existing record")
	}
	if !showRecord(ctx, db, path, "/no/such/file") {
		t.Error("showRecord returned false for a missing record (should report absent)")
	}
}

func TestShowMeta(t *testing.T) {
	db, path := newTestDB(t)
	ctx := context.Background()

	if err := db.SetMeta(ctx, "index_duration", "1.5s"); err != nil {
		t.Fatalf("setting meta: %v", err)
	}
	if !showMeta(ctx, db, path, "index_duration") {
		t.Error("showMeta returned false for an existing key")
	}
	if !showMeta(ctx, db, path, "no-such-key") {
		t.Error("showMeta returned false for a missing key (should report unset)")
	}
}
