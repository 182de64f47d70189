package repository

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/models"
)

func migrationsPath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate test file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations", "001_init_maps.sql")
}

func newRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "maps.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	if err := repo.Init(context.Background(), migrationsPath(t)); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return repo
}

func sampleMap(t *testing.T, seed int64) *models.Map {
	t.Helper()

	m := &models.Map{Seed: seed, Params: models.DefaultParams()}
	m.Params.Seed = seed
	m.AddRoom(models.NewRoom(geometry.Pt(0, 0), 20, 20))
	m.AddRoom(models.NewRoom(geometry.Pt(100, 0), 20, 20))
	m.AddRoom(models.NewIntersection(geometry.Pt(50, 50), 1))
	_, err := m.AddCorridor(models.NewCorridor(
		[]geometry.Point{geometry.Pt(10, 0), geometry.Pt(90, 0)},
		[2]int{0, 1},
		[2]geometry.Side{geometry.East, geometry.West},
	))
	if err != nil {
		t.Fatalf("AddCorridor: %v", err)
	}
	return m
}

func TestSaveGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	m := sampleMap(t, 42)
	if err := repo.Save(ctx, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if m.ID == "" || m.CreatedAt.IsZero() {
		t.Fatalf("Save must assign id and time, got %q %v", m.ID, m.CreatedAt)
	}

	got, err := repo.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Seed != 42 || got.Params != m.Params {
		t.Fatalf("params mismatch: %+v", got)
	}
	if len(got.Rooms) != 3 || len(got.Corridors) != 1 {
		t.Fatalf("model mismatch: %d rooms %d corridors", len(got.Rooms), len(got.Corridors))
	}
	if got.Corridors[0].JoinSides != m.Corridors[0].JoinSides {
		t.Fatalf("sides mismatch: %v", got.Corridors[0].JoinSides)
	}
	if err := got.CheckAdjacency(); err != nil {
		t.Fatalf("adjacency after load: %v", err)
	}
	if !got.CreatedAt.Equal(m.CreatedAt) {
		t.Fatalf("created_at %v, want %v", got.CreatedAt, m.CreatedAt)
	}
}

func TestSaveUpdates(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	m := sampleMap(t, 1)
	if err := repo.Save(ctx, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	m.Seed = 2
	m.AddRoom(models.NewRoom(geometry.Pt(0, 200), 20, 20))
	if err := repo.Save(ctx, m); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Seed != 2 || list[0].Rooms != 4 {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestList(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := int64(0); i < 3; i++ {
		m := sampleMap(t, i)
		m.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := repo.Save(ctx, m); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	list, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d maps, want 3", len(list))
	}
	for i, s := range list {
		if s.Seed != int64(2-i) {
			t.Errorf("position %d: seed %d, want %d", i, s.Seed, 2-i)
		}
		if s.Rooms != 3 || s.Corridors != 1 || s.Intersections != 1 {
			t.Errorf("position %d: counts %+v", i, s)
		}
	}
}

func TestNotFound(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	m := sampleMap(t, 5)
	if err := repo.Save(ctx, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestInitMissingMigration(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "maps.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()

	if err := New(db).Init(context.Background(), filepath.Join(t.TempDir(), "none.sql")); err == nil {
		t.Fatal("expected error for missing migration file")
	}
}
