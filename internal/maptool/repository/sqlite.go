package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"maptool/internal/maptool/models"
)

// ErrNotFound карты с таким id нет.
var ErrNotFound = errors.New("map not found")

// timeLayout фиксированной ширины, чтобы created_at сортировался как текст.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет миграции.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Ping проверяет соединение с базой.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Save сохраняет карту. Пустой ID заменяется новым uuid, нулевое время
// создания текущим.
func (r *Repository) Save(ctx context.Context, m *models.Map) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	params, err := json.Marshal(m.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	model, err := json.Marshal(m.Model)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO maps (id, seed, params, model, rooms, corridors, intersections, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            seed = excluded.seed,
            params = excluded.params,
            model = excluded.model,
            rooms = excluded.rooms,
            corridors = excluded.corridors,
            intersections = excluded.intersections
    `, m.ID, m.Seed, string(params), string(model),
		len(m.Rooms), len(m.Corridors), m.Intersections(), m.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("save map %s: %w", m.ID, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*models.Map, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, seed, params, model, created_at
        FROM maps
        WHERE id = ?
    `, id)

	var m models.Map
	var params, model, createdAt string
	if err := row.Scan(&m.ID, &m.Seed, &params, &model, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(params), &m.Params); err != nil {
		return nil, fmt.Errorf("decode params of %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(model), &m.Model); err != nil {
		return nil, fmt.Errorf("decode model of %s: %w", id, err)
	}
	m.CreatedAt = parseTime(createdAt)
	return &m, nil
}

// List возвращает сводки карт, новые первыми.
func (r *Repository) List(ctx context.Context) ([]models.MapSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, seed, rooms, corridors, intersections, created_at
        FROM maps
        ORDER BY created_at DESC, id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.MapSummary{}
	for rows.Next() {
		var s models.MapSummary
		var createdAt string
		if err := rows.Scan(&s.ID, &s.Seed, &s.Rooms, &s.Corridors, &s.Intersections, &createdAt); err != nil {
			return nil, err
		}
		s.CreatedAt = parseTime(createdAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete map %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func parseTime(v string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
