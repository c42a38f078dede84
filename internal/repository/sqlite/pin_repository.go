package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pinmap/internal/domain"
	"pinmap/internal/repository"
)

const createPinsTable = `
CREATE TABLE IF NOT EXISTS pins (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	longitude REAL NOT NULL,
	latitude REAL NOT NULL,
	created_at DATETIME NOT NULL
);
`

type PinRepository struct {
	db *sql.DB
}

func NewPinRepository(db *sql.DB) repository.PinRepository {
	return &PinRepository{db: db}
}

func (r *PinRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPinsTable); err != nil {
		return fmt.Errorf("create pins table: %w", err)
	}
	return nil
}

func (r *PinRepository) Create(ctx context.Context, pin *domain.Pin) (int64, error) {
	// second precision, matches what the export renders
	pin.CreatedAt = time.Now().UTC().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO pins (title, description, longitude, latitude, created_at)
VALUES (?, ?, ?, ?, ?)`,
		pin.Title,
		pin.Description,
		pin.Longitude,
		pin.Latitude,
		pin.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert pin: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("pin last insert id: %w", err)
	}
	pin.ID = id
	return id, nil
}

func (r *PinRepository) List(ctx context.Context, order repository.Order) ([]domain.Pin, error) {
	query := `
SELECT id, title, description, longitude, latitude, created_at
FROM pins
ORDER BY id DESC`
	if order == repository.OrderAscending {
		query = `
SELECT id, title, description, longitude, latitude, created_at
FROM pins
ORDER BY id ASC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pins: %w", err)
	}
	defer rows.Close()

	var pins []domain.Pin
	for rows.Next() {
		var pin domain.Pin
		if err := rows.Scan(
			&pin.ID,
			&pin.Title,
			&pin.Description,
			&pin.Longitude,
			&pin.Latitude,
			&pin.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pin: %w", err)
		}
		pins = append(pins, pin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pins: %w", err)
	}
	return pins, nil
}
