package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pinmap/internal/domain"
	"pinmap/internal/repository"
)

const createVisitsTable = `
CREATE TABLE IF NOT EXISTS visits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	visitor_hash TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	age INTEGER NOT NULL DEFAULT 0,
	date TEXT NOT NULL DEFAULT '',
	device_hint TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
`

type VisitRepository struct {
	db *sql.DB
}

func NewVisitRepository(db *sql.DB) repository.VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createVisitsTable); err != nil {
		return fmt.Errorf("create visits table: %w", err)
	}
	return nil
}

func (r *VisitRepository) Create(ctx context.Context, visit *domain.Visit) (int64, error) {
	visit.CreatedAt = time.Now().UTC().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO visits (visitor_hash, name, age, date, device_hint, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		visit.VisitorHash,
		visit.Name,
		visit.Age,
		visit.Date,
		visit.DeviceHint,
		visit.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert visit: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("visit last insert id: %w", err)
	}
	visit.ID = id
	return id, nil
}

func (r *VisitRepository) List(ctx context.Context, order repository.Order) ([]domain.Visit, error) {
	dir := "DESC"
	if order == repository.OrderAscending {
		dir = "ASC"
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
SELECT id, visitor_hash, name, age, date, device_hint, created_at
FROM visits
ORDER BY id %s`, dir))
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []domain.Visit
	for rows.Next() {
		var visit domain.Visit
		if err := rows.Scan(
			&visit.ID,
			&visit.VisitorHash,
			&visit.Name,
			&visit.Age,
			&visit.Date,
			&visit.DeviceHint,
			&visit.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, visit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visits: %w", err)
	}
	return visits, nil
}
