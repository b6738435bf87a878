package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository, for
// deployments that manage the catalog outside the binary.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListSpots retrieves all spots in catalog order.
func (r *PostgresRepository) ListSpots(ctx context.Context) ([]Spot, error) {
	query := `
		SELECT id, name, lat, lon, status, categories, is_bus_stop
		FROM spots
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spots []Spot
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, err
		}
		spots = append(spots, *s)
	}
	return spots, rows.Err()
}

// GetSpot retrieves a single spot by ID.
func (r *PostgresRepository) GetSpot(ctx context.Context, id int) (*Spot, error) {
	query := `
		SELECT id, name, lat, lon, status, categories, is_bus_stop
		FROM spots
		WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	s, err := scanSpot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListCourses retrieves all courses in catalog order.
func (r *PostgresRepository) ListCourses(ctx context.Context) ([]Course, error) {
	query := `
		SELECT id, name, color, spot_ids
		FROM courses
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.SpotIDs); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetCourse retrieves a single course by ID.
func (r *PostgresRepository) GetCourse(ctx context.Context, id string) (*Course, error) {
	query := `
		SELECT id, name, color, spot_ids
		FROM courses
		WHERE id = $1
	`

	var c Course
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Color, &c.SpotIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanSpot(row pgx.Row) (*Spot, error) {
	var (
		s          Spot
		categories []string
	)

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Position.Lat,
		&s.Position.Lon,
		&s.Status,
		&categories,
		&s.IsBusStop,
	)
	if err != nil {
		return nil, err
	}

	s.Categories = make([]Category, 0, len(categories))
	for _, c := range categories {
		s.Categories = append(s.Categories, Category(c))
	}
	return &s, nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
