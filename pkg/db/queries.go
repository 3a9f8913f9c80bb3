package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"url-admin/pkg/models"
	"url-admin/pkg/services"
	"url-admin/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ services.URLStore = (*DB)(nil)

// ListURLs returns all records in insertion order
func (db *DB) ListURLs(ctx context.Context) ([]models.URLRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id::text, url, active
		 FROM urls
		 ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query urls: %w", err)
	}
	defer rows.Close()

	records := []models.URLRecord{}
	for rows.Next() {
		var rec models.URLRecord
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Active); err != nil {
			return nil, fmt.Errorf("failed to scan url: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CreateURL validates and stores a new record
func (db *DB) CreateURL(ctx context.Context, create models.URLCreate) (*models.URLRecord, error) {
	url := strings.TrimSpace(create.URL)
	if !utils.IsHTTPURL(url) {
		return nil, services.ErrInvalidURL
	}

	var rec models.URLRecord
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO urls (id, url, active)
		 VALUES ($1, $2, $3)
		 RETURNING id::text, url, active`,
		uuid.NewString(), url, create.Active,
	).Scan(&rec.ID, &rec.URL, &rec.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to create url: %w", err)
	}

	return &rec, nil
}

// UpdateURL applies the non-nil fields of update
func (db *DB) UpdateURL(ctx context.Context, id string, update models.URLUpdate) (*models.URLRecord, error) {
	if update.URL != nil && !utils.IsHTTPURL(strings.TrimSpace(*update.URL)) {
		return nil, services.ErrInvalidURL
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, services.ErrURLNotFound
	}

	query, args := buildUpdate(id, update)

	var rec models.URLRecord
	err := db.Pool.QueryRow(ctx, query, args...).Scan(&rec.ID, &rec.URL, &rec.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, services.ErrURLNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update url: %w", err)
	}

	return &rec, nil
}

// buildUpdate builds a dynamic update query based on provided fields
func buildUpdate(id string, update models.URLUpdate) (string, []interface{}) {
	query := `UPDATE urls SET updated_at = NOW()`
	args := []interface{}{id}
	argPos := 2 // Start at $2 (after $1=id)

	if update.URL != nil {
		query += fmt.Sprintf(", url = $%d", argPos)
		args = append(args, strings.TrimSpace(*update.URL))
		argPos++
	}
	if update.Active != nil {
		query += fmt.Sprintf(", active = $%d", argPos)
		args = append(args, *update.Active)
	}

	query += ` WHERE id = $1 RETURNING id::text, url, active`
	return query, args
}

// DeleteURL removes a record
func (db *DB) DeleteURL(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return services.ErrURLNotFound
	}

	tag, err := db.Pool.Exec(ctx, `DELETE FROM urls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return services.ErrURLNotFound
	}
	return nil
}

// PickActive returns one active record chosen uniformly at random
func (db *DB) PickActive(ctx context.Context) (*models.URLRecord, error) {
	var rec models.URLRecord
	err := db.Pool.QueryRow(ctx,
		`SELECT id::text, url, active
		 FROM urls
		 WHERE active
		 ORDER BY random()
		 LIMIT 1`,
	).Scan(&rec.ID, &rec.URL, &rec.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, services.ErrNoActiveURLs
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick url: %w", err)
	}
	return &rec, nil
}
