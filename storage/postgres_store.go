package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"bikeshare-explorer/models"
	"bikeshare-explorer/utils"
)

const (
	tripColumns   = 10
	tripBatchSize = 500
)

// PostgresStore persists datasets to PostgreSQL and serves them back in load order.
type PostgresStore struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresStore opens a connection to PostgreSQL, retrying the initial ping
// with retry, runs schema migrations, and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, retry *utils.RetryConfig, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db, logger: logger}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS trip_sources (
			city           TEXT        PRIMARY KEY,
			has_gender     BOOLEAN     NOT NULL,
			has_birth_year BOOLEAN     NOT NULL,
			loaded_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS trips (
			city          TEXT             NOT NULL REFERENCES trip_sources(city) ON DELETE CASCADE,
			position      INTEGER          NOT NULL,
			start_time    TIMESTAMP        NOT NULL,
			end_time      TIMESTAMP        NOT NULL,
			duration      DOUBLE PRECISION NOT NULL,
			start_station TEXT             NOT NULL DEFAULT '',
			end_station   TEXT             NOT NULL DEFAULT '',
			user_type     TEXT             NOT NULL DEFAULT '',
			gender        TEXT             NOT NULL DEFAULT '',
			birth_year    INTEGER          NOT NULL DEFAULT 0,
			PRIMARY KEY (city, position)
		);

		CREATE INDEX IF NOT EXISTS idx_trips_city_start ON trips(city, start_time);
	`)
	return err
}

// Write replaces the stored rows for the dataset's city in a single transaction.
func (ps *PostgresStore) Write(ctx context.Context, ds *models.Dataset) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_sources WHERE city = $1`, string(ds.City)); err != nil {
		return fmt.Errorf("postgres: clear %s: %w", ds.City, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO trip_sources (city, has_gender, has_birth_year) VALUES ($1, $2, $3)`,
		string(ds.City), ds.Schema.HasGender, ds.Schema.HasBirthYear,
	); err != nil {
		return fmt.Errorf("postgres: insert source: %w", err)
	}

	for i := 0; i < len(ds.Records); i += tripBatchSize {
		end := i + tripBatchSize
		if end > len(ds.Records) {
			end = len(ds.Records)
		}
		if err := insertTripBatch(ctx, tx, ds.City, i, ds.Records[i:end]); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	ps.logger.Info("[postgres] Stored %d trips for %s", ds.Len(), ds.City.Title())
	return nil
}

func insertTripBatch(ctx context.Context, tx *sql.Tx, city models.City, offset int, batch []models.TripRecord) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*tripColumns)

	for idx, r := range batch {
		placeholders := make([]string, tripColumns)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", idx*tripColumns+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			string(city), offset+idx, r.StartTime, r.EndTime, r.Duration,
			r.StartStation, r.EndStation, r.UserType, r.Gender, r.BirthYear)
	}

	query := fmt.Sprintf(`
		INSERT INTO trips (city, position, start_time, end_time, duration,
			start_station, end_station, user_type, gender, birth_year)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := tx.ExecContext(ctx, query, valueArgs...)
	return err
}

// Load returns the stored dataset for city. Cities never written report
// models.ErrDataSourceUnavailable.
func (ps *PostgresStore) Load(ctx context.Context, city models.City) (*models.Dataset, error) {
	ds := &models.Dataset{City: city}

	err := ps.db.QueryRowContext(ctx,
		`SELECT has_gender, has_birth_year FROM trip_sources WHERE city = $1`, string(city),
	).Scan(&ds.Schema.HasGender, &ds.Schema.HasBirthYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("postgres: %w: %s not loaded", models.ErrDataSourceUnavailable, city)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: %w: schema: %w", models.ErrDataSourceUnavailable, err)
	}

	rows, err := ps.db.QueryContext(ctx, `
		SELECT start_time, end_time, duration, start_station, end_station,
		       user_type, gender, birth_year
		FROM trips
		WHERE city = $1
		ORDER BY position
	`, string(city))
	if err != nil {
		return nil, fmt.Errorf("postgres: %w: fetch: %w", models.ErrDataSourceUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.TripRecord
		if err := rows.Scan(
			&r.StartTime, &r.EndTime, &r.Duration, &r.StartStation, &r.EndStation,
			&r.UserType, &r.Gender, &r.BirthYear,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		r.StartTime = r.StartTime.UTC()
		r.EndTime = r.EndTime.UTC()
		r.Derive()
		ds.Records = append(ds.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows: %w", err)
	}

	ps.logger.Debug("[postgres] Loaded %d trips for %s", ds.Len(), city.Title())
	return ds, nil
}

// Close releases the connection pool.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
