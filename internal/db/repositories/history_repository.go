package repositories

import (
	"context"

	"skycast/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// HistoryRepository is the append-only store of past prediction queries.
// ListAll returns records in insertion order.
type HistoryRepository interface {
	Insert(ctx context.Context, record *entities.PastQuery) error
	ListAll(ctx context.Context) ([]entities.PastQuery, error)
	Ping(ctx context.Context) error
}

// PostgresHistoryRepository is the sqlx-backed production store.
type PostgresHistoryRepository struct {
	db *sqlx.DB
}

var _ HistoryRepository = (*PostgresHistoryRepository)(nil)

func NewPostgresHistoryRepository(db *sqlx.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db}
}

// EnsureSchema creates the past_queries table if it does not exist yet.
func (r *PostgresHistoryRepository) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS past_queries (
			id BIGSERIAL PRIMARY KEY,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			flight_date TEXT NOT NULL,
			airline TEXT NOT NULL DEFAULT '',
			flight_number TEXT NOT NULL DEFAULT '',
			depart_time TEXT NOT NULL DEFAULT '',
			arrival_time TEXT NOT NULL DEFAULT '',
			taxi_out DOUBLE PRECISION NOT NULL DEFAULT 0,
			taxi_in DOUBLE PRECISION NOT NULL DEFAULT 0,
			wheels_on TEXT NOT NULL DEFAULT '',
			wheels_off TEXT NOT NULL DEFAULT '',
			weather_adjusted BOOLEAN NOT NULL DEFAULT FALSE,
			prediction DOUBLE PRECISION NOT NULL,
			prediction_source TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
	`
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresHistoryRepository) Insert(ctx context.Context, record *entities.PastQuery) error {
	query := `
		INSERT INTO past_queries (
			origin,
			destination,
			flight_date,
			airline,
			flight_number,
			depart_time,
			arrival_time,
			taxi_out,
			taxi_in,
			wheels_on,
			wheels_off,
			weather_adjusted,
			prediction,
			prediction_source,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id;
	`

	return r.db.QueryRowxContext(ctx, query,
		record.Origin,
		record.Destination,
		record.FlightDate,
		record.Airline,
		record.FlightNumber,
		record.DepartTime,
		record.ArrivalTime,
		record.TaxiOut,
		record.TaxiIn,
		record.WheelsOn,
		record.WheelsOff,
		record.WeatherAdjusted,
		record.Prediction,
		record.PredictionSource,
		record.CreatedAt,
	).Scan(&record.ID)
}

func (r *PostgresHistoryRepository) ListAll(ctx context.Context) ([]entities.PastQuery, error) {
	records := []entities.PastQuery{}
	err := r.db.SelectContext(ctx, &records, `SELECT * FROM past_queries ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresHistoryRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
