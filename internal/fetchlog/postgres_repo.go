package fetchlog

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) (string, error) {
	const sql = `
		INSERT INTO fetch_runs (started_at, status, subject, requested_limit)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var id string
	err := r.db.QueryRow(ctx, sql, run.StartedAt, run.Status, run.Subject, run.RequestedLimit).Scan(&id)
	return id, err
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE fetch_runs SET
			finished_at = $1,
			status = $2,
			records_fetched = $3,
			error = $4
		WHERE id = $5`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db.Exec(ctx, sql, run.FinishedAt, run.Status, run.RecordsFetched, run.Error, run.ID)
	return err
}

func (r *PostgresRepo) LatestRuns(ctx context.Context, limit int) ([]Run, error) {
	const sql = `
		SELECT id, started_at, finished_at, status, subject, requested_limit, records_fetched, error
		FROM fetch_runs
		ORDER BY started_at DESC
		LIMIT $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.StartedAt, &run.FinishedAt, &run.Status, &run.Subject,
			&run.RequestedLimit, &run.RecordsFetched, &run.Error,
		); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
