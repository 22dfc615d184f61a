package uow

import (
	"context"

	"carshare-booking/internal/infra/db"
	"carshare-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTxRunner implements commands.TxRunner on a pgx pool, inheriting the
// serialization-failure retry policy of the shared tx manager.
type PgxTxRunner struct {
	pool       *pgxpool.Pool
	maxRetries int
}

func NewPgxTxRunner(pool *pgxpool.Pool, maxRetries int) *PgxTxRunner {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &PgxTxRunner{pool: pool, maxRetries: maxRetries}
}

func (r *PgxTxRunner) Within(ctx context.Context, fn func(tx db.DBTX) error) error {
	_, err := shared.RunInTxWithRetry(ctx, r.pool, r.maxRetries, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, fn(tx)
	})
	return err
}
