package components

import (
	"carshare-booking/internal/infra/db"
	"carshare-booking/internal/infra/readstore"
	"carshare-booking/internal/infra/repository"
	"carshare-booking/internal/infra/uow"
	"carshare-booking/internal/pkg/config"
	"carshare-booking/internal/usecase/commands"
	"carshare-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			NewTxRunner,
			fx.As(new(commands.TxRunner)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewBookingRepository(cfg config.Config) *repository.BookingRepository {
	return repository.NewBookingRepository(cfg.Booking.LockTimeout)
}

func NewTxRunner(pool *pgxpool.Pool, cfg config.Config) *uow.PgxTxRunner {
	return uow.NewPgxTxRunner(pool, cfg.Booking.TxMaxRetries)
}
