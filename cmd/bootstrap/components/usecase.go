package components

import (
	"carshare-booking/internal/pkg/clock"
	"carshare-booking/internal/usecase"
	"carshare-booking/internal/usecase/commands"
	"carshare-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewTokenValidator,
		commands.NewAvailabilityValidator,
		commands.NewBookingCommands,
		queries.NewBookingQueries,
		queries.NewCalendarQueries,
	),
)
