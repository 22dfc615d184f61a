package components

import (
	"carshare-booking/internal/handler"
	"carshare-booking/internal/handler/api"
	"carshare-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		middleware.NewAuthMiddleware,
		api.NewBookingHandler,
		api.NewCalendarHandler,
	),
	fx.Invoke(handler.NewRouter),
)
