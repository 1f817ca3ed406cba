package components

import (
	"collabflow/internal/handler"
	"collabflow/internal/handler/api"
	"collabflow/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRequestHandler,
		api.NewAvailabilityHandler,
		api.NewTrustHandler,
		api.NewPaymentCallbackHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	requests *api.RequestHandler,
	availability *api.AvailabilityHandler,
	trust *api.TrustHandler,
	callbacks *api.PaymentCallbackHandler,
) handler.Handlers {
	return handler.Handlers{
		Requests:     requests,
		Availability: availability,
		Trust:        trust,
		Callbacks:    callbacks,
	}
}
