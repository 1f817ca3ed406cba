package components

import (
	"collabflow/internal/infra/sweeper"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(sweeper.New),
	fx.Invoke(sweeper.Register),
)
