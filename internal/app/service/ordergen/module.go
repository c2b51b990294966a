package ordergen

import "go.uber.org/fx"

// Module exposes the order generation engine via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
