package dailymeal

import "go.uber.org/fx"

// Module exposes the daily meal selector via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
