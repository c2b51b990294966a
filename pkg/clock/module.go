package clock

import (
	"go.uber.org/fx"

	"github.com/tiffinly/dabba/pkg/config"
)

func fromConfig(cfg *config.Config) (Clock, error) {
	return New(cfg.Timezone)
}

var Module = fx.Options(
	fx.Provide(fromConfig),
)
