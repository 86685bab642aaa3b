package bootstrap

import (
	"stayhub/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule loads the process configuration from the environment once and
// shares it with every other module.
var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
)
