package bootstrap

import (
	"qomo-drops/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	SessionModule,
	components.StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
