package components

import (
	"qomo-drops/internal/domain/drop"
	"qomo-drops/internal/pkg/clock"
	"qomo-drops/internal/pkg/config"
	"qomo-drops/internal/usecase/commands"
	"qomo-drops/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) drop.Engine {
		return drop.NewEngine(cfg.Drop.LockDuration)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewDropCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewDropQueries,
	),
)
