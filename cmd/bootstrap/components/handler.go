package components

import (
	"qomo-drops/internal/handler"
	"qomo-drops/internal/handler/api"
	"qomo-drops/internal/handler/middleware"
	"qomo-drops/internal/infra/compare"
	"qomo-drops/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		fx.Annotate(
			compare.NewStubService,
			fx.As(new(queries.ComparisonService)),
		),
		api.NewDropHandler,
		middleware.NewViewerMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
