package bootstrap

import (
	"qomo-drops/internal/pkg/config"
	"qomo-drops/internal/pkg/session"

	"go.uber.org/fx"
)

var SessionModule = fx.Module("session",
	fx.Provide(
		NewSessionService,
	),
)

func NewSessionService(cfg config.Config) *session.Service {
	return session.NewService(cfg.Session)
}
