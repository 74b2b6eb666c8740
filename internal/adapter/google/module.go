package google

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/gobank/internal/config"
)

// Module exposes the Google OAuth client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewOAuthClient(p.Config.GoogleClientID, p.Config.GoogleClientSecret, p.Config.GoogleCallbackURL, p.Logger)
}
