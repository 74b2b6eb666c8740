package auth

import (
	"github.com/polkiloo/gobank/internal/config"
	"go.uber.org/fx"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newSessionStrategy),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newSessionStrategy(p strategyParams) SessionStrategy {
	return NewHMACSessionStrategy(p.Config.SessionSecret, Options{TTL: p.Config.SessionTTL})
}
