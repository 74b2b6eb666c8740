package di

import (
	"github.com/polkiloo/gobank/internal/adapter/google"
	"github.com/polkiloo/gobank/internal/app"
	"github.com/polkiloo/gobank/internal/config"
	"github.com/polkiloo/gobank/internal/logger"
	"github.com/polkiloo/gobank/internal/pkg/auth"
	"github.com/polkiloo/gobank/internal/server/http/handlers"
	"github.com/polkiloo/gobank/internal/server/http/router"
	"github.com/polkiloo/gobank/internal/storage/postgres"
	"github.com/polkiloo/gobank/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		google.Module,
		usecase.Module,
		fx.Provide(func(f *app.BankFacade) handlers.BankFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
