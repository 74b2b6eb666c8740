package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gobank/internal/server/http/handlers"
	"github.com/polkiloo/gobank/internal/server/http/middleware"
	"github.com/polkiloo/gobank/internal/server/http/views"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.BankFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.SetHTMLTemplate(views.Templates())

	authHandler := handlers.NewAuthHandler(facade, logger)
	googleHandler := handlers.NewGoogleHandler(facade, logger)
	bankHandler := handlers.NewBankHandler(facade, logger)

	engine.GET("/", authHandler.HomePage)
	engine.GET("/register", authHandler.RegisterPage)
	engine.POST("/register", authHandler.Register)
	engine.GET("/login", authHandler.LoginPage)
	engine.POST("/login", authHandler.Login)
	engine.GET("/auth/google", googleHandler.Begin)
	engine.GET("/auth/google/callback", googleHandler.Callback)

	authed := engine.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/logout", authHandler.Logout)
	authed.GET("/bank", bankHandler.Landing)
	authed.POST("/addMoney", bankHandler.Deposit)
	authed.POST("/sendMoney", bankHandler.Transfer)

	return engine
}
