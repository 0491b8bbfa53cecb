package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/abdoElHodaky/matchcore/internal/api"
	"github.com/abdoElHodaky/matchcore/internal/config"
	"github.com/abdoElHodaky/matchcore/internal/matching"
	"github.com/abdoElHodaky/matchcore/internal/monitoring"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			config.InitLogger,
			newGinEngine,
			newEngineConfig,
		),

		matching.Module,
		monitoring.Module,
		api.Module,

		fx.Invoke(registerSymbols),
		fx.Invoke(runServer),
	)

	app.Run()
}

func newConfig() (*config.Config, error) {
	return config.LoadConfig("")
}

// newGinEngine creates the gin engine, grounded in tradSys's
// cmd/main.go newGinEngine.
func newGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Monitoring.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	return gin.New()
}

// newEngineConfig derives the engine's EngineConfig from the
// application configuration's Engine section.
func newEngineConfig(cfg *config.Config) *matching.EngineConfig {
	return &matching.EngineConfig{TradeChannelBuffer: cfg.Engine.TradeChannelBuffer}
}

// registerSymbols pre-registers the configured tradable symbol set so
// the engine is ready to accept orders as soon as the server starts.
func registerSymbols(cfg *config.Config, engine *matching.Engine) {
	for _, symbol := range cfg.Engine.Symbols {
		engine.RegisterSymbol(symbol)
	}
}

// runServer starts the HTTP server as an fx-managed lifecycle hook,
// grounded in tradSys's gateway.Server start/stop pattern.
func runServer(lc fx.Lifecycle, cfg *config.Config, router *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting matching engine server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("server stopped unexpectedly", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping matching engine server")
			return srv.Shutdown(ctx)
		},
	})
}
