package matching

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the matching engine for the fx application, grounded
// in the teacher's internal/orders/matching/orders_matching_module.go.
// It does not provide *EngineConfig: the application wires that from its
// own configuration (see cmd/main.go), falling back to
// DefaultEngineConfig only when nothing else supplies one.
var Module = fx.Options(
	fx.Provide(
		NewEngineForFx,
	),
)

// EngineParams follows the teacher's HandlerParams pattern
// (internal/orders/handler.go): an fx.In struct with an optional field
// so the engine constructs cleanly even when no Metrics collector is
// wired, e.g. in tests.
type EngineParams struct {
	fx.In

	Logger  *zap.Logger
	Config  *EngineConfig `optional:"true"`
	Metrics Metrics       `optional:"true"`
}

// NewEngineForFx adapts NewEngine to fx's dependency graph.
func NewEngineForFx(p EngineParams) *Engine {
	return NewEngine(p.Logger, p.Config, p.Metrics)
}
