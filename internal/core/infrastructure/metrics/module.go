package metrics

import "go.uber.org/fx"

// Module 返回 metrics 模块，每次运行一个独立的 Recorder
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(NewRecorder),
	)
}
