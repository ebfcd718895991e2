package report

import (
	"go.uber.org/fx"

	reportconfig "github.com/weisyn/fullrbf/internal/config/report"
	logimpl "github.com/weisyn/fullrbf/internal/core/infrastructure/log"
	"github.com/weisyn/fullrbf/pkg/interfaces/infrastructure/log"
	reportif "github.com/weisyn/fullrbf/pkg/interfaces/report"
)

// ModuleParams 报告模块依赖
type ModuleParams struct {
	fx.In

	Options *reportconfig.ReportOptions
	Logger  log.Logger
}

// Module 返回报告模块
func Module() fx.Option {
	return fx.Module("report",
		fx.Provide(
			func() (reportif.Renderer, error) {
				return NewHTMLRenderer()
			},
			func(params ModuleParams, renderer reportif.Renderer) (*Builder, error) {
				return NewBuilder(params.Options, renderer, logimpl.NewModuleLogger(params.Logger, "report"))
			},
		),
	)
}
