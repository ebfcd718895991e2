// Package app 组装各模块并执行一次报告生成
package app

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/weisyn/fullrbf/internal/config"
	"github.com/weisyn/fullrbf/internal/core/infrastructure/clock"
	"github.com/weisyn/fullrbf/internal/core/infrastructure/log"
	"github.com/weisyn/fullrbf/internal/core/infrastructure/metrics"
	"github.com/weisyn/fullrbf/internal/core/report"
	configif "github.com/weisyn/fullrbf/pkg/interfaces/config"
	logif "github.com/weisyn/fullrbf/pkg/interfaces/infrastructure/log"
)

// App 完成依赖注入后的应用
type App struct {
	Pipeline *Pipeline
	Logger   logif.Logger
}

// New 加载配置并构建全部模块
//
// 只构建依赖图，不启动 fx 生命周期。
func New(opts ...Option) (*App, error) {
	o := newOptions(opts...)
	if err := o.load(); err != nil {
		return nil, err
	}

	a := &App{}
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() configif.AppOptions { return o }),

		config.Module(),
		log.Module(),
		clock.Module(),
		metrics.Module(),
		report.Module(),

		fx.Provide(NewPipeline),
		fx.Populate(&a.Pipeline, &a.Logger),
	)
	if err := fxApp.Err(); err != nil {
		return nil, fmt.Errorf("初始化应用失败: %w", err)
	}
	return a, nil
}

// Run 执行一次报告生成
func (a *App) Run(input, outDir string) (*Result, error) {
	defer a.Logger.Sync()
	return a.Pipeline.Run(input, outDir)
}
