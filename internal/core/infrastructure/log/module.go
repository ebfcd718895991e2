package log

import (
	"fmt"

	logconfig "github.com/weisyn/fullrbf/internal/config/log"
	"github.com/weisyn/fullrbf/pkg/interfaces/config"
	logInterface "github.com/weisyn/fullrbf/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// ModuleParams 定义日志模块的依赖参数
type ModuleParams struct {
	fx.In

	Provider config.Provider // 配置提供者
}

// ModuleOutput 定义日志模块的输出结构
type ModuleOutput struct {
	fx.Out

	Logger logInterface.Logger // 日志记录器接口
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 根据配置初始化日志记录器
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger, err := New(logconfig.NewFromProvider(params.Provider))
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("根据用户配置创建日志记录器失败: %w", err)
	}


	return ModuleOutput{Logger: logger}, nil
}

// NewModuleLogger 创建带 module 字段的 logger
//
// 参数：
//   - baseLogger: 基础 logger
//   - module: 模块名称（如 "eventlog", "grouping", "report"）
func NewModuleLogger(baseLogger logInterface.Logger, module string) logInterface.Logger {
	if baseLogger == nil {
		return nil
	}
	return baseLogger.With("module", module)
}
