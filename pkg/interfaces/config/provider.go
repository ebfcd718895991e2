package config

import (
	logconfig "github.com/weisyn/fullrbf/internal/config/log"
	reportconfig "github.com/weisyn/fullrbf/internal/config/report"
)

// Provider 配置提供者接口
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetReport 获取报告生成配置
	GetReport() *reportconfig.ReportOptions
}
