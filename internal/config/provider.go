package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/weisyn/fullrbf/internal/config/log"
	"github.com/weisyn/fullrbf/internal/config/report"
	"github.com/weisyn/fullrbf/pkg/interfaces/config"
	"github.com/weisyn/fullrbf/pkg/types"
)

// 环境变量覆盖项，优先级高于配置文件
const (
	EnvConfigFile       = "FULLRBF_CONFIG"
	EnvLogLevel         = "FULLRBF_LOG_LEVEL"
	EnvPageSize         = "FULLRBF_PAGE_SIZE"
	EnvMaxPages         = "FULLRBF_MAX_PAGES"
	EnvSignalingRule    = "FULLRBF_SIGNALING_RULE"
	EnvMirrorNoOpReturn = "FULLRBF_MIRROR_NO_OPRETURN"
	EnvMetricsFile      = "FULLRBF_METRICS_FILE"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
	lookupEnv func(string) (string, bool)
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{
		appConfig: appConfig,
		lookupEnv: os.LookupEnv,
	}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil && p.appConfig.Log != nil {
		userLogConfig = p.appConfig.Log
	}

	options := log.New(userLogConfig).GetOptions()
	if level, ok := p.env(EnvLogLevel); ok {
		options.Level = strings.ToLower(level)
	}
	return options
}

// GetReport 获取报告配置
func (p *Provider) GetReport() *report.ReportOptions {
	var userReportConfig *types.UserReportConfig
	if p.appConfig != nil && p.appConfig.Report != nil {
		userReportConfig = p.appConfig.Report
	}

	options := report.New(userReportConfig).GetOptions()
	p.applyReportEnv(options)
	return options
}

// applyReportEnv 应用环境变量覆盖，无法解析的值忽略
func (p *Provider) applyReportEnv(options *report.ReportOptions) {
	if v, ok := p.env(EnvPageSize); ok {
		if n, err := strconv.Atoi(v); err == nil {
			options.PageSize = n
		}
	}
	if v, ok := p.env(EnvMaxPages); ok {
		if n, err := strconv.Atoi(v); err == nil {
			options.MaxPages = n
		}
	}
	if v, ok := p.env(EnvSignalingRule); ok {
		options.SignalingRule = strings.ToLower(v)
	}
	if v, ok := p.env(EnvMirrorNoOpReturn); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			options.MirrorNoOpReturn = b
		}
	}
	if v, ok := p.env(EnvMetricsFile); ok {
		options.MetricsFile = v
	}
}

func (p *Provider) env(key string) (string, bool) {
	v, ok := p.lookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}
