// Package report 提供报告生成配置
package report

import (
	configtypes "github.com/weisyn/fullrbf/pkg/types"
)

// 可替换信号判定规则
const (
	// SignalingRuleAny 任一输入 nSequence < 0xfffffffe 即视为声明可替换（BIP-125）
	SignalingRuleAny = "any"
	// SignalingRuleAll 全部输入都满足时才视为声明可替换
	SignalingRuleAll = "all"
)

// ReportOptions 报告生成配置选项
type ReportOptions struct {
	PageSize      int    `json:"page_size"`      // 每页分组数
	MaxPages      int    `json:"max_pages"`      // 最多渲染页数，超出部分不渲染
	SignalingRule string `json:"signaling_rule"` // any | all

	MirrorNoOpReturn bool   `json:"mirror_no_opreturn"` // 是否额外输出不含 OP_RETURN 分组的页面
	MirrorSubdir     string `json:"mirror_subdir"`      // 镜像页面子目录

	MetricsFile string `json:"metrics_file"` // Prometheus 文本格式指标文件，为空不输出
	SiteTitle   string `json:"site_title"`
	BaseURL     string `json:"base_url"`
}

// Config 报告配置实现
type Config struct {
	options *ReportOptions
}

// New 创建报告配置，userConfig 为 *types.UserReportConfig 或 nil
func New(userConfig *configtypes.UserReportConfig) *Config {
	options := createDefaultReportOptions()
	if userConfig != nil {
		applyUserReportConfig(options, userConfig)
	}
	return &Config{options: options}
}

// createDefaultReportOptions 创建默认报告配置
func createDefaultReportOptions() *ReportOptions {
	return &ReportOptions{
		PageSize:         defaultPageSize,
		MaxPages:         defaultMaxPages,
		SignalingRule:    defaultSignalingRule,
		MirrorNoOpReturn: defaultMirrorNoOpReturn,
		MirrorSubdir:     defaultMirrorSubdir,
		MetricsFile:      defaultMetricsFile,
		SiteTitle:        defaultSiteTitle,
		BaseURL:          defaultBaseURL,
	}
}

// applyUserReportConfig 只覆盖用户明确设置的字段
func applyUserReportConfig(options *ReportOptions, user *configtypes.UserReportConfig) {
	if user.PageSize != nil {
		options.PageSize = *user.PageSize
	}
	if user.MaxPages != nil {
		options.MaxPages = *user.MaxPages
	}
	if user.SignalingRule != nil {
		options.SignalingRule = *user.SignalingRule
	}
	if user.MirrorNoOpReturn != nil {
		options.MirrorNoOpReturn = *user.MirrorNoOpReturn
	}
	if user.MirrorSubdir != nil {
		options.MirrorSubdir = *user.MirrorSubdir
	}
	if user.MetricsFile != nil {
		options.MetricsFile = *user.MetricsFile
	}
	if user.SiteTitle != nil {
		options.SiteTitle = *user.SiteTitle
	}
	if user.BaseURL != nil {
		options.BaseURL = *user.BaseURL
	}
}

// GetOptions 获取完整的报告配置选项
func (c *Config) GetOptions() *ReportOptions {
	return c.options
}
