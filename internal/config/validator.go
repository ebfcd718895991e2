package config

import (
	"errors"
	"fmt"

	"github.com/weisyn/fullrbf/internal/config/report"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// ValidateReportOptions 验证报告配置
//
// 返回全部验证错误（errors.Join），没有错误时返回 nil。
func ValidateReportOptions(options *report.ReportOptions) error {
	if options == nil {
		return &ValidationError{Field: "report", Message: "报告配置不能为空"}
	}

	var errs []error
	if options.PageSize <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "report.page_size",
			Message: fmt.Sprintf("每页分组数必须大于0，当前为 %d", options.PageSize),
		})
	}
	if options.MaxPages <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "report.max_pages",
			Message: fmt.Sprintf("最大页数必须大于0，当前为 %d", options.MaxPages),
		})
	}
	switch options.SignalingRule {
	case report.SignalingRuleAny, report.SignalingRuleAll:
	default:
		errs = append(errs, &ValidationError{
			Field:   "report.signaling_rule",
			Message: fmt.Sprintf("未知的可替换信号规则 %q，仅支持 any 或 all", options.SignalingRule),
		})
	}
	if options.MirrorNoOpReturn && options.MirrorSubdir == "" {
		errs = append(errs, &ValidationError{
			Field:   "report.mirror_subdir",
			Message: "启用镜像输出时子目录不能为空",
		})
	}

	return errors.Join(errs...)
}
