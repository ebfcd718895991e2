package report

// 报告配置默认值
const (
	// defaultPageSize 每页 100 个替换分组
	defaultPageSize = 100

	// defaultMaxPages 最多 10 页，第 10 页之后的分组不渲染
	defaultMaxPages = 10

	defaultSignalingRule = SignalingRuleAny

	defaultMirrorNoOpReturn = false
	defaultMirrorSubdir     = "no-opreturn"

	defaultMetricsFile = ""
	defaultSiteTitle   = "Recent full-RBF replacements"
	defaultBaseURL     = "/"
)
