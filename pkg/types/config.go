package types

// AppConfig 用户配置文件结构
//
// 所有字段均为指针：nil 表示未设置，使用系统默认值；
// &value 表示用户明确设置，即使是零值也会被采用。
type AppConfig struct {
	// 日志配置 - 对应配置文件中的 log 字段
	Log *UserLogConfig `json:"log,omitempty"`

	// 报告配置 - 对应配置文件中的 report 字段
	Report *UserReportConfig `json:"report,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level     *string `json:"level,omitempty"`      // 日志级别：debug, info, warn, error, fatal
	FilePath  *string `json:"file_path,omitempty"`  // 日志文件路径
	ToConsole *bool   `json:"to_console,omitempty"` // 是否同时输出到控制台

	MaxSize    *int  `json:"max_size,omitempty"`    // 单个日志文件最大大小(MB)
	MaxBackups *int  `json:"max_backups,omitempty"` // 最大备份文件数
	MaxAge     *int  `json:"max_age,omitempty"`     // 日志文件最大保留天数
	Compress   *bool `json:"compress,omitempty"`    // 是否压缩历史日志文件

	EnableCaller     *bool `json:"enable_caller,omitempty"`
	EnableStacktrace *bool `json:"enable_stacktrace,omitempty"`
}

// UserReportConfig 用户报告配置
type UserReportConfig struct {
	PageSize      *int    `json:"page_size,omitempty"`      // 每页分组数
	MaxPages      *int    `json:"max_pages,omitempty"`      // 最多渲染页数
	SignalingRule *string `json:"signaling_rule,omitempty"` // any | all

	// 额外输出一套不含 OP_RETURN 分组的页面
	MirrorNoOpReturn *bool   `json:"mirror_no_opreturn,omitempty"`
	MirrorSubdir     *string `json:"mirror_subdir,omitempty"`

	MetricsFile *string `json:"metrics_file,omitempty"` // Prometheus 文本格式指标输出路径
	SiteTitle   *string `json:"site_title,omitempty"`
	BaseURL     *string `json:"base_url,omitempty"` // 首页链接
}
