package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/fullrbf/internal/app"
	"github.com/weisyn/fullrbf/internal/app/version"
)

// usageError 位置参数数量错误
type usageError struct {
	got int
}

func (e *usageError) Error() string {
	return fmt.Sprintf("需要 2 个参数，实际为 %d 个", e.got)
}

// rootFlags 命令行标志
type rootFlags struct {
	ConfigFile string
	Quiet      bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "fullrbf-report <events.csv> <html output dir>",
		Short: "生成 full-RBF 替换报告",
		Long: `读取节点记录的交易替换事件日志（CSV），筛选出被替换交易没有声明
BIP-125 可替换的 full-RBF 替换，按替换交易和时间合并后分页输出为静态 HTML：
第 0 页写入 index.html，其余写入 page_N.html。

环境变量：
  FULLRBF_CONFIG              JSON 配置文件路径
  FULLRBF_LOG_LEVEL           日志级别
  FULLRBF_PAGE_SIZE           每页分组数（默认 100）
  FULLRBF_MAX_PAGES           最多页数（默认 10）
  FULLRBF_SIGNALING_RULE      any | all
  FULLRBF_MIRROR_NO_OPRETURN  额外输出不含 OP_RETURN 的页面
  FULLRBF_METRICS_FILE        Prometheus 文本格式指标文件
  SOURCE_DATE_EPOCH           固定页面中的生成时间`,
		Version:       version.GetFullVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return &usageError{got: len(args)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(app.WithConfigFile(flags.ConfigFile))
			if err != nil {
				return err
			}

			result, err := a.Run(args[0], args[1])
			if err != nil {
				a.Logger.Errorf("生成报告失败: %v", err)
				return err
			}

			if !flags.Quiet {
				printSummary(cmd.OutOrStdout(), result)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "JSON 配置文件路径（默认读取 FULLRBF_CONFIG）")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "不输出运行汇总")

	return cmd
}
