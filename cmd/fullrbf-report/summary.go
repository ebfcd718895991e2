package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	"github.com/weisyn/fullrbf/internal/app"
)

// printSummary 输出运行汇总：终端中使用表格，否则输出单行文本
func printSummary(out io.Writer, result *app.Result) {
	s := result.Stats

	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(out, "wrote %d pages (%d groups from %d events) to %s\n",
			len(result.Files), s.Groups, s.Events, result.OutputDir)
		return
	}

	data := pterm.TableData{
		{"项目", "数量"},
		{"事件", humanize.Comma(int64(s.Events))},
		{"full-RBF", humanize.Comma(int64(s.FullRBF))},
		{"opt-in（已排除）", humanize.Comma(int64(s.OptIn))},
		{"无冲突（已排除）", humanize.Comma(int64(s.NoConflict))},
		{"分组", humanize.Comma(int64(s.Groups))},
		{"页面", humanize.Comma(int64(s.Pages))},
	}
	if s.Dropped > 0 {
		data = append(data, []string{"未渲染分组", humanize.Comma(int64(s.Dropped))})
	}
	if s.MirrorPages > 0 {
		data = append(data, []string{"镜像页面", humanize.Comma(int64(s.MirrorPages))})
	}
	if s.TxIDMismatches > 0 {
		data = append(data, []string{"txid 不一致", humanize.Comma(int64(s.TxIDMismatches))})
	}

	// 终端输出即标准输出，pterm 默认写入 stdout
	pterm.DefaultSection.Println("full-RBF 报告")
	_ = pterm.DefaultTable.WithHasHeader().WithHeaderRowSeparator("-").WithData(data).Render()
	pterm.Printfln("输出目录: %s  生成时间: %s  run_id: %s",
		result.OutputDir, result.Generated.UTC().Format("2006-01-02 15:04:05 MST"), result.RunID)
	if result.MetricsFile != "" {
		pterm.Printfln("指标文件: %s", result.MetricsFile)
	}
}
