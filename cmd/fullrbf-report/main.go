// fullrbf-report 读取替换事件日志，生成 full-RBF 替换的静态 HTML 报告
//
// 用法：
//
//	fullrbf-report <events.csv> <html output dir>
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			cmd.SetOut(os.Stdout)
			_ = cmd.Usage()
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
