// Package report 定义报告输出的外部协作者接口
package report

import "io"

// Renderer 将一页的视图数据渲染为 HTML 文本
type Renderer interface {
	Render(w io.Writer, view interface{}) error
}

// Writer 将渲染结果写入输出目录
//
// name 为不带目录的文件名，如 index.html、page_3.html；
// subdir 为空表示写入输出根目录。
type Writer interface {
	WriteFile(subdir, name string, content []byte) (string, error)
}
