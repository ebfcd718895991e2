package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/weisyn/fullrbf/internal/core/pagination"
)

//go:embed templates/*.html
var templateFS embed.FS

// rootTemplate 页面入口模板名
const rootTemplate = "site"

// HTMLRenderer 基于 html/template 的页面渲染器
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer 解析内嵌模板
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New(rootTemplate).Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("解析页面模板失败: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render 将视图数据渲染为 HTML
func (r *HTMLRenderer) Render(w io.Writer, view interface{}) error {
	return r.tmpl.ExecuteTemplate(w, rootTemplate, view)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"pageFile": pagination.FileName,
		"join":     strings.Join,
		"signed": func(v int64) string {
			return fmt.Sprintf("%+d", v)
		},
		"unixUTC": func(ts uint64) string {
			return time.Unix(int64(ts), 0).UTC().Format(time.RFC3339)
		},
	}
}
