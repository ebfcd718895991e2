package report

import (
	"bytes"
	"path"
	"path/filepath"
	"strings"
	"time"

	reportconfig "github.com/weisyn/fullrbf/internal/config/report"
	"github.com/weisyn/fullrbf/internal/core/pagination"
	"github.com/weisyn/fullrbf/pkg/interfaces/infrastructure/log"
	reportif "github.com/weisyn/fullrbf/pkg/interfaces/report"
	"github.com/weisyn/fullrbf/pkg/types"
)

// SetResult 一套页面的写出结果
type SetResult struct {
	Subdir  string
	Groups  int // 该页面集合的分组总数
	Dropped int // 超出最大页数未渲染的分组数
	Files   []string
}

// Result 一次构建的结果
type Result struct {
	Main   SetResult
	Mirror *SetResult // 未启用镜像时为 nil
}

// Builder 报告上下文构建器
type Builder struct {
	options   *reportconfig.ReportOptions
	paginator *pagination.Paginator
	renderer  reportif.Renderer
	logger    log.Logger
}

// NewBuilder 创建构建器
func NewBuilder(options *reportconfig.ReportOptions, renderer reportif.Renderer, logger log.Logger) (*Builder, error) {
	paginator, err := pagination.NewPaginator(options.PageSize, options.MaxPages)
	if err != nil {
		return nil, err
	}
	return &Builder{
		options:   options,
		paginator: paginator,
		renderer:  renderer,
		logger:    logger,
	}, nil
}

// Build 渲染并写出全部页面
//
// groups 必须已按时间戳降序排列。generated 为本次运行的生成时间，所有页面共用。
// 任意一页渲染或写入失败都立即返回。
func (b *Builder) Build(writer reportif.Writer, groups []types.ReplacementGroup, generated time.Time) (*Result, error) {
	result := &Result{}

	mirrorHref := ""
	if b.options.MirrorNoOpReturn {
		mirrorHref = path.Join(b.options.MirrorSubdir, pagination.IndexFile)
	}

	main, err := b.writeSet(writer, "", groups, generated, false, mirrorHref)
	if err != nil {
		return nil, err
	}
	result.Main = *main

	if !b.options.MirrorNoOpReturn {
		return result, nil
	}

	mirror, err := b.writeSet(writer, b.options.MirrorSubdir, WithoutOpReturn(groups), generated, true, backLink(b.options.MirrorSubdir))
	if err != nil {
		return nil, err
	}
	result.Mirror = mirror
	return result, nil
}

// writeSet 分页、渲染并写出一套页面
func (b *Builder) writeSet(writer reportif.Writer, subdir string, groups []types.ReplacementGroup,
	generated time.Time, mirror bool, mirrorHref string) (*SetResult, error) {
	pages := b.paginator.Paginate(groups)
	set := &SetResult{
		Subdir:  subdir,
		Groups:  len(groups),
		Dropped: b.paginator.Dropped(len(groups)),
		Files:   make([]string, 0, len(pages)),
	}

	if set.Dropped > 0 {
		b.logger.Warnf("分组数 %d 超出 %d 页的容量，%d 个较早的分组不会被渲染",
			len(groups), len(pages), set.Dropped)
	}

	var buf bytes.Buffer
	for _, page := range pages {
		view := NewSiteView(page, len(groups), generated)
		view.Title = b.options.SiteTitle
		view.BaseURL = b.options.BaseURL
		view.SignalingRule = b.options.SignalingRule
		view.Mirror = mirror
		view.MirrorHref = mirrorHref

		buf.Reset()
		if err := b.renderer.Render(&buf, view); err != nil {
			return nil, &types.RenderError{Page: page.Index, Err: err}
		}

		file, err := writer.WriteFile(subdir, pagination.FileName(page.Index), buf.Bytes())
		if err != nil {
			return nil, err
		}
		b.logger.Debugf("已写出第 %d 页（%d 个分组）: %s", page.Index, len(page.Groups), file)
		set.Files = append(set.Files, file)
	}

	return set, nil
}

// WithoutOpReturn 过滤掉任意一笔交易带 OP_RETURN 输出的分组，保持原有顺序
func WithoutOpReturn(groups []types.ReplacementGroup) []types.ReplacementGroup {
	filtered := make([]types.ReplacementGroup, 0, len(groups))
	for i := range groups {
		if !groups[i].HasOpReturn() {
			filtered = append(filtered, groups[i])
		}
	}
	return filtered
}

// backLink 从镜像目录返回主页面首页的相对链接
func backLink(subdir string) string {
	depth := 0
	for _, part := range strings.Split(path.Clean(filepath.ToSlash(subdir)), "/") {
		if part != "" && part != "." && part != ".." {
			depth++
		}
	}
	return strings.Repeat("../", depth) + pagination.IndexFile
}
