// Package report 构建每一页的视图数据，渲染为 HTML 并写入输出目录
package report

import (
	"time"

	"github.com/weisyn/fullrbf/pkg/types"
)

// SiteView 一页报告的完整视图数据
type SiteView struct {
	Title         string
	BaseURL       string
	SignalingRule string

	Page        int
	Groups      []types.ReplacementGroup
	NumGroups   int // 本页分组数
	TotalGroups int // 本页面集合的分组总数（含未渲染部分）
	Navigation  types.Navigation

	Timestamp   int64  // 生成时间（unix 秒），同一次运行的所有页面相同
	GeneratedAt string // 生成时间的 UTC 文本，脚本不可用时显示

	Mirror     bool   // 是否为不含 OP_RETURN 的镜像页面
	MirrorHref string // 指向另一套页面首页的链接，为空不显示
}

// NewSiteView 构建一页的视图数据
func NewSiteView(page types.Page, total int, generated time.Time) *SiteView {
	return &SiteView{
		Page:        page.Index,
		Groups:      page.Groups,
		NumGroups:   len(page.Groups),
		TotalGroups: total,
		Navigation:  page.Navigation,
		Timestamp:   generated.Unix(),
		GeneratedAt: generated.UTC().Format(time.RFC3339),
	}
}
