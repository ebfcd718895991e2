// Package pagination 将有序分组切分为固定大小的页面
package pagination

import (
	"fmt"

	"github.com/weisyn/fullrbf/pkg/types"
)

// IndexFile 第 0 页的文件名
const IndexFile = "index.html"

// Paginator 分页器
type Paginator struct {
	pageSize int
	maxPages int
}

// NewPaginator 创建分页器，pageSize 与 maxPages 必须为正数
func NewPaginator(pageSize, maxPages int) (*Paginator, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("每页分组数必须大于 0，当前为 %d", pageSize)
	}
	if maxPages <= 0 {
		return nil, fmt.Errorf("最大页数必须大于 0，当前为 %d", maxPages)
	}
	return &Paginator{pageSize: pageSize, maxPages: maxPages}, nil
}

// PageCount 返回 n 个分组对应的页数：min(maxPages, n/pageSize + 1)
//
// n 恰好是 pageSize 的整数倍时最后一页为空页。
func (p *Paginator) PageCount(n int) int {
	count := n/p.pageSize + 1
	if count > p.maxPages {
		count = p.maxPages
	}
	return count
}

// Dropped 超出最大页数而不会被渲染的分组数
func (p *Paginator) Dropped(n int) int {
	capacity := p.maxPages * p.pageSize
	if n <= capacity {
		return 0
	}
	return n - capacity
}

// Paginate 切分分组，每一页都带有完整的导航页码
func (p *Paginator) Paginate(groups []types.ReplacementGroup) []types.Page {
	count := p.PageCount(len(groups))

	nav := types.Navigation{Pages: make([]int, count)}
	for i := range nav.Pages {
		nav.Pages[i] = i
	}

	pages := make([]types.Page, 0, count)
	for i := 0; i < count; i++ {
		start := i * p.pageSize
		end := start + p.pageSize
		if start > len(groups) {
			start = len(groups)
		}
		if end > len(groups) {
			end = len(groups)
		}
		pages = append(pages, types.Page{
			Index:      i,
			Groups:     groups[start:end],
			Navigation: nav,
		})
	}
	return pages
}

// FileName 返回页面文件名：第 0 页为 index.html，其余为 page_N.html
func FileName(page int) string {
	if page == 0 {
		return IndexFile
	}
	return fmt.Sprintf("page_%d.html", page)
}
