package report

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reportconfig "github.com/weisyn/fullrbf/internal/config/report"
	logimpl "github.com/weisyn/fullrbf/internal/core/infrastructure/log"
	"github.com/weisyn/fullrbf/pkg/types"
)

var generated = time.Unix(1700000000, 0)

func options(pageSize, maxPages int) *reportconfig.ReportOptions {
	opts := reportconfig.New(nil).GetOptions()
	opts.PageSize = pageSize
	opts.MaxPages = maxPages
	return opts
}

func group(ts uint64, id string, opReturn bool) types.ReplacementGroup {
	return types.ReplacementGroup{
		Timestamp: ts,
		Replacement: types.TransactionView{
			TxID: "replacement-" + id, Fee: 1000, VSize: 300, Feerate: "3.33",
			Inputs: []string{"1x P2WPKH"}, Outputs: []string{"1x P2WPKH"},
		},
		Replaced: []types.TransactionView{{
			TxID: "replaced-" + id, Fee: 500, VSize: 200, Feerate: "2.50",
			OpReturn: opReturn, MempoolDuration: "3 minutes",
		}},
		Delta: types.ReplacementDelta{Fee: 500, VSize: 100, Feerate: "+0.83 sat/vByte"},
	}
}

func newBuilder(t *testing.T, opts *reportconfig.ReportOptions) *Builder {
	t.Helper()
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)
	b, err := NewBuilder(opts, renderer, logimpl.NewNop())
	require.NoError(t, err)
	return b
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// TestBuild 测试渲染并写出全部页面
func TestBuild(t *testing.T) {
	dir := t.TempDir()
	b := newBuilder(t, options(2, 10))

	groups := []types.ReplacementGroup{
		group(300, "a", false),
		group(200, "b", false),
		group(100, "c", false),
	}

	result, err := b.Build(NewFileWriter(dir), groups, generated)
	require.NoError(t, err)
	require.Nil(t, result.Mirror)
	assert.Equal(t, 3, result.Main.Groups)
	assert.Zero(t, result.Main.Dropped)
	assert.Equal(t, []string{
		filepath.Join(dir, "index.html"),
		filepath.Join(dir, "page_1.html"),
	}, result.Main.Files)

	raw := readFile(t, filepath.Join(dir, "index.html"))
	// html/template 会把文本中的 + 转义为 &#43;
	assert.Contains(t, raw, "&#43;0.83 sat/vByte")
	index := html.UnescapeString(raw)
	assert.Contains(t, index, "replacement-a")
	assert.Contains(t, index, "replacement-b")
	assert.NotContains(t, index, "replacement-c")
	assert.Contains(t, index, `href="page_1.html"`)
	assert.Contains(t, index, `href="index.html"`)
	assert.Contains(t, index, `data-timestamp="1700000000"`)
	assert.Contains(t, index, "+0.83 sat/vByte")
	assert.Contains(t, index, "<span>+500 sat</span>")
	assert.Contains(t, index, "<span>+100 vByte</span>")
	assert.Contains(t, index, "in mempool for 3 minutes")

	page1 := readFile(t, filepath.Join(dir, "page_1.html"))
	assert.Contains(t, page1, "replacement-c")
	assert.Contains(t, page1, "(page 1)")
}

// TestBuildEmpty 没有分组时仍然写出一个空首页
func TestBuildEmpty(t *testing.T) {
	dir := t.TempDir()
	b := newBuilder(t, options(100, 10))

	result, err := b.Build(NewFileWriter(filepath.Join(dir, "out", "nested")), nil, generated)
	require.NoError(t, err)
	require.Len(t, result.Main.Files, 1)

	index := readFile(t, filepath.Join(dir, "out", "nested", "index.html"))
	assert.Contains(t, index, "No full-RBF replacements on this page.")
}

// TestBuildOverflow 超出容量的分组不渲染
func TestBuildOverflow(t *testing.T) {
	dir := t.TempDir()
	b := newBuilder(t, options(1, 2))

	groups := []types.ReplacementGroup{group(3, "a", false), group(2, "b", false), group(1, "c", false)}
	result, err := b.Build(NewFileWriter(dir), groups, generated)
	require.NoError(t, err)
	assert.Len(t, result.Main.Files, 2)
	assert.Equal(t, 1, result.Main.Dropped)

	_, err = os.Stat(filepath.Join(dir, "page_2.html"))
	assert.True(t, os.IsNotExist(err))
}

// TestBuildMirror 镜像页面不包含 OP_RETURN 分组
func TestBuildMirror(t *testing.T) {
	dir := t.TempDir()
	opts := options(100, 10)
	opts.MirrorNoOpReturn = true
	b := newBuilder(t, opts)

	groups := []types.ReplacementGroup{group(2, "a", true), group(1, "b", false)}
	result, err := b.Build(NewFileWriter(dir), groups, generated)
	require.NoError(t, err)
	require.NotNil(t, result.Mirror)
	assert.Equal(t, 1, result.Mirror.Groups)

	index := readFile(t, filepath.Join(dir, "index.html"))
	assert.Contains(t, index, "replacement-a")
	assert.Contains(t, index, `href="no-opreturn/index.html"`)

	mirror := readFile(t, filepath.Join(dir, "no-opreturn", "index.html"))
	assert.NotContains(t, mirror, "replacement-a")
	assert.Contains(t, mirror, "replacement-b")
	assert.Contains(t, mirror, `href="../index.html"`)
}

type failingRenderer struct{}

func (failingRenderer) Render(io.Writer, interface{}) error {
	return errors.New("boom")
}

// TestBuildRenderError 渲染失败返回 RenderError
func TestBuildRenderError(t *testing.T) {
	b, err := NewBuilder(options(100, 10), failingRenderer{}, logimpl.NewNop())
	require.NoError(t, err)

	_, err = b.Build(NewFileWriter(t.TempDir()), nil, generated)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrRender))

	var renderErr *types.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, 0, renderErr.Page)
}

// TestFileWriter 测试原子写入
func TestFileWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewFileWriter(dir)

	path, err := w.WriteFile("sub", "index.html", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub", "index.html"), path)

	_, err = w.WriteFile("sub", "index.html", []byte("second"))
	require.NoError(t, err)
	assert.Equal(t, "second", readFile(t, path))

	entries, err := os.ReadDir(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "临时文件应已被重命名")

	t.Run("输出目录是文件", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))

		_, err := NewFileWriter(blocker).WriteFile("", "index.html", []byte("x"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrWrite))
	})
}

// TestRendererEscapes 交易数据按 HTML 转义输出
func TestRendererEscapes(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)

	g := group(1, "<script>", false)
	view := NewSiteView(types.Page{Groups: []types.ReplacementGroup{g}, Navigation: types.Navigation{Pages: []int{0}}}, 1, generated)
	view.Title = "t"

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, view))
	assert.False(t, strings.Contains(buf.String(), "replacement-<script>"))
	assert.Contains(t, buf.String(), "replacement-&lt;script&gt;")
}

// TestBackLink 测试镜像目录返回链接
func TestBackLink(t *testing.T) {
	tests := []struct {
		subdir string
		want   string
	}{
		{"no-opreturn", "../index.html"},
		{"a/b", "../../index.html"},
		{"./a/", "../index.html"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("子目录 %s", tt.subdir), func(t *testing.T) {
			assert.Equal(t, tt.want, backLink(tt.subdir))
		})
	}
}
