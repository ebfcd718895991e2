package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecorder 测试指标记录
func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.ObserveEvent("full-rbf")
	r.ObserveEvent("full-rbf")
	r.ObserveEvent("opt-in")
	r.SetGroups(1234, 234)
	r.SetPages(SetMain, 10)
	r.SetPages(SetMirror, 3)
	r.ObserveRun(time.Unix(1700000000, 0), 1500*time.Millisecond)

	assert.Equal(t, 2.0, promtestutil.ToFloat64(r.events.WithLabelValues("full-rbf")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(r.events.WithLabelValues("opt-in")))
	assert.Equal(t, 1234.0, promtestutil.ToFloat64(r.groups))
	assert.Equal(t, 234.0, promtestutil.ToFloat64(r.droppedGroups))
	assert.Equal(t, 10.0, promtestutil.ToFloat64(r.pages.WithLabelValues(SetMain)))
	assert.Equal(t, 3.0, promtestutil.ToFloat64(r.pages.WithLabelValues(SetMirror)))
	assert.Equal(t, 1700000000.0, promtestutil.ToFloat64(r.lastRun))
	assert.Equal(t, 1.5, promtestutil.ToFloat64(r.runDuration))
}

// TestWriteTextfile 测试写出文本格式指标文件
func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveEvent("no-conflict")
	r.SetGroups(7, 0)

	path := filepath.Join(t.TempDir(), "fullrbf.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.Contains(text, `fullrbf_events_total{result="no-conflict"} 1`))
	assert.True(t, strings.Contains(text, "fullrbf_groups 7"))
}
