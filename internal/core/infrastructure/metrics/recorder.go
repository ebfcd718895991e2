// Package metrics 记录一次报告生成运行的统计指标
//
// 指标注册在独立的 Registry 中，运行结束后可写成 Prometheus 文本格式文件，
// 供 node_exporter 的 textfile collector 采集。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 页面集合标签
const (
	SetMain   = "main"
	SetMirror = "mirror"
)

// Recorder 运行指标记录器
type Recorder struct {
	registry *prometheus.Registry

	events        *prometheus.CounterVec
	groups        prometheus.Gauge
	pages         *prometheus.GaugeVec
	droppedGroups prometheus.Gauge
	lastRun       prometheus.Gauge
	runDuration   prometheus.Gauge
}

// NewRecorder 创建指标记录器
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{registry: registry}

	r.events = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fullrbf_events_total",
		Help: "Replacement events read from the log, by classification result",
	}, []string{"result"})

	r.groups = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fullrbf_groups",
		Help: "Full-RBF replacement groups after merging",
	})

	r.pages = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fullrbf_pages",
		Help: "HTML pages written, by page set",
	}, []string{"set"})

	r.droppedGroups = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fullrbf_dropped_groups",
		Help: "Groups beyond the last page that were not rendered",
	})

	r.lastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fullrbf_last_run_unixtime",
		Help: "Generation timestamp of the last report",
	})

	r.runDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fullrbf_run_duration_seconds",
		Help: "Wall time spent generating the report",
	})

	registry.MustRegister(
		r.events,
		r.groups,
		r.pages,
		r.droppedGroups,
		r.lastRun,
		r.runDuration,
	)

	return r
}

// ObserveEvent 记录一个事件的分类结果
func (r *Recorder) ObserveEvent(result string) {
	r.events.WithLabelValues(result).Inc()
}

// SetGroups 记录分组数与未渲染的分组数
func (r *Recorder) SetGroups(total, dropped int) {
	r.groups.Set(float64(total))
	r.droppedGroups.Set(float64(dropped))
}

// SetPages 记录某一页面集合写出的页数
func (r *Recorder) SetPages(set string, n int) {
	r.pages.WithLabelValues(set).Set(float64(n))
}

// ObserveRun 记录生成时间与耗时
func (r *Recorder) ObserveRun(generated time.Time, elapsed time.Duration) {
	r.lastRun.Set(float64(generated.Unix()))
	r.runDuration.Set(elapsed.Seconds())
}

// WriteTextfile 以 Prometheus 文本格式原子写出全部指标
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
