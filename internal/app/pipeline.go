package app

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	reportconfig "github.com/weisyn/fullrbf/internal/config/report"
	"github.com/weisyn/fullrbf/internal/core/eventlog"
	"github.com/weisyn/fullrbf/internal/core/fullrbf"
	"github.com/weisyn/fullrbf/internal/core/grouping"
	logimpl "github.com/weisyn/fullrbf/internal/core/infrastructure/log"
	"github.com/weisyn/fullrbf/internal/core/infrastructure/metrics"
	"github.com/weisyn/fullrbf/internal/core/report"
	"github.com/weisyn/fullrbf/internal/core/txfacts"
	"github.com/weisyn/fullrbf/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/fullrbf/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/fullrbf/pkg/types"
)

// ================================================================================================
// 🔁 报告生成流水线
// ================================================================================================

// Stats 一次运行的统计
type Stats struct {
	Events         int // 读取的事件数
	FullRBF        int // 合格的 full-RBF 事件数
	OptIn          int // 被替换交易声明了可替换
	NoConflict     int // 没有共同输入
	TxIDMismatches int // 日志 txid 与解码结果不一致的交易数
	Groups         int // 合并后的分组数
	Pages          int // 写出的页面数
	Dropped        int // 超出最大页数未渲染的分组数
	MirrorGroups   int // 镜像页面中的分组数
	MirrorPages    int // 镜像页面数
}

// Result 一次运行的结果
type Result struct {
	RunID       string
	Generated   time.Time
	OutputDir   string
	Files       []string
	MetricsFile string // 未输出指标时为空
	Stats       Stats
}

// PipelineParams 流水线依赖
type PipelineParams struct {
	fx.In

	Options  *reportconfig.ReportOptions
	Logger   log.Logger
	Clock    clock.Clock
	Recorder *metrics.Recorder
	Builder  *report.Builder
}

// Pipeline 读取事件 → 分类 → 分组 → 分页 → 渲染 → 写出
type Pipeline struct {
	options   *reportconfig.ReportOptions
	logger    log.Logger
	clock     clock.Clock
	recorder  *metrics.Recorder
	builder   *report.Builder
	reader    *eventlog.Reader
	extractor *txfacts.Extractor
}

// NewPipeline 创建流水线
func NewPipeline(params PipelineParams) *Pipeline {
	return &Pipeline{
		options:   params.Options,
		logger:    logimpl.NewModuleLogger(params.Logger, "app"),
		clock:     params.Clock,
		recorder:  params.Recorder,
		builder:   params.Builder,
		reader:    eventlog.NewReader(logimpl.NewModuleLogger(params.Logger, "eventlog")),
		extractor: txfacts.NewExtractor(params.Options.SignalingRule),
	}
}

// Run 从 input 读取事件日志并把报告写入 outDir
//
// 任何输入、解码、渲染或写入错误都会中止运行并原样返回。
func (p *Pipeline) Run(input, outDir string) (*Result, error) {
	start := p.clock.Now()
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	// 生成时间只读取一次，所有页面共用
	generated := start
	logger.Infof("开始生成 full-RBF 报告: input=%s output=%s rule=%s", input, outDir, p.extractor.Rule())

	events, err := p.reader.ReadFile(input)
	if err != nil {
		return nil, err
	}

	groups, stats, err := p.Collect(events)
	if err != nil {
		return nil, err
	}
	logger.Infof("事件 %d 个：full-RBF %d，opt-in %d，无冲突 %d；合并为 %d 个分组",
		stats.Events, stats.FullRBF, stats.OptIn, stats.NoConflict, stats.Groups)

	built, err := p.builder.Build(report.NewFileWriter(outDir), groups, generated)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     runID,
		Generated: generated,
		OutputDir: outDir,
		Files:     append([]string(nil), built.Main.Files...),
		Stats:     *stats,
	}
	result.Stats.Pages = len(built.Main.Files)
	result.Stats.Dropped = built.Main.Dropped
	p.recorder.SetPages(metrics.SetMain, result.Stats.Pages)
	if built.Mirror != nil {
		result.Files = append(result.Files, built.Mirror.Files...)
		result.Stats.MirrorGroups = built.Mirror.Groups
		result.Stats.MirrorPages = len(built.Mirror.Files)
		p.recorder.SetPages(metrics.SetMirror, result.Stats.MirrorPages)
	}

	p.recorder.SetGroups(result.Stats.Groups, result.Stats.Dropped)
	p.recorder.ObserveRun(generated, p.clock.Since(start))

	if p.options.MetricsFile != "" {
		if err := p.recorder.WriteTextfile(p.options.MetricsFile); err != nil {
			return nil, &types.WriteError{Path: p.options.MetricsFile, Err: err}
		}
		result.MetricsFile = p.options.MetricsFile
	}

	logger.Infof("报告生成完成：写出 %d 个页面", len(result.Files))
	return result, nil
}

// Collect 对全部事件分类并合并为按时间戳降序排列的分组
func (p *Pipeline) Collect(events []types.Event) ([]types.ReplacementGroup, *Stats, error) {
	stats := &Stats{Events: len(events)}
	grouper := grouping.NewGrouper()

	for i := range events {
		event := &events[i]

		replaced, err := p.extractor.ForEvent(event, txfacts.SideReplaced)
		if err != nil {
			return nil, nil, err
		}
		replacement, err := p.extractor.ForEvent(event, txfacts.SideReplacement)
		if err != nil {
			return nil, nil, err
		}
		stats.TxIDMismatches += p.checkTxID(event.ReplacedTxID.String(), replaced)
		stats.TxIDMismatches += p.checkTxID(event.ReplacementTxID.String(), replacement)

		reason := fullrbf.Classify(replaced, replacement)
		p.recorder.ObserveEvent(reason.String())

		switch reason {
		case fullrbf.ReasonOptIn:
			stats.OptIn++
			continue
		case fullrbf.ReasonNoConflict:
			stats.NoConflict++
			p.logger.Debugf("跳过没有冲突输入的替换: %s", event.String())
			continue
		}

		stats.FullRBF++
		grouper.Add(event.Timestamp,
			grouping.ReplacedView(event, replaced),
			grouping.ReplacementView(event, replacement))
	}

	stats.Groups = grouper.Len()
	return grouper.Groups(), stats, nil
}

// checkTxID 日志中的 txid 是交易的身份，与解码结果不一致时只告警
func (p *Pipeline) checkTxID(logged string, facts *types.TransactionFacts) int {
	if decoded := facts.TxID.String(); decoded != logged {
		p.logger.Warnf("日志中的 txid %s 与原始交易计算出的 %s 不一致", logged, decoded)
		return 1
	}
	return 0
}
