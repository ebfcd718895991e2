// Package eventlog 读取 CSV 格式的交易替换事件日志
//
// 日志第一行为表头，列按表头名称匹配（顺序不限）：
//
//	timestamp, replaced_txid, replaced_fee, replaced_vsize, replaced_entry_time,
//	replaced_raw, replacement_txid, replacement_fee, replacement_vsize, replacement_raw
//
// txid 为内部字节序的 32 字节十六进制，原始交易为十六进制。
// 任意一行无法解析都会返回 *types.InputError，整个运行中止。
package eventlog

import (
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/weisyn/fullrbf/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/fullrbf/pkg/types"
)

// 日志列名
const (
	ColTimestamp         = "timestamp"
	ColReplacedTxID      = "replaced_txid"
	ColReplacedFee       = "replaced_fee"
	ColReplacedVSize     = "replaced_vsize"
	ColReplacedEntryTime = "replaced_entry_time"
	ColReplacedRaw       = "replaced_raw"
	ColReplacementTxID   = "replacement_txid"
	ColReplacementFee    = "replacement_fee"
	ColReplacementVSize  = "replacement_vsize"
	ColReplacementRaw    = "replacement_raw"
)

// Columns 日志必须包含的全部列，也是写出时的列顺序
var Columns = []string{
	ColTimestamp,
	ColReplacedTxID,
	ColReplacedFee,
	ColReplacedVSize,
	ColReplacedEntryTime,
	ColReplacedRaw,
	ColReplacementTxID,
	ColReplacementFee,
	ColReplacementVSize,
	ColReplacementRaw,
}

// Reader 事件日志读取器
type Reader struct {
	logger log.Logger
}

// NewReader 创建事件日志读取器
func NewReader(logger log.Logger) *Reader {
	return &Reader{logger: logger}
}

// ReadFile 读取整个事件日志文件
func (r *Reader) ReadFile(path string) ([]types.Event, error) {
	r.logger.Infof("读取替换事件: %s", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, &types.InputError{Path: path, Err: err}
	}
	defer f.Close()

	events, err := Decode(path, f)
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		r.logger.Warnf("事件日志 %s 中没有任何替换事件", path)
	}
	r.logger.Infof("从 %s 读取到 %d 个替换事件", path, len(events))
	return events, nil
}

// Decode 从 in 解码全部事件，name 仅用于错误信息
//
// 空输入（没有表头）视为没有事件。
func Decode(name string, in io.Reader) ([]types.Event, error) {
	cr := csv.NewReader(in)
	cr.ReuseRecord = true
	// FieldsPerRecord 为 0 时以表头列数为准，之后每行列数不一致都会报错

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, inputError(name, err)
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, &types.InputError{Path: name, Line: 1, Err: err}
	}

	var events []types.Event
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, inputError(name, err)
		}

		line, _ := cr.FieldPos(0)
		event, err := decodeRecord(record, index)
		if err != nil {
			return nil, &types.InputError{Path: name, Line: line, Err: err}
		}
		events = append(events, event)
	}

	return events, nil
}

// inputError 将 csv 解析错误转换为带行号的 InputError
func inputError(name string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &types.InputError{Path: name, Line: parseErr.StartLine, Err: parseErr.Err}
	}
	return &types.InputError{Path: name, Err: err}
}

// headerIndex 建立列名到下标的映射，列名重复或缺少任一列即报错
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if prev, dup := index[name]; dup {
			return nil, fmt.Errorf("表头第 %d 列与第 %d 列重复: %s", i+1, prev+1, name)
		}
		index[name] = i
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("表头缺少列: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// decodeRecord 将一行记录解码为 Event
func decodeRecord(record []string, index map[string]int) (types.Event, error) {
	p := fieldParser{record: record, index: index}

	event := types.Event{
		Timestamp: p.parseUint(ColTimestamp),

		ReplacedTxID:      p.parseTxID(ColReplacedTxID),
		ReplacedFee:       p.parseUint(ColReplacedFee),
		ReplacedVSize:     p.parseUint(ColReplacedVSize),
		ReplacedEntryTime: p.parseUint(ColReplacedEntryTime),
		ReplacedRaw:       p.parseHex(ColReplacedRaw),

		ReplacementTxID:  p.parseTxID(ColReplacementTxID),
		ReplacementFee:   p.parseUint(ColReplacementFee),
		ReplacementVSize: p.parseUint(ColReplacementVSize),
		ReplacementRaw:   p.parseHex(ColReplacementRaw),
	}
	if p.err != nil {
		return types.Event{}, p.err
	}

	// vsize 为 0 时无法计算费率，不是有效的交易记录
	if event.ReplacedVSize == 0 {
		return types.Event{}, fmt.Errorf("列 %s 不能为 0", ColReplacedVSize)
	}
	if event.ReplacementVSize == 0 {
		return types.Event{}, fmt.Errorf("列 %s 不能为 0", ColReplacementVSize)
	}
	if len(event.ReplacedRaw) == 0 {
		return types.Event{}, fmt.Errorf("列 %s 不能为空", ColReplacedRaw)
	}
	if len(event.ReplacementRaw) == 0 {
		return types.Event{}, fmt.Errorf("列 %s 不能为空", ColReplacementRaw)
	}

	return event, nil
}

// fieldParser 按列名解析字段，只保留第一个错误
type fieldParser struct {
	record []string
	index  map[string]int
	err    error
}

func (p *fieldParser) field(col string) string {
	return strings.TrimSpace(p.record[p.index[col]])
}

func (p *fieldParser) fail(col string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("解析列 %s 失败: %w", col, err)
	}
}

func (p *fieldParser) parseUint(col string) uint64 {
	v, err := strconv.ParseUint(p.field(col), 10, 64)
	if err != nil {
		p.fail(col, err)
	}
	return v
}

func (p *fieldParser) parseHex(col string) []byte {
	b, err := hex.DecodeString(p.field(col))
	if err != nil {
		p.fail(col, err)
	}
	return b
}

func (p *fieldParser) parseTxID(col string) chainhash.Hash {
	b := p.parseHex(col)
	if p.err != nil {
		return chainhash.Hash{}
	}
	h, err := chainhash.NewHash(b)
	if err != nil {
		p.fail(col, err)
		return chainhash.Hash{}
	}
	return *h
}
