// Package txfacts 从原始交易字节中提取分类与展示所需的事实
package txfacts

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/wire"

	"github.com/weisyn/fullrbf/pkg/types"
)

// 替换事件中交易所处的一侧
const (
	SideReplaced    = "replaced"
	SideReplacement = "replacement"
)

// 可替换声明判定规则
const (
	RuleAny = "any" // 任意输入 nSequence < 0xfffffffe 即声明（BIP-125）
	RuleAll = "all" // 全部输入都满足才算声明
)

// optInThreshold nSequence 小于该值表示声明可替换
const optInThreshold = wire.MaxTxInSequenceNum - 1

// Extractor 交易事实提取器
type Extractor struct {
	rule string
}

// NewExtractor 创建提取器，未知规则按 RuleAny 处理
func NewExtractor(rule string) *Extractor {
	if rule != RuleAll {
		rule = RuleAny
	}
	return &Extractor{rule: rule}
}

// Rule 返回当前使用的声明判定规则
func (e *Extractor) Rule() string {
	return e.rule
}

// Extract 解码原始交易并提取事实
//
// 字节无法完整解析为一笔交易（包括尾部多余字节）时返回错误。
func (e *Extractor) Extract(raw []byte) (*types.TransactionFacts, error) {
	tx, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return e.FromTx(tx), nil
}

// FromTx 从已解码的交易提取事实
func (e *Extractor) FromTx(tx *wire.MsgTx) *types.TransactionFacts {
	facts := &types.TransactionFacts{
		TxID:      tx.TxHash(),
		Signaling: e.signals(tx),
		Outpoints: make([]wire.OutPoint, 0, len(tx.TxIn)),
	}

	inputs := make([]string, 0, len(tx.TxIn))
	for _, in := range tx.TxIn {
		facts.Outpoints = append(facts.Outpoints, in.PreviousOutPoint)
		inputs = append(inputs, InputLabel(in))
	}

	outputs := make([]string, 0, len(tx.TxOut))
	for _, out := range tx.TxOut {
		label := OutputLabel(out.PkScript)
		if label == LabelOpReturn {
			facts.OpReturn = true
		}
		outputs = append(outputs, label)
	}

	facts.Inputs = Summarize(inputs)
	facts.Outputs = Summarize(outputs)
	return facts
}

// ForEvent 提取事件一侧交易的事实，失败时返回带 txid 与所在侧的 *types.DecodeError
func (e *Extractor) ForEvent(event *types.Event, side string) (*types.TransactionFacts, error) {
	raw, txid := event.ReplacedRaw, event.ReplacedTxID
	if side == SideReplacement {
		raw, txid = event.ReplacementRaw, event.ReplacementTxID
	}

	facts, err := e.Extract(raw)
	if err != nil {
		return nil, &types.DecodeError{TxID: txid.String(), Side: side, Err: err}
	}
	return facts, nil
}

// signals 按规则判断交易是否声明可替换
func (e *Extractor) signals(tx *wire.MsgTx) bool {
	if len(tx.TxIn) == 0 {
		return false
	}
	for _, in := range tx.TxIn {
		optIn := in.Sequence < optInThreshold
		if e.rule == RuleAny && optIn {
			return true
		}
		if e.rule == RuleAll && !optIn {
			return false
		}
	}
	return e.rule == RuleAll
}

// Decode 将原始字节解码为交易（支持隔离见证格式）
func Decode(raw []byte) (*wire.MsgTx, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("原始交易为空")
	}

	r := bytes.NewReader(raw)
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(r); err != nil {
		return nil, fmt.Errorf("反序列化交易失败: %w", err)
	}
	if r.Len() > 0 {
		return nil, fmt.Errorf("交易末尾有 %d 个多余字节", r.Len())
	}
	return tx, nil
}
