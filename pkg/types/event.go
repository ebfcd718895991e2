package types

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// ================================================================================================
// 🔄 RBF 替换事件数据模型
// ================================================================================================

// Event 一次观测到的交易替换事件（事件日志中的一行）
//
// 由 eventlog 读取器解码产生，之后只读，不会被修改。
// TxID 字段保持内部字节序，展示时通过 chainhash.Hash.String() 反转。
type Event struct {
	Timestamp uint64 // 替换发生时间（unix 秒）

	ReplacedTxID      chainhash.Hash // 被替换交易ID
	ReplacedFee       uint64         // 被替换交易手续费（sat）
	ReplacedVSize     uint64         // 被替换交易虚拟大小（vByte）
	ReplacedEntryTime uint64         // 被替换交易进入内存池的时间，0 表示未知
	ReplacedRaw       []byte         // 被替换交易原始字节

	ReplacementTxID  chainhash.Hash // 替换交易ID
	ReplacementFee   uint64         // 替换交易手续费（sat）
	ReplacementVSize uint64         // 替换交易虚拟大小（vByte）
	ReplacementRaw   []byte         // 替换交易原始字节
}

// String 返回事件的可读描述
func (e *Event) String() string {
	return fmt.Sprintf(
		"Transaction(%s, fee=%d, vsize=%d) replaced with Transaction(%s, fee=%d, vsize=%d)",
		e.ReplacedTxID, e.ReplacedFee, e.ReplacedVSize,
		e.ReplacementTxID, e.ReplacementFee, e.ReplacementVSize,
	)
}

// TransactionFacts 从原始交易字节中提取的分类相关事实
//
// 每笔交易只提取一次，之后只读。
type TransactionFacts struct {
	TxID      chainhash.Hash  // 由原始字节计算出的交易ID
	OpReturn  bool            // 是否包含 OP_RETURN 数据输出
	Signaling bool            // 是否显式声明可替换（BIP-125）
	Outpoints []wire.OutPoint // 交易消费的全部输出点
	Inputs    []string        // 输入类型汇总，如 "2x P2WPKH"（已排序）
	Outputs   []string        // 输出类型汇总（已排序）
}

// Spends 判断交易是否消费了指定输出点
func (f *TransactionFacts) Spends(op wire.OutPoint) bool {
	for _, own := range f.Outpoints {
		if own == op {
			return true
		}
	}
	return false
}

// TransactionView 替换事件一侧（被替换方或替换方）的展示数据
//
// 两个 TransactionView 是否为同一交易只由 TxID 决定，其余字段不参与比较。
// 分组时统一使用 TxID 作为键，不直接比较整个结构体。
type TransactionView struct {
	TxID            string   `json:"txid"`
	Fee             uint64   `json:"fee"`
	FeeBTC          string   `json:"fee_btc"`
	VSize           uint64   `json:"vsize"`
	Feerate         string   `json:"feerate"`
	MempoolSeconds  uint64   `json:"mempool_seconds"`
	MempoolDuration string   `json:"mempool_duration"`
	OpReturn        bool     `json:"op_return"`
	Signaling       bool     `json:"signaling"`
	Raw             string   `json:"raw"`
	Inputs          []string `json:"inputs"`
	Outputs         []string `json:"outputs"`
}

// SameTransaction 按交易ID判断是否为同一交易
func (v *TransactionView) SameTransaction(other *TransactionView) bool {
	return v.TxID == other.TxID
}

// ReplacementDelta 一个替换分组的聚合差值
type ReplacementDelta struct {
	Fee     int64  `json:"fee"`     // 替换交易手续费 - Σ被替换交易手续费
	VSize   int64  `json:"vsize"`   // 替换交易vsize - Σ被替换交易vsize
	Feerate string `json:"feerate"` // 仅在恰好一笔被替换交易时给出，如 "+1.25 sat/vByte"
}

// ReplacementGroup 同一替换交易在同一时间戳替换掉的全部交易
type ReplacementGroup struct {
	Timestamp   uint64            `json:"timestamp"`
	Replacement TransactionView   `json:"replacement"`
	Replaced    []TransactionView `json:"replaced"`
	Delta       ReplacementDelta  `json:"delta"`
}

// HasOpReturn 分组内任意一笔交易带有 OP_RETURN 输出即返回 true
func (g *ReplacementGroup) HasOpReturn() bool {
	if g.Replacement.OpReturn {
		return true
	}
	for i := range g.Replaced {
		if g.Replaced[i].OpReturn {
			return true
		}
	}
	return false
}

// Navigation 分页导航
type Navigation struct {
	Pages []int `json:"pages"` // 全部有效页码，0 为首页
}

// Page 一页报告
type Page struct {
	Index      int                `json:"index"`
	Groups     []ReplacementGroup `json:"groups"`
	Navigation Navigation         `json:"navigation"`
}
