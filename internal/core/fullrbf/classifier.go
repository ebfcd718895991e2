// Package fullrbf 判断一次替换是否为 full-RBF 替换
//
// full-RBF：被替换交易没有声明可替换（BIP-125），但仍然被与其冲突的交易替换。
package fullrbf

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/weisyn/fullrbf/pkg/types"
)

// Reason 分类结果
type Reason string

const (
	// ReasonFullRBF 被替换交易未声明可替换且两笔交易存在冲突输入
	ReasonFullRBF Reason = "full-rbf"
	// ReasonOptIn 被替换交易声明了可替换，属于普通 RBF
	ReasonOptIn Reason = "opt-in"
	// ReasonNoConflict 两笔交易没有消费任何相同的输出点
	ReasonNoConflict Reason = "no-conflict"
)

// Reasons 全部分类结果，用于统计输出
var Reasons = []Reason{ReasonFullRBF, ReasonOptIn, ReasonNoConflict}

// Qualifies 是否计入 full-RBF 报告
func (r Reason) Qualifies() bool {
	return r == ReasonFullRBF
}

func (r Reason) String() string {
	return string(r)
}

// Classify 根据两侧交易事实给出分类结果
func Classify(replaced, replacement *types.TransactionFacts) Reason {
	if replaced.Signaling {
		return ReasonOptIn
	}
	if len(Conflicts(replaced, replacement)) == 0 {
		return ReasonNoConflict
	}
	return ReasonFullRBF
}

// Conflicts 返回两笔交易共同消费的输出点，顺序与 a 的输入顺序一致
func Conflicts(a, b *types.TransactionFacts) []wire.OutPoint {
	spent := make(map[wire.OutPoint]struct{}, len(b.Outpoints))
	for _, op := range b.Outpoints {
		spent[op] = struct{}{}
	}

	var shared []wire.OutPoint
	for _, op := range a.Outpoints {
		if _, ok := spent[op]; ok {
			shared = append(shared, op)
			delete(spent, op)
		}
	}
	return shared
}
