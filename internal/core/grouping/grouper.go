package grouping

import (
	"fmt"
	"sort"

	"github.com/weisyn/fullrbf/pkg/types"
)

// Key 分组键：同一替换交易在同一时间戳的替换合并为一组
type Key struct {
	ReplacementID string
	Timestamp     uint64
}

// accumulator 一个分组在合并过程中的状态
type accumulator struct {
	replacement types.TransactionView
	replaced    []types.TransactionView
}

// Grouper 替换分组器
//
// 非并发安全，一次运行使用一个实例。
type Grouper struct {
	groups map[Key]*accumulator
	order  []Key // 首次出现顺序
}

// NewGrouper 创建分组器
func NewGrouper() *Grouper {
	return &Grouper{groups: make(map[Key]*accumulator)}
}

// Add 将一次合格的替换并入对应分组
//
// 同一分组内重复的被替换交易（按 txid）只保留第一次出现的记录。
func (g *Grouper) Add(timestamp uint64, replaced, replacement types.TransactionView) {
	key := Key{ReplacementID: replacement.TxID, Timestamp: timestamp}

	acc, ok := g.groups[key]
	if !ok {
		acc = &accumulator{replacement: replacement}
		g.groups[key] = acc
		g.order = append(g.order, key)
	}

	for i := range acc.replaced {
		if acc.replaced[i].SameTransaction(&replaced) {
			return
		}
	}
	acc.replaced = append(acc.replaced, replaced)
}

// Len 当前分组数
func (g *Grouper) Len() int {
	return len(g.order)
}

// Groups 返回按时间戳降序排列的全部分组，时间戳相同时保持首次出现顺序
func (g *Grouper) Groups() []types.ReplacementGroup {
	groups := make([]types.ReplacementGroup, 0, len(g.order))
	for _, key := range g.order {
		acc := g.groups[key]
		replaced := make([]types.TransactionView, len(acc.replaced))
		copy(replaced, acc.replaced)

		groups = append(groups, types.ReplacementGroup{
			Timestamp:   key.Timestamp,
			Replacement: acc.replacement,
			Replaced:    replaced,
			Delta:       Delta(&acc.replacement, replaced),
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Timestamp > groups[j].Timestamp
	})
	return groups
}

// Delta 计算替换交易相对全部被替换交易的差值
//
// 费率差只在恰好一笔被替换交易时给出。
func Delta(replacement *types.TransactionView, replaced []types.TransactionView) types.ReplacementDelta {
	var fee, vsize uint64
	for i := range replaced {
		fee += replaced[i].Fee
		vsize += replaced[i].VSize
	}

	delta := types.ReplacementDelta{
		Fee:   int64(replacement.Fee) - int64(fee),
		VSize: int64(replacement.VSize) - int64(vsize),
	}
	if len(replaced) == 1 {
		diff := feerate(replacement.Fee, replacement.VSize) - feerate(replaced[0].Fee, replaced[0].VSize)
		delta.Feerate = fmt.Sprintf("%+.2f sat/vByte", diff)
	}
	return delta
}
