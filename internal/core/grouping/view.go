// Package grouping 合并同一替换交易在同一时间替换掉的交易并计算差值
package grouping

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dustin/go-humanize"

	"github.com/weisyn/fullrbf/pkg/types"
)

// ReplacedView 构造被替换交易的展示数据
//
// 进入内存池时间未知（0）或晚于替换时间时，停留时长记为 0。
func ReplacedView(e *types.Event, facts *types.TransactionFacts) types.TransactionView {
	var mempool uint64
	if e.ReplacedEntryTime > 0 && e.ReplacedEntryTime <= e.Timestamp {
		mempool = e.Timestamp - e.ReplacedEntryTime
	}
	return newView(e.ReplacedTxID, e.ReplacedFee, e.ReplacedVSize, mempool, e.ReplacedRaw, facts)
}

// ReplacementView 构造替换交易的展示数据，停留时长始终为 0
func ReplacementView(e *types.Event, facts *types.TransactionFacts) types.TransactionView {
	return newView(e.ReplacementTxID, e.ReplacementFee, e.ReplacementVSize, 0, e.ReplacementRaw, facts)
}

func newView(txid chainhash.Hash, fee, vsize, mempool uint64, raw []byte, facts *types.TransactionFacts) types.TransactionView {
	view := types.TransactionView{
		TxID:           txid.String(),
		Fee:            fee,
		FeeBTC:         btcutil.Amount(int64(fee)).String(),
		VSize:          vsize,
		Feerate:        fmt.Sprintf("%.2f", feerate(fee, vsize)),
		MempoolSeconds: mempool,
		Raw:            hex.EncodeToString(raw),
	}
	if mempool > 0 {
		view.MempoolDuration = humanDuration(mempool)
	}
	if facts != nil {
		view.OpReturn = facts.OpReturn
		view.Signaling = facts.Signaling
		view.Inputs = facts.Inputs
		view.Outputs = facts.Outputs
	}
	return view
}

func feerate(fee, vsize uint64) float64 {
	if vsize == 0 {
		return 0
	}
	return float64(fee) / float64(vsize)
}

// humanDuration 将秒数格式化为 "3 hours" 形式
func humanDuration(seconds uint64) string {
	start := time.Unix(0, 0)
	end := start.Add(time.Duration(seconds) * time.Second)
	return strings.TrimSpace(humanize.RelTime(start, end, "", ""))
}
