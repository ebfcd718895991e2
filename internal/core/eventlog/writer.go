package eventlog

import (
	"encoding/csv"
	"encoding/hex"
	"io"
	"strconv"

	"github.com/weisyn/fullrbf/pkg/types"
)

// Encode 按 Columns 的列顺序写出事件日志（含表头）
//
// 输出可以被 Decode 原样读回，用于生成测试数据和裁剪日志。
func Encode(out io.Writer, events []types.Event) error {
	w := csv.NewWriter(out)
	if err := w.Write(Columns); err != nil {
		return err
	}

	for i := range events {
		e := &events[i]
		record := []string{
			strconv.FormatUint(e.Timestamp, 10),
			hex.EncodeToString(e.ReplacedTxID[:]),
			strconv.FormatUint(e.ReplacedFee, 10),
			strconv.FormatUint(e.ReplacedVSize, 10),
			strconv.FormatUint(e.ReplacedEntryTime, 10),
			hex.EncodeToString(e.ReplacedRaw),
			hex.EncodeToString(e.ReplacementTxID[:]),
			strconv.FormatUint(e.ReplacementFee, 10),
			strconv.FormatUint(e.ReplacementVSize, 10),
			hex.EncodeToString(e.ReplacementRaw),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
