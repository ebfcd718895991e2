package txfacts

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// ================================================================================================
// 🏷️ 输入 / 输出类型标签
// ================================================================================================

// 输入与输出共用的类型标签
const (
	LabelP2PK       = "P2PK"
	LabelP2PKH      = "P2PKH"
	LabelP2SH       = "P2SH"
	LabelP2WPKH     = "P2WPKH"
	LabelP2WSH      = "P2WSH"
	LabelUnknown    = "UNKNOWN"
	LabelP2SHP2WPKH = "P2SH-P2WPKH"
	LabelP2SHP2WSH  = "P2SH-P2WSH"
	LabelKeypath    = "P2TR keypath"
	LabelScriptpath = "P2TR scriptpath"
	LabelCoinbase   = "COINBASE"
	LabelP2TR       = "P2TR"
	LabelP2MS       = "P2MS"
	LabelP2A        = "P2A"
	LabelOpReturn   = "OP_RETURN"
)

// annexTag taproot 见证中 annex 元素的首字节
const annexTag = 0x50

// payToAnchor OP_1 <0x4e73>
var payToAnchor = []byte{txscript.OP_1, txscript.OP_DATA_2, 0x4e, 0x73}

// outputLabels 标准输出脚本类型到标签的映射
var outputLabels = map[txscript.ScriptClass]string{
	txscript.PubKeyTy:              LabelP2PK,
	txscript.PubKeyHashTy:          LabelP2PKH,
	txscript.ScriptHashTy:          LabelP2SH,
	txscript.WitnessV0PubKeyHashTy: LabelP2WPKH,
	txscript.WitnessV0ScriptHashTy: LabelP2WSH,
	txscript.WitnessV1TaprootTy:    LabelP2TR,
	txscript.MultiSigTy:            LabelP2MS,
	txscript.NullDataTy:            LabelOpReturn,
}

// OutputLabel 根据输出脚本判断输出类型
func OutputLabel(script []byte) string {
	if len(script) > 0 && script[0] == txscript.OP_RETURN {
		return LabelOpReturn
	}
	if bytes.Equal(script, payToAnchor) {
		return LabelP2A
	}
	if label, ok := outputLabels[txscript.GetScriptClass(script)]; ok {
		return label
	}
	return LabelUnknown
}

// InputLabel 根据解锁脚本和见证数据推断被花费输出的类型
//
// 输入不携带被花费的输出脚本，只能按解锁数据的形状推断。
func InputLabel(in *wire.TxIn) string {
	if isCoinbase(in.PreviousOutPoint) {
		return LabelCoinbase
	}

	if len(in.Witness) == 0 {
		return legacyLabel(in.SignatureScript)
	}

	if len(in.SignatureScript) == 0 {
		return witnessLabel(in.Witness)
	}

	// 嵌套隔离见证：解锁脚本只推送一个见证程序
	pushes, ok := scriptPushes(in.SignatureScript)
	if !ok || len(pushes) != 1 {
		return LabelUnknown
	}
	program := pushes[0]
	switch {
	case len(program) == 22 && program[0] == txscript.OP_0 && program[1] == txscript.OP_DATA_20:
		return LabelP2SHP2WPKH
	case len(program) == 34 && program[0] == txscript.OP_0 && program[1] == txscript.OP_DATA_32:
		return LabelP2SHP2WSH
	default:
		return LabelUnknown
	}
}

// legacyLabel 非隔离见证输入
func legacyLabel(sigScript []byte) string {
	pushes, ok := scriptPushes(sigScript)
	if !ok || len(pushes) == 0 {
		return LabelUnknown
	}

	switch {
	case len(pushes) == 1 && isDERSignature(pushes[0]):
		return LabelP2PK
	case len(pushes) == 2 && isDERSignature(pushes[0]) && isPubKey(pushes[1]):
		return LabelP2PKH
	default:
		// 最后一个推送为赎回脚本
		return LabelP2SH
	}
}

// witnessLabel 原生隔离见证输入
func witnessLabel(witness wire.TxWitness) string {
	items := [][]byte(witness)
	if len(items) >= 2 && len(items[len(items)-1]) > 0 && items[len(items)-1][0] == annexTag {
		items = items[:len(items)-1]
	}

	switch {
	case len(items) == 2 && isDERSignature(items[0]) && len(items[1]) == 33:
		return LabelP2WPKH
	case len(items) == 1 && (len(items[0]) == 64 || len(items[0]) == 65):
		return LabelKeypath
	case len(items) >= 2 && isControlBlock(items[len(items)-1]):
		return LabelScriptpath
	default:
		return LabelP2WSH
	}
}

// scriptPushes 返回只含推送操作的脚本中的全部数据，遇到其他操作码返回 false
func scriptPushes(script []byte) ([][]byte, bool) {
	var pushes [][]byte
	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		if tokenizer.Opcode() > txscript.OP_16 {
			return nil, false
		}
		pushes = append(pushes, tokenizer.Data())
	}
	if tokenizer.Err() != nil {
		return nil, false
	}
	return pushes, true
}

func isCoinbase(op wire.OutPoint) bool {
	return op.Index == wire.MaxPrevOutIndex && op.Hash == (chainhash.Hash{})
}

// isDERSignature 粗略判断是否为带 sighash 字节的 DER 签名
func isDERSignature(b []byte) bool {
	return len(b) >= 9 && len(b) <= 73 && b[0] == 0x30 && int(b[1]) == len(b)-3
}

func isPubKey(b []byte) bool {
	switch len(b) {
	case 33:
		return b[0] == 0x02 || b[0] == 0x03
	case 65:
		return b[0] == 0x04
	}
	return false
}

// isControlBlock 判断是否为 taproot 脚本路径的控制块
func isControlBlock(b []byte) bool {
	return len(b) >= 33 && (len(b)-33)%32 == 0 && b[0]&0xfe == 0xc0
}

// Summarize 统计标签出现次数，按标签名排序输出 "Nx LABEL"
func Summarize(labels []string) []string {
	counts := make(map[string]int, len(labels))
	for _, label := range labels {
		counts[label]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	summary := make([]string, 0, len(names))
	for _, name := range names {
		summary = append(summary, fmt.Sprintf("%dx %s", counts[name], name))
	}
	return summary
}
