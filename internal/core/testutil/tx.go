// Package testutil 提供构造测试交易和替换事件的辅助函数
package testutil

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/weisyn/fullrbf/pkg/types"
)

// 常用 nSequence 取值
const (
	SequenceFinal = wire.MaxTxInSequenceNum     // 0xffffffff，不声明可替换
	SequenceNoRBF = wire.MaxTxInSequenceNum - 1 // 0xfffffffe，不声明可替换（允许 locktime）
	SequenceOptIn = wire.MaxTxInSequenceNum - 2 // 0xfffffffd，声明可替换
)

// OutPoint 用 seed 填充前序交易哈希，构造确定的输出点
func OutPoint(seed byte, index uint32) wire.OutPoint {
	var h chainhash.Hash
	for i := range h {
		h[i] = seed
	}
	return wire.OutPoint{Hash: h, Index: index}
}

// P2WPKHScript 构造 P2WPKH 输出脚本
func P2WPKHScript(seed byte) []byte {
	script := []byte{0x00, 0x14}
	return append(script, bytes.Repeat([]byte{seed}, 20)...)
}

// P2PKHScript 构造 P2PKH 输出脚本
func P2PKHScript(seed byte) []byte {
	script := []byte{0x76, 0xa9, 0x14}
	script = append(script, bytes.Repeat([]byte{seed}, 20)...)
	return append(script, 0x88, 0xac)
}

// OpReturnScript 构造 OP_RETURN 数据输出脚本
func OpReturnScript(data []byte) []byte {
	script := []byte{0x6a, byte(len(data))}
	return append(script, data...)
}

// TxInput 测试交易输入描述
type TxInput struct {
	OutPoint  wire.OutPoint
	Sequence  uint32
	SigScript []byte
	Witness   wire.TxWitness
}

// NewTx 构造交易；outputs 为输出脚本，金额固定为 1000 sat
func NewTx(inputs []TxInput, outputs ...[]byte) *wire.MsgTx {
	tx := wire.NewMsgTx(2)
	for _, in := range inputs {
		txIn := wire.NewTxIn(&in.OutPoint, in.SigScript, in.Witness)
		txIn.Sequence = in.Sequence
		tx.AddTxIn(txIn)
	}
	for _, script := range outputs {
		tx.AddTxOut(wire.NewTxOut(1000, script))
	}
	return tx
}

// SpendTx 构造消费指定输出点的 P2WPKH 交易，所有输入使用同一个 sequence
func SpendTx(sequence uint32, outputSeed byte, outpoints ...wire.OutPoint) *wire.MsgTx {
	inputs := make([]TxInput, 0, len(outpoints))
	for _, op := range outpoints {
		inputs = append(inputs, TxInput{
			OutPoint: op,
			Sequence: sequence,
			Witness:  P2WPKHWitness(),
		})
	}
	return NewTx(inputs, P2WPKHScript(outputSeed))
}

// P2WPKHWitness 构造形如 P2WPKH 花费的见证数据（DER 签名 + 压缩公钥）
func P2WPKHWitness() wire.TxWitness {
	return wire.TxWitness{DERSignature(), CompressedPubKey()}
}

// DERSignature 返回长度合法的 DER 签名占位数据
func DERSignature() []byte {
	sig := []byte{0x30, 0x44}
	sig = append(sig, bytes.Repeat([]byte{0x01}, 68)...)
	return append(sig, 0x01) // SIGHASH_ALL
}

// CompressedPubKey 返回压缩公钥占位数据
func CompressedPubKey() []byte {
	return append([]byte{0x02}, bytes.Repeat([]byte{0x03}, 32)...)
}

// Serialize 序列化交易
func Serialize(tx *wire.MsgTx) []byte {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Side 替换事件一侧的交易与费用
type Side struct {
	Tx        *wire.MsgTx
	Fee       uint64
	VSize     uint64
	EntryTime uint64 // 仅对被替换交易有效
}

// NewEvent 用两笔交易构造替换事件，txid 取自交易本身
func NewEvent(timestamp uint64, replaced, replacement Side) types.Event {
	return types.Event{
		Timestamp: timestamp,

		ReplacedTxID:      replaced.Tx.TxHash(),
		ReplacedFee:       replaced.Fee,
		ReplacedVSize:     replaced.VSize,
		ReplacedEntryTime: replaced.EntryTime,
		ReplacedRaw:       Serialize(replaced.Tx),

		ReplacementTxID:  replacement.Tx.TxHash(),
		ReplacementFee:   replacement.Fee,
		ReplacementVSize: replacement.VSize,
		ReplacementRaw:   Serialize(replacement.Tx),
	}
}
