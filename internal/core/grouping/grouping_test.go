package grouping

import (
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/fullrbf/internal/core/testutil"
	"github.com/weisyn/fullrbf/pkg/types"
)

func view(id string, fee, vsize uint64) types.TransactionView {
	return types.TransactionView{TxID: id, Fee: fee, VSize: vsize}
}

// TestReplacedView 测试被替换交易展示数据
func TestReplacedView(t *testing.T) {
	replaced := testutil.SpendTx(testutil.SequenceFinal, 1, testutil.OutPoint(0xaa, 0))
	replacement := testutil.SpendTx(testutil.SequenceFinal, 2, testutil.OutPoint(0xaa, 0))
	event := testutil.NewEvent(1000,
		testutil.Side{Tx: replaced, Fee: 500, VSize: 200, EntryTime: 910},
		testutil.Side{Tx: replacement, Fee: 1000, VSize: 300})

	facts := &types.TransactionFacts{
		OpReturn: true,
		Inputs:   []string{"1x P2WPKH"},
		Outputs:  []string{"1x OP_RETURN"},
	}

	v := ReplacedView(&event, facts)
	assert.Equal(t, replaced.TxHash().String(), v.TxID)
	assert.Equal(t, uint64(500), v.Fee)
	assert.Equal(t, "0.00000500 BTC", v.FeeBTC)
	assert.Equal(t, uint64(200), v.VSize)
	assert.Equal(t, "2.50", v.Feerate)
	assert.Equal(t, uint64(90), v.MempoolSeconds)
	assert.Equal(t, "1 minute", v.MempoolDuration)
	assert.True(t, v.OpReturn)
	assert.Equal(t, hex.EncodeToString(event.ReplacedRaw), v.Raw)
	assert.Equal(t, []string{"1x P2WPKH"}, v.Inputs)

	r := ReplacementView(&event, nil)
	assert.Equal(t, replacement.TxHash().String(), r.TxID)
	assert.Equal(t, "3.33", r.Feerate)
	assert.Zero(t, r.MempoolSeconds)
	assert.Empty(t, r.MempoolDuration)
}

// TestReplacedViewMempoolTime 测试内存池停留时长的边界
func TestReplacedViewMempoolTime(t *testing.T) {
	tx := testutil.SpendTx(testutil.SequenceFinal, 1, testutil.OutPoint(0xaa, 0))

	tests := []struct {
		name      string
		entryTime uint64
		want      uint64
	}{
		{"未知进入时间", 0, 0},
		{"进入时间晚于替换时间", 2000, 0},
		{"同一时刻", 1000, 0},
		{"正常", 400, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := testutil.NewEvent(1000,
				testutil.Side{Tx: tx, Fee: 1, VSize: 1, EntryTime: tt.entryTime},
				testutil.Side{Tx: tx, Fee: 1, VSize: 1})
			v := ReplacedView(&event, nil)
			assert.Equal(t, tt.want, v.MempoolSeconds)
			assert.Equal(t, tt.want > 0, v.MempoolDuration != "")
		})
	}
}

// TestGrouperMerge 同一替换交易同一时间戳的多次替换合并为一组
func TestGrouperMerge(t *testing.T) {
	g := NewGrouper()
	x := view("x", 1000, 300)

	g.Add(100, view("a", 500, 200), x)
	g.Add(100, view("b", 300, 150), x)

	groups := g.Groups()
	require.Len(t, groups, 1)

	group := groups[0]
	assert.Equal(t, uint64(100), group.Timestamp)
	assert.Equal(t, "x", group.Replacement.TxID)
	require.Len(t, group.Replaced, 2)
	assert.Equal(t, "a", group.Replaced[0].TxID)
	assert.Equal(t, "b", group.Replaced[1].TxID)
	assert.Equal(t, int64(200), group.Delta.Fee)
	assert.Equal(t, int64(-50), group.Delta.VSize)
	assert.Empty(t, group.Delta.Feerate)
}

// TestGrouperDeduplicate 重复的被替换交易只计一次
func TestGrouperDeduplicate(t *testing.T) {
	g := NewGrouper()
	x := view("x", 1000, 300)

	g.Add(100, view("a", 500, 200), x)
	g.Add(100, view("a", 500, 200), x)
	g.Add(100, view("a", 999, 999), x)

	groups := g.Groups()
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Replaced, 1)
	assert.Equal(t, uint64(500), groups[0].Replaced[0].Fee)
	assert.Equal(t, int64(500), groups[0].Delta.Fee)
	assert.Equal(t, "+0.83 sat/vByte", groups[0].Delta.Feerate)
}

// TestGrouperKeys 替换交易或时间戳不同则分为不同组
func TestGrouperKeys(t *testing.T) {
	g := NewGrouper()

	g.Add(100, view("a", 500, 200), view("x", 1000, 300))
	g.Add(200, view("a", 500, 200), view("x", 1000, 300))
	g.Add(100, view("a", 500, 200), view("y", 1000, 300))

	assert.Equal(t, 3, g.Len())
	for _, group := range g.Groups() {
		assert.Len(t, group.Replaced, 1)
	}
}

// TestGrouperOrder 分组按时间戳降序，相同时间戳保持首次出现顺序
func TestGrouperOrder(t *testing.T) {
	g := NewGrouper()

	timestamps := []uint64{5, 9, 1, 9, 7, 5}
	for i, ts := range timestamps {
		g.Add(ts, view(fmt.Sprintf("r%d", i), 1, 1), view(fmt.Sprintf("x%d", i), 2, 1))
	}

	groups := g.Groups()
	require.Len(t, groups, len(timestamps))

	var got []string
	for i, group := range groups {
		if i > 0 {
			assert.GreaterOrEqual(t, groups[i-1].Timestamp, group.Timestamp)
		}
		got = append(got, group.Replacement.TxID)
	}
	assert.Equal(t, []string{"x1", "x3", "x4", "x0", "x5", "x2"}, got)
}

// TestGrouperEmpty 没有事件时没有分组
func TestGrouperEmpty(t *testing.T) {
	g := NewGrouper()
	assert.Zero(t, g.Len())
	assert.Empty(t, g.Groups())
}

// TestDelta 测试差值计算
func TestDelta(t *testing.T) {
	tests := []struct {
		name        string
		replacement types.TransactionView
		replaced    []types.TransactionView
		want        types.ReplacementDelta
	}{
		{
			name:        "单笔费率提高",
			replacement: view("x", 1000, 200),
			replaced:    []types.TransactionView{view("a", 500, 200)},
			want:        types.ReplacementDelta{Fee: 500, VSize: 0, Feerate: "+2.50 sat/vByte"},
		},
		{
			name:        "单笔费率降低",
			replacement: view("x", 200, 200),
			replaced:    []types.TransactionView{view("a", 300, 100)},
			want:        types.ReplacementDelta{Fee: -100, VSize: 100, Feerate: "-2.00 sat/vByte"},
		},
		{
			name:        "多笔不给费率差",
			replacement: view("x", 1000, 300),
			replaced:    []types.TransactionView{view("a", 500, 200), view("b", 300, 150)},
			want:        types.ReplacementDelta{Fee: 200, VSize: -50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Delta(&tt.replacement, tt.replaced))
		})
	}
}
