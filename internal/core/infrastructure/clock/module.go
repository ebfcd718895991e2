package clock

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	infraClock "github.com/weisyn/fullrbf/pkg/interfaces/infrastructure/clock"
	"go.uber.org/fx"
)

// EnvSourceDateEpoch 设置后使用固定时间，保证同一输入生成完全相同的页面
const EnvSourceDateEpoch = "SOURCE_DATE_EPOCH"

// Module 返回时钟模块
func Module() fx.Option {
	return fx.Module("clock",
		fx.Provide(func() (infraClock.Clock, error) {
			return FromEnv(os.LookupEnv)
		}),
	)
}

// FromEnv 根据 SOURCE_DATE_EPOCH 选择时钟实现
func FromEnv(lookup func(string) (string, bool)) (infraClock.Clock, error) {
	v, ok := lookup(EnvSourceDateEpoch)
	if !ok || strings.TrimSpace(v) == "" {
		return NewSystemClock(), nil
	}
	secs, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("解析 %s=%q 失败: %w", EnvSourceDateEpoch, v, err)
	}
	return NewFixedClock(time.Unix(secs, 0).UTC()), nil
}
