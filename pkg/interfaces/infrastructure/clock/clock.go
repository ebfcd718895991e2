// Package clock 定义统一的时间源接口
package clock

import "time"

// Clock 提供统一的时间源接口
//
// 报告生成时间在一次运行中只读取一次，再显式传给报告构建器，
// 测试中可替换为固定时间。
type Clock interface {
	// Now 获取当前时间
	Now() time.Time

	// Since 计算从指定时间到现在的持续时间
	Since(t time.Time) time.Duration

	// Unix 获取当前Unix时间戳（秒）
	Unix() int64
}
