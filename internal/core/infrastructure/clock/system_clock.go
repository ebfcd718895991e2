// Package clock 提供报告生成使用的时间源实现
package clock

import (
	"time"

	infraClock "github.com/weisyn/fullrbf/pkg/interfaces/infrastructure/clock"
)

// SystemClock 使用系统真实时间
type SystemClock struct{}

func NewSystemClock() infraClock.Clock { return &SystemClock{} }

func (c *SystemClock) Now() time.Time                  { return time.Now() }
func (c *SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }
func (c *SystemClock) Unix() int64                     { return time.Now().Unix() }
