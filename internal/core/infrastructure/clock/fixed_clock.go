package clock

import (
	"time"

	infraClock "github.com/weisyn/fullrbf/pkg/interfaces/infrastructure/clock"
)

// FixedClock 固定时间的时钟，用于测试和可复现构建
type FixedClock struct{ currentTime time.Time }

func NewFixedClock(t time.Time) *FixedClock { return &FixedClock{currentTime: t} }

func (c *FixedClock) Now() time.Time                  { return c.currentTime }
func (c *FixedClock) Since(t time.Time) time.Duration { return c.currentTime.Sub(t) }
func (c *FixedClock) Unix() int64                     { return c.currentTime.Unix() }

// Advance 推进时间
func (c *FixedClock) Advance(d time.Duration) { c.currentTime = c.currentTime.Add(d) }

var _ infraClock.Clock = (*FixedClock)(nil)
