package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedClock(t *testing.T) {
	base := time.Unix(1700000000, 0)
	c := NewFixedClock(base)

	assert.Equal(t, base, c.Now())
	assert.Equal(t, int64(1700000000), c.Unix())
	assert.Equal(t, c.Now(), c.Now(), "固定时钟多次读取结果一致")

	c.Advance(90 * time.Second)
	assert.Equal(t, int64(1700000090), c.Unix())
	assert.Equal(t, 90*time.Second, c.Since(base))
}

func TestFromEnv(t *testing.T) {
	t.Run("未设置时使用系统时钟", func(t *testing.T) {
		c, err := FromEnv(func(string) (string, bool) { return "", false })
		require.NoError(t, err)
		assert.IsType(t, &SystemClock{}, c)
	})

	t.Run("设置 SOURCE_DATE_EPOCH 时使用固定时钟", func(t *testing.T) {
		c, err := FromEnv(func(key string) (string, bool) {
			assert.Equal(t, EnvSourceDateEpoch, key)
			return "1680000000", true
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1680000000), c.Unix())
	})

	t.Run("无效值返回错误", func(t *testing.T) {
		_, err := FromEnv(func(string) (string, bool) { return "yesterday", true })
		assert.Error(t, err)
	})
}
