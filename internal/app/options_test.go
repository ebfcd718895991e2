package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalconfig "github.com/weisyn/fullrbf/internal/config"
	"github.com/weisyn/fullrbf/pkg/types"
)

// TestOptionsLoad 测试配置文件与 .env 加载
func TestOptionsLoad(t *testing.T) {
	t.Run("未指定配置文件", func(t *testing.T) {
		t.Setenv(internalconfig.EnvConfigFile, "")
		o := newOptions(WithEnvFiles())
		require.NoError(t, o.load())
		assert.Nil(t, o.GetAppConfig())
	})

	t.Run("读取 JSON 配置文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"report":{"page_size":20,"signaling_rule":"all"},"log":{"level":"debug"}}`), 0o644))

		o := newOptions(WithConfigFile(path), WithEnvFiles())
		require.NoError(t, o.load())

		cfg := o.GetAppConfig()
		require.NotNil(t, cfg)
		require.NotNil(t, cfg.Report)
		assert.Equal(t, 20, *cfg.Report.PageSize)
		assert.Equal(t, "all", *cfg.Report.SignalingRule)
		assert.Nil(t, cfg.Report.MaxPages)
		assert.Equal(t, "debug", *cfg.Log.Level)
	})

	t.Run("通过环境变量指定配置文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"report":{"max_pages":3}}`), 0o644))
		t.Setenv(internalconfig.EnvConfigFile, path)

		o := newOptions(WithEnvFiles())
		require.NoError(t, o.load())
		assert.Equal(t, 3, *o.GetAppConfig().Report.MaxPages)
	})

	t.Run("配置文件不存在", func(t *testing.T) {
		o := newOptions(WithConfigFile(filepath.Join(t.TempDir(), "missing.json")), WithEnvFiles())
		assert.Error(t, o.load())
	})

	t.Run("配置文件格式错误", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"report":`), 0o644))
		o := newOptions(WithConfigFile(path), WithEnvFiles())
		assert.Error(t, o.load())
	})

	t.Run("直接指定的配置优先", func(t *testing.T) {
		cfg := &types.AppConfig{Report: &types.UserReportConfig{PageSize: types.IntPtr(5)}}
		o := newOptions(WithAppConfig(cfg), WithConfigFile("/nonexistent.json"), WithEnvFiles())
		require.NoError(t, o.load())
		assert.Same(t, cfg, o.GetAppConfig())
	})

	t.Run("加载 .env 文件", func(t *testing.T) {
		t.Setenv(internalconfig.EnvMaxPages, "")
		os.Unsetenv(internalconfig.EnvMaxPages)

		env := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(env, []byte(internalconfig.EnvMaxPages+"=7\n"), 0o644))

		o := newOptions(WithEnvFiles(env, filepath.Join(t.TempDir(), "absent.env")))
		require.NoError(t, o.load())
		assert.Equal(t, "7", os.Getenv(internalconfig.EnvMaxPages))
	})
}
